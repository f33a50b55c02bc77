// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	EnvLogLevel   = "STCFLASH_LOG_LEVEL"
	EnvLogNoColor = "STCFLASH_LOG_NOCOLOR"
)

// LevelForVerbosity maps a -v count to a level: warnings only by
// default, info with -v, frame traffic with -vv.
func LevelForVerbosity(verbosity int) logrus.Level {
	switch {
	case verbosity <= 0:
		return logrus.WarnLevel
	case verbosity == 1:
		return logrus.InfoLevel
	}
	return logrus.DebugLevel
}

// New builds the CLI logger writing to out. The environment overrides
// the level and color settings.
func New(out io.Writer, verbosity int, noColor bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(LevelForVerbosity(verbosity))
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		logger.SetLevel(lvl)
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvLogNoColor)); err == nil {
		noColor = v
	}
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    noColor,
		FullTimestamp:    false,
		DisableTimestamp: false,
	})
	return logger
}

// Configure sets up the standard logger and returns it.
func Configure(verbosity int, noColor bool) *logrus.Logger {
	std := logrus.StandardLogger()
	l := New(os.Stderr, verbosity, noColor)
	std.SetOutput(l.Out)
	std.SetLevel(l.GetLevel())
	std.SetFormatter(l.Formatter)
	return std
}

func parseLevel(raw string) (logrus.Level, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return logrus.InfoLevel, false
	}
	lvl, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.InfoLevel, false
	}
	return lvl, true
}
