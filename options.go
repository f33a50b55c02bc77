// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultHighBaud is the target rate for the fixed-rate handshake
	DefaultHighBaud = 115200
	// MaxHighBaud is the fastest rate the STC8/STC15 timer can be trimmed to
	MaxHighBaud = 460800
)

// Config holds the session settings.
type Config struct {
	// Protocol forces a wire protocol. ProtocolAuto infers it from the
	// device signature.
	Protocol Protocol

	// HighBaud is the operating rate requested from 8/15 series parts.
	// Legacy parts search their own candidate list.
	HighBaud int

	// StrictFlashChecksum fails the flash step when a page ack does not
	// echo the page sum. Otherwise the mismatch is only logged.
	StrictFlashChecksum bool

	// CompatHandshake keeps going at the high rate when an 8/15 part
	// does not acknowledge the baud command.
	CompatHandshake bool

	Logger logrus.FieldLogger

	RecvTimeout    time.Duration
	EraseTimeout   time.Duration
	DetectAttempts int
	DetectWindow   time.Duration
	DetectSettle   time.Duration
	SwitchSettle   time.Duration

	sleep func(time.Duration)
}

func defaultConfig() Config {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return Config{
		Protocol:       ProtocolAuto,
		HighBaud:       DefaultHighBaud,
		Logger:         logger,
		RecvTimeout:    1 * time.Second,
		EraseTimeout:   10 * time.Second,
		DetectAttempts: 500,
		DetectWindow:   30 * time.Millisecond,
		DetectSettle:   20 * time.Millisecond,
		SwitchSettle:   200 * time.Millisecond,
		sleep:          time.Sleep,
	}
}

// Option is a functional option for configuring a Session.
type Option func(*Config)

// WithProtocol skips protocol inference.
func WithProtocol(p Protocol) Option {
	return func(c *Config) {
		c.Protocol = p
	}
}

// WithHighBaud sets the rate requested by the fixed-rate handshake.
func WithHighBaud(baud int) Option {
	return func(c *Config) {
		c.HighBaud = baud
	}
}

// WithStrictFlashChecksum enables page checksum verification.
func WithStrictFlashChecksum(strict bool) Option {
	return func(c *Config) {
		c.StrictFlashChecksum = strict
	}
}

// WithCompatHandshake continues after an unacknowledged fixed-rate
// baud command, as older flashing tools did.
func WithCompatHandshake(compat bool) Option {
	return func(c *Config) {
		c.CompatHandshake = compat
	}
}

// WithLogger sets the logger. Frame traffic is logged at debug level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithRecvTimeout sets how long to wait for an ordinary reply.
func WithRecvTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.RecvTimeout = timeout
		}
	}
}

// WithEraseTimeout sets how long to wait for an erase reply.
func WithEraseTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.EraseTimeout = timeout
		}
	}
}

// WithDetectAttempts sets how many trigger pulses Detect sends before
// giving up, and the receive window after each.
func WithDetectAttempts(attempts int, window time.Duration) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.DetectAttempts = attempts
		}
		if window > 0 {
			c.DetectWindow = window
		}
	}
}

// withSleep replaces the settle delays, for tests.
func withSleep(sleep func(time.Duration)) Option {
	return func(c *Config) {
		c.sleep = sleep
		c.DetectSettle = 0
	}
}
