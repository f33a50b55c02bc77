// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openchirp/stcboot"
	"github.com/openchirp/stcboot/config"
)

func parseFlags(t *testing.T, args ...string) (*cobra.Command, flags) {
	t.Helper()
	var f flags
	cmd := &cobra.Command{Use: "stcflash"}
	addFlags(cmd, &f)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cmd, f
}

func TestResolveConfigDefaults(t *testing.T) {
	cmd, f := parseFlags(t)
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	def := config.Default()
	if cfg.Port != def.Port || cfg.LowBaud != 2400 || cfg.Protocol != "auto" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.EEPROMPolicy() != stcboot.EEPROMUnchanged {
		t.Fatalf("eeprom policy %v", cfg.EEPROMPolicy())
	}
}

func TestResolveConfigFlagsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stcflash.toml")
	body := "port = \"COM7\"\nlow_baud = 4800\nhigh_baud = 230400\nerase_eeprom = false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, f := parseFlags(t, "--config", path, "-p", "/dev/ttyS1", "-e", "-vv", "-r", "12C5A")
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Port != "/dev/ttyS1" {
		t.Fatalf("port %q, want the flag value", cfg.Port)
	}
	if cfg.LowBaud != 4800 || cfg.HighBaud != 230400 {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.Verbose != 2 || cfg.Protocol != "12c5a" {
		t.Fatalf("verbose %d protocol %q", cfg.Verbose, cfg.Protocol)
	}
	if cfg.EEPROMPolicy() != stcboot.EEPROMErase {
		t.Fatalf("eeprom policy %v, want ERASE", cfg.EEPROMPolicy())
	}
}

func TestResolveConfigInvalid(t *testing.T) {
	cmd, f := parseFlags(t, "--highbaud", "921600")
	if _, err := resolveConfig(cmd, f); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("resolveConfig() = %v, want ErrInvalid", err)
	}
}

func TestRenderInfo(t *testing.T) {
	profile, err := stcboot.Resolve(stcboot.Signature{0xD1, 0x70})
	if err != nil {
		t.Fatal(err)
	}
	info := stcboot.DeviceInfo{
		Signature: stcboot.Signature{0xD1, 0x70},
		Profile:   profile,
		Protocol:  stcboot.Protocol12C5A,
		Version:   "6.2I",
		Fosc:      11.0592,
		Info:      []byte{0x62, 0x49, 0x00, 0xD1, 0x70, 0xFF, 0xBF, 0xF7, 0xF5, 0xFF, 0xFD},
	}
	out := renderInfo(info)
	for _, want := range []string{"STC12C5A32S2", "D1 70", "11.059 MHz", "6.2I", "32 KB", "Not erase data EEPROM", "64"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Test date") {
		t.Errorf("legacy report shows 8/15 fields:\n%s", out)
	}
}

func TestWriteBar(t *testing.T) {
	var out, logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	logger.SetLevel(logrus.DebugLevel)

	bar := newWriteBar(&out)
	for _, fraction := range []float64{0.25, 0.5, 1} {
		setBar(bar, fraction, logger)
	}
	if !strings.Contains(out.String(), "Writing") || !strings.Contains(out.String(), "100%") {
		t.Fatalf("bar output %q", out.String())
	}
	if logs.Len() != 0 {
		t.Fatalf("unexpected log output %q", logs.String())
	}
}
