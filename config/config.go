// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads stcflash settings from a YAML or TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/openchirp/stcboot"
	"github.com/openchirp/stcboot/serialport"
)

var ErrInvalid = errors.New("config: invalid setting")

// AutoISP holds the magic word trigger settings.
type AutoISP struct {
	Baud  int    `yaml:"baud" toml:"baud"`
	Magic string `yaml:"magic" toml:"magic"`
}

// Config is the full set of flashing settings.
type Config struct {
	Port            string  `yaml:"port" toml:"port"`
	LowBaud         int     `yaml:"low_baud" toml:"low_baud"`
	HighBaud        int     `yaml:"high_baud" toml:"high_baud"`
	Protocol        string  `yaml:"protocol" toml:"protocol"`
	Driver          string  `yaml:"driver" toml:"driver"`
	AutoISP         AutoISP `yaml:"autoisp" toml:"autoisp"`
	Verbose         int     `yaml:"verbose" toml:"verbose"`
	StrictFlash     bool    `yaml:"strict_flash" toml:"strict_flash"`
	CompatHandshake bool    `yaml:"compat_handshake" toml:"compat_handshake"`
	// EraseEEPROM is unset when the option bit should be left alone.
	EraseEEPROM *bool `yaml:"erase_eeprom" toml:"erase_eeprom"`
}

// DefaultPort is the usual USB serial adapter name on this platform.
func DefaultPort() string {
	switch runtime.GOOS {
	case "windows":
		return "COM3"
	case "darwin":
		return "/dev/tty.usbserial"
	}
	return "/dev/ttyUSB0"
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Port:     DefaultPort(),
		LowBaud:  2400,
		HighBaud: stcboot.DefaultHighBaud,
		Protocol: stcboot.ProtocolAuto.String(),
		Driver:   serialport.DriverBugst,
		AutoISP: AutoISP{
			Baud: 4800,
		},
	}
}

// Load reads path over the defaults. Files ending in .toml are TOML,
// anything else is YAML.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.Protocol = strings.ToLower(strings.TrimSpace(cfg.Protocol))
	return cfg, cfg.Validate()
}

// Validate checks names and ranges.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: empty port", ErrInvalid)
	}
	if c.LowBaud <= 0 {
		return fmt.Errorf("%w: low_baud %d", ErrInvalid, c.LowBaud)
	}
	if c.HighBaud <= 0 || c.HighBaud > stcboot.MaxHighBaud {
		return fmt.Errorf("%w: high_baud %d outside (0, %d]", ErrInvalid, c.HighBaud, stcboot.MaxHighBaud)
	}
	if _, err := stcboot.ParseProtocol(c.Protocol); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.Driver {
	case "", serialport.DriverBugst, serialport.DriverJacobsa:
	default:
		return fmt.Errorf("%w: driver %q", ErrInvalid, c.Driver)
	}
	if c.AutoISP.Magic != "" && c.AutoISP.Baud <= 0 {
		return fmt.Errorf("%w: autoisp baud %d", ErrInvalid, c.AutoISP.Baud)
	}
	return nil
}

// EEPROMPolicy maps EraseEEPROM to the session policy.
func (c Config) EEPROMPolicy() stcboot.EEPROMPolicy {
	switch {
	case c.EraseEEPROM == nil:
		return stcboot.EEPROMUnchanged
	case *c.EraseEEPROM:
		return stcboot.EEPROMErase
	}
	return stcboot.EEPROMKeep
}
