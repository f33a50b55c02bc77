// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command stcflash programs STC 8051 microcontrollers over their ISP
// serial bootloader.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openchirp/stcboot"
	"github.com/openchirp/stcboot/config"
	"github.com/openchirp/stcboot/ihex"
	"github.com/openchirp/stcboot/internal/logging"
	"github.com/openchirp/stcboot/serialport"
)

var version = "dev"

type flags struct {
	configPath     string
	port           string
	lowBaud        int
	highBaud       int
	protocol       string
	driver         string
	aispBaud       int
	aispMagic      string
	verbose        int
	eraseEEPROM    bool
	notEraseEEPROM bool
	strict         bool
	compat         bool
	noColor        bool
}

func main() {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "stcflash [image]",
		Short: "Program STC 8051 microcontrollers over the ISP bootloader",
		Long: `stcflash detects an STC 8051 microcontroller waiting in its ISP
bootloader, prints what it reports and, given a .bin, .hex or .ihx
image, erases and programs it.

Power cycle the target after starting stcflash.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			var image []byte
			if len(args) == 1 {
				image, err = ihex.Load(args[0])
				if err != nil {
					return err
				}
			}
			logger := logging.Configure(cfg.Verbose, f.noColor)
			return run(cmd.Context(), cmd.OutOrStdout(), logger, cfg, image)
		},
	}

	addFlags(cmd, &f)

	return cmd
}

// addFlags binds the root command flags to f.
func addFlags(cmd *cobra.Command, f *flags) {
	def := config.Default()
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "settings file (.yaml or .toml)")
	fl.StringVarP(&f.port, "port", "p", def.Port, "serial port device")
	fl.IntVarP(&f.lowBaud, "lowbaud", "l", def.LowBaud, "initial baud rate")
	fl.IntVar(&f.highBaud, "highbaud", def.HighBaud, "operating baud rate for 8/15 series")
	fl.StringVarP(&f.protocol, "protocol", "r", def.Protocol,
		"protocol to use ("+strings.Join(stcboot.ProtocolNames(), "|")+")")
	fl.StringVar(&f.driver, "driver", def.Driver,
		"serial driver ("+strings.Join(serialport.Drivers(), "|")+")")
	fl.IntVarP(&f.aispBaud, "aispbaud", "a", def.AutoISP.Baud, "baud rate for AutoISP")
	fl.StringVarP(&f.aispMagic, "aispmagic", "m", "", "magic word for AutoISP")
	fl.CountVarP(&f.verbose, "verbose", "v", "be verbose, repeat for frame traces")
	fl.BoolVarP(&f.eraseEEPROM, "erase-eeprom", "e", false, "erase data EEPROM during next download")
	fl.BoolVarP(&f.notEraseEEPROM, "not-erase-eeprom", "n", false, "do not erase data EEPROM during next download")
	fl.BoolVar(&f.strict, "strict", false, "fail when a page ack does not echo the page checksum")
	fl.BoolVar(&f.compat, "compat-handshake", false, "continue when an 8/15 part does not acknowledge the baud change")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colored log output")
	cmd.MarkFlagsMutuallyExclusive("erase-eeprom", "not-erase-eeprom")
}

// resolveConfig layers explicitly set flags over the settings file.
func resolveConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("port") {
		cfg.Port = f.port
	}
	if changed("lowbaud") {
		cfg.LowBaud = f.lowBaud
	}
	if changed("highbaud") {
		cfg.HighBaud = f.highBaud
	}
	if changed("protocol") {
		cfg.Protocol = strings.ToLower(f.protocol)
	}
	if changed("driver") {
		cfg.Driver = f.driver
	}
	if changed("aispbaud") {
		cfg.AutoISP.Baud = f.aispBaud
	}
	if changed("aispmagic") {
		cfg.AutoISP.Magic = f.aispMagic
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if changed("strict") {
		cfg.StrictFlash = f.strict
	}
	if changed("compat-handshake") {
		cfg.CompatHandshake = f.compat
	}
	switch {
	case f.eraseEEPROM:
		erase := true
		cfg.EraseEEPROM = &erase
	case f.notEraseEEPROM:
		erase := false
		cfg.EraseEEPROM = &erase
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, out io.Writer, logger *logrus.Logger, cfg config.Config, image []byte) error {
	protocol, err := stcboot.ParseProtocol(cfg.Protocol)
	if err != nil {
		return err
	}

	port, err := serialport.Open(serialport.Config{
		Name:     cfg.Port,
		BaudRate: cfg.LowBaud,
		Driver:   cfg.Driver,
	})
	if err != nil {
		return err
	}
	defer port.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := stcboot.AutoISP(port, cfg.AutoISP.Baud, cfg.AutoISP.Magic); err != nil {
		return fmt.Errorf("autoisp: %w", err)
	}

	sess := stcboot.NewSession(port,
		stcboot.WithProtocol(protocol),
		stcboot.WithHighBaud(cfg.HighBaud),
		stcboot.WithStrictFlashChecksum(cfg.StrictFlash),
		stcboot.WithCompatHandshake(cfg.CompatHandshake),
		stcboot.WithLogger(logger),
	)

	fmt.Fprintf(out, "Port: %s  low baud: %d bps\n", cfg.Port, cfg.LowBaud)
	fmt.Fprint(out, "Detecting target... ")

	var bar *progressbar.ProgressBar
	reported := false
	onProgress := func(p stcboot.Progress) {
		switch p.Phase {
		case stcboot.PhaseDetecting:
			return
		case stcboot.PhaseHandshaking:
			if !reported {
				reported = true
				fmt.Fprintln(out, "done")
				fmt.Fprintln(out, renderInfo(sess.Info()))
			}
			fmt.Fprintln(out, "Switching to operating baud rate...")
		case stcboot.PhaseErasing:
			fmt.Fprintf(out, "Link at %d bps. Erasing...\n", sess.BaudRate())
		case stcboot.PhaseFlashing:
			if bar == nil {
				if sn := sess.Info().SerialNumber; sn != "" {
					fmt.Fprintf(out, "Serial number: %s\n", sn)
				}
				fmt.Fprintf(out, "Code size: %d bytes\n", len(image))
				bar = newWriteBar(out)
			}
			setBar(bar, p.Fraction, logger)
		case stcboot.PhaseOptions:
			if bar != nil {
				if err := bar.Finish(); err != nil {
					logger.WithError(err).Debug("progress bar")
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, "Setting options...")
		}
	}

	res, err := stcboot.Program(ctx, sess, image, cfg.EEPROMPolicy(), onProgress)
	if !reported && res.Info.Profile.Name != "" {
		fmt.Fprintln(out, "done")
		fmt.Fprintln(out, renderInfo(res.Info))
	}
	if err != nil {
		if restoreErr := sess.Restore(); restoreErr != nil {
			logger.WithError(restoreErr).Warn("restoring port")
		}
		if errors.Is(err, stcboot.ErrUnknownProtocol) {
			return fmt.Errorf("unknown target: %w", err)
		}
		return err
	}
	if image == nil {
		return nil
	}

	if !res.OptionsApplied {
		fmt.Fprintln(out, "Options not supported for this target")
	}
	fmt.Fprintf(out, "Done in %.3fs\n", res.Elapsed.Seconds())
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List serial ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := serialport.List()
			if err != nil {
				return err
			}
			for _, p := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stcflash %s\n", version)
		},
	}
}

func newWriteBar(out io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(100,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Writing"),
	)
}

// setBar moves bar to fraction. Redraw errors are only logged.
func setBar(bar *progressbar.ProgressBar, fraction float64, logger logrus.FieldLogger) {
	if err := bar.Set(int(fraction * 100)); err != nil {
		logger.WithError(err).Debug("progress bar")
	}
}
