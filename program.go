// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"context"
	"fmt"
	"time"
)

// Phase names a step of Program for progress reporting.
type Phase string

const (
	PhaseDetecting   Phase = "detecting"
	PhaseHandshaking Phase = "handshaking"
	PhaseErasing     Phase = "erasing"
	PhaseFlashing    Phase = "flashing"
	PhaseOptions     Phase = "options"
	PhaseTerminating Phase = "terminating"
	PhaseComplete    Phase = "complete"
)

// Progress is passed to the callback given to Program.
type Progress struct {
	Phase Phase
	// Fraction of the image written, only set while flashing
	Fraction float64
	Elapsed  time.Duration
}

// ProgressCallback receives Program progress.
type ProgressCallback func(Progress)

// Result summarizes a Program run.
type Result struct {
	Info DeviceInfo
	Baud int
	// OptionsApplied is false when the protocol could not write the
	// requested option change.
	OptionsApplied bool
	// Elapsed is measured from the start of the erase.
	Elapsed time.Duration
}

// Program runs the whole ISP sequence on a fresh session. With a nil
// image it stops after Detect, which is enough to identify the part.
//
// ctx is checked between steps; a step that has started runs to
// completion.
func Program(ctx context.Context, s *Session, image []byte, policy EEPROMPolicy, progress ProgressCallback) (Result, error) {
	var res Result
	var start time.Time
	report := func(phase Phase, fraction float64) {
		if progress == nil {
			return
		}
		p := Progress{Phase: phase, Fraction: fraction}
		if !start.IsZero() {
			p.Elapsed = time.Since(start)
		}
		progress(p)
	}
	check := func() error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled in %v: %w", s.State(), err)
		}
		return nil
	}

	report(PhaseDetecting, 0)
	err := s.Detect()
	res.Info = s.Info()
	if err != nil || image == nil {
		return res, err
	}
	if !res.Info.Profile.Resolved {
		return res, &StepError{Step: "program", Err: fmt.Errorf("%w: refusing to program %s", ErrUnresolved, res.Info.Profile.Name)}
	}

	steps := []struct {
		phase Phase
		run   func() error
	}{
		{PhaseHandshaking, func() error { return s.Ping(PingBeforeHandshake) }},
		{PhaseHandshaking, s.Handshake},
		{PhaseErasing, func() error { return s.Ping(PingBeforeErase) }},
		{PhaseErasing, func() error {
			start = time.Now()
			return s.Erase()
		}},
		{PhaseFlashing, func() error {
			for fraction, err := range s.Flash(image) {
				if err != nil {
					return err
				}
				report(PhaseFlashing, fraction)
			}
			return nil
		}},
		{PhaseOptions, func() error { return s.Ping(PingBeforeOptions) }},
		{PhaseOptions, func() error {
			ok, err := s.Options(policy)
			res.OptionsApplied = ok
			return err
		}},
		{PhaseTerminating, s.Terminate},
	}

	last := Phase("")
	for _, st := range steps {
		if err := check(); err != nil {
			return res, err
		}
		if st.phase != last && st.phase != PhaseFlashing {
			report(st.phase, 0)
		}
		last = st.phase
		if err := st.run(); err != nil {
			res.Info = s.Info()
			res.Baud = s.BaudRate()
			return res, err
		}
	}

	res.Info = s.Info()
	res.Baud = s.BaudRate()
	res.Elapsed = time.Since(start)
	report(PhaseComplete, 1)
	return res, nil
}
