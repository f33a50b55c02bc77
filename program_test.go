// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestProgram(t *testing.T) {
	tests := []struct {
		name     string
		mode     int
		detect   []byte
		protocol Protocol
		policy   EEPROMPolicy
		options  bool
		baud     int
		last     CommandType
	}{
		{"89", 1, detect89(), Protocol89, EEPROMErase, true, 115200, COMMAND_TERMINATE},
		{"12C5A", 2, detect12C5A(), ProtocolAuto, EEPROMUnchanged, true, 115200, COMMAND_TERMINATE},
		{"8", 2, detectSTC8(), ProtocolAuto, EEPROMKeep, false, 115200, COMMAND_TERMINATE_STC8},
		{"15", 2, detectSTC15(), ProtocolAuto, EEPROMUnchanged, true, 115200, COMMAND_TERMINATE_STC8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newSimDevice(t, tt.mode, tt.detect)
			s := testSession(d, WithProtocol(tt.protocol))

			var phases []Phase
			image := testImage(300)
			res, err := Program(context.Background(), s, image, tt.policy, func(p Progress) {
				phases = append(phases, p.Phase)
			})
			if err != nil {
				t.Fatalf("Program: %v", err)
			}
			if s.State() != StateTerminated {
				t.Fatalf("state %v", s.State())
			}
			if res.OptionsApplied != tt.options {
				t.Fatalf("options applied %v, want %v", res.OptionsApplied, tt.options)
			}
			if res.Baud != tt.baud || !res.Info.Profile.Resolved {
				t.Fatalf("result %+v", res)
			}
			if cmds := d.commands(); cmds[len(cmds)-1] != tt.last {
				t.Fatalf("last command %v, want %v", cmds[len(cmds)-1], tt.last)
			}

			want := []Phase{PhaseDetecting, PhaseHandshaking, PhaseErasing,
				PhaseFlashing, PhaseFlashing, PhaseFlashing, PhaseFlashing,
				PhaseOptions, PhaseTerminating, PhaseComplete}
			if len(phases) != len(want) {
				t.Fatalf("phases %v, want %v", phases, want)
			}
			for i := range want {
				if phases[i] != want[i] {
					t.Fatalf("phases %v, want %v", phases, want)
				}
			}

			var written []byte
			for addr := 0; addr < 512; addr += PageSize {
				written = append(written, d.image[addr]...)
			}
			if !bytes.Equal(written, padImage(image)) {
				t.Fatalf("device image differs")
			}
		})
	}
}

func TestProgramDetectOnly(t *testing.T) {
	d := newSimDevice(t, 2, detect12C5A())
	s := testSession(d)
	res, err := Program(context.Background(), s, nil, EEPROMUnchanged, nil)
	if err != nil {
		t.Fatalf("Program: %v", err)
	}
	if s.State() != StateDetected || len(d.frames) != 0 {
		t.Fatalf("state %v commands %v", s.State(), d.commands())
	}
	if res.Info.Profile.Name != "STC12C5A32S2" {
		t.Fatalf("model %q", res.Info.Profile.Name)
	}
}

func TestProgramCancelled(t *testing.T) {
	d := newSimDevice(t, 2, detect12C5A())
	s := testSession(d)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Program(ctx, s, testImage(300), EEPROMUnchanged, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Program() = %v, want context.Canceled", err)
	}
	if s.State() != StateDetected || len(d.frames) != 0 {
		t.Fatalf("state %v commands %v", s.State(), d.commands())
	}
	if res.Info.Signature != (Signature{0xD1, 0x70}) {
		t.Fatalf("signature %v", res.Info.Signature)
	}
}

func TestProgramStepFailure(t *testing.T) {
	d := newSimDevice(t, 2, detect12C5A())
	d.accept = func(int) bool { return false }
	s := testSession(d)

	res, err := Program(context.Background(), s, testImage(300), EEPROMUnchanged, nil)
	if !errors.Is(err, ErrNoBaudAgreement) {
		t.Fatalf("Program() = %v, want ErrNoBaudAgreement", err)
	}
	if res.Baud != 2400 || res.Info.Profile.Name != "STC12C5A32S2" {
		t.Fatalf("result %+v", res)
	}
	if countCommand(d, COMMAND_ERASE) != 0 {
		t.Fatalf("erase sent after a failed handshake")
	}
}

func TestProgramUnresolved(t *testing.T) {
	d := newSimDevice(t, 2, detectData(32, Signature{0xD1, 0x10}))
	s := testSession(d)

	res, err := Program(context.Background(), s, testImage(300), EEPROMUnchanged, nil)
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("Program() = %v, want ErrUnresolved", err)
	}
	if s.State() != StateDetected || len(d.frames) != 0 {
		t.Fatalf("state %v commands %v", s.State(), d.commands())
	}
	if res.Info.Profile.Name != "Unknown D1 10" {
		t.Fatalf("model %q", res.Info.Profile.Name)
	}
}
