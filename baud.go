// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// legacyBauds are tried fastest first.
var legacyBauds = []int{115200, 57600, 38400, 28800, 19200, 14400, 9600, 4800, 2400, 1200}

// maxBaudError is the largest timer rounding error accepted.
const maxBaudError = 0.03

// baudCandidate is one legacy rate the target's timer can produce.
type baudCandidate struct {
	Baud   int
	Error  float64
	Config []byte
}

// legacyCandidates lists the rates a legacy part clocked at fosc MHz
// can be switched to, in the order they are tried.
func legacyCandidates(v *Variant, fosc float64, lowBaud int) []baudCandidate {
	var out []baudCandidate
	for _, baud := range legacyBauds {
		t := fosc * 1e6 / float64(baud) / 32
		if v.TimerDoubled {
			t *= 2
		}
		if t <= 0 {
			continue
		}
		e := math.Abs(math.Round(t)-t) / t
		if e > maxBaudError {
			continue
		}

		var tcfg int
		if v.TimerDoubled {
			if t > 0xFF {
				continue
			}
			tcfg = 0xC000 + 0x100 - int(t+0.5)
		} else {
			tcfg = 0x10000 - int(t+0.5)
		}

		out = append(out, baudCandidate{
			Baud:  baud,
			Error: e,
			Config: []byte{
				byte(tcfg >> 8),
				byte(tcfg),
				0xFF - byte(tcfg>>8),
				byte(min((256-(tcfg&0xFF))*2, 0xFE)),
				byte(lowBaud / 60),
			},
		})
	}
	return out
}

// waitClass picks the programming wait time from the clock: the index
// of the first threshold fosc exceeds, else the last index.
func waitClass(thresholds []float64, fosc float64) int {
	for i, f := range thresholds {
		if fosc > f {
			return i
		}
	}
	return len(thresholds) - 1
}

// timerReload is the 16 bit timer value for the fixed-rate handshake.
func timerReload(clock float64, baud int) uint16 {
	base := 65536.5
	if baud == 300000 || baud == 350000 {
		base = 65536.2
	}
	return uint16(int(base - clock*1e6/4/float64(baud)))
}

// Handshake raises the link to the fastest rate the target agrees to.
// Legacy parts search a candidate list; 8/15 series parts are told the
// configured high rate directly.
func (s *Session) Handshake() error {
	const step = "handshake"
	if err := s.expect(step, StateDetected); err != nil {
		return err
	}

	var err error
	if s.variant.SearchBaud {
		err = s.searchBaud()
	} else {
		err = s.fixedBaud()
	}
	if err != nil {
		return s.fail(step, err)
	}

	s.log.WithField("baud", s.baud).Info("baud rate changed")
	s.state = StateHandshakeDone
	return nil
}

func (s *Session) searchBaud() error {
	v := s.variant
	wait := byte(0x80 + waitClass(v.WaitThresholds, s.info.Fosc))
	s.log.Debugf("wait time config %02X", wait)

	var found *baudCandidate
	for _, c := range legacyCandidates(v, s.info.Fosc, s.lowBaud) {
		s.log.WithFields(logrus.Fields{
			"baud":     c.Baud,
			"accuracy": fmt.Sprintf("%.4f", c.Error),
			"config":   fmt.Sprintf("% X", c.Config),
		}).Info("testing baud rate")

		if err := s.send(v.BaudProbe, append(append([]byte(nil), c.Config...), wait)); err != nil {
			return err
		}
		if err := s.setBaud(c.Baud, true); err != nil {
			return err
		}
		_, _, err := s.recv()
		if restoreErr := s.setBaud(s.lowBaud, false); restoreErr != nil {
			return restoreErr
		}
		if err == nil {
			found = &c
			break
		}
		if !retryable(err) {
			return err
		}

		s.log.Infof("cannot use baud rate %d", c.Baud)
		s.config.sleep(s.config.SwitchSettle)
		if err := s.port.ResetInputBuffer(); err != nil {
			return ioError(err)
		}
	}
	if found == nil {
		return fmt.Errorf("%w: tried every rate at %.3f MHz", ErrNoBaudAgreement, s.info.Fosc)
	}

	if err := s.send(v.BaudSet, found.Config); err != nil {
		return err
	}
	if err := s.setBaud(found.Baud, true); err != nil {
		return err
	}
	if _, _, err := s.recv(); err != nil {
		if !retryable(err) {
			return err
		}
		return fmt.Errorf("%w: %d not confirmed: %v", ErrNoBaudAgreement, found.Baud, err)
	}
	return nil
}

func (s *Session) fixedBaud() error {
	v := s.variant
	baud := s.config.HighBaud
	if baud <= 0 || baud > MaxHighBaud {
		return fmt.Errorf("%w: high baud %d outside (0, %d]", ErrBadArguments, baud, MaxHighBaud)
	}

	trim, ok := v.trim(s.info.Fosc)
	if !ok {
		return fmt.Errorf("%w: no calibration for %.3f MHz", ErrNoBaudAgreement, s.info.Fosc)
	}

	timer := timerReload(v.CalibClock, baud)
	payload := make([]byte, 0, 7)
	payload = append(payload, v.BaudPrefix...)
	payload = append(payload, byte(timer>>8), byte(timer))
	payload = append(payload, trim...)
	payload = append(payload, 0x81)

	if err := s.send(v.BaudSet, payload); err != nil {
		return err
	}
	if _, _, err := s.recv(); err != nil {
		if !retryable(err) {
			return err
		}
		if !s.config.CompatHandshake {
			return fmt.Errorf("%w: %d not acknowledged: %v", ErrNoBaudAgreement, baud, err)
		}
		s.log.Warnf("baud rate %d not acknowledged, switching anyway", baud)
		s.config.sleep(s.config.SwitchSettle)
		if err := s.port.ResetInputBuffer(); err != nil {
			return ioError(err)
		}
	}
	return s.setBaud(baud, true)
}
