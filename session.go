// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// detectStart is the device preamble tail Detect hunts for. The first
// two preamble bytes are often lost while the target powers up.
var detectStart = []byte{0x68}

var eraseMagicPayload = []byte{0x01, 0x33, 0x33, 0x33, 0x33, 0x33, 0x33}

var eraseTwoPhasePayload = []byte{0x00, 0x00, 0x5A, 0xA5}

// serialNumberLength is the factory serial size in the 8/15 erase reply.
const serialNumberLength = 7

// Session drives one target through the ISP sequence. It owns the
// Transport for its lifetime and is not safe for concurrent use.
type Session struct {
	port   Transport
	config Config
	log    logrus.FieldLogger

	state    State
	protocol Protocol
	variant  *Variant
	chkmode  int

	lowBaud int
	baud    int

	info      DeviceInfo
	flashUsed bool
}

// NewSession sets up a session on port. The port must already be
// open at the bootloader's low baud rate; that rate is captured when
// Detect starts and restored by Restore.
//
// We assume that port.Read has some timeout set.
func NewSession(port Transport, opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{
		port:     port,
		config:   cfg,
		log:      cfg.Logger,
		protocol: cfg.Protocol,
	}
}

// State returns the current step of the session.
func (s *Session) State() State { return s.state }

// Protocol returns the protocol in use. It is ProtocolAuto until
// Detect has inferred one.
func (s *Session) Protocol() Protocol { return s.protocol }

// BaudRate returns the current link rate.
func (s *Session) BaudRate() int { return s.baud }

// Info returns what Detect and Erase learned about the device.
func (s *Session) Info() DeviceInfo { return s.info }

func (s *Session) expect(step string, states ...State) error {
	for _, st := range states {
		if s.state == st {
			return nil
		}
	}
	return &StepError{Step: step, Err: fmt.Errorf("%w: %v", ErrBadState, s.state)}
}

// fail wraps err with the step name and moves the session to
// StateFailed when err leaves the link unusable.
func (s *Session) fail(step string, err error) error {
	if IsFatal(err) {
		s.state = StateFailed
	}
	s.log.WithField("step", step).WithError(err).Warn("step failed")
	return &StepError{Step: step, Err: err}
}

func (s *Session) write(buf []byte) error {
	s.log.Debugf("send: % X", buf)
	n, err := s.port.Write(buf)
	if err != nil {
		return ioError(err)
	}
	if n != len(buf) {
		return fmt.Errorf("%w: short write %d of %d", ErrIO, n, len(buf))
	}
	return nil
}

func (s *Session) send(cmd CommandType, payload []byte) error {
	return s.write(encodePacket(cmd, payload, s.chkmode))
}

func (s *Session) recvTimeout(timeout time.Duration) (CommandType, []byte, error) {
	cmd, payload, err := decodePacket(s.port, DEVICE_START, s.chkmode, timeout, 0)
	if err != nil {
		s.log.Debugf("recv: %v", err)
		return 0, nil, err
	}
	s.log.Debugf("recv: %v", Frame{cmd, payload})
	return cmd, payload, nil
}

func (s *Session) recv() (CommandType, []byte, error) {
	return s.recvTimeout(s.config.RecvTimeout)
}

// setBaud changes the link rate. When settle is set, legacy protocols
// first drain the output and give the target time to switch.
func (s *Session) setBaud(baud int, settle bool) error {
	s.log.Debugf("baud: %d", baud)
	if settle && s.variant.FlushOnSwitch {
		if err := s.port.Flush(); err != nil {
			return ioError(err)
		}
		s.config.sleep(s.config.SwitchSettle)
	}
	if err := s.port.SetBaudRate(baud); err != nil {
		return ioError(err)
	}
	s.baud = baud
	return nil
}

// Detect pulses the trigger byte until the bootloader answers, then
// decodes the reply: signature, clock, firmware version and option
// bytes. The protocol is inferred from the signature unless one was
// given. An unknown signature is not an error; an unknown protocol is.
func (s *Session) Detect() error {
	const step = "detect"
	if err := s.expect(step, StateIdle); err != nil {
		return err
	}

	s.lowBaud = s.port.BaudRate()
	s.baud = s.lowBaud

	trigger := []byte{DETECT_PULSE}
	if v := VariantFor(s.protocol); v != nil {
		trigger = v.Trigger
		if err := s.port.SetParity(v.DetectParity); err != nil {
			return s.fail(step, ioError(err))
		}
	}

	var payload []byte
	for attempt := 0; ; attempt++ {
		if attempt >= s.config.DetectAttempts {
			s.state = StateFailed
			return s.fail(step, fmt.Errorf("%w: no answer after %d pulses", ErrTimeout, attempt))
		}
		if err := s.write(trigger); err != nil {
			return s.fail(step, err)
		}
		_, p, err := decodePacket(s.port, detectStart, 0, s.config.DetectWindow, s.config.DetectSettle)
		if err == nil {
			payload = p
			break
		}
		if !retryable(err) {
			return s.fail(step, err)
		}
	}
	s.log.Debugf("recv: % X", payload)

	if len(payload) < detectMinLength {
		s.state = StateFailed
		return s.fail(step, fmt.Errorf("%w: detect reply of %d bytes", ErrCorruptFrame, len(payload)))
	}

	info := append([]byte(nil), payload[16:]...)
	sig := Signature{info[3], info[4]}
	profile, err := Resolve(sig)
	if err != nil {
		s.log.WithField("signature", sig).Warn("unknown model")
	}

	protocol := s.protocol
	inferred, forced := ProtocolFor(sig)
	switch {
	case forced:
		if protocol != ProtocolAuto && protocol != inferred {
			s.log.Warnf("signature %v requires protocol %v, ignoring %v", sig, inferred, protocol)
		}
		protocol = inferred
	case protocol == ProtocolAuto:
		protocol = inferred
	}

	s.info = DeviceInfo{
		Signature: sig,
		Profile:   profile,
		Protocol:  protocol,
		Version:   fmt.Sprintf("%d.%d%c", info[0]>>4, info[0]&0x0F, info[1]),
	}
	s.log.WithFields(logrus.Fields{
		"signature": sig,
		"model":     profile.Name,
		"rom":       profile.ROMSize,
	}).Info("target detected")

	v := VariantFor(protocol)
	if v == nil {
		s.info.Info = info
		s.state = StateFailed
		return s.fail(step, fmt.Errorf("%w: signature %v", ErrUnknownProtocol, sig))
	}
	if len(payload) < v.detectLength() {
		s.state = StateFailed
		return s.fail(step, fmt.Errorf("%w: detect reply of %d bytes for protocol %v",
			ErrCorruptFrame, len(payload), protocol))
	}

	s.protocol = protocol
	s.variant = v
	s.info.decodeDetect(v, payload, info, s.lowBaud)

	s.chkmode = v.ChecksumMode
	if err := s.port.SetParity(v.Parity); err != nil {
		return s.fail(step, ioError(err))
	}
	s.info.Info = info[:len(info)-s.chkmode]

	s.log.WithFields(logrus.Fields{
		"protocol": protocol,
		"checksum": s.chkmode,
		"parity":   v.Parity,
		"fosc":     fmt.Sprintf("%.3f", s.info.Fosc),
	}).Info("protocol selected")
	for i := 0; i < len(s.info.Info); i += 16 {
		end := min(i+16, len(s.info.Info))
		s.log.Debugf("info [%d]: % X", i/16, s.info.Info[i:end])
	}

	s.state = StateDetected
	return nil
}

// Ping sends the compliance pings the protocol expects at stage. It is
// a no-op for protocols without pings at that point.
func (s *Session) Ping(stage PingStage) error {
	const step = "ping"
	var err error
	switch stage {
	case PingBeforeHandshake:
		err = s.expect(step, StateDetected)
	case PingBeforeErase:
		err = s.expect(step, StateHandshakeDone)
	case PingBeforeOptions:
		err = s.expect(step, StateFlashed)
	default:
		err = &StepError{Step: step, Err: fmt.Errorf("%w: stage %d", ErrBadArguments, stage)}
	}
	if err != nil {
		return err
	}

	sig := s.info.Signature
	payload := []byte{0x00, 0x00, 0x36, 0x01, sig[0], sig[1]}
	for _, p := range s.variant.Pings {
		if p.Stage != stage {
			continue
		}
		for i := 0; i < p.Repeat; i++ {
			s.log.Infof("ping %v", p.Command)
			if err := s.send(p.Command, payload); err != nil {
				return s.fail(step, err)
			}
			cmd, reply, err := s.recv()
			if err != nil {
				return s.fail(step, err)
			}
			if cmd != p.Reply || len(reply) != 0 {
				return s.fail(step, fmt.Errorf("%w: %v to %v", ErrUnexpectedReply, Frame{cmd, reply}, p.Command))
			}
		}
	}
	return nil
}

// Erase clears the application flash. The 8/15 series report their
// factory serial number in the reply; some legacy parts do as well.
func (s *Session) Erase() error {
	const step = "erase"
	if err := s.expect(step, StateHandshakeDone); err != nil {
		return err
	}
	if !s.info.Profile.Resolved {
		return &StepError{Step: step, Err: fmt.Errorf("%w: refusing to erase %s", ErrUnresolved, s.info.Profile.Name)}
	}

	s.log.Info("erasing")
	switch s.variant.Erase {
	case eraseMagic:
		if err := s.send(COMMAND_ERASE, eraseMagicPayload); err != nil {
			return s.fail(step, err)
		}
		cmd, _, err := s.recvTimeout(s.config.EraseTimeout)
		if err != nil {
			return s.fail(step, err)
		}
		if cmd != REPLY_ERASE {
			return s.fail(step, fmt.Errorf("%w: %v to erase", ErrUnexpectedReply, cmd))
		}

	case eraseTwoPhase:
		var reply []byte
		for _, cmd := range []CommandType{COMMAND_ERASE_PREPARE, COMMAND_ERASE_FLASH} {
			if err := s.send(cmd, eraseTwoPhasePayload); err != nil {
				return s.fail(step, err)
			}
			_, r, err := s.recvTimeout(s.config.EraseTimeout)
			if err != nil {
				return s.fail(step, err)
			}
			reply = r
		}
		s.info.SerialNumber = strings.ToUpper(hex.EncodeToString(reply[:min(serialNumberLength, len(reply))]))

	default:
		rom := byte(s.info.Profile.ROMSize * 4)
		payload := make([]byte, 0, 18+0x80-0x0D)
		payload = append(payload, 0x00, 0x00, rom, 0x00, 0x00, rom)
		payload = append(payload, make([]byte, 12)...)
		for b := 0x80; b > 0x0D; b-- {
			payload = append(payload, byte(b))
		}
		if err := s.send(COMMAND_ERASE, payload); err != nil {
			return s.fail(step, err)
		}
		_, reply, err := s.recvTimeout(s.config.EraseTimeout)
		if err != nil {
			return s.fail(step, err)
		}
		if len(reply) > 0 {
			s.info.SerialNumber = strings.ToUpper(hex.EncodeToString(reply))
		}
	}

	if s.info.SerialNumber != "" {
		s.log.WithField("serial", s.info.SerialNumber).Info("erase done")
	} else {
		s.log.Info("erase done")
	}
	s.state = StateErased
	return nil
}

// Options writes the option bytes captured by Detect back to the
// device, first applying the EEPROM policy. It reports false without
// error when the protocol has no known options layout and a change was
// requested.
func (s *Session) Options(policy EEPROMPolicy) (bool, error) {
	const step = "options"
	if err := s.expect(step, StateFlashed); err != nil {
		return false, err
	}

	v := s.variant
	if v.Options == optionsNone {
		s.state = StateOptionsSet
		if policy != EEPROMUnchanged {
			s.log.Warnf("protocol %v: modifying options is not supported", s.protocol)
			return false, nil
		}
		return true, nil
	}

	info := append([]byte(nil), s.info.Info...)
	if len(info) < v.optionsLength() {
		s.state = StateOptionsSet
		s.log.Warnf("option bytes too short (%d)", len(info))
		return false, nil
	}

	switch policy {
	case EEPROMErase:
		info[v.EEPROMIndex] &^= v.EEPROMBit
	case EEPROMKeep:
		info[v.EEPROMIndex] |= v.EEPROMBit
	}

	fosc := binary.BigEndian.AppendUint32(nil, uint32(s.info.Fosc*1e6))
	var payload []byte
	switch v.Options {
	case options89:
		payload = append(payload, info[2:3]...)
		payload = append(payload, fill(0xFF, 3)...)
	case options12C5A:
		payload = append(payload, info[6:9]...)
		payload = append(payload, fill(0xFF, 5)...)
		payload = append(payload, info[10:11]...)
		payload = append(payload, fill(0xFF, 6)...)
		payload = append(payload, fosc...)
	case options12B:
		payload = append(payload, info[6:11]...)
		payload = append(payload, fosc...)
		payload = append(payload, info[12:16]...)
		payload = append(payload, fill(0xFF, 4)...)
		payload = append(payload, info[8:9]...)
		payload = append(payload, fill(0xFF, 7)...)
		payload = append(payload, fosc...)
		payload = append(payload, fill(0xFF, 3)...)
	}

	s.log.WithField("eeprom", policy).Info("writing options")
	if err := s.send(COMMAND_OPTIONS, payload); err != nil {
		return false, s.fail(step, err)
	}
	if _, _, err := s.recv(); err != nil {
		return false, s.fail(step, err)
	}
	s.info.Info = info
	s.state = StateOptionsSet
	return true, nil
}

// Terminate tells the bootloader to start the application. It may be
// called from any step after Detect.
func (s *Session) Terminate() error {
	const step = "terminate"
	if err := s.expect(step, StateDetected, StateHandshakeDone, StateErased,
		StateFlashed, StateOptionsSet); err != nil {
		return err
	}

	s.log.Info("terminating")
	if err := s.send(s.variant.Terminate, nil); err != nil {
		return s.fail(step, err)
	}
	if err := s.port.Flush(); err != nil {
		return s.fail(step, ioError(err))
	}
	s.config.sleep(s.config.SwitchSettle)
	s.state = StateTerminated
	return nil
}

// Restore puts the port back to the low baud rate and no parity. Call
// it when abandoning a session so the port can be reused.
func (s *Session) Restore() error {
	var errs []error
	if s.lowBaud != 0 {
		if err := s.port.SetBaudRate(s.lowBaud); err != nil {
			errs = append(errs, ioError(err))
		} else {
			s.baud = s.lowBaud
		}
	}
	if err := s.port.SetParity(ParityNone); err != nil {
		errs = append(errs, ioError(err))
	}
	return errors.Join(errs...)
}

func fill(b byte, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return buf
}
