// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ik5/scansynth/modulation"
)

// Set assigns an engine parameter by name. Names are
//
//	level                       master level in dB
//	bpm                         tempo for synced LFOs
//	reader<N>.<name>            any name reader.Params.Set accepts
//	env<N>.attack|decay|sustain|release
//	lfo<N>.freq|sync|rate|phase|wave
//
// Slots are numbered from 1. Enum values (rate, wave, sync) take the
// integer index.
func (e *Engine) Set(name string, v float64) error {
	switch name {
	case "level":
		e.SetLevel(float32(v))
		return nil
	case "bpm":
		e.SetBPM(v)
		return nil
	}

	group, param, ok := strings.Cut(name, ".")
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}

	switch {
	case strings.HasPrefix(group, "reader"):
		i, err := slot(group, "reader", len(e.readers))
		if err != nil {
			return err
		}
		if err := e.readers[i].Set(param, v); err != nil {
			return fmt.Errorf("%s: %w", group, err)
		}
		return nil
	case strings.HasPrefix(group, "env"):
		i, err := slot(group, "env", modulation.NumEnvelopes)
		if err != nil {
			return err
		}
		return e.setEnvelope(&e.envCtl[i], param, float32(v))
	case strings.HasPrefix(group, "lfo"):
		i, err := slot(group, "lfo", modulation.NumLFOs)
		if err != nil {
			return err
		}
		return e.setLFO(&e.lfoCtl[i], param, v)
	}

	return fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

func slot(group, prefix string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimPrefix(group, prefix))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, group)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("%w: %s is not in 1..%d", ErrSlotRange, group, n)
	}

	return i - 1, nil
}

func (e *Engine) setEnvelope(c *EnvelopeControl, param string, v float32) error {
	p := c.Params()
	switch param {
	case "attack":
		p.Attack = v
	case "decay":
		p.Decay = v
	case "sustain":
		p.Sustain = v
	case "release":
		p.Release = v
	default:
		return fmt.Errorf("%w: envelope %q", ErrUnknownParam, param)
	}
	c.Set(p)

	return nil
}

func (e *Engine) setLFO(c *LFOControl, param string, v float64) error {
	switch param {
	case "freq":
		c.SetFrequency(float32(v))
	case "sync":
		c.SetSync(v >= 0.5)
	case "rate":
		c.SetRate(modulation.Rate(min(max(int(v), 0), int(modulation.NumRates)-1)))
	case "phase":
		c.SetPhaseOffset(float32(v))
	case "wave":
		c.SetWaveform(modulation.Waveform(min(max(int(v), 0), int(modulation.Square))))
	default:
		return fmt.Errorf("%w: lfo %q", ErrUnknownParam, param)
	}

	return nil
}

// ParamNames lists every name Set accepts.
func (e *Engine) ParamNames() []string {
	names := []string{"level", "bpm"}
	for i, p := range e.readers {
		for _, n := range p.Names() {
			names = append(names, fmt.Sprintf("reader%d.%s", i+1, n))
		}
	}
	for i := range modulation.NumEnvelopes {
		for _, n := range []string{"attack", "decay", "sustain", "release"} {
			names = append(names, fmt.Sprintf("env%d.%s", i+1, n))
		}
	}
	for i := range modulation.NumLFOs {
		for _, n := range []string{"freq", "sync", "rate", "phase", "wave"} {
			names = append(names, fmt.Sprintf("lfo%d.%s", i+1, n))
		}
	}

	return names
}
