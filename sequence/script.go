// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/ik5/scansynth/internal/logging"
	"github.com/ik5/scansynth/utils"
)

// Setter is the part of synth.Engine a script drives.
type Setter interface {
	Set(name string, v float64) error
}

// RunScript executes a Lua program and returns the notes it placed. Only
// the base, table, string and math libraries are loaded. Parameter calls
// go to target as they run, so they take effect before the first note
// plays. A nil target makes parameter calls no-ops.
func RunScript(ctx context.Context, src string, target Setter) (*Sequence, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(ctx)

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	seq := &Sequence{}
	api := &scriptAPI{seq: seq, target: target}
	for name, fn := range map[string]lua.LGFunction{
		"tempo":    api.tempo,
		"note":     api.note,
		"reader":   api.reader,
		"envelope": api.envelope,
		"lfo":      api.lfo,
		"set":      api.set,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}

	logging.L().Debug("script finished", "notes", len(seq.Notes), "bpm", seq.StartBPM())

	return seq, nil
}

type scriptAPI struct {
	seq    *Sequence
	target Setter
}

func (a *scriptAPI) tempo(L *lua.LState) int {
	bpm := float64(L.CheckNumber(1))
	beat := float64(L.OptNumber(2, 0))
	if bpm <= 0 {
		L.ArgError(1, "tempo must be positive")
	}
	a.seq.SetTempo(beat, bpm)
	if beat == 0 {
		a.apply(L, "bpm", bpm)
	}

	return 0
}

func (a *scriptAPI) note(L *lua.LState) int {
	beat := float64(L.CheckNumber(1))
	key := L.CheckInt(2)
	velocity := float32(L.OptNumber(3, 1))
	length := float64(L.OptNumber(4, 1))

	if key < 0 || key > 127 {
		L.ArgError(2, "key must be in 0..127")
	}
	if beat < 0 {
		L.ArgError(1, "beat must not be negative")
	}
	a.seq.Add(beat, length, key, utils.Clamp(velocity, 0, 1))

	return 0
}

func (a *scriptAPI) reader(L *lua.LState) int {
	i := L.CheckInt(1)
	name := L.CheckString(2)
	a.apply(L, fmt.Sprintf("reader%d.%s", i, name), float64(L.CheckNumber(3)))

	return 0
}

func (a *scriptAPI) envelope(L *lua.LState) int {
	i := L.CheckInt(1)
	for n, stage := range []string{"attack", "decay", "sustain", "release"} {
		a.apply(L, fmt.Sprintf("env%d.%s", i, stage), float64(L.CheckNumber(n+2)))
	}

	return 0
}

func (a *scriptAPI) lfo(L *lua.LState) int {
	i := L.CheckInt(1)
	a.apply(L, fmt.Sprintf("lfo%d.freq", i), float64(L.CheckNumber(2)))

	return 0
}

func (a *scriptAPI) set(L *lua.LState) int {
	a.apply(L, L.CheckString(1), float64(L.CheckNumber(2)))

	return 0
}

func (a *scriptAPI) apply(L *lua.LState, name string, v float64) {
	if a.target == nil {
		return
	}
	if err := a.target.Set(name, v); err != nil {
		L.RaiseError("%s", err.Error())
	}
}
