// SPDX-License-Identifier: EPL-2.0

//go:build headless

package playback

import "github.com/ik5/scansynth/audio"

// Player is a stand-in with no device behind it.
type Player struct {
	reader *pcmReader
}

func Open(audio.Source) (*Player, error) { return nil, ErrNoBackend }

func (p *Player) Start()                {}
func (p *Player) Done() <-chan struct{} { return p.reader.Done() }
func (p *Player) Close() error          { return nil }
