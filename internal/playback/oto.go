// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/internal/logging"
)

// oto allows one context per process.
var (
	ctxOnce sync.Once
	ctx     *oto.Context
	ctxRate int
	ctxCh   int
	ctxErr  error
)

func device(sampleRate, channels int) (*oto.Context, error) {
	ctxOnce.Do(func() {
		var ready chan struct{}
		ctx, ready, ctxErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   20 * time.Millisecond,
		})
		if ctxErr == nil {
			<-ready
			ctxRate, ctxCh = sampleRate, channels
		}
	})
	if ctxErr != nil {
		return nil, fmt.Errorf("opening audio device: %w", ctxErr)
	}
	if sampleRate != ctxRate || channels != ctxCh {
		return nil, fmt.Errorf("audio device already open at %d Hz %d ch", ctxRate, ctxCh)
	}

	return ctx, nil
}

// Player plays one Source.
type Player struct {
	mu     sync.Mutex
	player *oto.Player
	reader *pcmReader
}

// Open prepares src for playback. Call Start to begin.
func Open(src audio.Source) (*Player, error) {
	c, err := device(src.SampleRate(), src.Channels())
	if err != nil {
		return nil, err
	}

	r := newPCMReader(src)
	logging.L().Info("playback opened", "sample_rate", src.SampleRate(), "channels", src.Channels())

	return &Player{player: c.NewPlayer(r), reader: r}, nil
}

func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil {
		p.player.Play()
	}
}

// Done is closed when the source runs out.
func (p *Player) Done() <-chan struct{} { return p.reader.Done() }

// Close stops playback. It is safe to call more than once.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil

	return err
}
