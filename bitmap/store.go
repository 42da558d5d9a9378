// SPDX-License-Identifier: EPL-2.0

package bitmap

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/ik5/scansynth/internal/logging"
)

// Store publishes the current Snapshot to the audio thread. Writers swap a
// whole new snapshot in; the audio thread picks it up with one atomic load
// and never blocks. The zero value is ready to use.
type Store struct {
	current atomic.Pointer[Snapshot]
	version atomic.Uint64

	mu     sync.Mutex // serialises writers and guards subs
	subs   map[int]func(*Snapshot, uint64)
	nextID int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(*Snapshot, uint64))}
}

// Load returns the current snapshot, or nil when none was set. Safe to call
// from the audio thread.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Version increases by one on every Swap.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// Swap publishes snap (nil clears the image) and notifies subscribers. It
// returns the new version.
func (s *Store) Swap(snap *Snapshot) uint64 {
	s.mu.Lock()
	s.current.Store(snap)
	v := s.version.Add(1)
	subs := make([]func(*Snapshot, uint64), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	w, h := snap.Bounds()
	logging.L().Debug("image swapped", "version", v, "width", w, "height", h)

	for _, fn := range subs {
		fn(snap, v)
	}

	return v
}

// SetImage prepares img (square padding, downscale to maxSize when
// maxSize > 0) and publishes it.
func (s *Store) SetImage(img image.Image, maxSize int) uint64 {
	return s.Swap(Prepare(img, maxSize))
}

// Subscribe registers fn to be called after every Swap with the new
// snapshot and version. Callbacks run on the swapping goroutine. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(*Snapshot, uint64)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]func(*Snapshot, uint64))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
