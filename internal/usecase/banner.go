package usecase

import (
	"sync"
	"time"
)

// Banner holds a success message that clears itself after a fixed window.
type Banner struct {
	window time.Duration

	mu      sync.Mutex
	message string
	timer   *time.Timer
	gen     uint64
}

func NewBanner(window time.Duration) *Banner {
	return &Banner{window: window}
}

// Show replaces the current message and restarts the window.
func (b *Banner) Show(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.message = message
	b.timer = time.AfterFunc(b.window, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen == gen {
			b.message = ""
			b.timer = nil
		}
	})
}

func (b *Banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message
}

func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++
	b.message = ""
}
