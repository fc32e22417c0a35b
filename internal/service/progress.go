package service

import (
	"sync"
	"time"
)

// ProgressEntry is the current upload progress for one file.
type ProgressEntry struct {
	Filename string `json:"filename"`
	Percent  int    `json:"percent"`
}

// MemoryProgress is an in-memory ProgressSink. Finished entries linger for
// the clear delay so pollers see the terminal percentage before it vanishes.
type MemoryProgress struct {
	mu         sync.Mutex
	entries    map[string]ProgressEntry
	clearDelay time.Duration
}

// NewMemoryProgress constructs the sink.
func NewMemoryProgress(clearDelay time.Duration) *MemoryProgress {
	return &MemoryProgress{
		entries:    make(map[string]ProgressEntry),
		clearDelay: clearDelay,
	}
}

// Update records the percentage for a token.
func (p *MemoryProgress) Update(token, filename string, percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[token] = ProgressEntry{Filename: filename, Percent: percent}
}

// Clear drops the token's entry after the configured delay.
func (p *MemoryProgress) Clear(token string) {
	if p.clearDelay <= 0 {
		p.remove(token)
		return
	}
	time.AfterFunc(p.clearDelay, func() {
		p.remove(token)
	})
}

func (p *MemoryProgress) remove(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, token)
}

// Snapshot returns a copy of the live entries keyed by token.
func (p *MemoryProgress) Snapshot() map[string]ProgressEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]ProgressEntry, len(p.entries))
	for token, entry := range p.entries {
		out[token] = entry
	}
	return out
}
