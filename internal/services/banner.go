package services

import "sync"

// Banner holds the single user-visible error message. Each Set replaces
// the previous message.
type Banner struct {
	mu      sync.RWMutex
	message string
}

func (b *Banner) Set(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.message = message
}

func (b *Banner) Clear() {
	b.Set("")
}

// Message returns the current message, or "" when there is none.
func (b *Banner) Message() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.message
}
