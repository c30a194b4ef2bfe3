// Package events provides the in-memory fanout bus that decouples the
// due-reminder engine and the persistence change feed from their consumers
// (SSE clients, cache refresh).
package events

import (
	"sync"
	"time"
)

type Type string

const (
	TypeChange      Type = "change"
	TypeReminderDue Type = "reminder.due"
	TypeSoundPlay   Type = "sound.play"
	TypeSoundVolume Type = "sound.volume"
	TypeSoundStop   Type = "sound.stop"
	TypeOpenLink    Type = "link.open"
)

// Event is a small, JSON-serializable signal.
//
// Publish never blocks; slow subscribers drop events.
type Event struct {
	Type Type      `json:"type"`
	Time time.Time `json:"time"`
	Data any       `json:"data,omitempty"`
}

type Bus struct {
	mu   sync.RWMutex
	seq  uint64
	subs map[uint64]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: map[uint64]chan Event{}}
}

func (b *Bus) Publish(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	b.mu.RLock()
	channels := make([]chan Event, 0, len(b.subs))
	for _, ch := range b.subs {
		channels = append(channels, ch)
	}
	b.mu.RUnlock()

	for _, ch := range channels {
		select {
		case ch <- e:
		default:
			// Subscriber is behind; drop rather than stall the publisher.
		}
	}
}

// Subscribe registers a buffered receiver. The returned function removes the
// subscription; the channel is never closed by the bus, so receivers select
// on their own context instead.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	b.seq++
	id := b.seq
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
	return ch, unsubscribe
}
