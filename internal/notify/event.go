package notify

import (
	"context"

	"waremind/internal/events"
)

// EventSink pushes due reminders onto the in-process bus. The SSE handler
// relays them to the browser, which renders the platform notification.
type EventSink struct {
	bus *events.Bus
}

func NewEventSink(bus *events.Bus) *EventSink {
	return &EventSink{bus: bus}
}

func (s *EventSink) Name() string { return "events" }

func (s *EventSink) Deliver(_ context.Context, n Notification) error {
	s.bus.Publish(events.Event{Type: events.TypeReminderDue, Data: n})
	return nil
}

// EventOpener asks the browser to open a deep link by publishing a bus event.
type EventOpener struct {
	bus *events.Bus
}

func NewEventOpener(bus *events.Bus) *EventOpener {
	return &EventOpener{bus: bus}
}

func (o *EventOpener) Open(_ context.Context, link string) error {
	o.bus.Publish(events.Event{Type: events.TypeOpenLink, Data: link})
	return nil
}

// EventPlayer drives browser audio through bus events: play starts the
// looping alert, volume carries fade steps, stop ends playback.
type EventPlayer struct {
	bus *events.Bus
}

func NewEventPlayer(bus *events.Bus) *EventPlayer {
	return &EventPlayer{bus: bus}
}

func (p *EventPlayer) Play() {
	p.bus.Publish(events.Event{Type: events.TypeSoundPlay})
}

func (p *EventPlayer) SetVolume(volume float64) {
	p.bus.Publish(events.Event{Type: events.TypeSoundVolume, Data: volume})
}

func (p *EventPlayer) Stop() {
	p.bus.Publish(events.Event{Type: events.TypeSoundStop})
}
