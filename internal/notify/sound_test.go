package notify

import (
	"sync"
	"testing"
	"time"
)

type recordingPlayer struct {
	mu      sync.Mutex
	plays   int
	stops   int
	volumes []float64
}

func (p *recordingPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays++
}

func (p *recordingPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumes = append(p.volumes, v)
}

func (p *recordingPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stops++
}

func (p *recordingPlayer) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plays, p.stops
}

func fastControl(player Player) *SoundControl {
	control := NewSoundControl(player)
	control.fadeSteps = 4
	control.fadeDuration = 40 * time.Millisecond
	return control
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestSoundControlStartIsIdempotent(t *testing.T) {
	t.Parallel()
	player := &recordingPlayer{}
	control := fastControl(player)

	control.Start()
	control.Start()

	if !control.IsPlaying() {
		t.Fatal("expected playing after Start")
	}
	if plays, _ := player.counts(); plays != 1 {
		t.Fatalf("Play called %d times, want 1", plays)
	}
}

func TestSoundControlFadeOutStops(t *testing.T) {
	t.Parallel()
	player := &recordingPlayer{}
	control := fastControl(player)

	control.Start()
	control.FadeOut()

	waitFor(t, time.Second, func() bool { _, stops := player.counts(); return stops == 1 })
	if control.IsPlaying() {
		t.Fatal("still playing after fade completed")
	}
}

func TestSoundControlStartCancelsFade(t *testing.T) {
	t.Parallel()
	player := &recordingPlayer{}
	control := fastControl(player)

	control.Start()
	control.FadeOut()
	control.Start() // new due reminder arrives mid-fade

	time.Sleep(100 * time.Millisecond) // past the fade deadline
	if !control.IsPlaying() {
		t.Fatal("fade should have been cancelled by Start")
	}
	if _, stops := player.counts(); stops != 0 {
		t.Fatalf("Stop called %d times, want 0", stops)
	}
}

func TestSoundControlStopNowSkipsFade(t *testing.T) {
	t.Parallel()
	player := &recordingPlayer{}
	control := fastControl(player)

	control.Start()
	control.StopNow()

	if control.IsPlaying() {
		t.Fatal("expected stopped")
	}
	if _, stops := player.counts(); stops != 1 {
		t.Fatalf("Stop called %d times, want 1", stops)
	}
	// StopNow on a stopped control is a no-op.
	control.StopNow()
	if _, stops := player.counts(); stops != 1 {
		t.Fatalf("Stop called %d times after second StopNow, want 1", stops)
	}
}
