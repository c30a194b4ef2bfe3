package notify

import (
	"sync"
	"time"
)

// Player is the audio capability SoundControl drives.
type Player interface {
	Play()
	SetVolume(volume float64)
	Stop()
}

// SoundControl tracks whether the looping alert sound is playing and owns
// the fade-out timer. Start while fading cancels the fade and restores full
// volume; StopNow kills playback with no fade (used on engine shutdown).
type SoundControl struct {
	mu      sync.Mutex
	player  Player
	playing bool
	fadeSeq int // bumped to invalidate in-flight fade steps

	fadeSteps    int
	fadeDuration time.Duration
}

func NewSoundControl(player Player) *SoundControl {
	return &SoundControl{
		player:       player,
		fadeSteps:    10,
		fadeDuration: 2 * time.Second,
	}
}

func (s *SoundControl) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *SoundControl) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fadeSeq++
	if s.playing {
		s.player.SetVolume(1)
		return
	}
	s.playing = true
	s.player.SetVolume(1)
	s.player.Play()
}

// FadeOut lowers the volume in steps and then stops playback.
func (s *SoundControl) FadeOut() {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return
	}
	s.fadeSeq++
	seq := s.fadeSeq
	s.mu.Unlock()

	interval := s.fadeDuration / time.Duration(s.fadeSteps)
	for step := 1; step <= s.fadeSteps; step++ {
		step := step
		time.AfterFunc(interval*time.Duration(step), func() {
			s.fadeStep(seq, step)
		})
	}
}

func (s *SoundControl) fadeStep(seq, step int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fadeSeq || !s.playing {
		return
	}
	if step >= s.fadeSteps {
		s.playing = false
		s.player.Stop()
		return
	}
	s.player.SetVolume(1 - float64(step)/float64(s.fadeSteps))
}

// StopNow stops playback immediately, cancelling any fade in progress.
func (s *SoundControl) StopNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fadeSeq++
	if !s.playing {
		return
	}
	s.playing = false
	s.player.Stop()
}
