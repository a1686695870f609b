// Package audio plays a short burst sound for every exploding firework.
// Audio is optional: every method is safe to call when the speaker could
// not be initialised.
package audio

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-fireworks/pkg/entity"
	"github.com/opd-ai/go-fireworks/pkg/event"
	"github.com/opd-ai/go-fireworks/pkg/logging"
)

const (
	// BurstDuration is the length of one explosion sound.
	BurstDuration = 600 * time.Millisecond

	minToneHz = 110.0
	maxToneHz = 440.0
	// decay time constant of the burst envelope
	burstTau = 0.12
	// at most this many bursts are mixed at once
	maxVoices = 8
)

// Player mixes explosion sounds onto the speaker
type Player struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
	played      uint64
	subs        []*event.Subscription
	rng         *rand.Rand
	logger      *logging.Logger
}

// NewPlayer creates a player for the given sample rate. Nothing is opened
// until Initialize.
func NewPlayer(sampleRate int, logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Player{
		sr:     beep.SampleRate(sampleRate),
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewPCG(uint64(sampleRate), 0x5eed)),
		logger: logger,
	}
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(p.sr, p.sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialise speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Attach plays a burst for every FireworkExploded event on bus.
func (p *Player) Attach(bus *event.Bus) {
	sub := bus.Subscribe(event.FireworkExploded, func(e event.Event) {
		if fe, ok := e.(*event.FireworkEvent); ok {
			p.PlayBurst(fe.Hue)
		}
	})

	p.mu.Lock()
	p.subs = append(p.subs, sub)
	p.mu.Unlock()
}

// Played returns how many bursts were mixed.
func (p *Player) Played() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// PlayBurst mixes one explosion sound pitched by hue.
func (p *Player) PlayBurst(hue float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	burst, err := p.burst(hue)
	if err != nil {
		p.logger.Warn(context.Background(), "failed to build burst sound", "error", err.Error())
		return
	}

	speaker.Lock()
	if p.mixer.Len() < maxVoices {
		p.mixer.Add(burst)
		p.played++
	}
	speaker.Unlock()
}

// burst is a decaying mix of a hue-pitched sine tone and noise.
func (p *Player) burst(hue float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(p.sr, ToneFrequency(hue))
	if err != nil {
		return nil, err
	}
	noise := &noiseStreamer{rng: p.rng}
	mixed := beep.Mix(
		&effects.Gain{Streamer: tone, Gain: -0.7},
		&effects.Gain{Streamer: noise, Gain: -0.6},
	)
	return beep.Take(p.sr.N(BurstDuration), &envelope{
		Streamer: mixed,
		sr:       p.sr,
		tau:      burstTau,
	}), nil
}

// Close unsubscribes from every bus and silences the mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, sub := range p.subs {
		sub.Cancel()
	}
	p.subs = nil

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// ToneFrequency maps a hue onto the burst pitch; low hues sound lower.
func ToneFrequency(hue float64) float64 {
	h := math.Max(0, math.Min(hue, entity.HueRange)) / entity.HueRange
	return minToneHz + h*(maxToneHz-minToneHz)
}

// envelope fades a streamer out exponentially
type envelope struct {
	beep.Streamer
	sr  beep.SampleRate
	tau float64
	pos int
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(e.pos) / float64(e.sr)
		gain := math.Exp(-t / e.tau)
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

// noiseStreamer produces endless white noise
type noiseStreamer struct {
	rng *rand.Rand
}

func (s *noiseStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := s.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (s *noiseStreamer) Err() error { return nil }
