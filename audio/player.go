package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/kettleram/cookie-crunch/events"
)

const sampleRate = beep.SampleRate(44100)

// tone describes one synthesized clip
type tone struct {
	freq     float64
	duration time.Duration
}

// clips maps each sound to its tone sequence
var clips = map[events.SoundType][]tone{
	events.SoundDrop:     {{freq: 660, duration: 40 * time.Millisecond}},
	events.SoundCorrect:  {{freq: 523, duration: 80 * time.Millisecond}, {freq: 784, duration: 120 * time.Millisecond}},
	events.SoundWrong:    {{freq: 196, duration: 180 * time.Millisecond}},
	events.SoundTick:     {{freq: 880, duration: 60 * time.Millisecond}},
	events.SoundGameOver: {{freq: 392, duration: 150 * time.Millisecond}, {freq: 262, duration: 250 * time.Millisecond}},
}

// Player synthesizes short sine tones for game events. Audio is
// best-effort: if the speaker fails to initialize the game runs silent.
type Player struct {
	bus  *events.Bus
	subs events.SubscriptionSet
	init bool
}

// NewPlayer initializes the speaker and subscribes to sound requests.
// The returned error is informational; the player is usable either way.
func NewPlayer(bus *events.Bus) (*Player, error) {
	p := &Player{bus: bus}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		p.init = true
	}

	p.subs.Subscribe(bus, events.EventSoundRequest, p.onSoundRequest)
	return p, err
}

// Close cancels the player's subscriptions
func (p *Player) Close() {
	p.subs.CancelAll()
}

func (p *Player) onSoundRequest(ev events.Event) {
	payload, ok := ev.Payload.(*events.SoundRequestPayload)
	if !ok {
		return
	}
	p.Play(payload.Sound)
}

// Play queues the clip for the given sound. No-op when audio is
// unavailable or the sound is unknown.
func (p *Player) Play(sound events.SoundType) {
	if !p.init {
		return
	}
	tones, ok := clips[sound]
	if !ok {
		return
	}

	streamers := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			continue
		}
		streamers = append(streamers, beep.Take(sampleRate.N(t.duration), sine))
	}
	if len(streamers) > 0 {
		speaker.Play(beep.Seq(streamers...))
	}
}
