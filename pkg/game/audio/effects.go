package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite tone of the given wave shape
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Min(vol, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; 0 or below is silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type tone struct {
	freq     float64
	wave     WaveType
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	volume   float64
}

func (t tone) streamer(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(t.freq, t.duration, t.wave, rate)
	return newVolume(NewEnvelope(osc, t.duration, t.attack, t.release, rate), t.volume)
}

// cueTones lists the layered tones of every cue
var cueTones = map[Cue][]tone{
	CueCollision: {
		{freq: 90, wave: WaveSaw, duration: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond, volume: 0.35},
	},
	CueRoll: {
		{freq: 180, wave: WaveSine, duration: 90 * time.Millisecond, attack: 10 * time.Millisecond, release: 60 * time.Millisecond, volume: 0.4},
		{freq: 0, wave: WaveNoise, duration: 60 * time.Millisecond, attack: 2 * time.Millisecond, release: 50 * time.Millisecond, volume: 0.08},
	},
	CuePush: {
		{freq: 120, wave: WaveSquare, duration: 160 * time.Millisecond, attack: 10 * time.Millisecond, release: 100 * time.Millisecond, volume: 0.2},
		{freq: 0, wave: WaveNoise, duration: 140 * time.Millisecond, attack: 20 * time.Millisecond, release: 100 * time.Millisecond, volume: 0.12},
	},
	CuePull: {
		{freq: 150, wave: WaveSaw, duration: 160 * time.Millisecond, attack: 30 * time.Millisecond, release: 80 * time.Millisecond, volume: 0.2},
		{freq: 0, wave: WaveNoise, duration: 140 * time.Millisecond, attack: 40 * time.Millisecond, release: 80 * time.Millisecond, volume: 0.1},
	},
	CuePushFail: {
		{freq: 220, wave: WaveSquare, duration: 70 * time.Millisecond, attack: 2 * time.Millisecond, release: 30 * time.Millisecond, volume: 0.2},
		{freq: 160, wave: WaveSquare, duration: 110 * time.Millisecond, attack: 2 * time.Millisecond, release: 60 * time.Millisecond, volume: 0.2},
	},
}

// CueStreamer synthesizes a cue at the given pitch. It returns nil for CueNone
// and unknown cues.
func CueStreamer(c Cue, pitch float64, rate beep.SampleRate) beep.Streamer {
	tones, ok := cueTones[c]
	if !ok {
		return nil
	}

	var s beep.Streamer
	if c == CuePushFail {
		// two descending notes
		s = beep.Seq(tones[0].streamer(rate), tones[1].streamer(rate))
	} else {
		layers := make([]beep.Streamer, 0, len(tones))
		for _, t := range tones {
			layers = append(layers, t.streamer(rate))
		}
		s = beep.Take(rate.N(CueDuration(c)), beep.Mix(layers...))
	}

	if pitch > 0 && pitch != 1 {
		s = beep.ResampleRatio(4, pitch, s)
	}
	return s
}

// CueDuration returns how long a cue plays at natural pitch
func CueDuration(c Cue) time.Duration {
	var total time.Duration
	for _, t := range cueTones[c] {
		if c == CuePushFail {
			total += t.duration
		} else if t.duration > total {
			total = t.duration
		}
	}
	return total
}
