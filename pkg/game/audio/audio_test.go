package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain streams s to the end and returns the number of samples produced
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		total += n
		for _, smp := range buf[:n] {
			require.InDelta(t, 0, smp[0], 1.0, "sample out of range")
		}
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never finished")
	return total
}

func TestOscillator_StopsAfterDuration(t *testing.T) {
	rate := beep.SampleRate(8000)
	osc := NewOscillator(440, 10*time.Millisecond, WaveSquare, rate)

	buf := make([][2]float64, 200)
	n, ok := osc.Stream(buf)
	assert.Equal(t, 80, n)
	assert.True(t, ok)
	for _, s := range buf[:n] {
		assert.Contains(t, []float64{-1, 1}, s[0])
	}

	n, ok = osc.Stream(buf)
	assert.Zero(t, n)
	assert.False(t, ok)
	assert.NoError(t, osc.Err())
}

func TestEnvelope_StartsAndEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 20 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 5*time.Millisecond, 5*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(d))
	n, _ := env.Stream(buf)
	require.Equal(t, rate.N(d), n)

	assert.InDelta(t, 0, buf[0][0], 1e-9, "first sample should be silent")
	assert.InDelta(t, 1, buf[n/2][0], 1e-9, "middle sample should be at full level")
	assert.Less(t, buf[n-1][0], 0.2, "last sample should be fading out")
}

func TestCueStreamer_EveryCueFinishes(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, c := range []Cue{CueCollision, CueRoll, CuePush, CuePull, CuePushFail} {
		t.Run(c.String(), func(t *testing.T) {
			s := CueStreamer(c, 1, rate)
			require.NotNil(t, s)
			n := drain(t, s)
			assert.InDelta(t, rate.N(CueDuration(c)), n, 2)
		})
	}
}

func TestCueStreamer_PitchShortensCue(t *testing.T) {
	rate := beep.SampleRate(8000)
	natural := drain(t, CueStreamer(CueRoll, 1, rate))
	high := drain(t, CueStreamer(CueRoll, 2, rate))
	assert.Less(t, high, natural)
}

func TestCueStreamer_NoneIsNil(t *testing.T) {
	assert.Nil(t, CueStreamer(CueNone, 1, 8000))
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	assert.Equal(t, CueNone, r.Last())
	r.Play(CueRoll, 1.5)
	r.Play(CuePush, 1)
	assert.Equal(t, []Cue{CueRoll, CuePush}, r.Cues)
	assert.Equal(t, CuePush, r.Last())
	assert.Equal(t, 1.5, r.Pitches[0])
}

func TestSoundManager_SafeWithoutInitialize(t *testing.T) {
	sm := NewSoundManager()
	assert.NotPanics(t, func() {
		sm.Play(CueRoll, 1)
		sm.SetVolume(0.5)
		sm.Cleanup()
	})
}
