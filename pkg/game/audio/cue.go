// Package audio plays the short synthesized cues that accompany cube actions.
package audio

// Cue identifies a sound effect
type Cue int

const (
	CueNone      Cue = iota
	CueCollision     // step refused
	CueRoll          // plain roll
	CuePush          // roll while shoving boxes
	CuePull          // roll while dragging a box
	CuePushFail      // push cancelled by a box behind
)

func (c Cue) String() string {
	switch c {
	case CueNone:
		return "None"
	case CueCollision:
		return "Collision"
	case CueRoll:
		return "Roll"
	case CuePush:
		return "Push"
	case CuePull:
		return "Pull"
	case CuePushFail:
		return "PushFail"
	default:
		return "Unknown"
	}
}

// Player plays cues. Pitch scales playback rate; 1 is the natural pitch.
type Player interface {
	Play(c Cue, pitch float64)
}

// NopPlayer discards every cue
type NopPlayer struct{}

// Play does nothing
func (NopPlayer) Play(Cue, float64) {}

// Recorder remembers played cues. Tests and headless runs use it in place of a speaker.
type Recorder struct {
	Cues    []Cue
	Pitches []float64
}

// Play records the cue and its pitch
func (r *Recorder) Play(c Cue, pitch float64) {
	r.Cues = append(r.Cues, c)
	r.Pitches = append(r.Pitches, pitch)
}

// Last returns the most recent cue, or CueNone
func (r *Recorder) Last() Cue {
	if len(r.Cues) == 0 {
		return CueNone
	}
	return r.Cues[len(r.Cues)-1]
}
