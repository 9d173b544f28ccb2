package events

const (
	// KindSpeakerChanged identifies a new current speaker.
	KindSpeakerChanged Kind = "speaker.changed"
	// KindSpeakerRotationFinished identifies a drained speaker queue.
	KindSpeakerRotationFinished Kind = "speaker.rotation_finished"
)

// SpeakerChanged marks a new current speaker popped from the rotation queue.
type SpeakerChanged struct {
	Base
	Day     int
	Speaker Seat
}

// NewSpeakerChanged creates a speaker changed event.
func NewSpeakerChanged(day int, speaker Seat) SpeakerChanged {
	return SpeakerChanged{Base: NewBase(KindSpeakerChanged), Day: day, Speaker: speaker}
}

// SpeakerRotationFinished marks the day speaking queue draining; voting
// always follows immediately.
type SpeakerRotationFinished struct {
	Base
	Day int
}

// NewSpeakerRotationFinished creates a speaker rotation finished event.
func NewSpeakerRotationFinished(day int) SpeakerRotationFinished {
	return SpeakerRotationFinished{Base: NewBase(KindSpeakerRotationFinished), Day: day}
}
