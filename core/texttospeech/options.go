package texttospeech

import "context"

// Speaker voices narrated messages as synthesized speech. Implementations
// keep at most one utterance in flight: Speak returns once the full message
// has been synthesized and its audio dispatched.
type Speaker interface {
	Speak(ctx context.Context, speakerID string, text string) error
}

type SpeakerOptions struct {
	// SpeechAudioCallback is called as synthesized audio becomes available
	SpeechAudioCallback func(speakerID string, audio []byte)
	// ErrorCallback is called when synthesis fails mid-utterance, this usually
	// means the connection was dropped
	ErrorCallback func(error)
}

type SpeakerOption func(*SpeakerOptions)

func WithSpeechAudioCallback(callback func(speakerID string, audio []byte)) SpeakerOption {
	return func(o *SpeakerOptions) { o.SpeechAudioCallback = callback }
}

func WithErrorCallback(callback func(error)) SpeakerOption {
	return func(o *SpeakerOptions) { o.ErrorCallback = callback }
}
