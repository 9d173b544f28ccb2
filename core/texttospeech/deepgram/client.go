package deepgram

import (
	"fmt"
	"slices"
	"sync"

	"github.com/lupine-games/werewolf-core/core/texttospeech"
)

type Voice string

const (
	VoiceThalia  Voice = "aura-2-thalia-en"
	VoiceAthena  Voice = "aura-2-athena-en"
	VoiceLuna    Voice = "aura-2-luna-en"
	VoiceOrion   Voice = "aura-2-orion-en"
	VoiceApollo  Voice = "aura-2-apollo-en"
	VoiceZeus    Voice = "aura-2-zeus-en"
	VoiceHelena  Voice = "aura-2-helena-en"
	VoiceOrpheus Voice = "aura-2-orpheus-en"
)

const defaultVoice = VoiceThalia

func GetAvailableVoices() []Voice {
	return []Voice{
		VoiceThalia, VoiceAthena, VoiceLuna, VoiceOrion,
		VoiceApollo, VoiceZeus, VoiceHelena, VoiceOrpheus,
	}
}

// Speaker synthesizes speech through Deepgram's websocket speak API. Each
// speaker id is pinned to a distinct voice so listeners can tell narrated
// players apart; unassigned ids pick the next voice in rotation.
type Speaker struct {
	apiKey  string
	options texttospeech.SpeakerOptions

	mu       sync.Mutex
	voices   map[string]Voice
	rotation int
}

func NewSpeaker(apiKey string, opts ...texttospeech.SpeakerOption) (*Speaker, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	speaker := &Speaker{
		apiKey: apiKey,
		options: texttospeech.SpeakerOptions{
			SpeechAudioCallback: func(string, []byte) {},
			ErrorCallback:       func(error) {},
		},
		voices: map[string]Voice{},
	}
	for _, opt := range opts {
		opt(&speaker.options)
	}

	return speaker, nil
}

// SetVoice pins a speaker id to a specific voice.
func (s *Speaker) SetVoice(speakerID string, voice Voice) error {
	if !slices.Contains(GetAvailableVoices(), voice) {
		return fmt.Errorf("invalid voice")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.voices[speakerID] = voice
	return nil
}

func (s *Speaker) voiceFor(speakerID string) Voice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if voice, ok := s.voices[speakerID]; ok {
		return voice
	}

	available := GetAvailableVoices()
	voice := available[s.rotation%len(available)]
	s.rotation++
	s.voices[speakerID] = voice
	return voice
}
