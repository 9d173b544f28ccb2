package deepgram

import "testing"

func TestNewSpeakerRequiresAPIKey(t *testing.T) {
	if _, err := NewSpeaker(""); err == nil {
		t.Error("expected an error for an empty api key")
	}
}

func TestVoiceAssignment(t *testing.T) {
	speaker, err := NewSpeaker("key")
	if err != nil {
		t.Fatalf("failed to create speaker: %v", err)
	}

	first := speaker.voiceFor("moderator")
	second := speaker.voiceFor("p1")
	if first == second {
		t.Errorf("distinct speakers should rotate onto distinct voices, both got %s", first)
	}

	// A speaker id stays pinned to its first voice.
	if again := speaker.voiceFor("moderator"); again != first {
		t.Errorf("voice for moderator changed from %s to %s", first, again)
	}

	if err := speaker.SetVoice("p2", VoiceZeus); err != nil {
		t.Fatalf("failed to pin voice: %v", err)
	}
	if got := speaker.voiceFor("p2"); got != VoiceZeus {
		t.Errorf("expected pinned voice %s, got %s", VoiceZeus, got)
	}

	if err := speaker.SetVoice("p3", Voice("aura-2-nobody-en")); err == nil {
		t.Error("expected an unknown voice to be rejected")
	}
}

func TestVoiceRotationWraps(t *testing.T) {
	speaker, err := NewSpeaker("key")
	if err != nil {
		t.Fatalf("failed to create speaker: %v", err)
	}

	available := GetAvailableVoices()
	for i := range len(available) + 1 {
		speaker.voiceFor(string(rune('a' + i)))
	}

	if got := speaker.voiceFor(string(rune('a'))); got != available[0] {
		t.Errorf("first speaker should keep the first voice, got %s", got)
	}
	if got := speaker.voiceFor(string(rune('a' + len(available)))); got != available[0] {
		t.Errorf("rotation should wrap to the first voice, got %s", got)
	}
}
