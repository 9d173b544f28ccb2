package groq

import (
	"testing"

	"github.com/lupine-games/werewolf-core/core/decisions"
)

func TestToMessagesAttribution(t *testing.T) {
	observations := []decisions.Narration{
		{SpeakerID: "moderator", SpeakerName: "Moderator", Message: "Night 1 falls."},
		{SpeakerID: "p1", SpeakerName: "Ava", Message: "I trust no one."},
		{SpeakerID: "p2", SpeakerName: "Bram", Message: ""},
		{SpeakerID: "p2", SpeakerName: "Bram", Message: "Ava is lying."},
	}

	messages := toMessages("You are Bram.", "p2", observations)

	want := []message{
		{Role: messageRoleSystem, Content: "You are Bram."},
		{Role: messageRoleUser, Content: "Moderator: Night 1 falls."},
		{Role: messageRoleUser, Content: "Ava: I trust no one."},
		{Role: messageRoleAssistant, Content: "Ava is lying."},
	}

	if len(messages) != len(want) {
		t.Fatalf("got %d messages, want %d: %v", len(messages), len(want), messages)
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Errorf("message %d = %+v, want %+v", i, messages[i], want[i])
		}
	}
}

func TestToMessagesWithoutInstructions(t *testing.T) {
	messages := toMessages("", "p1", []decisions.Narration{
		{SpeakerID: "p1", SpeakerName: "Ava", Message: "Good morning."},
	})

	if len(messages) != 1 || messages[0].Role != messageRoleAssistant {
		t.Errorf("expected only the assistant echo, got %v", messages)
	}
}
