package groq

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/lupine-games/werewolf-core/core/decisions"
)

type message struct {
	Role    messageRole `json:"role"`
	Content string      `json:"content"`
}

type messageRole string

const (
	messageRoleSystem    messageRole = "system"
	messageRoleUser      messageRole = "user"
	messageRoleAssistant messageRole = "assistant"
)

type requestBody struct {
	Model          string              `json:"model"`
	Messages       []message           `json:"messages"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

type chatResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *jsonSchema `json:"json_schema,omitempty"`
}

type jsonSchema struct {
	// Name further identifies the schema in the response.
	Name string `json:"name"`
	// Schema constrains the generated content.
	Schema jsonschema.Schema `json:"schema"`
	// Strict determines whether to enforce the schema upon the generated
	// content.
	Strict bool `json:"strict"`
}

type responseBody struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role,omitempty"`
			Content string `json:"content,omitempty"`
		} `json:"message"`
	} `json:"choices"`
}

// toMessages flattens the system instructions and the observed game log into
// a chat transcript. Every observed narration becomes a user message
// attributed to its speaker; the actor's own past statements come back as
// assistant messages.
func toMessages(instructions string, selfID string, observations []decisions.Narration) []message {
	messages := []message{}
	if instructions != "" {
		messages = append(messages, message{
			Role:    messageRoleSystem,
			Content: instructions,
		})
	}
	for _, observation := range observations {
		if observation.Message == "" {
			continue
		}

		if observation.SpeakerID == selfID {
			messages = append(messages, message{
				Role:    messageRoleAssistant,
				Content: observation.Message,
			})
			continue
		}

		messages = append(messages, message{
			Role:    messageRoleUser,
			Content: fmt.Sprintf("%s: %s", observation.SpeakerName, observation.Message),
		})
	}
	return messages
}
