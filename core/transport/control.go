package transport

const (
	KindStartGame   Kind = "start_game"
	KindSpeechEvent Kind = "speech_event"
	KindHumanInput  Kind = "human_input"
)

type SpeechStatus string

const (
	SpeechStatusStart SpeechStatus = "start"
	SpeechStatusEnd   SpeechStatus = "end"
)

// Inbound is the envelope for control messages received from clients. The
// player id is taken from the connection identity, never from the payload.
type Inbound struct {
	Type    Kind         `json:"type"`
	Status  SpeechStatus `json:"status,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Handler consumes inbound control messages. Implementations must tolerate
// messages arriving at any time, including from players whose turn it is not.
type Handler interface {
	HandleStartGame(playerID string)
	HandleSpeechEvent(playerID string, status SpeechStatus)
	HandleHumanInput(playerID string, message string)
}
