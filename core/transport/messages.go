// Package transport defines the wire messages exchanged with connected
// clients and the capability contracts the orchestration core uses to reach
// them. Actual delivery (websocket framing, connection lifecycle) lives in
// subpackages.
package transport

import (
	"context"
	"time"
)

type Kind string

const (
	KindSpeakerInfo    Kind = "speaker_info"
	KindGameLog        Kind = "game_log"
	KindCurrentSpeaker Kind = "current_speaker"
	KindGameStarted    Kind = "game_started"
	KindGameEnded      Kind = "game_ended"
	KindGameStatus     Kind = "game_status"
)

// SpeakerInfo announces who is about to be quoted. It always precedes the
// matching GameLog so clients can render attribution before the text arrives.
type SpeakerInfo struct {
	Type    Kind   `json:"type"`
	Speaker string `json:"speaker"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

func NewSpeakerInfo(speaker, name, role string) SpeakerInfo {
	return SpeakerInfo{Type: KindSpeakerInfo, Speaker: speaker, Name: name, Role: role}
}

type GameLog struct {
	Type      Kind      `json:"type"`
	Speaker   string    `json:"speaker"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsPrivate bool      `json:"isPrivate"`
}

func NewGameLog(speaker, message string, isPrivate bool) GameLog {
	return GameLog{
		Type:      KindGameLog,
		Speaker:   speaker,
		Message:   message,
		Timestamp: time.Now(),
		IsPrivate: isPrivate,
	}
}

// CurrentSpeaker marks whose turn it is. IsPlayerTurn is true only on the
// copy sent to the speaker themselves, so a human client knows to open its
// input.
type CurrentSpeaker struct {
	Type         Kind   `json:"type"`
	Speaker      string `json:"speaker"`
	IsPlayerTurn bool   `json:"isPlayerTurn"`
}

func NewCurrentSpeaker(speaker string, isPlayerTurn bool) CurrentSpeaker {
	return CurrentSpeaker{Type: KindCurrentSpeaker, Speaker: speaker, IsPlayerTurn: isPlayerTurn}
}

type GameStarted struct {
	Type Kind `json:"type"`
}

func NewGameStarted() GameStarted {
	return GameStarted{Type: KindGameStarted}
}

type GameEnded struct {
	Type   Kind   `json:"type"`
	Winner string `json:"winner"`
}

func NewGameEnded(winner string) GameEnded {
	return GameEnded{Type: KindGameEnded, Winner: winner}
}

type GameStatus struct {
	Type   Kind   `json:"type"`
	Status string `json:"status"`
}

func NewGameStatus(status string) GameStatus {
	return GameStatus{Type: KindGameStatus, Status: status}
}

// Envelope pairs an outbound payload with its audience. A nil audience
// broadcasts to every connected client; an explicit audience delivers only
// to the listed player ids.
type Envelope struct {
	Payload  any
	Audience []string
}

// Publisher delivers outbound messages to connected clients. Publish returns
// once the message has been handed to every in-audience connection.
type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
}
