package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/speak/v1/websocket/interfaces"
	"github.com/gorilla/websocket"
	"github.com/lupine-games/werewolf-core/core/texttospeech"
)

// The synthesized audio is dispatched to the audio callback as raw linear16
// frames; playback devices are somebody else's problem.
const (
	audioEncoding   = "linear16"
	audioSampleRate = 24000
)

type speakRequest struct {
	ws        *websocket.Conn
	options   texttospeech.SpeakerOptions
	speakerID string

	flushed chan struct{}
	failed  chan error
}

// Speak synthesizes a single utterance in the voice pinned to the speaker id
// and returns once Deepgram confirms the full text has been flushed into
// audio. Cancelling the context clears the remaining synthesis.
func (s *Speaker) Speak(ctx context.Context, speakerID string, text string) error {
	if text == "" {
		return nil
	}

	ws, err := connectWebsocket(s.apiKey, s.voiceFor(speakerID))
	if err != nil {
		return fmt.Errorf("failed to open websocket: %w", err)
	}

	req := &speakRequest{
		ws:        ws,
		options:   s.options,
		speakerID: speakerID,
		flushed:   make(chan struct{}, 1),
		failed:    make(chan error, 1),
	}
	go req.processIncomingMessages()

	if err := req.ws.WriteJSON(sendTextMsg(text)); err != nil {
		_ = req.ws.Close()
		return fmt.Errorf("failed to send text to deepgram through websocket: %w", err)
	}
	if err := req.ws.WriteJSON(flushMsg); err != nil {
		_ = req.ws.Close()
		return fmt.Errorf("failed to flush deepgram buffer through websocket: %w", err)
	}

	select {
	case <-req.flushed:
		return req.close()
	case err := <-req.failed:
		_ = req.close()
		return fmt.Errorf("speech synthesis failed: %w", err)
	case <-ctx.Done():
		if err := req.ws.WriteJSON(clearMsg); err != nil {
			log.Printf("Failed to clear deepgram buffer through websocket: %v", err)
		}
		_ = req.close()
		return ctx.Err()
	}
}

func connectWebsocket(apiKey string, voice Voice) (*websocket.Conn, error) {
	urlValues := url.Values{}
	urlValues.Set("encoding", audioEncoding)
	urlValues.Set("sample_rate", strconv.Itoa(audioSampleRate))
	urlValues.Set("model", string(voice))
	urlValues.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.Dial(
		(&url.URL{
			Scheme: "wss",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{"Authorization": {"token " + apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

func (r *speakRequest) processIncomingMessages() {
	for {
		msgType, msg, err := r.ws.ReadMessage()
		if err != nil {
			// TODO: Actually figure out this message instead of comparing to a string
			if err.Error() != "websocket: close 1000 (normal)" {
				log.Printf("Websocket read error: %v", err)
				r.options.ErrorCallback(err)
				select {
				case r.failed <- err:
				default:
				}
			}
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			if len(msg) > 0 {
				r.options.SpeechAudioCallback(r.speakerID, msg)
			}
		case websocket.TextMessage:
			var parsedMsg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				log.Printf("Failed to unmarshal deepgram message: %v", err)
				continue
			}

			switch api.TypeResponse(parsedMsg.Type) {
			case api.TypeFlushedResponse:
				select {
				case r.flushed <- struct{}{}:
				default:
				}
			case api.TypeResponse(api.TypeErrorResponse):
				var errResp api.ErrorResponse
				if err := json.Unmarshal(msg, &errResp); err != nil {
					log.Printf("Failed to unmarshal deepgram error: %v", err)
					continue
				}
				err := fmt.Errorf("deepgram error: %s (%s)", errResp.ErrMsg, errResp.ErrCode)
				r.options.ErrorCallback(err)
				select {
				case r.failed <- err:
				default:
				}
			case api.TypeWarningResponse:
				var warning api.WarningResponse
				if err := json.Unmarshal(msg, &warning); err == nil {
					log.Printf("Deepgram warning: %s (%s)", warning.WarnMsg, warning.WarnCode)
				}
			default:
				// Metadata, Cleared and Close confirmations need no handling
			}
		}
	}
}

func (r *speakRequest) close() error {
	if err := r.ws.WriteJSON(closeMsg); err != nil {
		if aggressiveCloseErr := r.ws.Close(); aggressiveCloseErr != nil {
			return fmt.Errorf("failed to close websocket: %w", aggressiveCloseErr)
		}
	}
	return nil
}

type websocketMessage struct {
	Type string `json:"type"`
}

var (
	sendTextMsg = func(text string) struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} {
		return struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{Type: "Speak", Text: text}
	}
	flushMsg = websocketMessage{Type: "Flush"}
	clearMsg = websocketMessage{Type: "Clear"}
	closeMsg = websocketMessage{Type: "Close"}
)
