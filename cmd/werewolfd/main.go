// Command werewolfd hosts a single werewolf game over a websocket transport:
// AI seats play through Groq, narration is synthesized through Deepgram, and
// an optional human participant joins from a connected client.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	orchestration "github.com/lupine-games/werewolf-core/core"
	"github.com/lupine-games/werewolf-core/core/decisions"
	"github.com/lupine-games/werewolf-core/core/decisions/groq"
	"github.com/lupine-games/werewolf-core/core/game"
	"github.com/lupine-games/werewolf-core/core/texttospeech"
	"github.com/lupine-games/werewolf-core/core/texttospeech/deepgram"
	transportws "github.com/lupine-games/werewolf-core/core/transport/websocket"
	"github.com/lupine-games/werewolf-core/internal/config"
)

// humanPlayerID is the id a human client connects with (?playerId=human).
const humanPlayerID = "human"

var aiNames = []string{
	"Ava", "Bram", "Cleo", "Dorian", "Elif", "Felix",
	"Greta", "Hugo", "Iris", "Jasper", "Kira", "Lionel",
}

func main() {
	cfg, err := config.ParseEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	g, err := game.NewGame(buildRoster(cfg))
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	hub := transportws.NewHub(nil)

	opts := []orchestration.OrchestratorOption{
		orchestration.WithPublisher(hub),
		orchestration.WithHumanTimeout(cfg.HumanTimeout),
		orchestration.WithDecisionTimeout(cfg.DecisionTimeout),
	}
	if cfg.GroqAPIKey != "" {
		opts = append(opts, orchestration.WithProviderFactory(func(self game.Player) decisions.Provider {
			return groq.NewProvider(cfg.GroqAPIKey, self, groq.WithModel(cfg.GroqModel))
		}))
	} else {
		log.Println("Warning: GROQ_API_KEY not set, AI seats will abstain from everything")
	}
	if cfg.DeepgramAPIKey != "" {
		speaker, err := deepgram.NewSpeaker(cfg.DeepgramAPIKey,
			texttospeech.WithSpeechAudioCallback(func(_ string, audio []byte) {
				hub.BroadcastAudio(audio)
			}),
		)
		if err != nil {
			log.Fatalf("Failed to create speech synthesizer: %v", err)
		}
		opts = append(opts, orchestration.WithSpeaker(speaker))
	} else {
		log.Println("Warning: DEEPGRAM_API_KEY not set, running log-only")
	}

	orchestrator := orchestration.NewOrchestrator(g, opts...)
	hub.SetHandler(orchestrator)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := orchestrator.Run(ctx); err != nil {
		log.Fatalf("Failed to start orchestrator: %v", err)
	}
	defer orchestrator.Close()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	server := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("werewolfd listening on %s (game %s, %d seats)", cfg.Addr, g.ID(), cfg.Seats)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}

func buildRoster(cfg config.Config) []game.PlayerConfig {
	seats := cfg.Seats
	if seats < game.MinPlayers {
		seats = game.MinPlayers
	}

	var roster []game.PlayerConfig
	if cfg.HumanName != "" {
		roster = append(roster, game.PlayerConfig{ID: humanPlayerID, Name: cfg.HumanName, IsHuman: true})
	}
	for i := 0; len(roster) < seats; i++ {
		name := aiNames[i%len(aiNames)]
		if i >= len(aiNames) {
			name = fmt.Sprintf("%s %d", name, i/len(aiNames)+1)
		}
		roster = append(roster, game.PlayerConfig{Name: name})
	}
	return roster
}
