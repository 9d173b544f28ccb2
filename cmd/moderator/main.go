// Command moderator is a terminal client for a running werewolfd game: it
// renders the narrated game log, shows whose turn it is, and lets a human
// participant type their turns.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"
	"github.com/lupine-games/werewolf-core/core/transport"
	"github.com/muesli/reflow/wordwrap"
)

var (
	moderatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	playerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	privateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Italic(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	turnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

func main() {
	addr := flag.String("addr", "localhost:8080", "werewolfd address")
	player := flag.String("player", "human", "player id to connect as")
	flag.Parse()

	wsURL := url.URL{Scheme: "ws", Host: *addr, Path: "/ws", RawQuery: "playerId=" + url.QueryEscape(*player)}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", wsURL.String(), err)
	}
	defer conn.Close()

	program := tea.NewProgram(newModel(conn, *player), tea.WithAltScreen())

	go readMessages(conn, program)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// wireMessage is the union of every outbound payload werewolfd sends; the
// type field discriminates which other fields are set.
type wireMessage struct {
	Type         transport.Kind `json:"type"`
	Speaker      string         `json:"speaker,omitempty"`
	Name         string         `json:"name,omitempty"`
	Role         string         `json:"role,omitempty"`
	Message      string         `json:"message,omitempty"`
	IsPrivate    bool           `json:"isPrivate,omitempty"`
	IsPlayerTurn bool           `json:"isPlayerTurn,omitempty"`
	Winner       string         `json:"winner,omitempty"`
	Status       string         `json:"status,omitempty"`
}

type incomingMsg wireMessage

type disconnectedMsg struct{ err error }

func readMessages(conn *websocket.Conn, program *tea.Program) {
	for {
		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			program.Send(disconnectedMsg{err: err})
			return
		}
		if msgType != websocket.TextMessage {
			// synthesized audio frames are not rendered here
			continue
		}

		var msg wireMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		program.Send(incomingMsg(msg))
	}
}

type model struct {
	conn     *websocket.Conn
	playerID string

	viewport viewport.Model
	input    textinput.Model
	ready    bool

	lines    []string
	speakers map[string]string
	status   string
	myTurn   bool
}

func newModel(conn *websocket.Conn, playerID string) model {
	input := textinput.New()
	input.Placeholder = "ctrl+s starts the game"
	input.CharLimit = 500

	return model{
		conn:     conn,
		playerID: playerID,
		input:    input,
		speakers: map[string]string{},
		status:   "connected",
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 3
		}
		m.input.Width = msg.Width - 4
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			m.send(transport.Inbound{Type: transport.KindStartGame})
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				m.send(transport.Inbound{Type: transport.KindHumanInput, Message: text})
				m.input.Reset()
			}
		}

	case incomingMsg:
		m.consume(wireMessage(msg))
		m.refresh()

	case disconnectedMsg:
		m.status = "disconnected"
		m.appendLine(statusStyle.Render("Connection closed."))
		m.refresh()
	}

	var inputCmd, viewportCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, viewportCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, viewportCmd)
}

func (m *model) consume(msg wireMessage) {
	switch msg.Type {
	case transport.KindSpeakerInfo:
		m.speakers[msg.Speaker] = msg.Name

	case transport.KindGameLog:
		name := m.speakers[msg.Speaker]
		if name == "" {
			name = msg.Speaker
		}
		style := playerStyle
		if msg.Speaker == "moderator" {
			style = moderatorStyle
		}
		line := style.Render(name+":") + " " + msg.Message
		if msg.IsPrivate {
			line = privateStyle.Render("(only you) ") + line
		}
		m.appendLine(line)

	case transport.KindCurrentSpeaker:
		if msg.Speaker == m.playerID {
			m.myTurn = msg.IsPlayerTurn
			if m.myTurn {
				m.input.Focus()
			}
		}

	case transport.KindGameStarted:
		m.status = "playing"

	case transport.KindGameEnded:
		m.status = "ended, " + msg.Winner + " win"
		m.myTurn = false

	case transport.KindGameStatus:
		m.status = msg.Status
	}
}

func (m *model) appendLine(line string) {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	m.lines = append(m.lines, wordwrap.String(line, width))
}

func (m *model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}

	prompt := statusStyle.Render("waiting for your turn")
	if m.myTurn {
		prompt = turnStyle.Render("your turn!")
	}

	return fmt.Sprintf(
		"%s\n%s %s\n%s",
		m.viewport.View(),
		prompt,
		statusStyle.Render("["+m.status+"]"),
		m.input.View(),
	)
}

func (m *model) send(msg transport.Inbound) {
	if err := m.conn.WriteJSON(msg); err != nil {
		m.appendLine(statusStyle.Render("Failed to send: " + err.Error()))
	}
}
