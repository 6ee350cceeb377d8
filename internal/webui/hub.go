package webui

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/spurintel/spursetup/domain/model"
	"github.com/spurintel/spursetup/usecase/setup"
)

// event is one message pushed to connected setup pages.
type event struct {
	Type     string   `json:"type"` // "state" | "outcome"
	RunID    string   `json:"run_id"`
	State    string   `json:"state,omitempty"`
	Status   string   `json:"status,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Stage    string   `json:"stage,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// hub fans run progress out to websocket subscribers. It implements
// setup.Notifier so the orchestrator stays unaware of the transport.
type hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newHub() *hub {
	return &hub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *hub) add(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
	_ = c.Close()
}

func (h *hub) broadcast(ev event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteJSON(ev); err != nil {
			delete(h.conns, c)
			_ = c.Close()
		}
	}
}

func (h *hub) StateChanged(_ context.Context, runID string, state model.State) {
	h.broadcast(event{Type: "state", RunID: runID, State: state.String()})
}

func (h *hub) RunFinished(_ context.Context, out *model.Outcome) {
	h.broadcast(event{
		Type:     "outcome",
		RunID:    out.RunID,
		Status:   statusOf(out),
		Warnings: out.Warnings,
		Stage:    string(out.Stage),
		Error:    out.Err,
	})
}

// statusOf maps an outcome to the surface vocabulary.
func statusOf(out *model.Outcome) string {
	switch {
	case !out.OK():
		return "fatal-error"
	case len(out.Warnings) > 0:
		return "success-with-warnings"
	default:
		return "success"
	}
}

var _ setup.Notifier = (*hub)(nil)
