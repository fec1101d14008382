package generator

import (
	"time"

	"github.com/google/uuid"
)

// historyLimit caps the entries kept for introspection.
const historyLimit = 10

// HistoryEntry records one successful generation.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Input      string    `json:"input"`
	Query      string    `json:"query"`
	Type       string    `json:"type"`
	Template   string    `json:"template,omitempty"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// remember appends a history entry, dropping the oldest past the cap.
func (g *Generator) remember(input string, res *Result) {
	entry := HistoryEntry{
		ID:        uuid.NewString(),
		Input:     input,
		Query:     res.Query,
		Type:      res.Type,
		CreatedAt: time.Now(),
	}
	if res.Metadata != nil {
		entry.Template = res.Metadata.Template
		entry.Confidence = res.Metadata.Confidence
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.history = append(g.history, entry)
	if len(g.history) > historyLimit {
		g.history = g.history[len(g.history)-historyLimit:]
	}
}

// History returns up to n most recent entries, newest first. n <= 0 means
// all retained entries.
func (g *Generator) History(n int) []HistoryEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	if n <= 0 || n > len(g.history) {
		n = len(g.history)
	}

	out := make([]HistoryEntry, 0, n)
	for i := len(g.history) - 1; i >= len(g.history)-n; i-- {
		out = append(out, g.history[i])
	}
	return out
}
