// ABOUTME: Append-only conversation log owned by one session
// ABOUTME: Serializes appends so concurrent callers preserve turn order
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harper/vocalmart/internal/models"
)

// Log is an ordered, append-only sequence of conversation turns. The
// retrieval pipeline never touches it; callers append the user turn and
// then the assistant turn around each query.
type Log struct {
	id    string
	mu    sync.Mutex
	turns []models.Turn
}

// NewLog creates an empty conversation log with a fresh session ID
func NewLog() *Log {
	return &Log{
		id: fmt.Sprintf("session_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8]),
	}
}

// ID returns the session identifier
func (l *Log) ID() string {
	return l.id
}

// Append adds a turn to the end of the log
func (l *Log) Append(text string, isUser bool) (*models.Turn, error) {
	turn, err := models.NewTurn(text, isUser)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, *turn)
	return turn, nil
}

// Turns returns a copy of the log in chronological order
func (l *Log) Turns() []models.Turn {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns in the log
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}
