// ABOUTME: Turn represents a single conversation message, user or assistant
// ABOUTME: Appended in chronological order to a session conversation log
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Turn represents one message in a conversation.
type Turn struct {
	TurnID    string    `json:"turn_id"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"is_user"`
}

// NewTurn creates a new Turn with validation.
func NewTurn(text string, isUser bool) (*Turn, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("turn text cannot be empty")
	}
	return &Turn{
		TurnID:    generateTurnID(),
		Timestamp: time.Now().UTC(),
		Text:      text,
		IsUser:    isUser,
	}, nil
}

// generateTurnID generates a unique turn identifier
func generateTurnID() string {
	return fmt.Sprintf("turn_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
