// ABOUTME: Conversation history archive over Charm KV
// ABOUTME: Persists session turns across devices; optional, never required by the pipeline
package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/harper/vocalmart/internal/charm"
	"github.com/harper/vocalmart/internal/models"
)

// KV is the key-value capability the archive needs; satisfied by *charm.Client
type KV interface {
	SetJSON(key string, value interface{}) error
	GetJSON(key string, dest interface{}) error
	ListKeys(prefix string) ([]string, error)
	Delete(key string) error
}

// SessionInfo summarizes one archived session
type SessionInfo struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
	TurnCount int       `json:"turn_count"`
}

// Store archives conversation turns per session
type Store struct {
	kv KV
}

// NewStore creates a history store over the given KV backend
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// AppendTurn archives one turn and updates the session summary
func (s *Store) AppendTurn(sessionID string, turn *models.Turn) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.kv.SetJSON(charm.TurnKey(sessionID, turn.TurnID), turn); err != nil {
		return fmt.Errorf("failed to archive turn: %w", err)
	}

	var info SessionInfo
	if err := s.kv.GetJSON(charm.SessionKey(sessionID), &info); err != nil {
		info = SessionInfo{SessionID: sessionID, StartedAt: turn.Timestamp}
	}
	info.UpdatedAt = turn.Timestamp
	info.TurnCount++

	if err := s.kv.SetJSON(charm.SessionKey(sessionID), info); err != nil {
		return fmt.Errorf("failed to update session summary: %w", err)
	}
	return nil
}

// ListSessions returns archived session summaries, most recent first
func (s *Store) ListSessions() ([]SessionInfo, error) {
	keys, err := s.kv.ListKeys(charm.SessionPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []SessionInfo
	for _, key := range keys {
		var info SessionInfo
		if err := s.kv.GetJSON(key, &info); err != nil {
			continue
		}
		sessions = append(sessions, info)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

// GetTurns returns all archived turns for a session in chronological order
func (s *Store) GetTurns(sessionID string) ([]models.Turn, error) {
	keys, err := s.kv.ListKeys(charm.TurnPrefix + sessionID + ":")
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}

	var turns []models.Turn
	for _, key := range keys {
		var turn models.Turn
		if err := s.kv.GetJSON(key, &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}

	sort.Slice(turns, func(i, j int) bool {
		if turns[i].Timestamp.Equal(turns[j].Timestamp) {
			return turns[i].TurnID < turns[j].TurnID
		}
		return turns[i].Timestamp.Before(turns[j].Timestamp)
	})
	return turns, nil
}

// DeleteSession removes a session summary and all of its turns
func (s *Store) DeleteSession(sessionID string) error {
	keys, err := s.kv.ListKeys(charm.TurnPrefix + sessionID + ":")
	if err != nil {
		return fmt.Errorf("failed to list turns: %w", err)
	}
	for _, key := range keys {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to delete turn %s: %w", key, err)
		}
	}
	return s.kv.Delete(charm.SessionKey(sessionID))
}
