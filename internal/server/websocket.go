// ABOUTME: Websocket voice session: transcript frames in, responses out
// ABOUTME: Frames are processed strictly sequentially per connection
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/harper/vocalmart/internal/models"
	"github.com/harper/vocalmart/internal/session"
)

// VoiceFrame is one inbound message: the final transcript of a recording
type VoiceFrame struct {
	Text string `json:"text"`
}

// VoiceReply is the outbound message for one processed transcript
type VoiceReply struct {
	Transcript string          `json:"transcript"`
	Response   string          `json:"response"`
	Product    *models.Product `json:"product,omitempty"`
	Degraded   bool            `json:"degraded,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// handleVoice runs one voice session over a websocket. The read loop
// processes one frame at a time, so there is exactly one in-flight query
// per connection and the session log stays chronologically ordered.
func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer func() { _ = conn.CloseNow() }()

	log := session.NewLog()
	s.logger.Info("voice session opened", zap.String("session_id", log.ID()))

	ctx := r.Context()
	for {
		var frame VoiceFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				s.logger.Info("voice session closed",
					zap.String("session_id", log.ID()),
					zap.Int("turns", log.Len()))
				return
			}
			s.logger.Warn("voice session read failed", zap.Error(err))
			return
		}

		reply := s.processFrame(ctx, log, frame)
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			s.logger.Warn("voice session write failed", zap.Error(err))
			return
		}
	}
}

// processFrame runs the pipeline for one transcript and updates the log
func (s *Server) processFrame(ctx context.Context, log *session.Log, frame VoiceFrame) VoiceReply {
	transcript := strings.TrimSpace(frame.Text)
	if transcript == "" {
		return VoiceReply{Error: "no speech detected"}
	}

	_, _ = log.Append(transcript, true)

	result, err := s.assistant.HandleQuery(ctx, transcript)
	if err != nil {
		s.logger.Error("voice query failed",
			zap.String("session_id", log.ID()),
			zap.Error(err))
		return VoiceReply{Transcript: transcript, Error: "failed to process your request"}
	}

	_, _ = log.Append(result.Response, false)

	return VoiceReply{
		Transcript: transcript,
		Response:   result.Response,
		Product:    result.Product,
		Degraded:   result.Degraded,
	}
}
