// README: Conversation endpoint; bridges HTTP turns to the dialog engine.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"flybot/internal/cards"
	"flybot/internal/modules/booking"
	"flybot/internal/modules/dialog"
	"flybot/internal/modules/session"
)

// Sessions persists dialog state between turns.
type Sessions interface {
	Load(ctx context.Context, conversationID string) (dialog.State, error)
	Save(ctx context.Context, conversationID string, state dialog.State) error
}

// Archive records finished bookings. May be nil when no database is attached.
type Archive interface {
	Archive(ctx context.Context, conversationID, outcome string, r *booking.Record) error
}

// Cities maps free-text city names to canonical ones for display.
type Cities interface {
	Canonicalize(ctx context.Context, city string) string
}

type ChatHandler struct {
	engine   *dialog.Engine
	sessions Sessions
	archive  Archive
	cities   Cities
	log      *zap.Logger
}

func NewChatHandler(engine *dialog.Engine, sessions Sessions, archive Archive, cities Cities, log *zap.Logger) *ChatHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatHandler{engine: engine, sessions: sessions, archive: archive, cities: cities, log: log}
}

type chatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

type chatResponse struct {
	ConversationID string          `json:"conversation_id"`
	Outcome        string          `json:"outcome"`
	Messages       []string        `json:"messages"`
	Booking        *booking.Record `json:"booking,omitempty"`
	Card           json.RawMessage `json:"card,omitempty"`
}

// Chat runs one conversation turn. An empty conversation_id opens a new
// conversation; an unknown one is treated the same way rather than erroring,
// so expired sessions restart cleanly.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	ctx := c.Request.Context()

	id := strings.TrimSpace(req.ConversationID)
	fresh := id == ""
	if fresh {
		id = uuid.NewString()
	}

	var (
		out   dialog.Outcome
		state dialog.State
		prior booking.Record
	)
	if fresh {
		out, state = h.open(ctx, req.Message)
	} else {
		prev, err := h.sessions.Load(ctx, id)
		switch {
		case errors.Is(err, session.ErrNotFound):
			out, state = h.open(ctx, req.Message)
		case err != nil:
			h.log.Error("session load failed", zap.String("conversation_id", id), zap.Error(err))
			writeError(c, http.StatusInternalServerError, "session unavailable")
			return
		default:
			prior = prev.Booking
			out, state = h.engine.Turn(ctx, prev, req.Message)
		}
	}

	var card json.RawMessage
	switch out.Kind {
	case dialog.OutcomeCompleted:
		h.record(ctx, id, booking.OutcomeCompleted, out.Booking)
		card = h.renderCard(ctx, out.Booking)
	case dialog.OutcomeCancelled:
		h.record(ctx, id, booking.OutcomeCancelled, &prior)
	}

	if err := h.sessions.Save(ctx, id, state); err != nil {
		h.log.Error("session save failed", zap.String("conversation_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError, "session unavailable")
		return
	}

	writeJSON(c, http.StatusOK, chatResponse{
		ConversationID: id,
		Outcome:        string(out.Kind),
		Messages:       messages(out),
		Booking:        out.Booking,
		Card:           card,
	})
}

// open starts a conversation. With the recognizer up, an opening message is a
// travel request and gets a full turn; in degraded mode it is only the
// wake-up, and the first slot prompt answers it.
func (h *ChatHandler) open(ctx context.Context, message string) (dialog.Outcome, dialog.State) {
	out, state := h.engine.Begin(ctx)
	if strings.TrimSpace(message) == "" || !h.engine.Configured() {
		return out, state
	}
	next, state := h.engine.Turn(ctx, state, message)
	next.Notices = append(out.Notices, next.Notices...)
	return next, state
}

// record archives a finished booking; archiving is best effort and never
// fails the turn.
func (h *ChatHandler) record(ctx context.Context, id, outcome string, rec *booking.Record) {
	if h.archive == nil || rec == nil {
		return
	}
	if err := h.archive.Archive(ctx, id, outcome, rec); err != nil {
		h.log.Warn("booking archive failed", zap.String("conversation_id", id), zap.Error(err))
	}
}

// renderCard builds the confirmation card from a display copy of the record,
// with city names canonicalized when a resolver is attached.
func (h *ChatHandler) renderCard(ctx context.Context, rec *booking.Record) json.RawMessage {
	if rec == nil {
		return nil
	}
	display := *rec
	if h.cities != nil {
		display.Origin = h.cities.Canonicalize(ctx, display.Origin)
		display.Destination = h.cities.Canonicalize(ctx, display.Destination)
	}
	card, err := cards.Render(&display)
	if err != nil {
		h.log.Warn("card render failed", zap.Error(err))
		return nil
	}
	return card
}

// messages flattens an outcome into the ordered bot replies for this turn.
func messages(out dialog.Outcome) []string {
	msgs := append([]string(nil), out.Notices...)
	if out.Prompt != "" {
		msgs = append(msgs, out.Prompt)
	}
	return msgs
}
