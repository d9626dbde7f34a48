// Package chat glues intent detection, the cargo store and the RAG responder
// into the support conversation flow consumed by the API.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cargohub/cargokb/internal/cargo"
	"github.com/cargohub/cargokb/internal/intent"
	"github.com/cargohub/cargokb/internal/rag"
	"github.com/cargohub/cargokb/internal/store"
)

// Reply kinds.
const (
	KindReturn   = "return"
	KindCancel   = "cancel"
	KindAnswer   = "answer"
	KindNoAnswer = "no_answer"
	KindRejected = "rejected"
)

// Reply is the structured outcome of one support message.
type Reply struct {
	Kind      string   `json:"kind"`
	Message   string   `json:"message"`
	Citations []string `json:"citations,omitempty"`
}

// Service handles support messages for authenticated users.
type Service struct {
	store     *store.Store
	responder *rag.Responder
	log       *slog.Logger
	now       func() time.Time
}

// NewService wires the chat flow. The clock is injectable for tests via
// WithClock.
func NewService(st *store.Store, responder *rag.Responder, log *slog.Logger) *Service {
	return &Service{store: st, responder: responder, log: log, now: time.Now}
}

// WithClock replaces the service clock and returns the service.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Handle processes one message from userID: return/cancel requests are
// executed against the store, everything else goes to the responder.
func (s *Service) Handle(ctx context.Context, userID, message string) (Reply, error) {
	kind, trackingNumber := intent.Detect(message)
	if kind != intent.None {
		return s.handleAction(ctx, userID, kind, trackingNumber)
	}
	return s.handleQuestion(message)
}

func (s *Service) handleAction(ctx context.Context, userID string, kind intent.Kind, trackingNumber string) (Reply, error) {
	current, err := s.store.GetCargo(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.rejectUnknownCargo(ctx, userID, trackingNumber)
		}
		return Reply{}, err
	}
	if current.UserID != userID {
		return s.rejectUnknownCargo(ctx, userID, trackingNumber)
	}

	// Read-modify-write: transition a copy, then persist it. The store stays
	// the single source of truth.
	var next cargo.Cargo
	switch kind {
	case intent.Return:
		next, err = cargo.ApplyReturn(*current, "Müşteri talebi", s.now())
	case intent.Cancel:
		next, err = cargo.ApplyCancel(*current, s.now())
	}
	if err != nil {
		if errors.Is(err, cargo.ErrNotEligible) {
			return Reply{
				Kind:    KindRejected,
				Message: fmt.Sprintf("%s numaralı kargonuz için işlem başlatılamıyor. %s", trackingNumber, trimEligibilityReason(err)),
			}, nil
		}
		return Reply{}, err
	}
	if err := s.store.PutCargo(ctx, next); err != nil {
		return Reply{}, err
	}

	s.log.Info("cargo transition applied",
		"user_id", userID,
		"tracking_number", trackingNumber,
		"action", string(kind),
		"status", next.Status,
	)

	if kind == intent.Return {
		return Reply{Kind: KindReturn, Message: fmt.Sprintf("%s numaralı kargonuz için iade talebiniz başarıyla oluşturuldu.", trackingNumber)}, nil
	}
	return Reply{Kind: KindCancel, Message: fmt.Sprintf("%s numaralı siparişiniz için iptal talebiniz başarıyla gerçekleştirildi.", trackingNumber)}, nil
}

func (s *Service) rejectUnknownCargo(ctx context.Context, userID, trackingNumber string) (Reply, error) {
	msg := fmt.Sprintf("Üzgünüm, takip numarası %s sizin kargolarınız arasında bulunamadı.", trackingNumber)
	if user, err := s.store.GetUser(ctx, userID); err == nil && len(user.Cargos) > 0 {
		numbers := make([]string, len(user.Cargos))
		for i, c := range user.Cargos {
			numbers[i] = c.TrackingNumber
		}
		msg += " Mevcut kargolarınız: " + strings.Join(numbers, ", ")
	}
	return Reply{Kind: KindRejected, Message: msg}, nil
}

func (s *Service) handleQuestion(message string) (Reply, error) {
	reply, err := s.responder.Answer(message, rag.DefaultTopK)
	if err != nil {
		return Reply{}, err
	}
	if reply == nil {
		return Reply{
			Kind:    KindNoAnswer,
			Message: "Bu soruya referans dokümanlarından güvenilir bir yanıt bulamadım. Lütfen müşteri temsilcimize danışın.",
		}, nil
	}
	return Reply{Kind: KindAnswer, Message: reply.Text, Citations: reply.Citations}, nil
}

// trimEligibilityReason strips the sentinel prefix from a wrapped
// ErrNotEligible for customer-facing output.
func trimEligibilityReason(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
