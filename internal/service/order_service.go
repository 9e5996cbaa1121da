package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"preorder/internal/cache"
	"preorder/internal/model"
	"preorder/internal/pricing"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionSubmitted = errors.New("session already submitted")
)

// OrderService drives the live order: every answer mutation re-evaluates
// the total and the gift allowances, trims over-selected gift picks, and
// pushes the new state to the session's WebSocket.
type OrderService struct {
	formSvc     *FormService
	sessions    cache.SessionCache
	broadcaster Broadcaster
}

// NewOrderService creates a new order service
func NewOrderService(formSvc *FormService, sessions cache.SessionCache) *OrderService {
	return &OrderService{
		formSvc:  formSvc,
		sessions: sessions,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *OrderService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// OpenSession starts a new respondent session for a form
func (s *OrderService) OpenSession(ctx context.Context, formID string) (*model.Session, error) {
	if _, err := s.formSvc.LoadForm(ctx, formID); err != nil {
		return nil, err
	}

	session := &model.Session{
		ID:        uuid.New().String(),
		FormID:    formID,
		Status:    model.SessionOpen,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SetSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

// openSession loads a session and checks it belongs to the form and is
// still accepting changes.
func (s *OrderService) openSession(ctx context.Context, formID, sessionID string) (*model.Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.FormID != formID {
		return nil, ErrSessionNotFound
	}
	if session.Status == model.SessionSubmitted {
		return nil, ErrSessionSubmitted
	}
	return session, nil
}

// SetAnswer records one answer and returns the re-evaluated order state.
// An empty value clears the field. Unknown or malformed field identifiers
// are stored but never priced; the aggregator ignores them by design of
// the engine, so they cannot abort the computation.
func (s *OrderService) SetAnswer(ctx context.Context, formID, sessionID, fieldID string, value model.Value) (*model.OrderState, error) {
	if _, err := s.openSession(ctx, formID, sessionID); err != nil {
		return nil, err
	}

	if value.IsEmpty() {
		if err := s.sessions.ClearAnswer(ctx, sessionID, fieldID); err != nil {
			return nil, fmt.Errorf("failed to clear answer: %w", err)
		}
	} else {
		if err := s.sessions.SetAnswer(ctx, sessionID, fieldID, value); err != nil {
			return nil, fmt.Errorf("failed to store answer: %w", err)
		}
	}

	return s.evaluateAndEnforce(ctx, formID, sessionID)
}

// ClearAnswer removes one answer and returns the re-evaluated order state
func (s *OrderService) ClearAnswer(ctx context.Context, formID, sessionID, fieldID string) (*model.OrderState, error) {
	if _, err := s.openSession(ctx, formID, sessionID); err != nil {
		return nil, err
	}
	if err := s.sessions.ClearAnswer(ctx, sessionID, fieldID); err != nil {
		return nil, fmt.Errorf("failed to clear answer: %w", err)
	}
	return s.evaluateAndEnforce(ctx, formID, sessionID)
}

// State evaluates the current order without mutating anything
func (s *OrderService) State(ctx context.Context, formID, sessionID string) (*model.OrderState, error) {
	bundle, err := s.formSvc.LoadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	answers, err := s.sessions.GetAnswers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	state := bundle.Evaluate(answers)
	return &state, nil
}

// Answers returns the session's current answer set
func (s *OrderService) Answers(ctx context.Context, sessionID string) (model.AnswerSet, error) {
	return s.sessions.GetAnswers(ctx, sessionID)
}

// evaluateAndEnforce recomputes the state and writes any trimmed gift
// selections back, so the stored answer set never holds more picks than
// the current total allows. Broadcasts the result to the session.
func (s *OrderService) evaluateAndEnforce(ctx context.Context, formID, sessionID string) (*model.OrderState, error) {
	bundle, err := s.formSvc.LoadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	answers, err := s.sessions.GetAnswers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}

	state := bundle.Evaluate(answers)

	for _, g := range state.Gifts {
		if len(g.Trimmed) == 0 {
			continue
		}
		fieldID := pricing.FieldID(g.QuestionID)
		if len(g.Selected) == 0 {
			err = s.sessions.ClearAnswer(ctx, sessionID, fieldID)
		} else {
			err = s.sessions.SetAnswer(ctx, sessionID, fieldID, model.NewListValue(g.Selected))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to trim gift selections: %w", err)
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(formID, sessionID, "order_state", state)
	}
	return &state, nil
}

// MarkSubmitted closes a session after a successful submission
func (s *OrderService) MarkSubmitted(ctx context.Context, session *model.Session) error {
	session.Status = model.SessionSubmitted
	return s.sessions.SetSession(ctx, session)
}
