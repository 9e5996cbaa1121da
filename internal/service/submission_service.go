package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"preorder/internal/cache"
	"preorder/internal/model"
	"preorder/internal/pricing"
	"preorder/internal/repository"
)

// SubmissionService finalizes a session: last evaluation, persistence,
// one-shot delivery to the spreadsheet sink and the confirmation mail.
type SubmissionService struct {
	formSvc        *FormService
	orderSvc       *OrderService
	sessions       cache.SessionCache
	submissionRepo repository.SubmissionRepo
	sink           SubmissionSink
	mailer         Mailer
	broadcaster    Broadcaster
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	formSvc *FormService,
	orderSvc *OrderService,
	sessions cache.SessionCache,
	submissionRepo repository.SubmissionRepo,
	sink SubmissionSink,
	mailer Mailer,
) *SubmissionService {
	return &SubmissionService{
		formSvc:        formSvc,
		orderSvc:       orderSvc,
		sessions:       sessions,
		submissionRepo: submissionRepo,
		sink:           sink,
		mailer:         mailer,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SubmissionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit finalizes a session. One submission per session; the sink call is
// fire-once and its error is surfaced as-is with no internal retry. A mail
// failure after a successful sink delivery is logged, not surfaced: the
// order itself went through.
func (s *SubmissionService) Submit(ctx context.Context, formID, sessionID, email string) (*model.Submission, error) {
	session, err := s.orderSvc.openSession(ctx, formID, sessionID)
	if err != nil {
		return nil, err
	}

	bundle, err := s.formSvc.LoadForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	answers, err := s.sessions.GetAnswers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}

	// Final enforcement pass: the persisted submission never carries more
	// gift picks than the final total allows
	state := bundle.Evaluate(answers)
	for _, g := range state.Gifts {
		if len(g.Trimmed) == 0 {
			continue
		}
		fieldID := pricing.FieldID(g.QuestionID)
		if len(g.Selected) == 0 {
			delete(answers, fieldID)
		} else {
			answers[fieldID] = model.NewListValue(g.Selected)
		}
	}

	submission := &model.Submission{
		ID:          uuid.New().String(),
		FormID:      formID,
		SessionID:   sessionID,
		Total:       state.Total,
		Fields:      answers,
		SubmittedAt: time.Now(),
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to persist submission: %w", err)
	}

	if err := s.sink.Deliver(submission); err != nil {
		return nil, err
	}

	if email != "" && s.mailer != nil {
		if err := s.mailer.SendConfirmation(email, submission, bundle.Schema.Title); err != nil {
			log.Printf("[Submission Service] Confirmation mail failed for %s: %v", submission.ID, err)
		}
	}

	if err := s.orderSvc.MarkSubmitted(ctx, session); err != nil {
		log.Printf("[Submission Service] Failed to close session %s: %v", sessionID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(formID, sessionID, "submitted", map[string]interface{}{
			"submissionId": submission.ID,
			"total":        submission.Total,
		})
	}

	return submission, nil
}

// List returns a form's submissions, newest first
func (s *SubmissionService) List(ctx context.Context, formID string) ([]*model.Submission, error) {
	return s.submissionRepo.GetByFormID(ctx, formID)
}
