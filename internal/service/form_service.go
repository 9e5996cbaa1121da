package service

import (
	"context"
	"errors"
	"log"

	"preorder/internal/cache"
	"preorder/internal/pricing"
	"preorder/internal/repository"
)

var ErrFormNotFound = errors.New("form not found")

// FormService loads form schemas and their derived pricing indices. A form
// is loaded once per cache lifetime; the bundle is read-only afterwards.
type FormService struct {
	formsClient *FormsClient
	formRepo    repository.FormRepo
	formCache   cache.FormCache
}

// NewFormService creates a new form service
func NewFormService(formsClient *FormsClient, formRepo repository.FormRepo, formCache cache.FormCache) *FormService {
	return &FormService{
		formsClient: formsClient,
		formRepo:    formRepo,
		formCache:   formCache,
	}
}

// LoadForm returns the bundle for a form: cached if available, otherwise
// fetched from the provider, tagged, indexed and cached. Falls back to the
// last persisted snapshot when the provider is unreachable.
func (s *FormService) LoadForm(ctx context.Context, formID string) (*pricing.Bundle, error) {
	bundle, err := s.formCache.GetBundle(ctx, formID)
	if err != nil {
		log.Printf("[Form Service] Cache read failed for form %s: %v", formID, err)
	}
	if bundle != nil {
		return bundle, nil
	}

	schema, err := s.formsClient.FetchForm(formID)
	if err != nil {
		log.Printf("[Form Service] Provider fetch failed for form %s: %v", formID, err)
		snapshot, repoErr := s.formRepo.GetByID(ctx, formID)
		if repoErr != nil || snapshot == nil {
			return nil, err
		}
		log.Printf("[Form Service] Using persisted snapshot for form %s", formID)
		schema = snapshot
	} else {
		if err := s.formRepo.Upsert(ctx, schema); err != nil {
			log.Printf("[Form Service] Snapshot persist failed for form %s: %v", formID, err)
		}
	}

	if schema == nil {
		return nil, ErrFormNotFound
	}

	bundle = pricing.NewBundle(schema)
	if err := s.formCache.SetBundle(ctx, formID, bundle); err != nil {
		log.Printf("[Form Service] Cache write failed for form %s: %v", formID, err)
	}
	return bundle, nil
}
