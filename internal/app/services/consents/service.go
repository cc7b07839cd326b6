// Package consents manages research consent submissions. Only the identity
// that created a consent record may read, modify, or delete it.
package consents

import (
	"context"
	stderrors "errors"

	"github.com/ecoplay/game-service/internal/app/domain/consent"
	"github.com/ecoplay/game-service/internal/app/storage"
	"github.com/ecoplay/game-service/internal/auth"
	"github.com/ecoplay/game-service/internal/errors"
	"github.com/ecoplay/game-service/pkg/logger"
)

// Service manages consent records with ownership enforcement.
type Service struct {
	store storage.ConsentStore
	log   *logger.Logger
}

// New constructs a consents service.
func New(store storage.ConsentStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("consents")
	}
	return &Service{store: store, log: log}
}

// Submit records a consent form for the identity.
func (s *Service) Submit(ctx context.Context, id auth.Identity, given bool, details consent.Details) (consent.Consent, error) {
	c := consent.Consent{
		UserID:    id.ParticipantID(),
		UserEmail: id.Email,
		OwnerUID:  id.UID,
		Given:     given,
		Details:   details,
	}
	created, err := s.store.CreateConsent(ctx, c)
	if err != nil {
		return consent.Consent{}, errors.StorageUnavailable(err)
	}

	s.log.WithField("user_id", created.UserID).
		WithField("consent_id", created.ID).
		WithField("given", given).
		Info("consent recorded")
	return created, nil
}

// Get fetches a consent record the identity owns.
func (s *Service) Get(ctx context.Context, id auth.Identity, consentID string) (consent.Consent, error) {
	c, err := s.store.GetConsent(ctx, consentID)
	if err != nil {
		return consent.Consent{}, translateLookupErr(err)
	}
	if c.OwnerUID != id.UID {
		return consent.Consent{}, errors.PermissionDenied("consent belongs to another user")
	}
	return c, nil
}

// List returns the identity's consent records, newest first.
func (s *Service) List(ctx context.Context, id auth.Identity) ([]consent.Consent, error) {
	records, err := s.store.ListConsentsByOwner(ctx, id.UID)
	if err != nil {
		return nil, errors.StorageUnavailable(err)
	}
	return records, nil
}

// CheckResult reports whether a participant has an active consent on file.
type CheckResult struct {
	Participant string           `json:"participant"`
	HasConsent  bool             `json:"has_consent"`
	Latest      *consent.Consent `json:"latest,omitempty"`
}

// Check reports the newest consent state for a participant record number.
func (s *Service) Check(ctx context.Context, participantID string) (CheckResult, error) {
	records, err := s.store.ListConsentsByUser(ctx, participantID)
	if err != nil {
		return CheckResult{}, errors.StorageUnavailable(err)
	}

	result := CheckResult{Participant: participantID}
	if len(records) > 0 {
		latest := records[0]
		result.HasConsent = latest.Given
		result.Latest = &latest
	}
	return result, nil
}

// Update replaces the consent decision on a record the identity owns.
func (s *Service) Update(ctx context.Context, id auth.Identity, consentID string, given bool, details consent.Details) (consent.Consent, error) {
	existing, err := s.Get(ctx, id, consentID)
	if err != nil {
		return consent.Consent{}, err
	}

	existing.Given = given
	existing.Details = details
	updated, err := s.store.UpdateConsent(ctx, existing)
	if err != nil {
		return consent.Consent{}, translateLookupErr(err)
	}

	s.log.WithField("user_id", updated.UserID).
		WithField("consent_id", updated.ID).
		WithField("given", given).
		Info("consent updated")
	return updated, nil
}

// Delete removes a consent record the identity owns.
func (s *Service) Delete(ctx context.Context, id auth.Identity, consentID string) error {
	if _, err := s.Get(ctx, id, consentID); err != nil {
		return err
	}
	if err := s.store.DeleteConsent(ctx, consentID); err != nil {
		return translateLookupErr(err)
	}

	s.log.WithField("consent_id", consentID).Info("consent deleted")
	return nil
}

func translateLookupErr(err error) error {
	if stderrors.Is(err, storage.ErrNotFound) {
		return errors.NotFound("consent")
	}
	return errors.StorageUnavailable(err)
}
