package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ecoplay/game-service/internal/app/domain/consent"
	"github.com/ecoplay/game-service/internal/app/domain/game"
	"github.com/ecoplay/game-service/internal/app/domain/match"
	"github.com/ecoplay/game-service/internal/app/domain/message"
	"github.com/ecoplay/game-service/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and is primarily intended for tests and local development.
type Store struct {
	mu                sync.RWMutex
	nextID            int64
	publicGoodsRounds map[string][]game.PublicGoodsRecord
	trustRounds       map[string][]game.TrustRecord
	matches           map[string][]match.Match
	messages          map[string][]message.Message
	feedback          []message.Feedback
	consents          map[string]consent.Consent
}

var _ storage.GameStore = (*Store)(nil)
var _ storage.MatchStore = (*Store)(nil)
var _ storage.MessageStore = (*Store)(nil)
var _ storage.ConsentStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:            1,
		publicGoodsRounds: make(map[string][]game.PublicGoodsRecord),
		trustRounds:       make(map[string][]game.TrustRecord),
		matches:           make(map[string][]match.Match),
		messages:          make(map[string][]message.Message),
		consents:          make(map[string]consent.Consent),
	}
}

func (s *Store) nextIDLocked() string {
	id := s.nextID
	s.nextID++
	return fmt.Sprintf("%d", id)
}

// GameStore implementation ----------------------------------------------------

func (s *Store) CreatePublicGoodsRound(_ context.Context, rec game.PublicGoodsRecord) (game.PublicGoodsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = s.nextIDLocked()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	rec.OtherDonations = append([]int(nil), rec.OtherDonations...)

	s.publicGoodsRounds[rec.UserID] = append(s.publicGoodsRounds[rec.UserID], rec)
	return clonePublicGoods(rec), nil
}

func (s *Store) ListPublicGoodsRounds(_ context.Context, userID string) ([]game.PublicGoodsRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]game.PublicGoodsRecord, 0, len(s.publicGoodsRounds[userID]))
	for _, rec := range s.publicGoodsRounds[userID] {
		result = append(result, clonePublicGoods(rec))
	}
	return result, nil
}

func (s *Store) CreateTrustRound(_ context.Context, rec game.TrustRecord) (game.TrustRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = s.nextIDLocked()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	s.trustRounds[rec.UserID] = append(s.trustRounds[rec.UserID], rec)
	return rec, nil
}

func (s *Store) ListTrustRounds(_ context.Context, userID string, role game.Role) ([]game.TrustRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]game.TrustRecord, 0)
	for _, rec := range s.trustRounds[userID] {
		if role == "" || rec.Role == role {
			result = append(result, rec)
		}
	}
	return result, nil
}

// MatchStore implementation ---------------------------------------------------

func (s *Store) CreateMatch(_ context.Context, m match.Match) (match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = s.nextIDLocked()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}

	s.matches[m.UserID] = append(s.matches[m.UserID], m)
	return m, nil
}

func (s *Store) ListMatches(_ context.Context, userID string) ([]match.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]match.Match(nil), s.matches[userID]...), nil
}

// MessageStore implementation -------------------------------------------------

func (s *Store) CreateMessage(_ context.Context, msg message.Message) (message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		msg.ID = s.nextIDLocked()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	s.messages[msg.UserID] = append(s.messages[msg.UserID], msg)
	return msg, nil
}

func (s *Store) ListMessages(_ context.Context, userID string, gameType string) ([]message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]message.Message, 0)
	for _, msg := range s.messages[userID] {
		if gameType == "" || msg.GameType == gameType {
			result = append(result, msg)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}

func (s *Store) CreateFeedback(_ context.Context, fb message.Feedback) (message.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fb.ID == "" {
		fb.ID = s.nextIDLocked()
	}
	if fb.Timestamp.IsZero() {
		fb.Timestamp = time.Now().UTC()
	}

	s.feedback = append(s.feedback, fb)
	return fb, nil
}

// ConsentStore implementation -------------------------------------------------

func (s *Store) CreateConsent(_ context.Context, c consent.Consent) (consent.Consent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = s.nextIDLocked()
	} else if _, exists := s.consents[c.ID]; exists {
		return consent.Consent{}, fmt.Errorf("consent %s already exists", c.ID)
	}

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	s.consents[c.ID] = c
	return c, nil
}

func (s *Store) GetConsent(_ context.Context, id string) (consent.Consent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.consents[id]
	if !ok {
		return consent.Consent{}, fmt.Errorf("consent %s: %w", id, storage.ErrNotFound)
	}
	return c, nil
}

func (s *Store) ListConsentsByUser(_ context.Context, userID string) ([]consent.Consent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]consent.Consent, 0)
	for _, c := range s.consents {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	sortConsentsNewestFirst(result)
	return result, nil
}

func (s *Store) ListConsentsByOwner(_ context.Context, ownerUID string) ([]consent.Consent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]consent.Consent, 0)
	for _, c := range s.consents {
		if c.OwnerUID == ownerUID {
			result = append(result, c)
		}
	}
	sortConsentsNewestFirst(result)
	return result, nil
}

func (s *Store) UpdateConsent(_ context.Context, c consent.Consent) (consent.Consent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.consents[c.ID]
	if !ok {
		return consent.Consent{}, fmt.Errorf("consent %s: %w", c.ID, storage.ErrNotFound)
	}

	c.CreatedAt = original.CreatedAt
	c.UpdatedAt = time.Now().UTC()

	s.consents[c.ID] = c
	return c, nil
}

func (s *Store) DeleteConsent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.consents[id]; !ok {
		return fmt.Errorf("consent %s: %w", id, storage.ErrNotFound)
	}
	delete(s.consents, id)
	return nil
}

// Helpers ----------------------------------------------------------------------

func clonePublicGoods(rec game.PublicGoodsRecord) game.PublicGoodsRecord {
	rec.OtherDonations = append([]int(nil), rec.OtherDonations...)
	return rec
}

func sortConsentsNewestFirst(consents []consent.Consent) {
	sort.SliceStable(consents, func(i, j int) bool {
		return consents[i].CreatedAt.After(consents[j].CreatedAt)
	})
}
