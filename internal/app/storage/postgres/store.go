package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecoplay/game-service/internal/app/domain/consent"
	"github.com/ecoplay/game-service/internal/app/domain/game"
	"github.com/ecoplay/game-service/internal/app/domain/match"
	"github.com/ecoplay/game-service/internal/app/domain/message"
	"github.com/ecoplay/game-service/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.GameStore = (*Store)(nil)
var _ storage.MatchStore = (*Store)(nil)
var _ storage.MessageStore = (*Store)(nil)
var _ storage.ConsentStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// --- GameStore --------------------------------------------------------------

func (s *Store) CreatePublicGoodsRound(ctx context.Context, rec game.PublicGoodsRecord) (game.PublicGoodsRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	othersJSON, err := json.Marshal(rec.OtherDonations)
	if err != nil {
		return game.PublicGoodsRecord{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO public_goods_game (id, user_id, user_email, round, donation, other_donations, total_donated, common_pot, share_received, payoff, new_balance, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, rec.ID, rec.UserID, rec.UserEmail, rec.Round, rec.Donation, othersJSON, rec.TotalDonated, rec.CommonPot, rec.ShareReceived, rec.Payoff, rec.NewBalance, rec.Timestamp)
	if err != nil {
		return game.PublicGoodsRecord{}, err
	}
	return rec, nil
}

func (s *Store) ListPublicGoodsRounds(ctx context.Context, userID string) ([]game.PublicGoodsRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, user_email, round, donation, other_donations, total_donated, common_pot, share_received, payoff, new_balance, ts
		FROM public_goods_game
		WHERE user_id = $1
		ORDER BY round
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []game.PublicGoodsRecord
	for rows.Next() {
		var (
			rec       game.PublicGoodsRecord
			othersRaw []byte
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.UserEmail, &rec.Round, &rec.Donation, &othersRaw, &rec.TotalDonated, &rec.CommonPot, &rec.ShareReceived, &rec.Payoff, &rec.NewBalance, &rec.Timestamp); err != nil {
			return nil, err
		}
		if len(othersRaw) > 0 {
			_ = json.Unmarshal(othersRaw, &rec.OtherDonations)
		}
		rec.GameType = game.GameTypePublicGoods
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (s *Store) CreateTrustRound(ctx context.Context, rec game.TrustRecord) (game.TrustRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trust_game (id, user_id, user_email, round, role, payoff, new_balance, investment, multiplied_amount, opponent_personality, return_rate, returned_amount, received_amount, return_amount, points_kept, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, rec.ID, rec.UserID, rec.UserEmail, rec.Round, string(rec.Role), rec.Payoff, rec.NewBalance,
		rec.Investment, rec.MultipliedAmount, rec.Personality, rec.ReturnRate, rec.ReturnedAmount,
		rec.ReceivedAmount, rec.ReturnAmount, rec.PointsKept, rec.Timestamp)
	if err != nil {
		return game.TrustRecord{}, err
	}
	return rec, nil
}

func (s *Store) ListTrustRounds(ctx context.Context, userID string, role game.Role) ([]game.TrustRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, user_email, round, role, payoff, new_balance, investment, multiplied_amount, opponent_personality, return_rate, returned_amount, received_amount, return_amount, points_kept, ts
		FROM trust_game
		WHERE user_id = $1 AND ($2 = '' OR role = $2)
		ORDER BY round
	`, userID, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []game.TrustRecord
	for rows.Next() {
		var (
			rec     game.TrustRecord
			roleStr string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.UserEmail, &rec.Round, &roleStr, &rec.Payoff, &rec.NewBalance,
			&rec.Investment, &rec.MultipliedAmount, &rec.Personality, &rec.ReturnRate, &rec.ReturnedAmount,
			&rec.ReceivedAmount, &rec.ReturnAmount, &rec.PointsKept, &rec.Timestamp); err != nil {
			return nil, err
		}
		rec.Role = game.Role(roleStr)
		rec.GameType = game.GameTypeTrust
		result = append(result, rec)
	}
	return result, rows.Err()
}

// --- MatchStore -------------------------------------------------------------

func (s *Store) CreateMatch(ctx context.Context, m match.Match) (match.Match, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_matches (id, user_id, game_type, matched_personality, personality_description, return_rate_min, return_rate_max, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, m.ID, m.UserID, m.GameType, m.Personality, m.Description, m.ReturnRateRange[0], m.ReturnRateRange[1], m.Timestamp)
	if err != nil {
		return match.Match{}, err
	}
	return m, nil
}

func (s *Store) ListMatches(ctx context.Context, userID string) ([]match.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, game_type, matched_personality, personality_description, return_rate_min, return_rate_max, ts
		FROM game_matches
		WHERE user_id = $1
		ORDER BY ts
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []match.Match
	for rows.Next() {
		var m match.Match
		if err := rows.Scan(&m.ID, &m.UserID, &m.GameType, &m.Personality, &m.Description, &m.ReturnRateRange[0], &m.ReturnRateRange[1], &m.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// --- MessageStore -----------------------------------------------------------

func (s *Store) CreateMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO llm_messages (id, user_id, game_type, round, content, role, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, msg.ID, msg.UserID, msg.GameType, msg.Round, msg.Content, msg.Role, msg.Timestamp)
	if err != nil {
		return message.Message{}, err
	}
	return msg, nil
}

func (s *Store) ListMessages(ctx context.Context, userID string, gameType string) ([]message.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, game_type, round, content, role, ts
		FROM llm_messages
		WHERE user_id = $1 AND ($2 = '' OR game_type = $2)
		ORDER BY ts
	`, userID, gameType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []message.Message
	for rows.Next() {
		var msg message.Message
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.GameType, &msg.Round, &msg.Content, &msg.Role, &msg.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (s *Store) CreateFeedback(ctx context.Context, fb message.Feedback) (message.Feedback, error) {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.Timestamp.IsZero() {
		fb.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO message_feedback (id, user_id, message_id, helpful, ts)
		VALUES ($1, $2, $3, $4, $5)
	`, fb.ID, fb.UserID, fb.MessageID, fb.Helpful, fb.Timestamp)
	if err != nil {
		return message.Feedback{}, err
	}
	return fb, nil
}

// --- ConsentStore -----------------------------------------------------------

func (s *Store) CreateConsent(ctx context.Context, c consent.Consent) (consent.Consent, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	detailsJSON, err := json.Marshal(c.Details)
	if err != nil {
		return consent.Consent{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO basic_info (id, user_id, user_email, owner_uid, consent_given, consent_details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.UserID, c.UserEmail, c.OwnerUID, c.Given, detailsJSON, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return consent.Consent{}, err
	}
	return c, nil
}

func (s *Store) GetConsent(ctx context.Context, id string) (consent.Consent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, user_email, owner_uid, consent_given, consent_details, created_at, updated_at
		FROM basic_info
		WHERE id = $1
	`, id)
	c, err := scanConsent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return consent.Consent{}, fmt.Errorf("consent %s: %w", id, storage.ErrNotFound)
	}
	return c, err
}

func (s *Store) ListConsentsByUser(ctx context.Context, userID string) ([]consent.Consent, error) {
	return s.listConsents(ctx, `
		SELECT id, user_id, user_email, owner_uid, consent_given, consent_details, created_at, updated_at
		FROM basic_info
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

func (s *Store) ListConsentsByOwner(ctx context.Context, ownerUID string) ([]consent.Consent, error) {
	return s.listConsents(ctx, `
		SELECT id, user_id, user_email, owner_uid, consent_given, consent_details, created_at, updated_at
		FROM basic_info
		WHERE owner_uid = $1
		ORDER BY created_at DESC
	`, ownerUID)
}

func (s *Store) listConsents(ctx context.Context, query string, arg string) ([]consent.Consent, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []consent.Consent
	for rows.Next() {
		c, err := scanConsent(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *Store) UpdateConsent(ctx context.Context, c consent.Consent) (consent.Consent, error) {
	existing, err := s.GetConsent(ctx, c.ID)
	if err != nil {
		return consent.Consent{}, err
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()

	detailsJSON, err := json.Marshal(c.Details)
	if err != nil {
		return consent.Consent{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE basic_info
		SET consent_given = $2, consent_details = $3, updated_at = $4
		WHERE id = $1
	`, c.ID, c.Given, detailsJSON, c.UpdatedAt)
	if err != nil {
		return consent.Consent{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return consent.Consent{}, fmt.Errorf("consent %s: %w", c.ID, storage.ErrNotFound)
	}
	return c, nil
}

func (s *Store) DeleteConsent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM basic_info WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("consent %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func scanConsent(scan func(dest ...any) error) (consent.Consent, error) {
	var (
		c          consent.Consent
		detailsRaw []byte
	)
	if err := scan(&c.ID, &c.UserID, &c.UserEmail, &c.OwnerUID, &c.Given, &detailsRaw, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return consent.Consent{}, err
	}
	if len(detailsRaw) > 0 {
		_ = json.Unmarshal(detailsRaw, &c.Details)
	}
	return c, nil
}
