package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS public_goods_game (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_email TEXT NOT NULL,
		round INTEGER NOT NULL,
		donation INTEGER NOT NULL,
		other_donations JSONB NOT NULL DEFAULT '[]',
		total_donated INTEGER NOT NULL,
		common_pot DOUBLE PRECISION NOT NULL,
		share_received DOUBLE PRECISION NOT NULL,
		payoff DOUBLE PRECISION NOT NULL,
		new_balance DOUBLE PRECISION NOT NULL,
		ts TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS trust_game (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_email TEXT NOT NULL,
		round INTEGER NOT NULL,
		role TEXT NOT NULL,
		payoff DOUBLE PRECISION NOT NULL,
		new_balance DOUBLE PRECISION NOT NULL,
		investment INTEGER NOT NULL DEFAULT 0,
		multiplied_amount INTEGER NOT NULL DEFAULT 0,
		opponent_personality TEXT NOT NULL DEFAULT '',
		return_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		returned_amount INTEGER NOT NULL DEFAULT 0,
		received_amount INTEGER NOT NULL DEFAULT 0,
		return_amount INTEGER NOT NULL DEFAULT 0,
		points_kept INTEGER NOT NULL DEFAULT 0,
		ts TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_matches (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		game_type TEXT NOT NULL,
		matched_personality TEXT NOT NULL,
		personality_description TEXT NOT NULL,
		return_rate_min DOUBLE PRECISION NOT NULL,
		return_rate_max DOUBLE PRECISION NOT NULL,
		ts TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_messages (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		game_type TEXT NOT NULL,
		round INTEGER NOT NULL,
		content TEXT NOT NULL,
		role TEXT NOT NULL,
		ts TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS message_feedback (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		message_id TEXT NOT NULL,
		helpful BOOLEAN NOT NULL,
		ts TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS basic_info (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_email TEXT NOT NULL,
		owner_uid TEXT NOT NULL,
		consent_given BOOLEAN NOT NULL,
		consent_details JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_public_goods_game_user ON public_goods_game (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trust_game_user ON trust_game (user_id, role)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_messages_user ON llm_messages (user_id, game_type)`,
	`CREATE INDEX IF NOT EXISTS idx_basic_info_owner ON basic_info (owner_uid)`,
}

// Migrate creates the schema. Statements are idempotent so it is safe to run
// on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
