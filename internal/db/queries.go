package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

// Keys used in the dashboard_stats table.
const (
	StatTotalTokens    = "total_tokens"
	StatTotalUsers     = "total_users"
	StatTotalFeedbacks = "total_feedbacks"
	StatActiveSessions = "active_sessions"
	StatLastFetchedAt  = "last_fetched_at"
)

// ReplaceUsageRecords swaps the cached usage records for a fresh set.
// The cache always holds exactly the last successful fetch.
func (db *DB) ReplaceUsageRecords(records []models.UsageRecord) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM usage_records"); err != nil {
		return fmt.Errorf("failed to clear usage records: %w", err)
	}

	query := `
		INSERT INTO usage_records (
			user_id, user_name, user_email, created_at,
			total_input_tokens, total_output_tokens
		) VALUES (?, ?, ?, ?, ?, ?)
	`
	for i := range records {
		r := &records[i]
		_, err := tx.ExecContext(ctx, query,
			r.UserID,
			nullString(r.UserName),
			nullString(r.UserEmail),
			r.CreatedAt,
			r.TotalInputTokens,
			r.TotalOutputTokens,
		)
		if err != nil {
			return fmt.Errorf("failed to insert usage record: %w", err)
		}
	}

	return tx.Commit()
}

// GetUsageRecords returns the cached usage records, newest first.
func (db *DB) GetUsageRecords() ([]models.UsageRecord, error) {
	query := `
		SELECT user_id, user_name, user_email, created_at,
			   total_input_tokens, total_output_tokens
		FROM usage_records
		ORDER BY created_at DESC
	`

	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.UsageRecord
	for rows.Next() {
		var r models.UsageRecord
		var name, email sql.NullString

		err := rows.Scan(
			&r.UserID,
			&name,
			&email,
			&r.CreatedAt,
			&r.TotalInputTokens,
			&r.TotalOutputTokens,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usage record: %w", err)
		}

		r.UserName = name.String
		r.UserEmail = email.String
		records = append(records, r)
	}

	return records, rows.Err()
}

// SetStat upserts a cached dashboard statistic.
func (db *DB) SetStat(key, value string) error {
	query := `
		INSERT INTO dashboard_stats (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := db.ExecContext(context.Background(), query, key, value); err != nil {
		return fmt.Errorf("failed to set stat %s: %w", key, err)
	}
	return nil
}

// GetStat returns a cached dashboard statistic.
func (db *DB) GetStat(key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(context.Background(),
		"SELECT value FROM dashboard_stats WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get stat %s: %w", key, err)
	}
	return value, true, nil
}

// nullString converts an empty string to a NULL value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
