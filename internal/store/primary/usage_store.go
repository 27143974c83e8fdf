package primary

import (
	"context"
	"fmt"

	"plume/internal/models"
	"plume/internal/store"
)

// --- AI Usage Accounting ---

func (s *StoreImpl) RecordUsage(ctx context.Context, entry *models.AIUsageLog) error {
	query := `
		INSERT INTO ai_usage_logs
			(timestamp, request_id, provider_name, operation, model_name, content_length, duration_ms, success)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := s.db.QueryRow(ctx, query,
		entry.Timestamp, entry.RequestID, entry.ProviderName, entry.Operation,
		entry.ModelName, entry.ContentLength, entry.DurationMs, entry.Success,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}

func (s *StoreImpl) ListUsage(ctx context.Context, limit, offset int) ([]*models.AIUsageLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT id, timestamp, request_id, provider_name, operation, model_name, content_length, duration_ms, success
		FROM ai_usage_logs
		ORDER BY timestamp DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.AIUsageLog
	for rows.Next() {
		entry := &models.AIUsageLog{}
		err := rows.Scan(
			&entry.ID, &entry.Timestamp, &entry.RequestID, &entry.ProviderName,
			&entry.Operation, &entry.ModelName, &entry.ContentLength, &entry.DurationMs, &entry.Success,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usage log row: %w", err)
		}
		logs = append(logs, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage log rows: %w", err)
	}
	return logs, nil
}

func (s *StoreImpl) GetUsageSummary(ctx context.Context) (int64, int64, float64, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT success), COALESCE(AVG(duration_ms), 0)
		FROM ai_usage_logs`

	var total, failed int64
	var avgDuration float64
	err := s.db.QueryRow(ctx, query).Scan(&total, &failed, &avgDuration)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to summarize usage logs: %w", err)
	}
	return total, failed, avgDuration, nil
}

var _ store.UsageStore = (*StoreImpl)(nil)
