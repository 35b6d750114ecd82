package db

import (
	"context"
	"fmt"
	"time"

	"plant-irrigation-api/irrigation"

	"github.com/google/uuid"
)

func (s *Store) CompleteWatering(ctx context.Context, event *irrigation.WateringEvent) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("failed to begin transaction", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"SELECT plant_id, mode, watering_time FROM plants WHERE board_id = $1",
		event.BoardID,
	).Scan(&event.PlantID, &event.Mode, &event.DurationMS)
	if err != nil {
		return classify(fmt.Sprintf("no plant bound to board %d", event.BoardID), err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE plants SET force_water = $1 WHERE board_id = $2",
		irrigation.ForceWaterInactive, event.BoardID,
	)
	if err != nil {
		return classify("failed to clear force_water", err)
	}
	if err := requireAffected(result, fmt.Sprintf("plant bound to board %d", event.BoardID)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO watering_events (id, plant_id, board_id, mode, duration_ms, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		event.ID.String(),
		event.PlantID,
		event.BoardID,
		event.Mode,
		event.DurationMS,
		event.CompletedAt.UnixMilli(),
	); err != nil {
		return classify("failed to record watering event", err)
	}

	if err := tx.Commit(); err != nil {
		return classify("failed to commit watering completion", err)
	}
	return nil
}

func (s *Store) ListWaterings(ctx context.Context, plantID int64, limit int) ([]irrigation.WateringEvent, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plant_id, board_id, mode, duration_ms, completed_at
		FROM watering_events
		WHERE plant_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`, plantID, limit)
	if err != nil {
		return nil, classify("failed to query watering events", err)
	}
	defer rows.Close()

	events := []irrigation.WateringEvent{}
	for rows.Next() {
		var (
			event       irrigation.WateringEvent
			id          string
			completedAt int64
		)
		if err := rows.Scan(&id, &event.PlantID, &event.BoardID, &event.Mode, &event.DurationMS, &completedAt); err != nil {
			return nil, classify("failed to scan watering event", err)
		}
		if event.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("watering event has malformed id %q: %w", id, err)
		}
		event.CompletedAt = time.UnixMilli(completedAt).UTC()
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("error iterating watering events", err)
	}
	return events, nil
}
