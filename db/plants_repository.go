package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"plant-irrigation-api/irrigation"
)

func (s *Store) InsertPlant(ctx context.Context, plant irrigation.Plant) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plants (`+plantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		plant.PlantID,
		nullableInt(plant.Board),
		plant.Name,
		plant.PlantDate,
		plant.Mode,
		nullableInt(plant.Readings.Moisture),
		nullableFloat(plant.Readings.Temperature),
		nullableInt(plant.Readings.Light),
		nullableInt(plant.Targets.Moisture),
		nullableFloat(plant.Targets.Temperature),
		nullableInt(plant.Targets.Light),
		plant.ForceWater,
		plant.WateringTime,
	)
	if err != nil {
		return classify("failed to create plant", err)
	}
	return nil
}

func (s *Store) GetPlant(ctx context.Context, plantID int64) (*irrigation.Plant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+plantColumns+" FROM plants WHERE plant_id = $1", plantID)
	plant, err := scanPlant(row)
	if err != nil {
		return nil, classify(fmt.Sprintf("failed to get plant %d", plantID), err)
	}
	return plant, nil
}

func (s *Store) FindPlantByBoard(ctx context.Context, boardID int64) (*irrigation.Plant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+plantColumns+" FROM plants WHERE board_id = $1", boardID)
	plant, err := scanPlant(row)
	if err != nil {
		return nil, classify(fmt.Sprintf("no plant bound to board %d", boardID), err)
	}
	return plant, nil
}

func (s *Store) ListPlants(ctx context.Context) ([]irrigation.Plant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT "+plantColumns+" FROM plants ORDER BY plant_id")
	if err != nil {
		return nil, classify("failed to query plants", err)
	}
	defer rows.Close()

	plants := []irrigation.Plant{}
	for rows.Next() {
		plant, err := scanPlant(rows)
		if err != nil {
			return nil, classify("failed to scan plant", err)
		}
		plants = append(plants, *plant)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("error iterating plants", err)
	}
	return plants, nil
}

func (s *Store) DeletePlant(ctx context.Context, plantID int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM plants WHERE plant_id = $1", plantID)
	if err != nil {
		return classify("failed to delete plant", err)
	}
	return requireAffected(result, fmt.Sprintf("plant %d", plantID))
}

func setClause(values []irrigation.FieldValue, firstParam int) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, fmt.Errorf("%w: no fields to update", irrigation.ErrValidation)
	}

	assignments := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		column, ok := plantFieldColumns[v.Field]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown plant field %q", irrigation.ErrValidation, v.Field)
		}
		assignments[i] = fmt.Sprintf("%s = $%d", column, firstParam+i)
		args[i] = v.Value
	}
	return strings.Join(assignments, ", "), args, nil
}

func (s *Store) UpdatePlantFields(ctx context.Context, plantID int64, values ...irrigation.FieldValue) error {
	set, args, err := setClause(values, 1)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("UPDATE plants SET %s WHERE plant_id = $%d", set, len(args)+1)
	result, err := s.db.ExecContext(ctx, query, append(args, plantID)...)
	if err != nil {
		return classify("failed to update plant", err)
	}
	return requireAffected(result, fmt.Sprintf("plant %d", plantID))
}

func (s *Store) UpdateBoundPlantField(ctx context.Context, boardID int64, value irrigation.FieldValue) error {
	set, args, err := setClause([]irrigation.FieldValue{value}, 1)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("UPDATE plants SET %s WHERE board_id = $2", set)
	result, err := s.db.ExecContext(ctx, query, append(args, boardID)...)
	if err != nil {
		return classify("failed to update bound plant", err)
	}
	return requireAffected(result, fmt.Sprintf("plant bound to board %d", boardID))
}

func (s *Store) BindBoard(ctx context.Context, plantID, boardID int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// Readings survive only when the board is unchanged. The NOT EXISTS guard
	// and the unique index on board_id together keep a board on one plant.
	result, err := s.db.ExecContext(ctx, `
		UPDATE plants
		SET board_id = $1,
			moisture = CASE WHEN board_id = $2 THEN moisture ELSE NULL END,
			temperature = CASE WHEN board_id = $3 THEN temperature ELSE NULL END,
			light = CASE WHEN board_id = $4 THEN light ELSE NULL END
		WHERE plant_id = $5
		AND NOT EXISTS (
			SELECT 1 FROM plants other
			WHERE other.board_id = $6 AND other.plant_id <> $7
		)
	`, boardID, boardID, boardID, boardID, plantID, boardID, plantID)
	if err != nil {
		return classify("failed to bind board", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return classify("failed to bind board", err)
	}
	if n > 0 {
		return nil
	}

	if _, err := s.GetPlant(ctx, plantID); err != nil {
		return err
	}
	return fmt.Errorf("board %d is already bound to another plant: %w", boardID, irrigation.ErrConflict)
}

func (s *Store) UnbindBoard(ctx context.Context, plantID int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `
		UPDATE plants
		SET board_id = NULL, moisture = NULL, temperature = NULL, light = NULL
		WHERE plant_id = $1
	`, plantID)
	if err != nil {
		return classify("failed to unbind board", err)
	}
	return requireAffected(result, fmt.Sprintf("plant %d", plantID))
}

func requireAffected(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return classify("failed to read affected rows", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, irrigation.ErrNotFound)
	}
	return nil
}
