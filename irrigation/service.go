package irrigation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const (
	// MaxSensorTarget is the top of the boards' 12-bit ADC range.
	MaxSensorTarget = 4095

	DefaultWateringsLimit = 20
	MaxWateringsLimit     = 100
)

// Service implements binding, sensor ingestion, command configuration and
// watering decisions on top of a Store. It holds no plant state of its own.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) CreateBoard(ctx context.Context, boardID int64) (*Board, error) {
	if boardID < 0 {
		return nil, fmt.Errorf("%w: board_id must not be negative", ErrValidation)
	}

	board := Board{BoardID: boardID}
	if err := s.store.InsertBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("create board %d: %w", boardID, err)
	}

	log.Infof("board %d registered", boardID)
	return &board, nil
}

func (s *Service) GetBoard(ctx context.Context, boardID int64) (*Board, error) {
	return s.store.GetBoard(ctx, boardID)
}

func (s *Service) ListBoards(ctx context.Context) ([]Board, error) {
	return s.store.ListBoards(ctx)
}

func (s *Service) DeleteBoard(ctx context.Context, boardID int64) error {
	if err := s.store.DeleteBoard(ctx, boardID); err != nil {
		return fmt.Errorf("delete board %d: %w", boardID, err)
	}
	log.Infof("board %d deleted", boardID)
	return nil
}

// CreatePlant stores a new plant. Readings always start unknown. When
// plant.Board is set the board must exist and be free.
func (s *Service) CreatePlant(ctx context.Context, plant Plant) (*Plant, error) {
	if plant.PlantID < 0 {
		return nil, fmt.Errorf("%w: plant_id must not be negative", ErrValidation)
	}
	if plant.Mode == "" {
		plant.Mode = ModeAuto
	}
	if !plant.Mode.Valid() {
		return nil, fmt.Errorf("%w: invalid mode %q", ErrValidation, plant.Mode)
	}
	if plant.ForceWater == "" {
		plant.ForceWater = ForceWaterInactive
	}
	if !plant.ForceWater.Valid() {
		return nil, fmt.Errorf("%w: invalid force_water %q", ErrValidation, plant.ForceWater)
	}
	if err := validateWateringTime(plant.WateringTime); err != nil {
		return nil, err
	}
	if err := validateTargets(plant.Targets); err != nil {
		return nil, err
	}
	plant.Readings = Readings{}

	if plant.Board != nil {
		if _, err := s.store.GetBoard(ctx, *plant.Board); err != nil {
			return nil, fmt.Errorf("create plant %d: board %d: %w", plant.PlantID, *plant.Board, err)
		}
		if err := s.ensureBoardFree(ctx, *plant.Board, plant.PlantID); err != nil {
			return nil, fmt.Errorf("create plant %d: %w", plant.PlantID, err)
		}
	}

	if err := s.store.InsertPlant(ctx, plant); err != nil {
		return nil, fmt.Errorf("create plant %d: %w", plant.PlantID, err)
	}

	log.Infof("plant %d created in %s mode", plant.PlantID, plant.Mode)
	return &plant, nil
}

func (s *Service) GetPlant(ctx context.Context, plantID int64) (*Plant, error) {
	return s.store.GetPlant(ctx, plantID)
}

func (s *Service) ListPlants(ctx context.Context) ([]Plant, error) {
	return s.store.ListPlants(ctx)
}

func (s *Service) DeletePlant(ctx context.Context, plantID int64) error {
	if err := s.store.DeletePlant(ctx, plantID); err != nil {
		return fmt.Errorf("delete plant %d: %w", plantID, err)
	}
	log.Infof("plant %d deleted", plantID)
	return nil
}

// Bind attaches boardID to plantID. Binding a board to the plant that already
// holds it is a no-op. Moving a plant to a different board clears its
// readings.
func (s *Service) Bind(ctx context.Context, plantID, boardID int64) error {
	plant, err := s.store.GetPlant(ctx, plantID)
	if err != nil {
		return fmt.Errorf("bind plant %d: %w", plantID, err)
	}
	if _, err := s.store.GetBoard(ctx, boardID); err != nil {
		return fmt.Errorf("bind plant %d: board %d: %w", plantID, boardID, err)
	}
	if plant.Board != nil && *plant.Board == boardID {
		return nil
	}
	if err := s.ensureBoardFree(ctx, boardID, plantID); err != nil {
		return fmt.Errorf("bind plant %d: %w", plantID, err)
	}

	if err := s.store.BindBoard(ctx, plantID, boardID); err != nil {
		return fmt.Errorf("bind plant %d to board %d: %w", plantID, boardID, err)
	}

	log.Infof("board %d bound to plant %d", boardID, plantID)
	return nil
}

// Unbind detaches the plant's board and forgets its readings. It succeeds when
// the plant is already unbound.
func (s *Service) Unbind(ctx context.Context, plantID int64) error {
	if err := s.store.UnbindBoard(ctx, plantID); err != nil {
		return fmt.Errorf("unbind plant %d: %w", plantID, err)
	}
	log.Infof("plant %d unbound", plantID)
	return nil
}

func (s *Service) ensureBoardFree(ctx context.Context, boardID, plantID int64) error {
	holder, err := s.store.FindPlantByBoard(ctx, boardID)
	switch {
	case err == nil && holder.PlantID != plantID:
		return fmt.Errorf("%w: board %d is already bound to plant %d", ErrConflict, boardID, holder.PlantID)
	case err == nil, isNotFound(err):
		return nil
	default:
		return err
	}
}

// Ingest stores one sensor value pushed by boardID on its bound plant. Only
// the named field is written.
func (s *Service) Ingest(ctx context.Context, boardID int64, field Field, value float64) error {
	fv, err := readingValue(field, value)
	if err != nil {
		return err
	}
	if err := s.store.UpdateBoundPlantField(ctx, boardID, fv); err != nil {
		return fmt.Errorf("ingest %s from board %d: %w", field, boardID, err)
	}
	return nil
}

func readingValue(field Field, value float64) (FieldValue, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return FieldValue{}, fmt.Errorf("%w: %s must be a finite number", ErrValidation, field)
	}

	switch field {
	case FieldTemperature:
		return FieldValue{Field: field, Value: value}, nil
	case FieldMoisture, FieldLight:
		if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
			return FieldValue{}, fmt.Errorf("%w: %s must be an integer", ErrValidation, field)
		}
		return FieldValue{Field: field, Value: int64(value)}, nil
	}
	return FieldValue{}, fmt.Errorf("%w: %q is not a sensor field", ErrValidation, field)
}

func (s *Service) SetMode(ctx context.Context, plantID int64, mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: invalid mode %q", ErrValidation, mode)
	}
	return s.update(ctx, plantID, FieldValue{Field: FieldMode, Value: mode})
}

// SetTargets writes whichever targets are non-nil and leaves the rest alone.
func (s *Service) SetTargets(ctx context.Context, plantID int64, targets Targets) error {
	if err := validateTargets(targets); err != nil {
		return err
	}

	var values []FieldValue
	if targets.Moisture != nil {
		values = append(values, FieldValue{Field: FieldTargetedMoisture, Value: *targets.Moisture})
	}
	if targets.Temperature != nil {
		values = append(values, FieldValue{Field: FieldTargetedTemperature, Value: *targets.Temperature})
	}
	if targets.Light != nil {
		values = append(values, FieldValue{Field: FieldTargetedLight, Value: *targets.Light})
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: at least one target is required", ErrValidation)
	}

	return s.update(ctx, plantID, values...)
}

func (s *Service) SetForceWater(ctx context.Context, plantID int64, force ForceWater) error {
	if !force.Valid() {
		return fmt.Errorf("%w: invalid force_water %q", ErrValidation, force)
	}
	return s.update(ctx, plantID, FieldValue{Field: FieldForceWater, Value: force})
}

func (s *Service) SetWateringTime(ctx context.Context, plantID int64, ms int64) error {
	if err := validateWateringTime(ms); err != nil {
		return err
	}
	return s.update(ctx, plantID, FieldValue{Field: FieldWateringTime, Value: ms})
}

func (s *Service) update(ctx context.Context, plantID int64, values ...FieldValue) error {
	if err := s.store.UpdatePlantFields(ctx, plantID, values...); err != nil {
		return fmt.Errorf("update plant %d: %w", plantID, err)
	}
	return nil
}

// Poll returns the current command for boardID. The bound plant is read
// fresh on every call.
func (s *Service) Poll(ctx context.Context, boardID int64) (Command, error) {
	plant, err := s.store.FindPlantByBoard(ctx, boardID)
	if err != nil {
		return Command{}, fmt.Errorf("poll board %d: %w", boardID, err)
	}

	cmd := Decide(*plant)
	if cmd.Run {
		log.Debugf("board %d: water plant %d for %dms (%s)", boardID, plant.PlantID, *cmd.DurationMS, cmd.Reason)
	}
	return cmd, nil
}

// Complete records that boardID finished watering and clears force_water on
// its plant. Auto-mode decisions are not affected; they follow the next
// readings.
func (s *Service) Complete(ctx context.Context, boardID int64) (*WateringEvent, error) {
	event := &WateringEvent{
		ID:          uuid.New(),
		BoardID:     boardID,
		CompletedAt: s.now(),
	}
	if err := s.store.CompleteWatering(ctx, event); err != nil {
		return nil, fmt.Errorf("complete watering on board %d: %w", boardID, err)
	}

	log.Infof("board %d finished watering plant %d", boardID, event.PlantID)
	return event, nil
}

func (s *Service) Waterings(ctx context.Context, plantID int64, limit int) ([]WateringEvent, error) {
	if limit < 1 {
		limit = DefaultWateringsLimit
	}
	if limit > MaxWateringsLimit {
		limit = MaxWateringsLimit
	}
	if _, err := s.store.GetPlant(ctx, plantID); err != nil {
		return nil, err
	}
	return s.store.ListWaterings(ctx, plantID, limit)
}

func validateWateringTime(ms int64) error {
	if ms <= 0 {
		return fmt.Errorf("%w: watering_time must be a positive number of milliseconds", ErrValidation)
	}
	return nil
}

func validateTargets(t Targets) error {
	if t.Moisture != nil && (*t.Moisture < 0 || *t.Moisture > MaxSensorTarget) {
		return fmt.Errorf("%w: targeted_moisture must be between 0 and %d", ErrValidation, MaxSensorTarget)
	}
	if t.Light != nil && (*t.Light < 0 || *t.Light > MaxSensorTarget) {
		return fmt.Errorf("%w: targeted_light must be between 0 and %d", ErrValidation, MaxSensorTarget)
	}
	if t.Temperature != nil && (math.IsNaN(*t.Temperature) || math.IsInf(*t.Temperature, 0)) {
		return fmt.Errorf("%w: targeted_temperature must be a finite number", ErrValidation)
	}
	return nil
}
