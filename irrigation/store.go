package irrigation

import "context"

// Store is the record store the service runs against. Implementations must
// apply every write as a single statement (or transaction) naming only the
// columns it changes, so concurrent writers of different fields never lose
// each other's updates. Reads must not be cached across calls.
type Store interface {
	Ping(ctx context.Context) error

	InsertBoard(ctx context.Context, board Board) error
	GetBoard(ctx context.Context, boardID int64) (*Board, error)
	ListBoards(ctx context.Context) ([]Board, error)
	// DeleteBoard releases any plant bound to the board, clearing its
	// readings, before removing the board.
	DeleteBoard(ctx context.Context, boardID int64) error

	InsertPlant(ctx context.Context, plant Plant) error
	GetPlant(ctx context.Context, plantID int64) (*Plant, error)
	FindPlantByBoard(ctx context.Context, boardID int64) (*Plant, error)
	ListPlants(ctx context.Context) ([]Plant, error)
	DeletePlant(ctx context.Context, plantID int64) error

	// UpdatePlantFields writes the given columns of one plant.
	UpdatePlantFields(ctx context.Context, plantID int64, values ...FieldValue) error
	// UpdateBoundPlantField writes one column of whichever plant is bound to
	// boardID, resolving the binding and writing in one statement.
	UpdateBoundPlantField(ctx context.Context, boardID int64, value FieldValue) error

	// BindBoard attaches boardID to plantID. It fails with ErrConflict when
	// the board is held by another plant, including when a concurrent bind
	// wins the race.
	BindBoard(ctx context.Context, plantID, boardID int64) error
	// UnbindBoard detaches any board from plantID and clears its readings.
	UnbindBoard(ctx context.Context, plantID int64) error

	// CompleteWatering clears force_water on the plant bound to event.BoardID
	// and records the event. PlantID, Mode and DurationMS are filled in from
	// the plant as it was at completion.
	CompleteWatering(ctx context.Context, event *WateringEvent) error
	ListWaterings(ctx context.Context, plantID int64, limit int) ([]WateringEvent, error)
}
