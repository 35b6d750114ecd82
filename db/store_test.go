package db

import (
	"context"
	"testing"
	"time"

	"plant-irrigation-api/irrigation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(Config{Driver: DriverSQLite, Database: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.RunMigrations(context.Background()))
	return store
}

func insertPlant(t *testing.T, store *Store, plantID int64) {
	t.Helper()

	err := store.InsertPlant(context.Background(), irrigation.Plant{
		PlantID:      plantID,
		Name:         "fern",
		PlantDate:    "2026-04-01",
		Mode:         irrigation.ModeAuto,
		ForceWater:   irrigation.ForceWaterInactive,
		WateringTime: 1500,
	})
	require.NoError(t, err)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "mongodb"})
	assert.Error(t, err)
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RunMigrations(ctx))

	version, err := store.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestMigrationFilesAreOrdered(t *testing.T) {
	migrations, err := getMigrationFiles()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "create_boards_and_plants", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
}

func TestInsertDuplicateKeysConflict(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertBoard(ctx, irrigation.Board{BoardID: 7}))
	assert.ErrorIs(t, store.InsertBoard(ctx, irrigation.Board{BoardID: 7}), irrigation.ErrConflict)

	insertPlant(t, store, 3)
	err := store.InsertPlant(ctx, irrigation.Plant{
		PlantID:      3,
		Mode:         irrigation.ModeManual,
		ForceWater:   irrigation.ForceWaterInactive,
		WateringTime: 10,
	})
	assert.ErrorIs(t, err, irrigation.ErrConflict)
}

func TestGetMissingRecordsNotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.GetBoard(ctx, 1)
	assert.ErrorIs(t, err, irrigation.ErrNotFound)

	_, err = store.GetPlant(ctx, 1)
	assert.ErrorIs(t, err, irrigation.ErrNotFound)

	_, err = store.FindPlantByBoard(ctx, 1)
	assert.ErrorIs(t, err, irrigation.ErrNotFound)

	assert.ErrorIs(t, store.DeletePlant(ctx, 1), irrigation.ErrNotFound)
}

func TestPlantRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	insertPlant(t, store, 3)

	plant, err := store.GetPlant(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "fern", plant.Name)
	assert.Equal(t, "2026-04-01", plant.PlantDate)
	assert.Equal(t, irrigation.ModeAuto, plant.Mode)
	assert.Equal(t, irrigation.ForceWaterInactive, plant.ForceWater)
	assert.Equal(t, int64(1500), plant.WateringTime)
	assert.Nil(t, plant.Board)
	assert.Nil(t, plant.Readings.Moisture)
	assert.Nil(t, plant.Targets.Temperature)

	plants, err := store.ListPlants(ctx)
	require.NoError(t, err)
	assert.Len(t, plants, 1)
}

func TestUpdatePlantFieldsWritesNamedColumns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	insertPlant(t, store, 3)

	err := store.UpdatePlantFields(ctx, 3,
		irrigation.FieldValue{Field: irrigation.FieldTargetedLight, Value: int64(1200)},
		irrigation.FieldValue{Field: irrigation.FieldMode, Value: irrigation.ModeManual},
	)
	require.NoError(t, err)

	plant, err := store.GetPlant(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, plant.Targets.Light)
	assert.Equal(t, int64(1200), *plant.Targets.Light)
	assert.Equal(t, irrigation.ModeManual, plant.Mode)
	assert.Equal(t, int64(1500), plant.WateringTime)

	err = store.UpdatePlantFields(ctx, 3, irrigation.FieldValue{Field: "name; DROP TABLE plants", Value: "x"})
	assert.ErrorIs(t, err, irrigation.ErrValidation)

	assert.ErrorIs(t, store.UpdatePlantFields(ctx, 3), irrigation.ErrValidation)

	err = store.UpdatePlantFields(ctx, 3, irrigation.FieldValue{Field: irrigation.FieldWateringTime, Value: int64(0)})
	assert.ErrorIs(t, err, irrigation.ErrValidation)

	err = store.UpdatePlantFields(ctx, 404, irrigation.FieldValue{Field: irrigation.FieldWateringTime, Value: int64(5)})
	assert.ErrorIs(t, err, irrigation.ErrNotFound)
}

func TestBindBoardEnforcesOneBoardPerPlant(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertBoard(ctx, irrigation.Board{BoardID: 7}))
	insertPlant(t, store, 3)
	insertPlant(t, store, 9)

	require.NoError(t, store.BindBoard(ctx, 9, 7))
	assert.ErrorIs(t, store.BindBoard(ctx, 3, 7), irrigation.ErrConflict)
	assert.ErrorIs(t, store.BindBoard(ctx, 404, 7), irrigation.ErrNotFound)

	plant, err := store.FindPlantByBoard(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(9), plant.PlantID)
}

func TestBindBoardRequiresExistingBoard(t *testing.T) {
	store := openTestStore(t)
	insertPlant(t, store, 3)

	err := store.BindBoard(context.Background(), 3, 42)
	assert.ErrorIs(t, err, irrigation.ErrNotFound)
}

func TestUpdateBoundPlantFieldAndUnbind(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertBoard(ctx, irrigation.Board{BoardID: 7}))
	insertPlant(t, store, 3)
	require.NoError(t, store.BindBoard(ctx, 3, 7))

	require.NoError(t, store.UpdateBoundPlantField(ctx, 7, irrigation.FieldValue{Field: irrigation.FieldMoisture, Value: int64(410)}))
	require.NoError(t, store.UpdateBoundPlantField(ctx, 7, irrigation.FieldValue{Field: irrigation.FieldTemperature, Value: 19.5}))

	plant, err := store.GetPlant(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(410), *plant.Readings.Moisture)
	assert.InDelta(t, 19.5, *plant.Readings.Temperature, 1e-9)

	require.NoError(t, store.UnbindBoard(ctx, 3))
	plant, err = store.GetPlant(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, plant.Board)
	assert.Nil(t, plant.Readings.Moisture)
	assert.Nil(t, plant.Readings.Temperature)

	err = store.UpdateBoundPlantField(ctx, 7, irrigation.FieldValue{Field: irrigation.FieldLight, Value: int64(1)})
	assert.ErrorIs(t, err, irrigation.ErrNotFound)
}

func TestCompleteWateringRecordsEvents(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertBoard(ctx, irrigation.Board{BoardID: 7}))
	insertPlant(t, store, 3)
	require.NoError(t, store.BindBoard(ctx, 3, 7))
	require.NoError(t, store.UpdatePlantFields(ctx, 3, irrigation.FieldValue{Field: irrigation.FieldForceWater, Value: irrigation.ForceWaterActive}))

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		event := &irrigation.WateringEvent{
			ID:          uuid.New(),
			BoardID:     7,
			CompletedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.CompleteWatering(ctx, event))
		assert.Equal(t, int64(3), event.PlantID)
		assert.Equal(t, int64(1500), event.DurationMS)
	}

	plant, err := store.GetPlant(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, irrigation.ForceWaterInactive, plant.ForceWater)

	events, err := store.ListWaterings(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, base.Add(2*time.Minute).Equal(events[0].CompletedAt))
	assert.True(t, base.Add(time.Minute).Equal(events[1].CompletedAt))
	assert.Equal(t, irrigation.ModeAuto, events[0].Mode)

	err = store.CompleteWatering(ctx, &irrigation.WateringEvent{ID: uuid.New(), BoardID: 8, CompletedAt: base})
	assert.ErrorIs(t, err, irrigation.ErrNotFound)
}

func TestDeletePlantCascadesWaterings(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertBoard(ctx, irrigation.Board{BoardID: 7}))
	insertPlant(t, store, 3)
	require.NoError(t, store.BindBoard(ctx, 3, 7))
	require.NoError(t, store.CompleteWatering(ctx, &irrigation.WateringEvent{ID: uuid.New(), BoardID: 7, CompletedAt: time.Now()}))

	require.NoError(t, store.DeletePlant(ctx, 3))

	events, err := store.ListWaterings(ctx, 3, 10)
	require.NoError(t, err)
	assert.Empty(t, events)

	boards, err := store.ListBoards(ctx)
	require.NoError(t, err)
	assert.Equal(t, []irrigation.Board{{BoardID: 7}}, boards)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify("noop", nil))
	assert.ErrorIs(t, classify("op", context.DeadlineExceeded), irrigation.ErrUnavailable)
	assert.ErrorIs(t, classify("op", context.Canceled), context.Canceled)
	assert.NotErrorIs(t, classify("op", context.Canceled), irrigation.ErrUnavailable)
}

func TestConfigDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		Config{Driver: DriverSQLite}.dsn())
	assert.Equal(t, "file:/var/lib/irrigation.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		Config{Driver: DriverSQLite, Database: "/var/lib/irrigation.db"}.dsn())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=irrigation sslmode=disable",
		Config{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", Database: "irrigation", SSLMode: "disable"}.dsn())
}

func TestConfigApplyEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", "plants.db")
	t.Setenv("DB_QUERY_TIMEOUT", "750ms")

	cfg := GetConfigFromEnv()
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "plants.db", cfg.Database)
	assert.Equal(t, 750*time.Millisecond, cfg.QueryTimeout)
	assert.Equal(t, "localhost", cfg.Host)
}
