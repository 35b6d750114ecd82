package db

import (
	"database/sql"

	"plant-irrigation-api/irrigation"
)

const plantColumns = `plant_id, board_id, name, plant_date, mode,
	moisture, temperature, light,
	targeted_moisture, targeted_temperature, targeted_light,
	force_water, watering_time`

// plantFieldColumns is the only source of column names used in dynamic
// UPDATE statements.
var plantFieldColumns = map[irrigation.Field]string{
	irrigation.FieldMoisture:            "moisture",
	irrigation.FieldTemperature:         "temperature",
	irrigation.FieldLight:               "light",
	irrigation.FieldTargetedMoisture:    "targeted_moisture",
	irrigation.FieldTargetedTemperature: "targeted_temperature",
	irrigation.FieldTargetedLight:       "targeted_light",
	irrigation.FieldMode:                "mode",
	irrigation.FieldForceWater:          "force_water",
	irrigation.FieldWateringTime:        "watering_time",
}

type rowScanner interface {
	Scan(dest ...any) error
}

type plantRow struct {
	PlantID             int64
	BoardID             sql.NullInt64
	Name                string
	PlantDate           string
	Mode                irrigation.Mode
	Moisture            sql.NullInt64
	Temperature         sql.NullFloat64
	Light               sql.NullInt64
	TargetedMoisture    sql.NullInt64
	TargetedTemperature sql.NullFloat64
	TargetedLight       sql.NullInt64
	ForceWater          irrigation.ForceWater
	WateringTime        int64
}

func scanPlant(row rowScanner) (*irrigation.Plant, error) {
	var r plantRow
	err := row.Scan(
		&r.PlantID,
		&r.BoardID,
		&r.Name,
		&r.PlantDate,
		&r.Mode,
		&r.Moisture,
		&r.Temperature,
		&r.Light,
		&r.TargetedMoisture,
		&r.TargetedTemperature,
		&r.TargetedLight,
		&r.ForceWater,
		&r.WateringTime,
	)
	if err != nil {
		return nil, err
	}
	return r.toPlant(), nil
}

func (r plantRow) toPlant() *irrigation.Plant {
	return &irrigation.Plant{
		PlantID:   r.PlantID,
		Board:     intPtr(r.BoardID),
		Name:      r.Name,
		PlantDate: r.PlantDate,
		Mode:      r.Mode,
		Readings: irrigation.Readings{
			Moisture:    intPtr(r.Moisture),
			Temperature: floatPtr(r.Temperature),
			Light:       intPtr(r.Light),
		},
		Targets: irrigation.Targets{
			Moisture:    intPtr(r.TargetedMoisture),
			Temperature: floatPtr(r.TargetedTemperature),
			Light:       intPtr(r.TargetedLight),
		},
		ForceWater:   r.ForceWater,
		WateringTime: r.WateringTime,
	}
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
