package rest

import (
	"time"

	"plant-irrigation-api/irrigation"
)

type CreatePlantRequest struct {
	PlantID             *int64                `json:"plant_id" validate:"required"`
	Board               *int64                `json:"board"`
	Name                string                `json:"name"`
	PlantDate           string                `json:"plant_date"`
	Mode                irrigation.Mode       `json:"mode"`
	TargetedMoisture    *int64                `json:"targeted_moisture"`
	TargetedTemperature *float64              `json:"targeted_temperature"`
	TargetedLight       *int64                `json:"targeted_light"`
	ForceWater          irrigation.ForceWater `json:"force_water"`
	WateringTime        int64                 `json:"watering_time" validate:"required"`
}

type PlantDetail struct {
	PlantID             int64                 `json:"plant_id"`
	Board               *int64                `json:"board"`
	Name                string                `json:"name"`
	PlantDate           string                `json:"plant_date"`
	Mode                irrigation.Mode       `json:"mode"`
	Moisture            *int64                `json:"moisture"`
	Temperature         *float64              `json:"temperature"`
	Light               *int64                `json:"light"`
	TargetedMoisture    *int64                `json:"targeted_moisture"`
	TargetedTemperature *float64              `json:"targeted_temperature"`
	TargetedLight       *int64                `json:"targeted_light"`
	ForceWater          irrigation.ForceWater `json:"force_water"`
	WateringTime        int64                 `json:"watering_time"`
}

type PlantsListResponse struct {
	Data []PlantDetail `json:"data"`
}

type BindRequest struct {
	BoardID *int64 `json:"board_id" validate:"required"`
}

type ModeRequest struct {
	Mode irrigation.Mode `json:"mode" validate:"required"`
}

type TargetsRequest struct {
	TargetedMoisture    *int64   `json:"targeted_moisture"`
	TargetedTemperature *float64 `json:"targeted_temperature"`
	TargetedLight       *int64   `json:"targeted_light"`
}

type ForceWaterRequest struct {
	ForceWater irrigation.ForceWater `json:"force_water" validate:"required"`
}

type WateringTimeRequest struct {
	WateringTime int64 `json:"watering_time" validate:"required"`
}

type WateringDetail struct {
	ID          string          `json:"id"`
	PlantID     int64           `json:"plant_id"`
	BoardID     int64           `json:"board_id"`
	Mode        irrigation.Mode `json:"mode"`
	DurationMS  int64           `json:"duration_ms"`
	CompletedAt time.Time       `json:"completed_at"`
}

type WateringsListResponse struct {
	Data []WateringDetail `json:"data"`
}

func toPlantDetail(p irrigation.Plant) PlantDetail {
	return PlantDetail{
		PlantID:             p.PlantID,
		Board:               p.Board,
		Name:                p.Name,
		PlantDate:           p.PlantDate,
		Mode:                p.Mode,
		Moisture:            p.Readings.Moisture,
		Temperature:         p.Readings.Temperature,
		Light:               p.Readings.Light,
		TargetedMoisture:    p.Targets.Moisture,
		TargetedTemperature: p.Targets.Temperature,
		TargetedLight:       p.Targets.Light,
		ForceWater:          p.ForceWater,
		WateringTime:        p.WateringTime,
	}
}

func toWateringDetail(e irrigation.WateringEvent) WateringDetail {
	return WateringDetail{
		ID:          e.ID.String(),
		PlantID:     e.PlantID,
		BoardID:     e.BoardID,
		Mode:        e.Mode,
		DurationMS:  e.DurationMS,
		CompletedAt: e.CompletedAt,
	}
}
