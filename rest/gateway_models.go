package rest

type SensorUpdateRequest struct {
	Value *float64 `json:"value" validate:"required"`
}

// PollResponse is the command a board executes. DurationMS is null unless
// WaterStatus is active.
type PollResponse struct {
	WaterStatus string `json:"water_status"`
	DurationMS  *int64 `json:"duration_ms"`
	Reason      string `json:"reason,omitempty"`
}

type StopResponse struct {
	Message  string         `json:"message"`
	Watering WateringDetail `json:"watering"`
}
