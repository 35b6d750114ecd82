package irrigation

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// ParseMode accepts the names and the legacy integer encoding (auto=1,
// manual=0) still sent by older firmware and frontends.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "auto", "1":
		return ModeAuto, nil
	case "manual", "0":
		return ModeManual, nil
	}
	return "", fmt.Errorf("%w: invalid mode %q, must be one of: auto, manual", ErrValidation, s)
}

func (m Mode) Valid() bool {
	return m == ModeAuto || m == ModeManual
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMode(string(bytes.Trim(data, `"`)))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) Value() (driver.Value, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: invalid mode %q", ErrValidation, string(m))
	}
	return string(m), nil
}

func (m *Mode) Scan(src any) error {
	parsed, err := ParseMode(scanString(src))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

type ForceWater string

const (
	ForceWaterActive   ForceWater = "active"
	ForceWaterInactive ForceWater = "inactive"
)

// ParseForceWater accepts the names and the legacy integer encoding
// (active=1, inactive=0).
func ParseForceWater(s string) (ForceWater, error) {
	switch s {
	case "active", "1":
		return ForceWaterActive, nil
	case "inactive", "0":
		return ForceWaterInactive, nil
	}
	return "", fmt.Errorf("%w: invalid force_water %q, must be one of: active, inactive", ErrValidation, s)
}

func (f ForceWater) Valid() bool {
	return f == ForceWaterActive || f == ForceWaterInactive
}

func (f ForceWater) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

func (f *ForceWater) UnmarshalJSON(data []byte) error {
	parsed, err := ParseForceWater(string(bytes.Trim(data, `"`)))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f ForceWater) Value() (driver.Value, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: invalid force_water %q", ErrValidation, string(f))
	}
	return string(f), nil
}

func (f *ForceWater) Scan(src any) error {
	parsed, err := ParseForceWater(scanString(src))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func scanString(src any) string {
	switch v := src.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Field names a single persisted plant column that may be written on its own.
type Field string

const (
	FieldMoisture    Field = "moisture"
	FieldTemperature Field = "temperature"
	FieldLight       Field = "light"

	FieldTargetedMoisture    Field = "targeted_moisture"
	FieldTargetedTemperature Field = "targeted_temperature"
	FieldTargetedLight       Field = "targeted_light"
	FieldMode                Field = "mode"
	FieldForceWater          Field = "force_water"
	FieldWateringTime        Field = "watering_time"
)

// ReadingFields are the fields a board may push.
var ReadingFields = []Field{FieldMoisture, FieldTemperature, FieldLight}

// ParseReadingField resolves a sensor name pushed by a board.
func ParseReadingField(s string) (Field, error) {
	for _, f := range ReadingFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sensor field %q, must be one of: moisture, temperature, light", ErrValidation, s)
}

// FieldValue pairs a column with the value to store in it. A nil Value writes
// NULL.
type FieldValue struct {
	Field Field
	Value any
}

type Board struct {
	BoardID int64
}

type Readings struct {
	Moisture    *int64
	Temperature *float64
	Light       *int64
}

type Targets struct {
	Moisture    *int64
	Temperature *float64
	Light       *int64
}

// Plant is the persisted plant record. Board is nil while unbound, and the
// readings are nil until the bound board first reports them.
type Plant struct {
	PlantID      int64
	Board        *int64
	Name         string
	PlantDate    string
	Mode         Mode
	Readings     Readings
	Targets      Targets
	ForceWater   ForceWater
	WateringTime int64
}

type WateringEvent struct {
	ID          uuid.UUID
	PlantID     int64
	BoardID     int64
	Mode        Mode
	DurationMS  int64
	CompletedAt time.Time
}
