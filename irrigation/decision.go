package irrigation

// Reason names the condition that produced a watering decision.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonTemperature Reason = "temperature"
	ReasonMoisture    Reason = "moisture"
	ReasonLight       Reason = "light"
	ReasonForceWater  Reason = "force_water"
)

// Command is what a polling board should execute. DurationMS is set only when
// Run is true.
type Command struct {
	Run        bool
	DurationMS *int64
	Reason     Reason
}

func idle() Command {
	return Command{}
}

func water(p Plant, reason Reason) Command {
	d := p.WateringTime
	return Command{Run: true, DurationMS: &d, Reason: reason}
}

// Decide computes the watering command for p. It has no side effects, so
// deciding twice on the same plant state yields the same command.
//
// In auto mode the deficits are checked in a fixed order (temperature,
// moisture, light) and the first one found wins. A reading or target that was
// never set never counts as a deficit. In manual mode only force_water
// matters.
func Decide(p Plant) Command {
	switch p.Mode {
	case ModeAuto:
		if deficitFloat(p.Targets.Temperature, p.Readings.Temperature) {
			return water(p, ReasonTemperature)
		}
		if deficitInt(p.Targets.Moisture, p.Readings.Moisture) {
			return water(p, ReasonMoisture)
		}
		if deficitInt(p.Targets.Light, p.Readings.Light) {
			return water(p, ReasonLight)
		}
		return idle()
	case ModeManual:
		if p.ForceWater == ForceWaterActive {
			return water(p, ReasonForceWater)
		}
		return idle()
	}
	return idle()
}

func deficitInt(target, reading *int64) bool {
	return target != nil && reading != nil && *target > *reading
}

func deficitFloat(target, reading *float64) bool {
	return target != nil && reading != nil && *target > *reading
}
