package analysis

// Config holds every tunable of the analysis pipeline. It is loaded once at
// process start and passed by value; components never read ambient state.
type Config struct {
	// Normalization
	MinElevationM float64 // below this a point is malformed
	MaxElevationM float64

	// Elevation hysteresis
	HysteresisM float64 // deltas below this accumulate instead of committing

	// Topology
	LoopClosureFraction float64 // closure distance / total distance for a loop
	OverlapSamples      int     // hard cap on overlap probes
	OverlapNearnessM    float64 // outbound/return nearness for self-overlap
	OverlapRatio        float64 // out-and-back wins above this ratio

	// Technicity weights and saturation constants
	WeightMaxSlope   float64
	WeightAvgUphill  float64
	WeightAltRange   float64
	WeightSlopeVar   float64
	SatMaxSlopePct   float64
	SatAvgUphillPct  float64
	SatAltRangeM     float64
	SatSlopeStddev   float64
	HighMountainAltM float64
	VerticalGainPerKm float64

	// Effort and pacing
	ClimbPenaltyM    float64 // meters of gain equivalent to 1 km flat
	SteepSlopePct    float64 // per-segment cost multiplier kicks in above this
	SteepCostFactor  float64
	SplitIntervalKm  float64
	TechPenalty      map[Archetype]float64 // fractional slowdown at score 100
	FlatSpeedKmh     map[Archetype]float64
	ClimbRateMPerH   map[Archetype]float64
	IndexSpeedSlope  float64 // flat speed = slope*index - intercept, in effort-km/h
	IndexSpeedIntercept float64
	MinSpeedKmh      float64
	MinFitnessIndex  float64
	MaxFitnessIndex  float64
	DecayStartKm     float64 // fatigue decay beyond this effort distance
	DecayStepKm      float64
	DecayRatePerStep float64
	DecayMaxTotal    float64
}

// DefaultConfig returns the production calibration.
func DefaultConfig() Config {
	return Config{
		MinElevationM: -500,
		MaxElevationM: 9000,

		HysteresisM: 2.0,

		LoopClosureFraction: 0.05,
		OverlapSamples:      64,
		OverlapNearnessM:    100,
		OverlapRatio:        0.60,

		WeightMaxSlope:    0.35,
		WeightAvgUphill:   0.25,
		WeightAltRange:    0.20,
		WeightSlopeVar:    0.20,
		SatMaxSlopePct:    30,
		SatAvgUphillPct:   15,
		SatAltRangeM:      1500,
		SatSlopeStddev:    10,
		HighMountainAltM:  2000,
		VerticalGainPerKm: 150,

		ClimbPenaltyM:   100,
		SteepSlopePct:   20,
		SteepCostFactor: 1.2,
		SplitIntervalKm: 5,
		TechPenalty: map[Archetype]float64{
			Hiker:  0.30,
			Runner: 0.20,
			Elite:  0.10,
		},
		FlatSpeedKmh: map[Archetype]float64{
			Hiker:  4,
			Runner: 8,
			Elite:  12,
		},
		ClimbRateMPerH: map[Archetype]float64{
			Hiker:  300,
			Runner: 600,
			Elite:  1200,
		},
		IndexSpeedSlope:     0.024,
		IndexSpeedIntercept: 4.0,
		MinSpeedKmh:         3.0,
		MinFitnessIndex:     50,
		MaxFitnessIndex:     1000,
		DecayStartKm:        40,
		DecayStepKm:         20,
		DecayRatePerStep:    0.05,
		DecayMaxTotal:       0.40,
	}
}
