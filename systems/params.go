package systems

// Scoring selects the target-scoring formula.
type Scoring string

const (
	// ScoringSocial weighs food by occupancy (sociability) and subtracts
	// distance times laziness.
	ScoringSocial Scoring = "social"
	// ScoringThreshold keeps the agent on a food-bearing home cell unless a
	// neighbour beats it by more than SwitchThreshold.
	ScoringThreshold Scoring = "threshold"
)

// Grid and behaviour constants.
const (
	DefaultCellSize        = 40
	DefaultFoodCap         = 50
	DefaultFoodUnit        = 10
	DefaultSwitchThreshold = 20
	DefaultFoodPortion     = 1
	MaxVitality            = 100.0
)

// Params holds every tunable number the engine uses.
type Params struct {
	CellSize     int
	FoodUnit     int     // Seed food is FoodUnit * uniform[SeedMin, SeedMax]
	SeedMin      int
	SeedMax      int
	FoodCap      int     // Regrowth saturates here
	RegrowChance float64 // Per cell per tick

	Scoring         Scoring
	SwitchThreshold int // Threshold scorer hysteresis

	FoodPortion     int     // Units eaten per tick
	VitalityPerFood float64 // Vitality gained per unit eaten
	ArriveDistance  float64 // Moving ends within this distance of the target
	RestCost        float64 // Decay for a tick evaluated as resting
	ActiveCost      float64 // Decay for a tick evaluated as moving or eating
	MaxVitality     float64
	FreezeBelow     float64 // Agents under this vitality are inert
}

// DefaultParams returns the reference parameters.
func DefaultParams() Params {
	return Params{
		CellSize:     DefaultCellSize,
		FoodUnit:     DefaultFoodUnit,
		SeedMin:      0,
		SeedMax:      5,
		FoodCap:      DefaultFoodCap,
		RegrowChance: 0.01,

		Scoring:         ScoringSocial,
		SwitchThreshold: DefaultSwitchThreshold,

		FoodPortion:     DefaultFoodPortion,
		VitalityPerFood: 4,
		ArriveDistance:  2,
		RestCost:        0.3,
		ActiveCost:      1.0,
		MaxVitality:     MaxVitality,
		FreezeBelow:     1,
	}
}
