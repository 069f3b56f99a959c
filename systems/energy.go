package systems

import "github.com/pthm-cable/forage/components"

// TirednessCost returns the vitality drained for a tick evaluated in action.
func TirednessCost(action components.Action, p Params) float64 {
	if action == components.ActionResting {
		return p.RestCost
	}
	return p.ActiveCost
}

// DrainVitality subtracts cost, flooring at zero.
func DrainVitality(v, cost float64) float64 {
	v -= cost
	if v < 0 {
		return 0
	}
	return v
}

// FeedVitality adds the vitality earned from eaten food units, capped at max.
func FeedVitality(v float64, eaten int, p Params) float64 {
	v += p.VitalityPerFood * float64(eaten)
	if v > p.MaxVitality {
		return p.MaxVitality
	}
	return v
}
