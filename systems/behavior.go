package systems

import (
	"fmt"

	"github.com/pthm-cable/forage/components"
)

// Advance runs one tick of the agent state machine for a, given next, the
// target chosen by SelectTarget for this tick. Food eaten is removed from the
// returned world; the input world is not modified.
//
// Transitions, evaluated on the action a held at the start of the tick:
//
//	frozen (vitality < FreezeBelow): nothing changes, no decay
//	Moving:  step toward target; within ArriveDistance -> Eating; target = next
//	Eating:  sated or next != target -> Resting; else eat what the cell has
//	Resting: vitality < hunger threshold -> Moving toward next
//
// and the tick then costs RestCost (if it started Resting) or ActiveCost.
func Advance(world World, a Agent, next components.Position, p Params) (World, Agent, error) {
	if a.Frozen(p) {
		return world, a, nil
	}

	evaluated := a.Action
	switch evaluated {
	case components.ActionMoving:
		if a.Target == nil {
			return world, a, fmt.Errorf("moving agent at (%.1f,%.1f) has no target: %w", a.Pos.X, a.Pos.Y, ErrInvalidAgentState)
		}
		a.Pos = StepToward(a.Pos, *a.Target, a.Traits.Speed)
		if components.Dist(a.Pos, *a.Target) <= p.ArriveDistance {
			a.Action = components.ActionEating
		}
		a.Target = &next

	case components.ActionEating:
		cell := a.Cell(world)
		if !world.InBounds(cell) {
			return world, a, fmt.Errorf("eating agent at (%.1f,%.1f): cell %d: %w", a.Pos.X, a.Pos.Y, cell, ErrIndexOutOfRange)
		}
		if Sated(a.Vitality, p) || a.Target == nil || *a.Target != next {
			a.Action = components.ActionResting
			a.Target = nil
			break
		}
		var eaten int
		world, eaten = world.Consume(cell, p.FoodPortion)
		a.Vitality = FeedVitality(a.Vitality, eaten, p)

	case components.ActionResting:
		if a.Vitality < a.Traits.HungerThreshold {
			a.Action = components.ActionMoving
			a.Target = &next
		} else {
			a.Target = nil
		}

	default:
		return world, a, fmt.Errorf("action %d: %w", evaluated, ErrInvalidAgentState)
	}

	a.Vitality = DrainVitality(a.Vitality, TirednessCost(evaluated, p))
	return world, a, nil
}

// Sated reports whether an eating agent has filled up. Decay follows every
// meal, so an agent that hit MaxVitality last tick is seen here at
// MaxVitality-ActiveCost.
func Sated(v float64, p Params) bool {
	return v+p.ActiveCost >= p.MaxVitality
}

// StepToward moves pos by speed along each axis independently toward target.
// An axis already at the target does not move, and a step never carries an
// axis past the target.
func StepToward(pos, target components.Position, speed float64) components.Position {
	return components.Position{
		X: stepAxis(pos.X, target.X, speed),
		Y: stepAxis(pos.Y, target.Y, speed),
	}
}

func stepAxis(v, t, speed float64) float64 {
	switch {
	case t > v:
		return min(v+speed, t)
	case t < v:
		return max(v-speed, t)
	default:
		return v
	}
}
