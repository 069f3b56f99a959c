package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/traits"
)

func behaviorWorld(t *testing.T) World {
	t.Helper()
	w, err := NewWorldFromFood(5, 5, 10, []int{
		0, 0, 0, 0, 0,
		0, 10, 0, 0, 0,
		0, 0, 20, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
	}, 50)
	if err != nil {
		t.Fatalf("NewWorldFromFood: %v", err)
	}
	return w
}

func pos(x, y float64) components.Position { return components.Position{X: x, Y: y} }

func ptr(p components.Position) *components.Position { return &p }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAdvanceFrozenAgentIsInert(t *testing.T) {
	w := behaviorWorld(t)
	a := Agent{Pos: pos(5, 5), Target: ptr(pos(25, 25)), Traits: traits.Traits{Speed: 1, HungerThreshold: 60}, Action: components.ActionMoving, Vitality: 0.5}

	nw, got, err := Advance(w, a, pos(15, 15), DefaultParams())
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got.Pos != a.Pos || got.Action != a.Action || got.Vitality != a.Vitality || *got.Target != *a.Target {
		t.Errorf("frozen agent changed: %+v -> %+v", a, got)
	}
	if nw.TotalFood() != w.TotalFood() {
		t.Errorf("frozen agent changed food")
	}
}

func TestAdvanceResting(t *testing.T) {
	w := behaviorWorld(t)
	next := pos(15, 15)

	tests := []struct {
		name       string
		vitality   float64
		wantAction components.Action
		wantTarget bool
	}{
		{"sated agent keeps resting", 80, components.ActionResting, false},
		{"at threshold keeps resting", 60, components.ActionResting, false},
		{"hungry agent starts moving", 59.9, components.ActionMoving, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Agent{Pos: pos(5, 5), Traits: traits.Traits{Speed: 1, HungerThreshold: 60}, Action: components.ActionResting, Vitality: tt.vitality}
			_, got, err := Advance(w, a, next, DefaultParams())
			if err != nil {
				t.Fatalf("Advance: %v", err)
			}
			if got.Action != tt.wantAction {
				t.Errorf("action = %v, want %v", got.Action, tt.wantAction)
			}
			if got.HasTarget() != tt.wantTarget {
				t.Errorf("has target = %v, want %v", got.HasTarget(), tt.wantTarget)
			}
			if tt.wantTarget && *got.Target != next {
				t.Errorf("target = %v, want %v", *got.Target, next)
			}
			if got.Pos != a.Pos {
				t.Errorf("resting agent moved to %v", got.Pos)
			}
			if !almostEqual(got.Vitality, tt.vitality-0.3) {
				t.Errorf("vitality = %v, want %v", got.Vitality, tt.vitality-0.3)
			}
		})
	}
}

func TestAdvanceMoving(t *testing.T) {
	w := behaviorWorld(t)
	next := pos(35, 35)

	tests := []struct {
		name       string
		from       components.Position
		target     components.Position
		speed      float64
		wantPos    components.Position
		wantAction components.Action
	}{
		{"diagonal step", pos(5, 5), pos(25, 15), 2, pos(7, 7), components.ActionMoving},
		{"negative direction", pos(25, 25), pos(5, 25), 1.5, pos(23.5, 25), components.ActionMoving},
		{"axis already aligned", pos(15, 5), pos(15, 25), 1, pos(15, 6), components.ActionMoving},
		{"arrives and eats", pos(22, 15), pos(25, 15), 1, pos(23, 15), components.ActionEating},
		{"last step lands on target", pos(24.5, 15), pos(25, 15), 2, pos(25, 15), components.ActionEating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Agent{Pos: tt.from, Target: ptr(tt.target), Traits: traits.Traits{Speed: tt.speed, HungerThreshold: 60}, Action: components.ActionMoving, Vitality: 50}
			_, got, err := Advance(w, a, next, DefaultParams())
			if err != nil {
				t.Fatalf("Advance: %v", err)
			}
			if got.Pos != tt.wantPos {
				t.Errorf("pos = %v, want %v", got.Pos, tt.wantPos)
			}
			if got.Action != tt.wantAction {
				t.Errorf("action = %v, want %v", got.Action, tt.wantAction)
			}
			if got.Target == nil || *got.Target != next {
				t.Errorf("target = %v, want re-aimed at %v", got.Target, next)
			}
			if !almostEqual(got.Vitality, 49) {
				t.Errorf("vitality = %v, want 49", got.Vitality)
			}
		})
	}
}

func TestAdvanceEating(t *testing.T) {
	w := behaviorWorld(t)
	home := w.CellCenter(12) // 20 food

	tests := []struct {
		name         string
		pos          components.Position
		vitality     float64
		next         components.Position
		wantAction   components.Action
		wantFood     int
		wantVitality float64
	}{
		{"eats one unit", home, 50, home, components.ActionEating, 19, 53},
		{"full agent rests", home, 100, home, components.ActionResting, 20, 99},
		{"better target elsewhere", home, 50, w.CellCenter(6), components.ActionResting, 20, 49},
		{"empty cell keeps eating", w.CellCenter(0), 50, w.CellCenter(0), components.ActionEating, 0, 49},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Agent{Pos: tt.pos, Target: ptr(tt.pos), Traits: traits.Traits{Speed: 1, HungerThreshold: 60}, Action: components.ActionEating, Vitality: tt.vitality}
			nw, got, err := Advance(w, a, tt.next, DefaultParams())
			if err != nil {
				t.Fatalf("Advance: %v", err)
			}
			cell := w.CellIndex(tt.pos)
			if got.Action != tt.wantAction {
				t.Errorf("action = %v, want %v", got.Action, tt.wantAction)
			}
			if nw.FoodAt(cell) != tt.wantFood {
				t.Errorf("food = %d, want %d", nw.FoodAt(cell), tt.wantFood)
			}
			if !almostEqual(got.Vitality, tt.wantVitality) {
				t.Errorf("vitality = %v, want %v", got.Vitality, tt.wantVitality)
			}
			if got.Action == components.ActionResting && got.HasTarget() {
				t.Errorf("resting agent kept target %v", *got.Target)
			}
		})
	}
	if w.FoodAt(12) != 20 {
		t.Errorf("Advance mutated the input world")
	}
}

func TestAdvanceEatingUntilFull(t *testing.T) {
	w := behaviorWorld(t)
	home := w.CellCenter(12)
	a := Agent{Pos: home, Target: ptr(home), Traits: traits.Traits{Speed: 1, HungerThreshold: 60}, Action: components.ActionEating, Vitality: 90}
	p := DefaultParams()

	// 90 -> 93 -> 96 -> 99 (capped at 100 before decay), then sated.
	var err error
	ticks := 0
	for ; ticks < 10 && a.Action == components.ActionEating; ticks++ {
		w, a, err = Advance(w, a, home, p)
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if a.Vitality > p.MaxVitality {
			t.Fatalf("vitality %v above max", a.Vitality)
		}
	}
	if a.Action != components.ActionResting {
		t.Fatalf("agent still %v after %d ticks", a.Action, ticks)
	}
	if ticks != 4 {
		t.Errorf("ticks until resting = %d, want 4", ticks)
	}
	if got := w.FoodAt(12); got != 17 {
		t.Errorf("food left = %d, want 17", got)
	}
	if !almostEqual(a.Vitality, 98) {
		t.Errorf("vitality = %v, want 98", a.Vitality)
	}
}

func TestAdvanceVitalityFloor(t *testing.T) {
	w := behaviorWorld(t)
	p := DefaultParams()
	p.ActiveCost = 5
	a := Agent{Pos: pos(5, 5), Target: ptr(pos(45, 45)), Traits: traits.Traits{Speed: 1}, Action: components.ActionMoving, Vitality: 2}

	_, got, err := Advance(w, a, pos(45, 45), p)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got.Vitality != 0 {
		t.Errorf("vitality = %v, want floored at 0", got.Vitality)
	}
}

func TestAdvanceInvalidState(t *testing.T) {
	w := behaviorWorld(t)

	tests := []struct {
		name  string
		agent Agent
	}{
		{"unknown action", Agent{Pos: pos(5, 5), Action: components.Action(9), Vitality: 50}},
		{"moving without target", Agent{Pos: pos(5, 5), Action: components.ActionMoving, Vitality: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Advance(w, tt.agent, pos(15, 15), DefaultParams())
			if !errors.Is(err, ErrInvalidAgentState) {
				t.Errorf("error = %v, want ErrInvalidAgentState", err)
			}
		})
	}
}

func TestStepToward(t *testing.T) {
	tests := []struct {
		from, to components.Position
		speed    float64
		want     components.Position
	}{
		{pos(0, 0), pos(10, 10), 1, pos(1, 1)},
		{pos(10, 10), pos(0, 0), 1, pos(9, 9)},
		{pos(5, 5), pos(5, 5), 1, pos(5, 5)},
		{pos(0, 9.5), pos(10, 10), 1, pos(1, 10)},
	}
	for _, tt := range tests {
		if got := StepToward(tt.from, tt.to, tt.speed); got != tt.want {
			t.Errorf("StepToward(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.speed, got, tt.want)
		}
	}
}
