package components

import "gonum.org/v1/gonum/spatial/r2"

// Position is a continuous pixel-space coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec converts the position to a gonum vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Dist returns the Euclidean distance between two positions.
func Dist(a, b Position) float64 {
	return r2.Norm(r2.Sub(a.Vec(), b.Vec()))
}

// Target is the ECS form of an agent's optional travel target.
type Target struct {
	Pos    Position
	Active bool
}

// Ptr returns the target as an optional position (nil when inactive).
func (t Target) Ptr() *Position {
	if !t.Active {
		return nil
	}
	p := t.Pos
	return &p
}

// TargetOf builds the ECS target component from an optional position.
func TargetOf(p *Position) Target {
	if p == nil {
		return Target{}
	}
	return Target{Pos: *p, Active: true}
}
