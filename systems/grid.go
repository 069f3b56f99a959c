package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/forage/components"
)

// World is a rectangular grid of food cells. It is a value type: operations
// that change food return a new World and never touch the receiver's slice,
// so a World handed to a renderer or a worker stays a stable snapshot.
type World struct {
	width, height int
	cellSize      int
	food          []int
}

// NewWorld allocates a width x height world and seeds every cell with
// p.FoodUnit * uniform[p.SeedMin, p.SeedMax] food.
func NewWorld(width, height int, p Params, rng *rand.Rand) (World, error) {
	if err := checkDimensions(width, height, p.CellSize); err != nil {
		return World{}, err
	}
	food := make([]int, width*height)
	span := p.SeedMax - p.SeedMin + 1
	for i := range food {
		v := p.SeedMin
		if span > 1 {
			v += rng.Intn(span)
		}
		food[i] = clampFood(v*p.FoodUnit, p.FoodCap)
	}
	return World{width: width, height: height, cellSize: p.CellSize, food: food}, nil
}

// NewWorldFromFood builds a world with an explicit food layout.
// Values are clamped to [0, foodCap]; the slice is copied.
func NewWorldFromFood(width, height, cellSize int, food []int, foodCap int) (World, error) {
	if err := checkDimensions(width, height, cellSize); err != nil {
		return World{}, err
	}
	if len(food) != width*height {
		return World{}, fmt.Errorf("food layout has %d cells, want %d: %w", len(food), width*height, ErrInvalidDimension)
	}
	cells := make([]int, len(food))
	for i, v := range food {
		cells[i] = clampFood(v, foodCap)
	}
	return World{width: width, height: height, cellSize: cellSize, food: cells}, nil
}

func checkDimensions(width, height, cellSize int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("world %dx%d: %w", width, height, ErrInvalidDimension)
	}
	if cellSize <= 0 {
		return fmt.Errorf("cell size %d: %w", cellSize, ErrInvalidDimension)
	}
	return nil
}

// Width returns the number of columns.
func (w World) Width() int { return w.width }

// Height returns the number of rows.
func (w World) Height() int { return w.height }

// CellSize returns the pixel size of one cell.
func (w World) CellSize() int { return w.cellSize }

// Len returns the number of cells.
func (w World) Len() int { return len(w.food) }

// InBounds reports whether i addresses a cell.
func (w World) InBounds(i int) bool {
	return i >= 0 && i < len(w.food)
}

// FoodAt returns the food in cell i.
func (w World) FoodAt(i int) int {
	return w.food[i]
}

// Food returns a copy of the food grid in row-major order.
func (w World) Food() []int {
	out := make([]int, len(w.food))
	copy(out, w.food)
	return out
}

// TotalFood sums food over all cells.
func (w World) TotalFood() int {
	total := 0
	for _, f := range w.food {
		total += f
	}
	return total
}

// CellIndex maps a pixel coordinate to its row-major cell index.
// Coordinates outside the grid yield indices that fail InBounds
// (or alias another cell when only x overflows).
func (w World) CellIndex(p components.Position) int {
	col := int(math.Floor(p.X / float64(w.cellSize)))
	row := int(math.Floor(p.Y / float64(w.cellSize)))
	return row*w.width + col
}

// CellCenter returns the pixel centre of cell i.
func (w World) CellCenter(i int) components.Position {
	half := w.cellSize / 2
	return components.Position{
		X: float64((i%w.width)*w.cellSize + half),
		Y: float64((i/w.width)*w.cellSize + half),
	}
}

// Neighbors returns the Moore neighbours of cell i in NW, N, NE, W, E, SW, S,
// SE order, skipping anything off the grid. Offsets are applied per row and
// column, so a cell on one edge never picks up a cell from the opposite edge.
func (w World) Neighbors(i int) []int {
	if !w.InBounds(i) {
		return nil
	}
	row, col := i/w.width, i%w.width
	out := make([]int, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= w.height {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if (dr == 0 && dc == 0) || c < 0 || c >= w.width {
				continue
			}
			out = append(out, r*w.width+c)
		}
	}
	return out
}

// Regrow returns a new world where every cell below foodCap gained one unit
// of food with independent probability chance.
func (w World) Regrow(rng *rand.Rand, chance float64, foodCap int) World {
	next := make([]int, len(w.food))
	for i, f := range w.food {
		if f < foodCap && rng.Float64() < chance {
			f++
		}
		next[i] = clampFood(f, foodCap)
	}
	w.food = next
	return w
}

// Consume removes up to portion food from cell i, flooring at zero.
// It returns the resulting world and the amount actually removed; the
// receiver is left untouched.
func (w World) Consume(i, portion int) (World, int) {
	if !w.InBounds(i) || portion <= 0 || w.food[i] == 0 {
		return w, 0
	}
	eaten := min(portion, w.food[i])
	next := make([]int, len(w.food))
	copy(next, w.food)
	next[i] -= eaten
	w.food = next
	return w, eaten
}

func clampFood(v, foodCap int) int {
	if v < 0 {
		return 0
	}
	if v > foodCap {
		return foodCap
	}
	return v
}
