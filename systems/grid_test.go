package systems

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/pthm-cable/forage/components"
)

func gridParams(cellSize int) Params {
	p := DefaultParams()
	p.CellSize = cellSize
	return p
}

func TestNewWorldInvalidDimension(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cellSize      int
	}{
		{"zero width", 0, 5, 10},
		{"negative height", 5, -1, 10},
		{"zero cell size", 5, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorld(tt.width, tt.height, gridParams(tt.cellSize), rand.New(rand.NewSource(1)))
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("NewWorld(%d, %d) error = %v, want ErrInvalidDimension", tt.width, tt.height, err)
			}
		})
	}
}

func TestNewWorldSeedFood(t *testing.T) {
	w, err := NewWorld(20, 20, DefaultParams(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if w.Len() != 400 {
		t.Fatalf("Len() = %d, want 400", w.Len())
	}
	seen := map[int]bool{}
	for i := 0; i < w.Len(); i++ {
		f := w.FoodAt(i)
		if f%10 != 0 || f < 0 || f > 50 {
			t.Fatalf("cell %d seeded with %d, want a multiple of 10 in [0,50]", i, f)
		}
		seen[f] = true
	}
	if len(seen) < 4 {
		t.Errorf("expected varied seed food over 400 cells, saw %v", seen)
	}
}

func TestNewWorldFromFood(t *testing.T) {
	w, err := NewWorldFromFood(3, 1, 10, []int{-4, 10, 90}, 50)
	if err != nil {
		t.Fatalf("NewWorldFromFood: %v", err)
	}
	if got := w.Food(); !reflect.DeepEqual(got, []int{0, 10, 50}) {
		t.Errorf("Food() = %v, want clamped [0 10 50]", got)
	}

	if _, err := NewWorldFromFood(3, 1, 10, []int{1, 2}, 50); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("short layout error = %v, want ErrInvalidDimension", err)
	}
}

func TestCellIndex(t *testing.T) {
	w, _ := NewWorldFromFood(5, 5, 10, make([]int, 25), 50)

	tests := []struct {
		x, y float64
		want int
	}{
		{0, 0, 0},
		{22, 16, 7},
		{9.99, 9.99, 0},
		{10, 0, 1},
		{49, 49, 24},
	}
	for _, tt := range tests {
		if got := w.CellIndex(components.Position{X: tt.x, Y: tt.y}); got != tt.want {
			t.Errorf("CellIndex(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCellCenterRoundTrip(t *testing.T) {
	for _, dims := range [][3]int{{5, 5, 10}, {10, 10, 40}, {7, 3, 9}, {1, 4, 1}} {
		w, _ := NewWorldFromFood(dims[0], dims[1], dims[2], make([]int, dims[0]*dims[1]), 50)
		for i := 0; i < w.Len(); i++ {
			c := w.CellCenter(i)
			if got := w.CellIndex(c); got != i {
				t.Errorf("%v: CellIndex(CellCenter(%d)=%v) = %d", dims, i, c, got)
			}
			if again := w.CellIndex(w.CellCenter(w.CellIndex(c))); again != w.CellIndex(c) {
				t.Errorf("%v: round trip through %d not stable", dims, i)
			}
		}
	}
}

func TestCellCenter(t *testing.T) {
	w, _ := NewWorldFromFood(5, 5, 10, make([]int, 25), 50)
	if got := w.CellCenter(7); got != (components.Position{X: 25, Y: 15}) {
		t.Errorf("CellCenter(7) = %v, want (25,15)", got)
	}
}

func TestNeighbors(t *testing.T) {
	w, _ := NewWorldFromFood(5, 5, 10, make([]int, 25), 50)

	tests := []struct {
		cell int
		want []int
	}{
		{0, []int{1, 5, 6}},
		{1, []int{0, 2, 5, 6, 7}},
		{4, []int{3, 8, 9}},
		{24, []int{18, 19, 23}},
		{7, []int{1, 2, 3, 6, 8, 11, 12, 13}},
		{5, []int{0, 1, 6, 10, 11}},
		{9, []int{3, 4, 8, 13, 14}},
	}
	for _, tt := range tests {
		if got := w.Neighbors(tt.cell); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Neighbors(%d) = %v, want %v", tt.cell, got, tt.want)
		}
	}

	if got := w.Neighbors(25); got != nil {
		t.Errorf("Neighbors(25) = %v, want nil for out-of-range cell", got)
	}
}

func TestNeighborsSingleColumn(t *testing.T) {
	w, _ := NewWorldFromFood(1, 3, 10, make([]int, 3), 50)

	if got := w.Neighbors(0); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Neighbors(0) = %v, want [1]", got)
	}
	if got := w.Neighbors(1); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("Neighbors(1) = %v, want [0 2]", got)
	}
}

func TestRegrowStaysInBounds(t *testing.T) {
	food := make([]int, 100)
	for i := range food {
		food[i] = i % 51
	}
	w, _ := NewWorldFromFood(10, 10, 10, food, 50)
	rng := rand.New(rand.NewSource(11))

	start := w.TotalFood()
	for tick := 0; tick < 2000; tick++ {
		w = w.Regrow(rng, 0.01, 50)
	}
	for i := 0; i < w.Len(); i++ {
		if f := w.FoodAt(i); f < 0 || f > 50 {
			t.Fatalf("cell %d food %d out of [0,50]", i, f)
		}
	}
	if w.TotalFood() <= start {
		t.Errorf("expected regrowth over 2000 ticks, total %d -> %d", start, w.TotalFood())
	}
}

func TestRegrowLeavesReceiverUntouched(t *testing.T) {
	w, _ := NewWorldFromFood(2, 2, 10, []int{0, 0, 0, 0}, 50)
	grown := w.Regrow(rand.New(rand.NewSource(1)), 1.0, 50)

	if w.TotalFood() != 0 {
		t.Errorf("receiver changed: %v", w.Food())
	}
	if grown.TotalFood() != 4 {
		t.Errorf("chance 1.0 should add one unit per cell, got %v", grown.Food())
	}
}

func TestConsume(t *testing.T) {
	w, _ := NewWorldFromFood(3, 1, 10, []int{0, 10, 2}, 50)

	tests := []struct {
		name      string
		cell      int
		portion   int
		wantEaten int
		wantFood  int
	}{
		{"normal", 1, 1, 1, 9},
		{"floor at zero", 2, 5, 2, 0},
		{"empty no-op", 0, 1, 0, 0},
		{"zero portion", 1, 0, 0, 10},
		{"out of range", 3, 1, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, eaten := w.Consume(tt.cell, tt.portion)
			if eaten != tt.wantEaten {
				t.Errorf("eaten = %d, want %d", eaten, tt.wantEaten)
			}
			if tt.wantFood >= 0 && next.FoodAt(tt.cell) != tt.wantFood {
				t.Errorf("food = %d, want %d", next.FoodAt(tt.cell), tt.wantFood)
			}
		})
	}
	if got := w.Food(); !reflect.DeepEqual(got, []int{0, 10, 2}) {
		t.Errorf("Consume mutated the receiver: %v", got)
	}
}
