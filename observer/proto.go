// Package observer streams simulation frames to browser viewers over
// websockets and serves the latest frame over plain HTTP.
package observer

import "github.com/pthm-cable/forage/game"

// ProtocolVersion is bumped on incompatible message changes.
const ProtocolVersion = 1

// Message types.
const (
	TypeHello = "hello"
	TypeTick  = "tick"
)

// HelloMsg is the first message on every connection.
type HelloMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion int     `json:"protocol_version"`
	Session         string  `json:"session"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	CellSize        int     `json:"cell_size"`
	FoodCap         int     `json:"food_cap"`
	MaxVitality     float64 `json:"max_vitality"`
}

// TickMsg carries one frame.
type TickMsg struct {
	Type  string        `json:"type"`
	Frame game.Snapshot `json:"frame"`
}
