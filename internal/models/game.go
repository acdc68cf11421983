package models

import "time"

// Game represents a catalog entry in the juegos collection.
type Game struct {
	ID     string    `json:"id" example:"665f1c2a9b1e8a3d4c5b6a79"`
	Name   string    `json:"name" example:"Chess"`
	Levels float64   `json:"levels" example:"5"`
	Date   time.Time `json:"date" example:"2024-01-01T00:00:00Z"`
	Image  *string   `json:"image" example:"/uploads/3f0c1e9e-8a43-4c55-9a57-5d1c2b7a2e11.png"`
}

// GameUpdate is the set of fields written by an update. Image is only
// written when non-nil.
type GameUpdate struct {
	Name   string
	Levels float64
	Date   time.Time
	Image  *string
}

// Apply copies the update onto g.
func (u GameUpdate) Apply(g *Game) {
	g.Name = u.Name
	g.Levels = u.Levels
	g.Date = u.Date
	if u.Image != nil {
		img := *u.Image
		g.Image = &img
	}
}
