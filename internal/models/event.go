package models

// EventType names a change made to the games collection.
type EventType string

const (
	EventGameCreated EventType = "game.created"
	EventGameUpdated EventType = "game.updated"
	EventGameDeleted EventType = "game.deleted"
)
