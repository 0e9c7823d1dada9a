package model

import "time"

// Actor is a person from the actors table. Catalog IDs are not unique across
// name collisions, so actors are addressed by ActorKey everywhere.
type Actor struct {
	ID       string     `json:"imdbId"`
	Name     string     `json:"name"`
	Birthday *time.Time `json:"birthday,omitempty"` // nil excludes the actor from age questions
}

// ActorKey is the composite identity of an actor: catalog id + display name.
type ActorKey struct {
	ID   string
	Name string
}

// Key returns the composite identity for lookups.
func (a *Actor) Key() ActorKey {
	return ActorKey{ID: a.ID, Name: a.Name}
}
