package model

// Genre maps a catalog genre id to its display name.
type Genre struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Major bool   `json:"major"` // appears in at least 10 productions
}
