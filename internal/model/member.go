package model

// Member is a participant in a shared-expense group. The ID is opaque and
// assigned by whatever system owns membership; the engine only uses it as a
// map key.
type Member struct {
	ID   string
	Name string
}
