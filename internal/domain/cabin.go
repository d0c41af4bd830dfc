package domain

// Cabin is read-only reference data
type Cabin struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
