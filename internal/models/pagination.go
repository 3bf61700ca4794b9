package models

// Границы пагинации.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page: нормализованные limit/offset.
type Page struct {
	Limit  int
	Offset int
}
