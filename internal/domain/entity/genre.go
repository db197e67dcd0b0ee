package entity

import "time"

// Genre representa un género literario (catálogo; nombre único).
type Genre struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
