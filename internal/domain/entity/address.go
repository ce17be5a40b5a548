package entity

import (
	"strings"
	"time"
)

// Address dirección guardada de un usuario. El orden de inserción se conserva.
type Address struct {
	ID        string
	UserID    string
	Street    string
	City      string
	State     string
	Zip       string
	Type      string // Home, Work, ...
	CreatedAt time.Time
}

// String devuelve la dirección en una línea, tal como se copia en la orden.
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State, a.Zip} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
