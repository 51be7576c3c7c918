package entity

import "time"

// Category agrupa repuestos (jerárquica opcional).
type Category struct {
	ID          string
	Name        string // único
	Description string
	ParentID    *string // nil si es raíz
	IsActive    bool
	CreatedAt   time.Time
}
