package entity

import "time"

// Company representa una organización/tenant del sistema. Raíz del alcance multi-tenant.
type Company struct {
	ID        int64
	Name      string // único
	CreatedAt time.Time
}
