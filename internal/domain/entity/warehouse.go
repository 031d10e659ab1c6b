package entity

import "time"

// Warehouse representa una bodega de una empresa. Name es único dentro de la empresa.
type Warehouse struct {
	ID        int64
	CompanyID int64
	Name      string
	Address   string
	CreatedAt time.Time
}
