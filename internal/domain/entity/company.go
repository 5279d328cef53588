package entity

import "time"

// Company representa una organización/tenant del catálogo B2B.
// Es dueña de sus bodegas y productos; el borrado cascadea a dependientes
// (responsabilidad del esquema, no del core).
type Company struct {
	ID        string
	Name      string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
