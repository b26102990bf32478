package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. El CRUD completo vive fuera del núcleo; el
// checkout solo necesita leer precio y descontar stock.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Stock     int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
