package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

var _ repository.DeliveryZoneRepository = (*DeliveryZoneRepo)(nil)

// DeliveryZoneRepo implementación de DeliveryZoneRepository (usable con pool o tx).
type DeliveryZoneRepo struct {
	q Querier
}

// NewDeliveryZoneRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryZoneRepository(q Querier) *DeliveryZoneRepo {
	return &DeliveryZoneRepo{q: q}
}

// GetByID devuelve (nil, nil) si no existe.
func (r *DeliveryZoneRepo) GetByID(ctx context.Context, id string) (*entity.DeliveryZone, error) {
	query := `
		SELECT id, city, state, fee, active, created_at, updated_at
		FROM delivery_zones WHERE id = $1`
	var z entity.DeliveryZone
	err := r.q.QueryRow(ctx, query, id).Scan(
		&z.ID, &z.City, &z.State, &z.Fee, &z.Active, &z.CreatedAt, &z.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery zone: %w", err)
	}
	return &z, nil
}

// ListActive zonas activas ordenadas por ciudad.
func (r *DeliveryZoneRepo) ListActive(ctx context.Context) ([]*entity.DeliveryZone, error) {
	query := `
		SELECT id, city, state, fee, active, created_at, updated_at
		FROM delivery_zones WHERE active ORDER BY city, state`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list delivery zones: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryZone
	for rows.Next() {
		var z entity.DeliveryZone
		if err := rows.Scan(&z.ID, &z.City, &z.State, &z.Fee, &z.Active, &z.CreatedAt, &z.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery zone: %w", err)
		}
		list = append(list, &z)
	}
	return list, rows.Err()
}
