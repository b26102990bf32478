package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

// InstallmentRepo implementación de InstallmentRepository (usable con pool o tx).
type InstallmentRepo struct {
	q Querier
}

// NewInstallmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallmentRepository(q Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

// Create persiste una cuota.
func (r *InstallmentRepo) Create(ctx context.Context, inst *entity.Installment) error {
	if inst.ID == "" {
		inst.ID = uuid.New().String()
	}
	query := `
		INSERT INTO installments (id, order_id, number, amount, due_date, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		inst.ID, inst.OrderID, inst.Number, inst.Amount, inst.DueDate, inst.PaidAt,
		inst.CreatedAt, inst.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("installment number already exists: %w", err)
		}
		return fmt.Errorf("insert installment: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *InstallmentRepo) GetByID(ctx context.Context, id string) (*entity.Installment, error) {
	query := `
		SELECT id, order_id, number, amount, due_date, paid_at, created_at, updated_at
		FROM installments WHERE id = $1`
	var inst entity.Installment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inst.ID, &inst.OrderID, &inst.Number, &inst.Amount,
		&inst.DueDate, &inst.PaidAt, &inst.CreatedAt, &inst.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return &inst, nil
}

// ListByOrder cuotas de un pedido ordenadas por número.
func (r *InstallmentRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Installment, error) {
	query := `
		SELECT id, order_id, number, amount, due_date, paid_at, created_at, updated_at
		FROM installments WHERE order_id = $1 ORDER BY number`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installment
	for rows.Next() {
		var inst entity.Installment
		if err := rows.Scan(&inst.ID, &inst.OrderID, &inst.Number, &inst.Amount,
			&inst.DueDate, &inst.PaidAt, &inst.CreatedAt, &inst.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, &inst)
	}
	return list, rows.Err()
}

// DeleteByOrder borra todas las cuotas del pedido.
func (r *InstallmentRepo) DeleteByOrder(ctx context.Context, orderID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM installments WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete installments: %w", err)
	}
	return nil
}

// SetPaidAt fija o limpia el pago de una cuota.
func (r *InstallmentRepo) SetPaidAt(ctx context.Context, installmentID string, paidAt *time.Time) error {
	query := `UPDATE installments SET paid_at = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, installmentID, paidAt)
	if err != nil {
		return fmt.Errorf("set installment paid_at: %w", err)
	}
	return nil
}
