package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

var _ repository.CashFlowRepository = (*CashFlowRepo)(nil)

// CashFlowRepo implementación de CashFlowRepository (usable con pool o tx).
type CashFlowRepo struct {
	q Querier
}

// NewCashFlowRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashFlowRepository(q Querier) *CashFlowRepo {
	return &CashFlowRepo{q: q}
}

const cashFlowColumns = `
	id, type, amount, description, payment_method, payment_date,
	order_id, installment_number, created_at, updated_at`

// Create persiste un asiento.
func (r *CashFlowRepo) Create(ctx context.Context, entry *entity.CashFlow) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_flow (id, type, amount, description, payment_method, payment_date,
			order_id, installment_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.Type, entry.Amount, entry.Description, entry.PaymentMethod,
		entry.PaymentDate, entry.OrderID, entry.InstallmentNumber,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash flow entry: %w", err)
	}
	return nil
}

// Update actualiza un asiento existente.
func (r *CashFlowRepo) Update(ctx context.Context, entry *entity.CashFlow) error {
	query := `
		UPDATE cash_flow
		SET type           = $2,
		    amount         = $3,
		    description    = $4,
		    payment_method = $5,
		    payment_date   = $6,
		    updated_at     = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		entry.ID, entry.Type, entry.Amount, entry.Description,
		entry.PaymentMethod, entry.PaymentDate, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cash flow entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update cash flow entry: no existe %s", entry.ID)
	}
	return nil
}

// Delete borra un asiento por ID.
func (r *CashFlowRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cash_flow WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cash flow entry: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CashFlowRepo) GetByID(ctx context.Context, id string) (*entity.CashFlow, error) {
	query := `SELECT ` + cashFlowColumns + ` FROM cash_flow WHERE id = $1`
	entry, err := scanCashFlow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash flow entry: %w", err)
	}
	return entry, nil
}

// List asientos filtrados por fecha, tipo y búsqueda de texto. El texto busca
// en la descripción y en nombre/teléfono del cliente del pedido enlazado.
func (r *CashFlowRepo) List(ctx context.Context, filter repository.CashFlowFilter) ([]*entity.CashFlow, error) {
	query := `
		SELECT cf.id, cf.type, cf.amount, cf.description, cf.payment_method, cf.payment_date,
		       cf.order_id, cf.installment_number, cf.created_at, cf.updated_at
		FROM cash_flow cf
		LEFT JOIN orders o ON o.id = cf.order_id
		WHERE 1=1`
	var args []any
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += ` AND cf.payment_date >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += ` AND cf.payment_date <= $` + strconv.Itoa(len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += ` AND cf.type = $` + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (cf.description ILIKE $` + n +
			` OR o.customer_name ILIKE $` + n +
			` OR o.customer_phone ILIKE $` + n + `)`
	}
	query += ` ORDER BY cf.payment_date DESC, cf.created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cash flow: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashFlow
	for rows.Next() {
		entry, err := scanCashFlow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash flow entry: %w", err)
		}
		list = append(list, entry)
	}
	return list, rows.Err()
}

// GetOrderIncome asiento agregado del pedido (sin número de cuota). Devuelve (nil, nil) si no existe.
func (r *CashFlowRepo) GetOrderIncome(ctx context.Context, orderID string) (*entity.CashFlow, error) {
	query := `SELECT ` + cashFlowColumns + `
		FROM cash_flow WHERE order_id = $1 AND installment_number IS NULL`
	entry, err := scanCashFlow(r.q.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order income entry: %w", err)
	}
	return entry, nil
}

// GetInstallmentEntry asiento de una cuota concreta. Devuelve (nil, nil) si no existe.
func (r *CashFlowRepo) GetInstallmentEntry(ctx context.Context, orderID string, installmentNumber int) (*entity.CashFlow, error) {
	query := `SELECT ` + cashFlowColumns + `
		FROM cash_flow WHERE order_id = $1 AND installment_number = $2`
	entry, err := scanCashFlow(r.q.QueryRow(ctx, query, orderID, installmentNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment entry: %w", err)
	}
	return entry, nil
}

// DeleteByOrder borra todos los asientos enlazados al pedido.
func (r *CashFlowRepo) DeleteByOrder(ctx context.Context, orderID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cash_flow WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete cash flow by order: %w", err)
	}
	return nil
}

// DeleteByInstallment borra el asiento de la cuota (orderID, número).
func (r *CashFlowRepo) DeleteByInstallment(ctx context.Context, orderID string, installmentNumber int) error {
	query := `DELETE FROM cash_flow WHERE order_id = $1 AND installment_number = $2`
	_, err := r.q.Exec(ctx, query, orderID, installmentNumber)
	if err != nil {
		return fmt.Errorf("delete installment entry: %w", err)
	}
	return nil
}

func scanCashFlow(row pgx.Row) (*entity.CashFlow, error) {
	var e entity.CashFlow
	err := row.Scan(
		&e.ID, &e.Type, &e.Amount, &e.Description, &e.PaymentMethod, &e.PaymentDate,
		&e.OrderID, &e.InstallmentNumber, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
