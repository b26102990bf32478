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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `
	id, customer_id, status, payment_method, paid_at,
	subtotal, delivery_fee, total,
	customer_name, customer_phone, street, street_number, complement,
	neighborhood, city, state, zip_code,
	delivery_date, delivery_person_id, notes,
	created_at, updated_at`

// Create persiste el pedido con sus ítems.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, customer_id, status, payment_method, paid_at,
			subtotal, delivery_fee, total,
			customer_name, customer_phone, street, street_number, complement,
			neighborhood, city, state, zip_code,
			delivery_date, delivery_person_id, notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.CustomerID, order.Status, order.PaymentMethod, order.PaidAt,
		order.Subtotal, order.DeliveryFee, order.Total,
		order.CustomerName, order.CustomerPhone, order.Street, nullIfEmpty(order.StreetNumber), nullIfEmpty(order.Complement),
		nullIfEmpty(order.Neighborhood), order.City, order.State, nullIfEmpty(order.ZipCode),
		order.DeliveryDate, order.DeliveryPersonID, nullIfEmpty(order.Notes),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order already exists: %w", err)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, item := range order.Items {
		if err := r.createItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepo) createItem(ctx context.Context, item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_items (id, order_id, product_id, name, quantity, unit_price, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OrderID, item.ProductID, item.Name,
		item.Quantity, item.UnitPrice, item.Subtotal, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene el pedido con ítems y cuotas. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	row := r.q.QueryRow(ctx, query, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	if err := r.loadInstallments(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update persiste los campos mutables del pedido.
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET status             = $2,
		    payment_method     = $3,
		    paid_at            = $4,
		    delivery_fee       = $5,
		    total              = $6,
		    delivery_date      = $7,
		    delivery_person_id = $8,
		    notes              = $9,
		    updated_at         = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		order.ID, order.Status, order.PaymentMethod, order.PaidAt,
		order.DeliveryFee, order.Total, order.DeliveryDate,
		order.DeliveryPersonID, nullIfEmpty(order.Notes), order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update order: no existe %s", order.ID)
	}
	return nil
}

// SetPaidAt fija o limpia el timestamp agregado de pago.
func (r *OrderRepo) SetPaidAt(ctx context.Context, orderID string, paidAt *time.Time) error {
	query := `UPDATE orders SET paid_at = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, orderID, paidAt)
	if err != nil {
		return fmt.Errorf("set order paid_at: %w", err)
	}
	return nil
}

// List pedidos ordenados por fecha de creación descendente.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryOrders(ctx, query, limit, offset)
}

// ListByCustomer pedidos de un cliente.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, customerID)
}

// ListByDeliveryPerson pedidos asignados a un repartidor en los estados dados.
func (r *OrderRepo) ListByDeliveryPerson(ctx context.Context, deliveryPersonID string, statuses []entity.Status) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE delivery_person_id = $1 AND status = ANY($2)
		ORDER BY created_at ASC`
	ss := make([]string, 0, len(statuses))
	for _, s := range statuses {
		ss = append(ss, string(s))
	}
	return r.queryOrders(ctx, query, deliveryPersonID, ss)
}

// ListUnpaid pedidos con paid_at nulo, con cuotas cargadas.
func (r *OrderRepo) ListUnpaid(ctx context.Context) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE paid_at IS NULL ORDER BY created_at ASC`
	return r.queryOrders(ctx, query)
}

// CountActiveByDeliveryPerson pedidos CONFIRMED o IN_ROUTE aún asignados al repartidor.
func (r *OrderRepo) CountActiveByDeliveryPerson(ctx context.Context, deliveryPersonID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM orders
		WHERE delivery_person_id = $1 AND status IN ('CONFIRMED', 'IN_ROUTE')`
	var count int
	if err := r.q.QueryRow(ctx, query, deliveryPersonID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active orders: %w", err)
	}
	return count, nil
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, order := range list {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
		if err := r.loadInstallments(ctx, order); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var streetNumber, complement, neighborhood, zipCode, notes *string
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.PaymentMethod, &o.PaidAt,
		&o.Subtotal, &o.DeliveryFee, &o.Total,
		&o.CustomerName, &o.CustomerPhone, &o.Street, &streetNumber, &complement,
		&neighborhood, &o.City, &o.State, &zipCode,
		&o.DeliveryDate, &o.DeliveryPersonID, &notes,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	derefStr := func(p *string) string {
		if p != nil {
			return *p
		}
		return ""
	}
	o.StreetNumber = derefStr(streetNumber)
	o.Complement = derefStr(complement)
	o.Neighborhood = derefStr(neighborhood)
	o.ZipCode = derefStr(zipCode)
	o.Notes = derefStr(notes)
	return &o, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, order *entity.Order) error {
	query := `
		SELECT id, order_id, product_id, name, quantity, unit_price, subtotal, created_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	order.Items = nil
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.Subtotal, &item.CreatedAt); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, &item)
	}
	return rows.Err()
}

func (r *OrderRepo) loadInstallments(ctx context.Context, order *entity.Order) error {
	query := `
		SELECT id, order_id, number, amount, due_date, paid_at, created_at, updated_at
		FROM installments WHERE order_id = $1 ORDER BY number`
	rows, err := r.q.Query(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	order.Installments = nil
	for rows.Next() {
		var inst entity.Installment
		if err := rows.Scan(&inst.ID, &inst.OrderID, &inst.Number, &inst.Amount,
			&inst.DueDate, &inst.PaidAt, &inst.CreatedAt, &inst.UpdatedAt); err != nil {
			return fmt.Errorf("scan installment: %w", err)
		}
		order.Installments = append(order.Installments, &inst)
	}
	return rows.Err()
}
