package orders

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
	"github.com/tu-usuario/pedidos-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de pedidos
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) SetPaidAt(_ context.Context, orderID string, paidAt *time.Time) error {
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.PaidAt = paidAt
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, limit, offset int) ([]*entity.Order, error) {
	all := r.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.sorted() {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByDeliveryPerson(_ context.Context, deliveryPersonID string, statuses []entity.Status) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.sorted() {
		if o.DeliveryPersonID == nil || *o.DeliveryPersonID != deliveryPersonID {
			continue
		}
		for _, s := range statuses {
			if o.Status == s {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListUnpaid(_ context.Context) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.sorted() {
		if o.PaidAt == nil {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) CountActiveByDeliveryPerson(_ context.Context, deliveryPersonID string) (int, error) {
	count := 0
	for _, o := range r.orders {
		if o.DeliveryPersonID != nil && *o.DeliveryPersonID == deliveryPersonID &&
			(o.Status == entity.StatusConfirmed || o.Status == entity.StatusInRoute) {
			count++
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) sorted() []*entity.Order {
	out := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeInstallmentRepo struct {
	installments map[string]*entity.Installment
}

func newFakeInstallmentRepo() *fakeInstallmentRepo {
	return &fakeInstallmentRepo{installments: make(map[string]*entity.Installment)}
}

func (r *fakeInstallmentRepo) Create(_ context.Context, inst *entity.Installment) error {
	r.installments[inst.ID] = inst
	return nil
}

func (r *fakeInstallmentRepo) GetByID(_ context.Context, id string) (*entity.Installment, error) {
	return r.installments[id], nil
}

func (r *fakeInstallmentRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Installment, error) {
	var out []*entity.Installment
	for _, inst := range r.installments {
		if inst.OrderID == orderID {
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *fakeInstallmentRepo) DeleteByOrder(_ context.Context, orderID string) error {
	for id, inst := range r.installments {
		if inst.OrderID == orderID {
			delete(r.installments, id)
		}
	}
	return nil
}

func (r *fakeInstallmentRepo) SetPaidAt(_ context.Context, installmentID string, paidAt *time.Time) error {
	inst, ok := r.installments[installmentID]
	if !ok {
		return domain.ErrNotFound
	}
	inst.PaidAt = paidAt
	return nil
}

type fakeCashFlowRepo struct {
	entries map[string]*entity.CashFlow
}

func newFakeCashFlowRepo() *fakeCashFlowRepo {
	return &fakeCashFlowRepo{entries: make(map[string]*entity.CashFlow)}
}

func (r *fakeCashFlowRepo) Create(_ context.Context, entry *entity.CashFlow) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeCashFlowRepo) Update(_ context.Context, entry *entity.CashFlow) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeCashFlowRepo) Delete(_ context.Context, id string) error {
	delete(r.entries, id)
	return nil
}

func (r *fakeCashFlowRepo) GetByID(_ context.Context, id string) (*entity.CashFlow, error) {
	return r.entries[id], nil
}

func (r *fakeCashFlowRepo) List(_ context.Context, _ repository.CashFlowFilter) ([]*entity.CashFlow, error) {
	var out []*entity.CashFlow
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCashFlowRepo) GetOrderIncome(_ context.Context, orderID string) (*entity.CashFlow, error) {
	for _, e := range r.entries {
		if e.OrderID != nil && *e.OrderID == orderID && e.InstallmentNumber == nil {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeCashFlowRepo) GetInstallmentEntry(_ context.Context, orderID string, installmentNumber int) (*entity.CashFlow, error) {
	for _, e := range r.entries {
		if e.OrderID != nil && *e.OrderID == orderID &&
			e.InstallmentNumber != nil && *e.InstallmentNumber == installmentNumber {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeCashFlowRepo) DeleteByOrder(_ context.Context, orderID string) error {
	for id, e := range r.entries {
		if e.OrderID != nil && *e.OrderID == orderID {
			delete(r.entries, id)
		}
	}
	return nil
}

func (r *fakeCashFlowRepo) DeleteByInstallment(_ context.Context, orderID string, installmentNumber int) error {
	for id, e := range r.entries {
		if e.OrderID != nil && *e.OrderID == orderID &&
			e.InstallmentNumber != nil && *e.InstallmentNumber == installmentNumber {
			delete(r.entries, id)
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id, role string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeZoneRepo struct {
	zones map[string]*entity.DeliveryZone
}

func newFakeZoneRepo() *fakeZoneRepo {
	return &fakeZoneRepo{zones: make(map[string]*entity.DeliveryZone)}
}

func (r *fakeZoneRepo) GetByID(_ context.Context, id string) (*entity.DeliveryZone, error) {
	return r.zones[id], nil
}

func (r *fakeZoneRepo) ListActive(_ context.Context) ([]*entity.DeliveryZone, error) {
	var out []*entity.DeliveryZone
	for _, z := range r.zones {
		if z.Active {
			out = append(out, z)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, productID string, qty int) error {
	p, ok := r.products[productID]
	if !ok || p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

// fakeTxRunner ejecuta los callbacks directamente sobre los fakes, sin
// transacción ni lock reales. Registra en locked los pedidos para los que se
// pidió el lock, para poder verificar qué mutaciones se serializan.
type fakeTxRunner struct {
	orders       *fakeOrderRepo
	installments *fakeInstallmentRepo
	cashflow     *fakeCashFlowRepo
	products     *fakeProductRepo
	locked       []string
}

func newFakeTxRunner() *fakeTxRunner {
	return &fakeTxRunner{
		orders:       newFakeOrderRepo(),
		installments: newFakeInstallmentRepo(),
		cashflow:     newFakeCashFlowRepo(),
		products:     newFakeProductRepo(),
	}
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.OrderRepository, repository.InstallmentRepository, repository.CashFlowRepository,
) error) error {
	return fn(r.orders, r.installments, r.cashflow)
}

func (r *fakeTxRunner) RunWithOrderLock(_ context.Context, orderID string, fn func(
	repository.OrderRepository, repository.InstallmentRepository, repository.CashFlowRepository,
) error) error {
	r.locked = append(r.locked, orderID)
	return fn(r.orders, r.installments, r.cashflow)
}

func (r *fakeTxRunner) RunCheckout(_ context.Context, fn func(
	repository.OrderRepository, repository.ProductRepository,
) error) error {
	return fn(r.orders, r.products)
}
