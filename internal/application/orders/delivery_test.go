package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/permission"
)

func newDeliverySetup(t *testing.T) (*fakeTxRunner, *fakeUserRepo, *DeliveryUseCase) {
	t.Helper()
	tx := newFakeTxRunner()
	users := newFakeUserRepo()
	users.users["rider-1"] = &entity.User{ID: "rider-1", Email: "rider1@test.dev", Role: entity.RoleDelivery}
	users.users["rider-2"] = &entity.User{ID: "rider-2", Email: "rider2@test.dev", Role: entity.RoleDelivery}
	users.users["plain-user"] = &entity.User{ID: "plain-user", Email: "user@test.dev", Role: entity.RoleUser}
	uc := NewDeliveryUseCase(tx, tx.orders, users, permission.NewStaticResolver(), testLogger())
	return tx, users, uc
}

func TestAssign_SoloPedidosConfirmados(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	order := newPixOrder("order-1")
	order.Status = entity.StatusPending
	tx.orders.orders["order-1"] = order

	_, err := uc.Assign(context.Background(), entity.RoleManagement, "order-1", "rider-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	order.Status = entity.StatusConfirmed
	resp, err := uc.Assign(context.Background(), entity.RoleManagement, "order-1", "rider-1")
	require.NoError(t, err)
	require.NotNil(t, resp.DeliveryPersonID)
	assert.Equal(t, "rider-1", *resp.DeliveryPersonID)
	assert.Equal(t, "CONFIRMED", resp.Status, "asignar no cambia el estado")
}

func TestAssign_DestinoDebeSerRepartidor(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	order := newPixOrder("order-1")
	order.Status = entity.StatusConfirmed
	tx.orders.orders["order-1"] = order

	_, err := uc.Assign(context.Background(), entity.RoleAdmin, "order-1", "plain-user")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssign_ReasignacionPermitida(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	order := newPixOrder("order-1")
	order.Status = entity.StatusConfirmed
	tx.orders.orders["order-1"] = order

	_, err := uc.Assign(context.Background(), entity.RoleAdmin, "order-1", "rider-1")
	require.NoError(t, err)
	resp, err := uc.Assign(context.Background(), entity.RoleAdmin, "order-1", "rider-2")
	require.NoError(t, err)
	assert.Equal(t, "rider-2", *resp.DeliveryPersonID)
}

func TestUnassign_RechazadoEnRuta(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	rider := "rider-1"
	order := newPixOrder("order-1")
	order.Status = entity.StatusInRoute
	order.DeliveryPersonID = &rider
	tx.orders.orders["order-1"] = order

	_, err := uc.Unassign(context.Background(), entity.RoleAdmin, "order-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAdvance_SoloElRepartidorAsignado(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	rider := "rider-1"
	order := newPixOrder("order-1")
	order.Status = entity.StatusConfirmed
	order.DeliveryPersonID = &rider
	tx.orders.orders["order-1"] = order

	_, err := uc.Advance(context.Background(), "rider-2", "order-1", ActionStartRoute)
	assert.ErrorIs(t, err, domain.ErrForbidden, "otro repartidor no puede operar el pedido")

	resp, err := uc.Advance(context.Background(), "rider-1", "order-1", ActionStartRoute)
	require.NoError(t, err)
	assert.Equal(t, "IN_ROUTE", resp.Status)
}

func TestAdvance_SinSaltosNiRetrocesos(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	rider := "rider-1"
	order := newPixOrder("order-1")
	order.Status = entity.StatusConfirmed
	order.DeliveryPersonID = &rider
	tx.orders.orders["order-1"] = order

	// Saltar directo a entregado desde CONFIRMED se rechaza.
	_, err := uc.Advance(context.Background(), "rider-1", "order-1", ActionConfirmDelivery)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.Advance(context.Background(), "rider-1", "order-1", ActionStartRoute)
	require.NoError(t, err)
	resp, err := uc.Advance(context.Background(), "rider-1", "order-1", ActionConfirmDelivery)
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", resp.Status)

	// DELIVERED es terminal para el autoservicio.
	_, err = uc.Advance(context.Background(), "rider-1", "order-1", ActionStartRoute)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAdvance_EntregarNoPaga(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	rider := "rider-1"
	order := newPixOrder("order-1")
	order.Status = entity.StatusInRoute
	order.DeliveryPersonID = &rider
	tx.orders.orders["order-1"] = order

	resp, err := uc.Advance(context.Background(), "rider-1", "order-1", ActionConfirmDelivery)
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", resp.Status)
	assert.Nil(t, resp.PaidAt, "la entrega nunca toca el estado de pago")
}

// Entregar un pedido ya pagado conserva el paid_at: la escritura de entrega
// no arrastra estado de pago viejo.
func TestAdvance_ConservaPagoExistente(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	rider := "rider-1"
	paidAt := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.Local)
	order := newPixOrder("order-1")
	order.Status = entity.StatusInRoute
	order.DeliveryPersonID = &rider
	order.PaidAt = &paidAt
	tx.orders.orders["order-1"] = order

	resp, err := uc.Advance(context.Background(), "rider-1", "order-1", ActionConfirmDelivery)
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", resp.Status)
	require.NotNil(t, resp.PaidAt)
	assert.True(t, resp.PaidAt.Equal(paidAt))
}

// Cada mutación de entrega toma el lock del pedido, igual que los flujos de
// pago: las secuencias leer-modificar-escribir quedan serializadas por pedido.
func TestDelivery_MutacionesSerializadasPorPedido(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	order := newPixOrder("order-1")
	order.Status = entity.StatusConfirmed
	tx.orders.orders["order-1"] = order

	_, err := uc.Assign(context.Background(), entity.RoleAdmin, "order-1", "rider-1")
	require.NoError(t, err)
	_, err = uc.Unassign(context.Background(), entity.RoleAdmin, "order-1")
	require.NoError(t, err)
	_, err = uc.Assign(context.Background(), entity.RoleAdmin, "order-1", "rider-1")
	require.NoError(t, err)
	_, err = uc.Advance(context.Background(), "rider-1", "order-1", ActionStartRoute)
	require.NoError(t, err)

	require.Len(t, tx.locked, 4, "asignar, desasignar y avanzar toman el lock")
	for _, id := range tx.locked {
		assert.Equal(t, "order-1", id)
	}
}

func TestAdvance_AccionDesconocida(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	tx.orders.orders["order-1"] = newPixOrder("order-1")

	_, err := uc.Advance(context.Background(), "rider-1", "order-1", "teleport")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMyRoute_SoloActivosDelRepartidor(t *testing.T) {
	tx, _, uc := newDeliverySetup(t)
	rider := "rider-1"
	for i, status := range []entity.Status{entity.StatusConfirmed, entity.StatusInRoute, entity.StatusDelivered} {
		o := newPixOrder("order-" + string(rune('1'+i)))
		o.Status = status
		o.DeliveryPersonID = &rider
		o.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		tx.orders.orders[o.ID] = o
	}

	list, err := uc.MyRoute(context.Background(), "rider-1")
	require.NoError(t, err)
	assert.Len(t, list, 2, "los DELIVERED quedan fuera de la ruta")
}

func TestPromote_SoloUsuariosComunes(t *testing.T) {
	_, users, uc := newDeliverySetup(t)

	require.NoError(t, uc.PromoteToDelivery(context.Background(), entity.RoleAdmin, "plain-user"))
	assert.Equal(t, entity.RoleDelivery, users.users["plain-user"].Role)

	err := uc.PromoteToDelivery(context.Background(), entity.RoleAdmin, "rider-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un DELIVERY no se vuelve a promover")
}

func TestDemote_RechazadoConPedidosActivos(t *testing.T) {
	tx, users, uc := newDeliverySetup(t)
	rider := "rider-1"
	order := newPixOrder("order-1")
	order.Status = entity.StatusInRoute
	order.DeliveryPersonID = &rider
	tx.orders.orders["order-1"] = order

	err := uc.DemoteFromDelivery(context.Background(), entity.RoleAdmin, "rider-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	order.Status = entity.StatusDelivered
	require.NoError(t, uc.DemoteFromDelivery(context.Background(), entity.RoleAdmin, "rider-1"))
	assert.Equal(t, entity.RoleUser, users.users["rider-1"].Role)
}

func TestDemote_RolSinPermiso(t *testing.T) {
	_, _, uc := newDeliverySetup(t)
	err := uc.DemoteFromDelivery(context.Background(), entity.RoleFinancial, "rider-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
