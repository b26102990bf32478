package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

func boolPtr(b bool) *bool { return &b }

func newBoletoOrder(id string) *entity.Order {
	o := newPixOrder(id)
	o.PaymentMethod = entity.PaymentBoleto
	o.Subtotal = decimal.NewFromInt(300)
	o.DeliveryFee = decimal.Zero
	o.RecomputeTotal()
	return o
}

// seedSchedule crea un cronograma de n cuotas iguales vía el caso de uso y
// devuelve los IDs en orden de número.
func seedSchedule(t *testing.T, uc *InstallmentUseCase, tx *fakeTxRunner, orderID string, n int) []string {
	t.Helper()
	in := dto.ReplaceInstallmentsRequest{}
	for i := 0; i < n; i++ {
		in.Installments = append(in.Installments, dto.InstallmentInput{
			Amount:  decimal.NewFromInt(100),
			DueDate: "2025-04-1" + string(rune('0'+i)),
		})
	}
	list, err := uc.ReplaceSchedule(context.Background(), entity.RoleAdmin, orderID, in)
	require.NoError(t, err)
	require.Len(t, list, n)
	ids := make([]string, n)
	for i, item := range list {
		require.Equal(t, i+1, item.Number, "los números se asignan por posición")
		ids[i] = item.ID
	}
	return ids
}

func TestReplaceSchedule_SoloAdmin(t *testing.T) {
	tx := newFakeTxRunner()
	tx.orders.orders["order-1"] = newBoletoOrder("order-1")
	uc := NewInstallmentUseCase(tx, tx.installments, testLogger())

	_, err := uc.ReplaceSchedule(context.Background(), entity.RoleManagement, "order-1", dto.ReplaceInstallmentsRequest{
		Installments: []dto.InstallmentInput{{Amount: decimal.NewFromInt(100), DueDate: "2025-04-10"}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReplaceSchedule_CronogramaVacioRechazado(t *testing.T) {
	tx := newFakeTxRunner()
	tx.orders.orders["order-1"] = newBoletoOrder("order-1")
	uc := NewInstallmentUseCase(tx, tx.installments, testLogger())

	_, err := uc.ReplaceSchedule(context.Background(), entity.RoleAdmin, "order-1", dto.ReplaceInstallmentsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplaceSchedule_MontoNoPositivoRechazado(t *testing.T) {
	tx := newFakeTxRunner()
	tx.orders.orders["order-1"] = newBoletoOrder("order-1")
	uc := NewInstallmentUseCase(tx, tx.installments, testLogger())

	_, err := uc.ReplaceSchedule(context.Background(), entity.RoleAdmin, "order-1", dto.ReplaceInstallmentsRequest{
		Installments: []dto.InstallmentInput{{Amount: decimal.Zero, DueDate: "2025-04-10"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Reemplazar un cronograma existente borra las cuotas viejas y renumera desde 1.
func TestReplaceSchedule_ReemplazaCompleto(t *testing.T) {
	tx := newFakeTxRunner()
	tx.orders.orders["order-1"] = newBoletoOrder("order-1")
	uc := NewInstallmentUseCase(tx, tx.installments, testLogger())

	seedSchedule(t, uc, tx, "order-1", 3)
	list, err := uc.ReplaceSchedule(context.Background(), entity.RoleAdmin, "order-1", dto.ReplaceInstallmentsRequest{
		Installments: []dto.InstallmentInput{
			{Amount: decimal.NewFromInt(150), DueDate: "2025-05-10"},
			{Amount: decimal.NewFromInt(150), DueDate: "2025-06-10"},
		},
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Number)
	assert.Equal(t, 2, list[1].Number)
	assert.Len(t, tx.installments.installments, 2, "las cuotas viejas desaparecen")
}

// Reemplazar el cronograma de un pedido con cuotas ya pagadas despinta el
// pedido y borra los asientos viejos; un pago posterior crea un asiento con
// el monto de la cuota NUEVA, no el de la vieja del mismo número.
func TestReplaceSchedule_LimpiaPagosPrevios(t *testing.T) {
	tx := newFakeTxRunner()
	tx.orders.orders["order-1"] = newBoletoOrder("order-1")
	uc := NewInstallmentUseCase(tx, tx.installments, testLogger())
	ids := seedSchedule(t, uc, tx, "order-1", 1)

	resp, err := uc.SetInstallmentPaid(context.Background(), entity.RoleAdmin, ids[0], dto.PayInstallmentRequest{
		Paid: boolPtr(true), PaymentDate: "2025-04-10",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PaidAt, "cuota única pagada implica pedido pagado")
	require.Len(t, tx.cashflow.entries, 1)

	list, err := uc.ReplaceSchedule(context.Background(), entity.RoleAdmin, "order-1", dto.ReplaceInstallmentsRequest{
		Installments: []dto.InstallmentInput{
			{Amount: decimal.NewFromInt(150), DueDate: "2025-05-10"},
			{Amount: decimal.NewFromInt(150), DueDate: "2025-06-10"},
		},
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, tx.orders.orders["order-1"].PaidAt,
		"las cuotas nuevas nacen impagas, el pedido no puede seguir pagado")
	assert.Empty(t, tx.cashflow.entries, "los asientos de las cuotas viejas se borran")

	// Pagar la nueva cuota 1 usa el monto nuevo, no hereda el asiento viejo.
	resp, err = uc.SetInstallmentPaid(context.Background(), entity.RoleAdmin, list[0].ID, dto.PayInstallmentRequest{
		Paid: boolPtr(true), PaymentDate: "2025-05-10",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.PaidAt, "una de dos pagadas no paga el pedido")
	entry, err := tx.cashflow.GetInstallmentEntry(context.Background(), "order-1", 1)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(150)),
		"el asiento lleva el monto de la cuota nueva")
}

// Pagar una cuota crea su asiento; el paid_at agregado del pedido solo se fija
// cuando TODAS están pagadas, y se limpia al despagar cualquiera.
func TestSetInstallmentPaid_CicloCompleto(t *testing.T) {
	tx := newFakeTxRunner()
	tx.orders.orders["order-1"] = newBoletoOrder("order-1")
	uc := NewInstallmentUseCase(tx, tx.installments, testLogger())
	ids := seedSchedule(t, uc, tx, "order-1", 3)

	// Pagar la cuota 1: asiento creado, pedido sigue impago.
	resp, err := uc.SetInstallmentPaid(context.Background(), entity.RoleAdmin, ids[0], dto.PayInstallmentRequest{
		Paid: boolPtr(true), PaymentDate: "2025-04-10",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.PaidAt, "una de tres pagadas no paga el pedido")
	require.Len(t, tx.cashflow.entries, 1)
	entry, err := tx.cashflow.GetInstallmentEntry(context.Background(), "order-1", 1)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(100)), "el asiento lleva el monto de la cuota")
	require.NotNil(t, entry.PaymentMethod)
	assert.Equal(t, entity.PaymentBoleto, *entry.PaymentMethod)

	// Pagar 2 y 3: el pedido queda pagado.
	_, err = uc.SetInstallmentPaid(context.Background(), entity.RoleAdmin, ids[1], dto.PayInstallmentRequest{
		Paid: boolPtr(true), PaymentDate: "2025-04-11",
	})
	require.NoError(t, err)
	resp, err = uc.SetInstallmentPaid(context.Background(), entity.RoleAdmin, ids[2], dto.PayInstallmentRequest{
		Paid: boolPtr(true), PaymentDate: "2025-04-12",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PaidAt, "todas pagadas implica pedido pagado")
	assert.Len(t, tx.cashflow.entries, 3)

	// Despagar la cuota 2: asiento fuera y paid_at agregado limpio.
	resp, err = uc.SetInstallmentPaid(context.Background(), entity.RoleAdmin, ids[1], dto.PayInstallmentRequest{
		Paid: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.PaidAt, "despagar una cuota despinta el pedido")
	assert.Len(t, tx.cashflow.entries, 2)
	entry, err = tx.cashflow.GetInstallmentEntry(context.Background(), "order-1", 2)
	require.NoError(t, err)
	assert.Nil(t, entry, "el asiento de la cuota 2 se borra")
}

// Pagar dos veces la misma cuota no duplica el asiento.
func TestSetInstallmentPaid_Idempotente(t *testing.T) {
	tx := newFakeTxRunner()
	tx.orders.orders["order-1"] = newBoletoOrder("order-1")
	uc := NewInstallmentUseCase(tx, tx.installments, testLogger())
	ids := seedSchedule(t, uc, tx, "order-1", 2)

	for i := 0; i < 2; i++ {
		_, err := uc.SetInstallmentPaid(context.Background(), entity.RoleAdmin, ids[0], dto.PayInstallmentRequest{
			Paid: boolPtr(true), PaymentDate: "2025-04-10",
		})
		require.NoError(t, err)
	}
	assert.Len(t, tx.cashflow.entries, 1, "repetir el pago no duplica")
}

// La fecha de pago por defecto es hoy.
func TestSetInstallmentPaid_FechaPorDefecto(t *testing.T) {
	tx := newFakeTxRunner()
	tx.orders.orders["order-1"] = newBoletoOrder("order-1")
	uc := NewInstallmentUseCase(tx, tx.installments, testLogger())
	ids := seedSchedule(t, uc, tx, "order-1", 1)

	before := time.Now()
	resp, err := uc.SetInstallmentPaid(context.Background(), entity.RoleAdmin, ids[0], dto.PayInstallmentRequest{
		Paid: boolPtr(true),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PaidAt)
	assert.False(t, resp.PaidAt.Before(before.Truncate(time.Second)))
}

func TestSetInstallmentPaid_SoloAdmin(t *testing.T) {
	tx := newFakeTxRunner()
	tx.orders.orders["order-1"] = newBoletoOrder("order-1")
	uc := NewInstallmentUseCase(tx, tx.installments, testLogger())
	ids := seedSchedule(t, uc, tx, "order-1", 1)

	_, err := uc.SetInstallmentPaid(context.Background(), entity.RoleFinancial, ids[0], dto.PayInstallmentRequest{
		Paid: boolPtr(true),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSetInstallmentPaid_FaltaCampoPaid(t *testing.T) {
	tx := newFakeTxRunner()
	tx.orders.orders["order-1"] = newBoletoOrder("order-1")
	uc := NewInstallmentUseCase(tx, tx.installments, testLogger())
	ids := seedSchedule(t, uc, tx, "order-1", 1)

	_, err := uc.SetInstallmentPaid(context.Background(), entity.RoleAdmin, ids[0], dto.PayInstallmentRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
