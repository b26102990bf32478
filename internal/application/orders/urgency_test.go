package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/permission"
)

// now fija para que los tests no dependan del reloj.
var testNow = time.Date(2025, time.April, 10, 12, 0, 0, 0, time.Local)

func boletoWithDue(id string, dueDates ...time.Time) *entity.Order {
	o := newBoletoOrder(id)
	for i, due := range dueDates {
		o.Installments = append(o.Installments, &entity.Installment{
			ID:      id + "-inst-" + string(rune('1'+i)),
			OrderID: id,
			Number:  i + 1,
			Amount:  decimal.NewFromInt(100),
			DueDate: due,
		})
	}
	return o
}

func TestClassify_BoletoVenceEnDosDias_Upcoming(t *testing.T) {
	due := time.Date(2025, time.April, 12, 0, 0, 0, 0, time.Local)
	info := ClassifyUnpaidOrder(testNow, boletoWithDue("o1", due))

	assert.Equal(t, UrgencyUpcoming, info.Level)
	assert.Equal(t, 2, info.DaysUntilDue, "12h hasta medianoche + 1 día = techo 2")
	require.NotNil(t, info.NextDueDate)
	assert.True(t, info.NextDueDate.Equal(due))
}

func TestClassify_BoletoVencido_Overdue(t *testing.T) {
	due := time.Date(2025, time.April, 8, 0, 0, 0, 0, time.Local)
	info := ClassifyUnpaidOrder(testNow, boletoWithDue("o1", due))

	assert.Equal(t, UrgencyOverdue, info.Level)
	assert.Negative(t, info.DaysUntilDue)
}

func TestClassify_BoletoLejano_Normal(t *testing.T) {
	due := time.Date(2025, time.April, 25, 0, 0, 0, 0, time.Local)
	info := ClassifyUnpaidOrder(testNow, boletoWithDue("o1", due))

	assert.Equal(t, UrgencyNormal, info.Level)
}

// Manda la cuota impaga más próxima, no la primera de la lista.
func TestClassify_BoletoCuotaPagadaSeIgnora(t *testing.T) {
	paid := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.Local)
	far := time.Date(2025, time.May, 20, 0, 0, 0, 0, time.Local)
	o := boletoWithDue("o1", paid, far)
	payDate := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.Local)
	o.Installments[0].PaidAt = &payDate

	info := ClassifyUnpaidOrder(testNow, o)
	assert.Equal(t, UrgencyNormal, info.Level)
	require.NotNil(t, info.NextDueDate)
	assert.True(t, info.NextDueDate.Equal(far))
}

// Boleto sin cronograma cae en la regla de antigüedad.
func TestClassify_BoletoSinCronogramaUsaAntiguedad(t *testing.T) {
	o := newBoletoOrder("o1")
	o.CreatedAt = testNow.Add(-9 * 24 * time.Hour)

	info := ClassifyUnpaidOrder(testNow, o)
	assert.Equal(t, UrgencyOverdue, info.Level)
	assert.Nil(t, info.NextDueDate)
}

func TestClassify_SinBoletoPorAntiguedad(t *testing.T) {
	cases := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"nuevo", 24 * time.Hour, UrgencyNormal},
		{"cuatro días", 4*24*time.Hour + time.Hour, UrgencyUpcoming},
		// Solo cuentan días completos: a los siete días y medio el octavo
		// día aún no se cumple.
		{"casi ocho días", 7*24*time.Hour + 12*time.Hour, UrgencyUpcoming},
		{"ocho días", 8*24*time.Hour + time.Hour, UrgencyOverdue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := newPixOrder("o1")
			o.CreatedAt = testNow.Add(-tc.age)
			info := ClassifyUnpaidOrder(testNow, o)
			assert.Equal(t, tc.want, info.Level)
			assert.LessOrEqual(t, info.DaysUntilDue, 0, "sin boleto la antigüedad va negada")
		})
	}
}

func TestUnpaidList_ParticionaPorUrgencia(t *testing.T) {
	repo := newFakeOrderRepo()

	overdue := boletoWithDue("o-overdue", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.Local))
	upcoming := boletoWithDue("o-upcoming", time.Date(2025, time.April, 12, 0, 0, 0, 0, time.Local))
	normal := newPixOrder("o-normal")
	normal.CreatedAt = testNow.Add(-24 * time.Hour)
	repo.orders[overdue.ID] = overdue
	repo.orders[upcoming.ID] = upcoming
	repo.orders[normal.ID] = normal

	// Un pedido pagado no aparece en ninguna partición.
	paid := newPixOrder("o-paid")
	paidAt := testNow
	paid.PaidAt = &paidAt
	repo.orders[paid.ID] = paid

	uc := NewUnpaidOrdersUseCase(repo, permission.NewStaticResolver()).
		WithClock(func() time.Time { return testNow })

	resp, err := uc.List(context.Background(), entity.RoleFinancial)
	require.NoError(t, err)
	require.Len(t, resp.Overdue, 1)
	require.Len(t, resp.Upcoming, 1)
	require.Len(t, resp.Normal, 1)
	assert.Equal(t, "o-overdue", resp.Overdue[0].ID)
	assert.Equal(t, "o-upcoming", resp.Upcoming[0].ID)
	assert.Equal(t, "o-normal", resp.Normal[0].ID)
	require.NotNil(t, resp.Upcoming[0].NextDueDate)
	assert.Equal(t, "2025-04-12", *resp.Upcoming[0].NextDueDate)
}

func TestUnpaidList_RolSinPermiso(t *testing.T) {
	uc := NewUnpaidOrdersUseCase(newFakeOrderRepo(), permission.NewStaticResolver())
	_, err := uc.List(context.Background(), entity.RoleDelivery)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
