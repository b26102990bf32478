package orders

import (
	"time"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/pkg/localdate"
)

// Niveles de urgencia de cobro.
const (
	UrgencyOverdue  = "overdue"
	UrgencyUpcoming = "upcoming"
	UrgencyNormal   = "normal"
)

// Umbrales del clasificador.
const (
	upcomingWindowDays = 3 // boleto: cuota que vence en <= 3 días
	overdueAgeDays     = 7 // sin boleto: pedido impago con más de 7 días
	upcomingAgeDays    = 3 // sin boleto: pedido impago con más de 3 días
)

// UrgencyInfo resultado del clasificador para un pedido impago.
type UrgencyInfo struct {
	Level        string
	DaysUntilDue int
	NextDueDate  *time.Time // vencimiento de la próxima cuota impaga; solo boleto
}

// ClassifyUnpaidOrder deriva la urgencia de un pedido impago. Función pura
// sobre "now": nada se persiste, se recalcula en cada consulta.
//
// Boleto: manda el vencimiento de la cuota impaga más próxima. Sin boleto (o
// boleto aún sin cronograma): manda la antigüedad del pedido, y daysUntilDue
// es esa antigüedad negada.
func ClassifyUnpaidOrder(now time.Time, o *entity.Order) UrgencyInfo {
	if o.IsBoleto() {
		if due := earliestUnpaidDueDate(o.Installments); due != nil {
			days := localdate.CeilDaysUntil(now, *due)
			return UrgencyInfo{
				Level:        levelForDays(days),
				DaysUntilDue: days,
				NextDueDate:  due,
			}
		}
	}

	// La antigüedad cuenta días COMPLETOS: el pedido pasa a upcoming al
	// cumplir su cuarto día y a overdue al cumplir el octavo.
	ageDays := int(now.Sub(o.CreatedAt).Hours() / 24)
	level := UrgencyNormal
	switch {
	case ageDays > overdueAgeDays:
		level = UrgencyOverdue
	case ageDays > upcomingAgeDays:
		level = UrgencyUpcoming
	}
	return UrgencyInfo{Level: level, DaysUntilDue: -ageDays}
}

func levelForDays(days int) string {
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= upcomingWindowDays:
		return UrgencyUpcoming
	default:
		return UrgencyNormal
	}
}

func earliestUnpaidDueDate(installments []*entity.Installment) *time.Time {
	var earliest *time.Time
	for _, inst := range installments {
		if inst.IsPaid() {
			continue
		}
		if earliest == nil || inst.DueDate.Before(*earliest) {
			due := inst.DueDate
			earliest = &due
		}
	}
	return earliest
}
