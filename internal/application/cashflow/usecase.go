// Package cashflow contiene los casos de uso del libro de caja: asientos
// manuales del equipo financiero y consultas con resumen. Los asientos
// automáticos (pagos de pedidos y cuotas) los escriben los casos de uso de
// pedidos; aquí solo se gestionan y se leen.
package cashflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/permission"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
	"github.com/tu-usuario/pedidos-pro/pkg/localdate"
	"github.com/tu-usuario/pedidos-pro/pkg/logger"
)

// ListQuery filtros del listado (query params ya parseados).
type ListQuery struct {
	DateFrom string // YYYY-MM-DD
	DateTo   string // YYYY-MM-DD
	Type     string // INCOME | EXPENSE | vacío
	Search   string
}

// UseCase casos de uso del libro de caja.
type UseCase struct {
	repo  repository.CashFlowRepository
	perms permission.Resolver
	log   *logger.Logger
}

// New construye el caso de uso.
func New(repo repository.CashFlowRepository, perms permission.Resolver, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, perms: perms, log: log}
}

// Create asiento manual (requiere CanCreateCashFlow).
func (uc *UseCase) Create(ctx context.Context, actorRole string, in dto.CreateCashFlowRequest) (*dto.CashFlowResponse, error) {
	if !uc.perms.Resolve(actorRole).CanCreateCashFlow {
		return nil, domain.ErrForbidden
	}
	entryType := entity.CashFlowType(in.Type)
	if !entity.ValidCashFlowType(entryType) {
		return nil, fmt.Errorf("%w: type %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Amount.IsZero() || in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount debe ser positivo", domain.ErrInvalidInput)
	}
	method, err := parseMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentDate := time.Now()
	if in.PaymentDate != "" {
		d, err := localdate.Parse(in.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: paymentDate: %v", domain.ErrInvalidInput, err)
		}
		paymentDate = d.Midnight()
	}

	now := time.Now()
	entry := &entity.CashFlow{
		ID:            uuid.New().String(),
		Type:          entryType,
		Amount:        in.Amount,
		Description:   in.Description,
		PaymentMethod: method,
		PaymentDate:   paymentDate,
		OrderID:       in.OrderID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	uc.log.Info().Str("entry_id", entry.ID).Str("type", in.Type).Msg("asiento de caja creado")
	return toResponse(entry), nil
}

// Update PATCH parcial de un asiento (requiere CanEditCashFlow).
func (uc *UseCase) Update(ctx context.Context, actorRole, id string, in dto.UpdateCashFlowRequest) (*dto.CashFlowResponse, error) {
	if !uc.perms.Resolve(actorRole).CanEditCashFlow {
		return nil, domain.ErrForbidden
	}
	entry, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}

	if in.Type != nil {
		t := entity.CashFlowType(*in.Type)
		if !entity.ValidCashFlowType(t) {
			return nil, fmt.Errorf("%w: type %q", domain.ErrInvalidInput, *in.Type)
		}
		entry.Type = t
	}
	if in.Amount != nil {
		if in.Amount.IsZero() || in.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount debe ser positivo", domain.ErrInvalidInput)
		}
		entry.Amount = *in.Amount
	}
	if in.Description != nil {
		entry.Description = *in.Description
	}
	if in.PaymentMethod.Set {
		if !in.PaymentMethod.Valid {
			entry.PaymentMethod = nil
		} else {
			method, err := parseMethod(&in.PaymentMethod.Value)
			if err != nil {
				return nil, err
			}
			entry.PaymentMethod = method
		}
	}
	if in.PaymentDate != nil {
		d, err := localdate.Parse(*in.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: paymentDate: %v", domain.ErrInvalidInput, err)
		}
		entry.PaymentDate = d.Midnight()
	}

	entry.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return toResponse(entry), nil
}

// Delete borra un asiento (requiere CanDeleteCashFlow).
func (uc *UseCase) Delete(ctx context.Context, actorRole, id string) error {
	if !uc.perms.Resolve(actorRole).CanDeleteCashFlow {
		return domain.ErrForbidden
	}
	entry, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// List asientos filtrados más resumen (requiere CanViewCashFlow).
func (uc *UseCase) List(ctx context.Context, actorRole string, q ListQuery) (*dto.CashFlowListResponse, error) {
	if !uc.perms.Resolve(actorRole).CanViewCashFlow {
		return nil, domain.ErrForbidden
	}
	filter := repository.CashFlowFilter{Search: q.Search}
	if q.DateFrom != "" {
		d, err := localdate.Parse(q.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: dateFrom: %v", domain.ErrInvalidInput, err)
		}
		t := d.Midnight()
		filter.DateFrom = &t
	}
	if q.DateTo != "" {
		d, err := localdate.Parse(q.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: dateTo: %v", domain.ErrInvalidInput, err)
		}
		// Inclusivo: hasta el final del día
		t := d.Midnight().Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &t
	}
	if q.Type != "" {
		t := entity.CashFlowType(q.Type)
		if !entity.ValidCashFlowType(t) {
			return nil, fmt.Errorf("%w: type %q", domain.ErrInvalidInput, q.Type)
		}
		filter.Type = &t
	}

	entries, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.CashFlowListResponse{
		Entries: make([]dto.CashFlowResponse, 0, len(entries)),
		Summary: Summarize(entries),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, *toResponse(e))
	}
	return resp, nil
}

// Summarize totales del conjunto: ingresos, egresos y balance.
func Summarize(entries []*entity.CashFlow) dto.CashFlowSummary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, e := range entries {
		switch e.Type {
		case entity.CashFlowIncome:
			income = income.Add(e.Amount)
		case entity.CashFlowExpense:
			expense = expense.Add(e.Amount)
		}
	}
	return dto.CashFlowSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
}

func parseMethod(s *string) (*entity.PaymentMethod, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	m := entity.PaymentMethod(*s)
	if !entity.ValidPaymentMethod(m) {
		return nil, fmt.Errorf("%w: paymentMethod %q", domain.ErrInvalidInput, *s)
	}
	return &m, nil
}

func toResponse(e *entity.CashFlow) *dto.CashFlowResponse {
	var method *string
	if e.PaymentMethod != nil {
		s := string(*e.PaymentMethod)
		method = &s
	}
	return &dto.CashFlowResponse{
		ID:                e.ID,
		Type:              string(e.Type),
		Amount:            e.Amount,
		Description:       e.Description,
		PaymentMethod:     method,
		PaymentDate:       e.PaymentDate,
		OrderID:           e.OrderID,
		InstallmentNumber: e.InstallmentNumber,
		CreatedAt:         e.CreatedAt,
	}
}
