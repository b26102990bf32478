package orders

import (
	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/pkg/localdate"
)

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	resp := &dto.OrderResponse{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		Status:           string(o.Status),
		PaymentMethod:    string(o.PaymentMethod),
		PaidAt:           o.PaidAt,
		Subtotal:         o.Subtotal,
		DeliveryFee:      o.DeliveryFee,
		Total:            o.Total,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		Street:           o.Street,
		StreetNumber:     o.StreetNumber,
		Complement:       o.Complement,
		Neighborhood:     o.Neighborhood,
		City:             o.City,
		State:            o.State,
		ZipCode:          o.ZipCode,
		DeliveryDate:     o.DeliveryDate,
		DeliveryPersonID: o.DeliveryPersonID,
		Notes:            o.Notes,
		Items:            make([]dto.OrderItemResponse, 0, len(o.Items)),
		Installments:     make([]dto.InstallmentResponse, 0, len(o.Installments)),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	for _, inst := range o.Installments {
		resp.Installments = append(resp.Installments, toInstallmentResponse(inst))
	}
	return resp
}

func toInstallmentResponse(i *entity.Installment) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		ID:      i.ID,
		Number:  i.Number,
		Amount:  i.Amount,
		DueDate: localdate.FromTime(i.DueDate).String(),
		PaidAt:  i.PaidAt,
	}
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out
}

// shortOrderID prefijo corto del id, para descripciones legibles en caja.
func shortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
