package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

// ZoneHandler expone las zonas de entrega activas para el checkout.
type ZoneHandler struct {
	zones repository.DeliveryZoneRepository
}

// NewZoneHandler construye el handler.
func NewZoneHandler(zones repository.DeliveryZoneRepository) *ZoneHandler {
	return &ZoneHandler{zones: zones}
}

// ListActive zonas activas con su tarifa vigente.
// GET /api/delivery-zones
func (h *ZoneHandler) ListActive(c *fiber.Ctx) error {
	list, err := h.zones.ListActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.ZoneResponse, 0, len(list))
	for _, z := range list {
		resp = append(resp, dto.ZoneResponse{ID: z.ID, City: z.City, State: z.State, Fee: z.Fee})
	}
	return c.JSON(resp)
}
