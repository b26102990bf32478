// Package permission implementa el resolvedor puro rol -> capacidades.
// Sin estado, sin I/O: cada componente del sistema consulta aquí qué puede
// hacer un rol en vez de repartir switches por los handlers.
package permission

import "github.com/tu-usuario/pedidos-pro/internal/domain/entity"

// Capabilities conjunto de capacidades con nombre. Un rol nuevo se deriva
// enumerando exactamente cuáles de estas son verdaderas.
type Capabilities struct {
	CanViewOrders   bool
	CanEditOrders   bool
	CanDeleteOrders bool

	CanAssignDelivery bool

	CanManageProducts        bool
	CanManageCategories      bool
	CanManageUsers           bool
	CanManageDeliveryPersons bool
	CanManageDeliveryZones   bool

	CanViewCashFlow   bool
	CanCreateCashFlow bool
	CanEditCashFlow   bool
	CanDeleteCashFlow bool

	CanViewUnpaidOrders   bool
	CanManageUnpaidOrders bool

	CanViewDashboard bool
	CanViewReports   bool

	CanManageFiles         bool
	CanManageNotifications bool
	CanManageSettings      bool
}

// Resolver contrato del resolvedor de permisos, inyectable y testeable en
// aislamiento de cualquier contexto de request.
type Resolver interface {
	Resolve(role string) Capabilities
}

// StaticResolver resolución fija para los cinco roles existentes.
type StaticResolver struct{}

var _ Resolver = StaticResolver{}

// NewStaticResolver construye el resolvedor.
func NewStaticResolver() StaticResolver {
	return StaticResolver{}
}

// Resolve mapea un rol a su conjunto de capacidades. Roles desconocidos
// resuelven al conjunto vacío.
//
// DELIVERY resuelve todo en falso: el personal de entrega usa una superficie
// de autoservicio aparte, no el set de permisos administrativos.
func (StaticResolver) Resolve(role string) Capabilities {
	switch role {
	case entity.RoleAdmin:
		return Capabilities{
			CanViewOrders:            true,
			CanEditOrders:            true,
			CanDeleteOrders:          true,
			CanAssignDelivery:        true,
			CanManageProducts:        true,
			CanManageCategories:      true,
			CanManageUsers:           true,
			CanManageDeliveryPersons: true,
			CanManageDeliveryZones:   true,
			CanViewCashFlow:          true,
			CanCreateCashFlow:        true,
			CanEditCashFlow:          true,
			CanDeleteCashFlow:        true,
			CanViewUnpaidOrders:      true,
			CanManageUnpaidOrders:    true,
			CanViewDashboard:         true,
			CanViewReports:           true,
			CanManageFiles:           true,
			CanManageNotifications:   true,
			CanManageSettings:        true,
		}
	case entity.RoleFinancial:
		// Restringido a lo financiero: ve y edita pedidos (solo campos de
		// pago, ver el caso de uso de actualización), caja completa, impagos.
		return Capabilities{
			CanViewOrders:         true,
			CanEditOrders:         true,
			CanViewCashFlow:       true,
			CanCreateCashFlow:     true,
			CanEditCashFlow:       true,
			CanDeleteCashFlow:     true,
			CanViewUnpaidOrders:   true,
			CanManageUnpaidOrders: true,
			CanViewDashboard:      true,
			CanViewReports:        true,
		}
	case entity.RoleManagement:
		return Capabilities{
			CanViewOrders:            true,
			CanEditOrders:            true,
			CanAssignDelivery:        true,
			CanManageDeliveryPersons: true,
			CanManageDeliveryZones:   true,
			CanViewUnpaidOrders:      true,
			CanManageUnpaidOrders:    true,
			CanViewDashboard:         true,
		}
	default:
		// USER, DELIVERY y cualquier rol desconocido
		return Capabilities{}
	}
}

// CanAccessAdmin indica si el rol puede entrar a la superficie administrativa.
// Es ortogonal a las capacidades finas: gobierna el acceso, no las acciones.
func CanAccessAdmin(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleFinancial, entity.RoleManagement:
		return true
	}
	return false
}
