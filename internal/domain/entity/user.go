package entity

import "time"

// Roles válidos para User.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleDelivery   = "DELIVERY"
	RoleFinancial  = "FINANCIAL"
	RoleManagement = "MANAGEMENT"
)

// ValidRole indica si role es uno de los cinco roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleDelivery, RoleFinancial, RoleManagement:
		return true
	}
	return false
}

// User usuario del sistema. La emisión de sesión es externa al núcleo; aquí
// solo importa la identidad y el rol.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Phone        string
	Role         string // USER, ADMIN, DELIVERY, FINANCIAL, MANAGEMENT
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
