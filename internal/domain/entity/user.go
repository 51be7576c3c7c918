package entity

import "time"

// Roles del taller. El rol es dato de negocio: se consulta en cada decisión de acceso.
const (
	RoleSuperAdmin       = "super_admin"
	RoleReceptionist     = "receptionist"
	RoleTechnician       = "technician"
	RoleInventoryManager = "inventory_manager"
	RoleAccountant       = "accountant"
)

// ValidRoles lista los roles aceptados al crear o editar usuarios.
var ValidRoles = []string{
	RoleSuperAdmin, RoleReceptionist, RoleTechnician, RoleInventoryManager, RoleAccountant,
}

// IsValidRole indica si role pertenece al catálogo.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User representa un usuario (actor) del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Phone        string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre para reportes y listados.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}

// Actor es la identidad autenticada que ejecuta una operación.
type Actor struct {
	UserID string
	Role   string
}

// Ref referencia para created_by/changed_by; nil si no hay usuario.
func (a Actor) Ref() *string {
	if a.UserID == "" {
		return nil
	}
	id := a.UserID
	return &id
}
