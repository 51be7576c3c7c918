// Package access resuelve qué familias de recursos puede ver un actor según su rol.
// El control es por módulo, no por registro: el alcance es total o nulo.
package access

import (
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// Module familia de recursos.
type Module string

const (
	CRM        Module = "crm"       // clientes, vehículos, citas, comunicaciones
	Workshop   Module = "workshop"  // órdenes de trabajo y sub-entidades
	Inventory  Module = "inventory" // repuestos, proveedores, órdenes de compra, stock
	Accounting Module = "accounting"
	Reports    Module = "reports"
	Users      Module = "users" // administración de usuarios
)

// Scope resultado de la consulta de acceso.
type Scope int

const (
	None Scope = iota
	Full
)

var permissions = map[string][]Module{
	entity.RoleSuperAdmin:       {CRM, Workshop, Inventory, Accounting, Reports, Users},
	entity.RoleReceptionist:     {CRM, Workshop},
	entity.RoleTechnician:       {Workshop, Inventory},
	entity.RoleInventoryManager: {Inventory},
	entity.RoleAccountant:       {Accounting, Reports},
}

// ScopeFor función total: cualquier rol desconocido obtiene None.
func ScopeFor(role string, m Module) Scope {
	for _, allowed := range permissions[role] {
		if allowed == m {
			return Full
		}
	}
	return None
}

// Can atajo booleano de ScopeFor.
func Can(role string, m Module) bool {
	return ScopeFor(role, m) == Full
}

// Check devuelve domain.ErrForbidden si el rol no accede al módulo.
func Check(role string, m Module) error {
	if !Can(role, m) {
		return domain.ErrForbidden
	}
	return nil
}

// ModulesFor módulos visibles para el rol (para el perfil del usuario).
func ModulesFor(role string) []Module {
	out := make([]Module, len(permissions[role]))
	copy(out, permissions[role])
	return out
}

// RolesFor roles con acceso al módulo, en el orden del catálogo.
func RolesFor(m Module) []string {
	var roles []string
	for _, r := range entity.ValidRoles {
		if Can(r, m) {
			roles = append(roles, r)
		}
	}
	return roles
}
