// Package access resuelve la autorización por rol: qué módulos ve cada rol y
// qué acciones puede ejecutar en cada uno. No autentica; solo autoriza.
package access

// Role identifica el rol de la sesión (uno por sesión, asignado en el login).
type Role string

// Roles soportados.
const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleExecutive Role = "executive"
	RoleCustomer  Role = "customer"
)

// Module es un área funcional de la aplicación (navegación y rutas).
type Module string

// Módulos de la aplicación. ModuleOrders cubre el punto de venta y el historial de ventas.
const (
	ModuleDashboard Module = "dashboard"
	ModuleProducts  Module = "products"
	ModuleCustomers Module = "customers"
	ModuleOrders    Module = "orders"
	ModuleReports   Module = "reports"
	ModuleInventory Module = "inventory"
	ModuleAdmin     Module = "admin"
)

// Action es una operación autorizable sobre un módulo.
type Action string

// Acciones soportadas.
const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionExport  Action = "export"
	ActionApprove Action = "approve"
)

var (
	knownRoles   = []Role{RoleAdmin, RoleManager, RoleExecutive, RoleCustomer}
	knownModules = map[Module]struct{}{
		ModuleDashboard: {}, ModuleProducts: {}, ModuleCustomers: {}, ModuleOrders: {},
		ModuleReports: {}, ModuleInventory: {}, ModuleAdmin: {},
	}
	knownActions = map[Action]struct{}{
		ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionDelete: {},
		ActionExport: {}, ActionApprove: {},
	}
)

// ParseRole convierte el claim del token en Role. ok=false si no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	for _, r := range knownRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Roles devuelve los roles conocidos en orden de privilegio descendente.
func Roles() []Role {
	out := make([]Role, len(knownRoles))
	copy(out, knownRoles)
	return out
}

// AllActions devuelve todas las acciones conocidas.
func AllActions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionExport, ActionApprove}
}
