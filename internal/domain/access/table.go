package access

import (
	"errors"
	"fmt"
)

// Grant acciones permitidas de un rol sobre un módulo.
type Grant struct {
	Module  Module
	Actions []Action
}

// RoleConfig nivel numérico del rol y sus módulos en orden de navegación.
type RoleConfig struct {
	Level  int
	Grants []Grant
}

// Table tabla estática rol -> permisos. Es configuración de proceso; no se muta en runtime.
type Table map[Role]RoleConfig

// crud devuelve create/read/update/delete más las acciones extra (slice nuevo en cada llamada).
func crud(extra ...Action) []Action {
	return append([]Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}, extra...)
}

// DefaultTable tabla de permisos de la tienda.
var DefaultTable = Table{
	RoleAdmin: {
		Level: 120,
		Grants: []Grant{
			{ModuleDashboard, []Action{ActionRead, ActionExport}},
			{ModuleProducts, AllActions()},
			{ModuleCustomers, AllActions()},
			{ModuleOrders, AllActions()},
			{ModuleReports, AllActions()},
			{ModuleInventory, AllActions()},
			{ModuleAdmin, AllActions()},
		},
	},
	RoleManager: {
		Level: 100,
		Grants: []Grant{
			{ModuleDashboard, []Action{ActionRead, ActionExport}},
			{ModuleProducts, crud(ActionExport)},
			{ModuleCustomers, crud(ActionExport)},
			{ModuleOrders, crud(ActionExport, ActionApprove)},
			{ModuleReports, crud(ActionExport)},
			{ModuleInventory, crud(ActionExport)},
			{ModuleAdmin, crud()},
		},
	},
	RoleExecutive: {
		Level: 80,
		Grants: []Grant{
			{ModuleDashboard, []Action{ActionRead, ActionExport}},
			{ModuleCustomers, []Action{ActionCreate, ActionRead, ActionUpdate, ActionExport}},
			{ModuleOrders, []Action{ActionCreate, ActionRead, ActionUpdate, ActionExport}},
			{ModuleReports, []Action{ActionRead, ActionExport}},
		},
	},
	RoleCustomer: {
		Level: 50,
		Grants: []Grant{
			{ModuleDashboard, []Action{ActionRead}},
			{ModuleOrders, []Action{ActionCreate, ActionRead}},
		},
	},
}

// ErrInvalidTable la tabla de permisos no es completa o contiene valores desconocidos.
var ErrInvalidTable = errors.New("tabla de permisos inválida")

// Validate verifica la tabla al arranque: roles conocidos y presentes, módulos y acciones
// conocidos, sin módulos repetidos y al menos un módulo con "read" por rol.
func (t Table) Validate() error {
	for _, role := range knownRoles {
		if _, ok := t[role]; !ok {
			return fmt.Errorf("%w: falta el rol %q", ErrInvalidTable, role)
		}
	}
	for role, cfg := range t {
		if _, ok := ParseRole(string(role)); !ok {
			return fmt.Errorf("%w: rol desconocido %q", ErrInvalidTable, role)
		}
		seen := make(map[Module]struct{}, len(cfg.Grants))
		readable := false
		for _, g := range cfg.Grants {
			if _, ok := knownModules[g.Module]; !ok {
				return fmt.Errorf("%w: módulo desconocido %q en rol %q", ErrInvalidTable, g.Module, role)
			}
			if _, dup := seen[g.Module]; dup {
				return fmt.Errorf("%w: módulo %q repetido en rol %q", ErrInvalidTable, g.Module, role)
			}
			seen[g.Module] = struct{}{}
			for _, a := range g.Actions {
				if _, ok := knownActions[a]; !ok {
					return fmt.Errorf("%w: acción desconocida %q en %s/%s", ErrInvalidTable, a, role, g.Module)
				}
				if a == ActionRead {
					readable = true
				}
			}
		}
		if !readable {
			return fmt.Errorf("%w: el rol %q no tiene ningún módulo con lectura", ErrInvalidTable, role)
		}
	}
	return nil
}
