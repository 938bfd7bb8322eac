package access

// Resolver decide autorizaciones a partir de una Table validada.
// Es inmutable después de construirse: seguro para lectura concurrente sin locks.
type Resolver struct {
	levels  map[Role]int
	modules map[Role][]Module
	perms   map[Role]map[Module]map[Action]struct{}
}

// NewResolver valida la tabla y precalcula los índices de búsqueda.
func NewResolver(t Table) (*Resolver, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	r := &Resolver{
		levels:  make(map[Role]int, len(t)),
		modules: make(map[Role][]Module, len(t)),
		perms:   make(map[Role]map[Module]map[Action]struct{}, len(t)),
	}
	for role, cfg := range t {
		r.levels[role] = cfg.Level
		mods := make([]Module, 0, len(cfg.Grants))
		byModule := make(map[Module]map[Action]struct{}, len(cfg.Grants))
		for _, g := range cfg.Grants {
			mods = append(mods, g.Module)
			actions := make(map[Action]struct{}, len(g.Actions))
			for _, a := range g.Actions {
				actions[a] = struct{}{}
			}
			byModule[g.Module] = actions
		}
		r.modules[role] = mods
		r.perms[role] = byModule
	}
	return r, nil
}

// MustNewResolver igual que NewResolver pero hace panic si la tabla es inválida (uso en arranque).
func MustNewResolver(t Table) *Resolver {
	r, err := NewResolver(t)
	if err != nil {
		panic(err)
	}
	return r
}

// HasPermission informa si el rol puede ejecutar la acción sobre el módulo.
// Falla cerrado: rol, módulo o acción desconocidos devuelven false.
func (r *Resolver) HasPermission(role Role, module Module, action Action) bool {
	byModule, ok := r.perms[role]
	if !ok {
		return false
	}
	actions, ok := byModule[module]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}

// CanAccessModule equivale a HasPermission(role, module, ActionRead).
func (r *Resolver) CanAccessModule(role Role, module Module) bool {
	return r.HasPermission(role, module, ActionRead)
}

// AccessibleModules devuelve los módulos del rol en el orden configurado.
// Rol desconocido: slice vacío (no nil).
func (r *Resolver) AccessibleModules(role Role) []Module {
	mods := r.modules[role]
	out := make([]Module, len(mods))
	copy(out, mods)
	return out
}

// RoleLevel devuelve el nivel numérico del rol; ok=false si el rol no existe.
func (r *Resolver) RoleLevel(role Role) (int, bool) {
	lvl, ok := r.levels[role]
	return lvl, ok
}

// MeetsLevel informa si el rol alcanza el nivel requerido.
func (r *Resolver) MeetsLevel(role Role, required int) bool {
	lvl, ok := r.levels[role]
	return ok && lvl >= required
}
