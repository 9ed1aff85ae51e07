package domain

import (
	"maps"
	"slices"
)

// PluginRole identifies the purpose of a configuration plugin.
// A registry holds at most one plugin per role.
type PluginRole int

const (
	// RoleHotReload injects the hot module replacement runtime.
	RoleHotReload PluginRole = iota + 1
	// RoleHTML generates the HTML shell from a template.
	RoleHTML
	// RoleManifest writes an asset manifest.
	RoleManifest
	// RoleStylesheetExtract emits stylesheets as separate files.
	RoleStylesheetExtract
	// RoleDefine replaces global identifiers with constants at compile time.
	RoleDefine
)

func (r PluginRole) String() string {
	switch r {
	case RoleHotReload:
		return "hot-reload"
	case RoleHTML:
		return "html"
	case RoleManifest:
		return "manifest"
	case RoleStylesheetExtract:
		return "stylesheet-extract"
	case RoleDefine:
		return "define"
	default:
		return "unknown"
	}
}

// Plugin is a typed configuration plugin.
type Plugin interface {
	Role() PluginRole
}

// HotReloadPlugin enables hot module replacement.
type HotReloadPlugin struct{}

// Role implements Plugin.
func (*HotReloadPlugin) Role() PluginRole { return RoleHotReload }

// HTMLPlugin renders Template into Filename, linking the entry chunk files.
type HTMLPlugin struct {
	Template string
	Filename string
}

// Role implements Plugin.
func (*HTMLPlugin) Role() PluginRole { return RoleHTML }

// ManifestPlugin writes a JSON map from logical to emitted file names.
type ManifestPlugin struct {
	Filename string
}

// Role implements Plugin.
func (*ManifestPlugin) Role() PluginRole { return RoleManifest }

// StylesheetExtractPlugin names extracted stylesheets.
type StylesheetExtractPlugin struct {
	Filename      string
	ChunkFilename string
}

// Role implements Plugin.
func (*StylesheetExtractPlugin) Role() PluginRole { return RoleStylesheetExtract }

// DefinePlugin holds identifier replacements. Values are source expressions.
type DefinePlugin struct {
	Definitions map[string]string
}

// Role implements Plugin.
func (*DefinePlugin) Role() PluginRole { return RoleDefine }

// EmitHook rewrites the emission before final names are resolved.
type EmitHook interface {
	Name() string
	BeforeEmit(e *Emission) error
}

// PluginRegistry stores plugins by role plus an ordered list of emission hooks.
type PluginRegistry struct {
	plugins map[PluginRole]Plugin
	hooks   []EmitHook
}

// NewPluginRegistry creates a registry holding plugins. Later plugins replace
// earlier ones with the same role.
func NewPluginRegistry(plugins ...Plugin) *PluginRegistry {
	r := &PluginRegistry{plugins: make(map[PluginRole]Plugin, len(plugins))}
	for _, p := range plugins {
		r.Set(p)
	}
	return r
}

// Get returns the plugin registered for role.
func (r *PluginRegistry) Get(role PluginRole) (Plugin, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.plugins[role]
	return p, ok
}

// Has reports whether a plugin is registered for role.
func (r *PluginRegistry) Has(role PluginRole) bool {
	_, ok := r.Get(role)
	return ok
}

// Set registers p under its role, replacing any previous plugin.
func (r *PluginRegistry) Set(p Plugin) {
	if r.plugins == nil {
		r.plugins = make(map[PluginRole]Plugin)
	}
	r.plugins[p.Role()] = p
}

// Remove drops the plugin registered for role. It reports whether one was present.
func (r *PluginRegistry) Remove(role PluginRole) bool {
	if r == nil {
		return false
	}
	_, ok := r.plugins[role]
	delete(r.plugins, role)
	return ok
}

// Roles returns the registered roles in ascending order.
func (r *PluginRegistry) Roles() []PluginRole {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.plugins))
}

// Attach appends an emission hook.
func (r *PluginRegistry) Attach(h EmitHook) {
	r.hooks = append(r.hooks, h)
}

// Hooks returns the emission hooks in attachment order.
func (r *PluginRegistry) Hooks() []EmitHook {
	if r == nil {
		return nil
	}
	return slices.Clone(r.hooks)
}

// Clone returns a registry with the same plugins and hooks.
func (r *PluginRegistry) Clone() *PluginRegistry {
	if r == nil {
		return NewPluginRegistry()
	}
	return &PluginRegistry{
		plugins: maps.Clone(r.plugins),
		hooks:   slices.Clone(r.hooks),
	}
}

// PluginAs returns the plugin registered for role as its concrete type.
func PluginAs[T Plugin](r *PluginRegistry, role PluginRole) (T, bool) {
	var zero T
	p, ok := r.Get(role)
	if !ok {
		return zero, false
	}
	t, ok := p.(T)
	return t, ok
}
