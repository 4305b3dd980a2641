package config

import (
	"github.com/tliron/commonlog"

	"github.com/phppp-lsp/phppp/internal/store"
)

// Plugin is the framework-plugin capability interface (§9): invoked once at
// startup, after the initial workspace scan, and never again. Plugins must
// be stateless with respect to per-request handling in v1.
type Plugin interface {
	Name() string
	Register(index *store.GlobalIndex)
}

// laravelPlugin is the no-op framework plugin slot activated by
// `enable_laravel: true` in .phppprc (§6). It exists so the capability
// interface in §9 has one concrete, shippable implementation; it does not
// yet contribute any symbols of its own.
type laravelPlugin struct{}

// NewLaravelPlugin constructs the Laravel plugin slot.
func NewLaravelPlugin() Plugin { return laravelPlugin{} }

func (laravelPlugin) Name() string { return "laravel" }

func (laravelPlugin) Register(_ *store.GlobalIndex) {
	commonlog.GetLoggerf("phppp.config").Infof("laravel plugin slot registered (no-op)")
}

// ActivePlugins returns the plugins this config object activates.
func ActivePlugins(cfg PhpppConfig) []Plugin {
	if !cfg.EnableLaravel {
		return nil
	}
	return []Plugin{NewLaravelPlugin()}
}
