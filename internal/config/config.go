package config

import "github.com/tliron/commonlog"

// Config bundles the workspace metadata read once at startup (§6).
type Config struct {
	WorkspaceRoot string
	Autoload      AutoloadMap
	Phppprc       PhpppConfig
	Plugins       []Plugin
}

// Load reads composer.json and .phppprc under workspaceRoot. Both are
// best-effort: a missing file yields defaults silently, an unreadable or
// invalid one yields defaults and a logged message, never a startup
// failure (§7).
func Load(workspaceRoot string) *Config {
	logger := commonlog.GetLoggerf("phppp.config")

	autoload := LoadComposerAutoload(workspaceRoot)
	phppprc := LoadPhpppConfig(workspaceRoot)
	plugins := ActivePlugins(phppprc)

	logger.Infof("config loaded: root=%s psr4Prefixes=%d laravelPlugin=%v",
		workspaceRoot, len(autoload.PSR4), phppprc.EnableLaravel)

	return &Config{
		WorkspaceRoot: workspaceRoot,
		Autoload:      autoload,
		Phppprc:       phppprc,
		Plugins:       plugins,
	}
}
