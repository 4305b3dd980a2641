package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
)

// PhpppConfig is the recognized .phppprc configuration object (§6).
type PhpppConfig struct {
	EnableLaravel bool `json:"enable_laravel"`
}

// DefaultPhpppConfig matches the documented default (enable_laravel: false).
func DefaultPhpppConfig() PhpppConfig {
	return PhpppConfig{EnableLaravel: false}
}

// LoadPhpppConfig parses .phppprc at workspaceRoot. A missing file yields
// the default config without logging; an unreadable or invalid file is
// logged and the default config is returned; the server still starts (§7
// "Configuration parse failure").
func LoadPhpppConfig(workspaceRoot string) PhpppConfig {
	logger := commonlog.GetLoggerf("phppp.config")
	cfg := DefaultPhpppConfig()

	path := filepath.Join(workspaceRoot, ".phppprc")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warningf("could not read %s: %v", path, err)
		}
		return cfg
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.Errorf("could not parse %s: %v", path, err)
		return DefaultPhpppConfig()
	}

	return cfg
}
