package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadComposerAutoload_PSR4StringAndArray(t *testing.T) {
	dir := t.TempDir()
	composer := `{
		"autoload": {
			"psr-4": {
				"App\\": "src/",
				"App\\Tests\\": ["tests/", "tests2/"]
			}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "composer.json"), []byte(composer), 0o644))

	m := LoadComposerAutoload(dir)

	require.Equal(t, []string{"src/"}, m.PSR4[`App\`])
	require.Equal(t, []string{"tests/", "tests2/"}, m.PSR4[`App\Tests\`])
}

func TestLoadComposerAutoload_MissingFile(t *testing.T) {
	dir := t.TempDir()
	m := LoadComposerAutoload(dir)

	require.Empty(t, m.PSR4)
	require.Empty(t, m.Classmap)
}

func TestLoadComposerAutoload_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "composer.json"), []byte("{not json"), 0o644))

	m := LoadComposerAutoload(dir)
	require.Empty(t, m.PSR4)
}

func TestAutoloadMap_Resolve_PSR4(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "Service"), 0o755))
	target := filepath.Join(dir, "src", "Service", "Greeter.php")
	require.NoError(t, os.WriteFile(target, []byte("<?php"), 0o644))

	m := AutoloadMap{PSR4: Psr4Map{`App\`: {"src/"}}, Classmap: ClassmapMap{}}

	path, ok := m.Resolve(`App\Service\Greeter`, dir)
	require.True(t, ok)
	require.Equal(t, target, path)
}

func TestAutoloadMap_Resolve_Classmap(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "lib", "Legacy.php")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("<?php"), 0o644))

	m := AutoloadMap{PSR4: Psr4Map{}, Classmap: ClassmapMap{"Legacy": "lib/Legacy.php"}}

	path, ok := m.Resolve("Legacy", dir)
	require.True(t, ok)
	require.Equal(t, target, path)
}

func TestAutoloadMap_Resolve_NotFound(t *testing.T) {
	dir := t.TempDir()
	m := AutoloadMap{PSR4: Psr4Map{`App\`: {"src/"}}, Classmap: ClassmapMap{}}

	_, ok := m.Resolve(`App\Missing`, dir)
	require.False(t, ok)
}
