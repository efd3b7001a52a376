package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/tabs/internal/config"
	"github.com/nikbrunner/tabs/internal/model"
)

// isolate points HOME at an empty directory so no user config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")
	for _, key := range []string{"TABS_HOST_BACKEND", "TABS_HOST_ADDR", "TABS_HOST_TIMEOUT", "TABS_KEYBOARD_IGNORE_MODIFIERS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	assert.NilError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := config.Load("", nil)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Host.Backend, config.BackendBridge)
	assert.Equal(t, cfg.Host.Addr, "127.0.0.1:19191")
	assert.Equal(t, cfg.Host.Timeout, 5*time.Second)
	assert.Equal(t, cfg.Keyboard.IgnoreModifiers, false)
	assert.Equal(t, cfg.ListView(), model.ListViewList)
	assert.Equal(t, cfg.Log.File, filepath.Join(home, ".cache", "tabs", "tabs.log"))
}

func TestLoad_DefaultFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "tabs", "config.toml"), `
[host]
backend = "memory"
snapshot = "/tmp/tabs.json"
timeout = "2s"

[keyboard]
ignore_modifiers = true

[ui]
list_view = "grid"
`)

	cfg, err := config.Load("", nil)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Host.Backend, config.BackendMemory)
	assert.Equal(t, cfg.Host.Snapshot, "/tmp/tabs.json")
	assert.Equal(t, cfg.Host.Timeout, 2*time.Second)
	assert.Equal(t, cfg.Host.Addr, "127.0.0.1:19191", "unset keys keep defaults")
	assert.Equal(t, cfg.Keyboard.IgnoreModifiers, true)
	assert.Equal(t, cfg.ListView(), model.ListViewGrid)
}

func TestLoad_EnvAndFlagPrecedence(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tabs.toml")
	writeFile(t, path, "[host]\nbackend = \"memory\"\naddr = \"127.0.0.1:1\"\n")
	t.Setenv("TABS_HOST_BACKEND", "cdp")
	t.Setenv("TABS_HOST_ADDR", "127.0.0.1:2")

	flags := pflag.NewFlagSet("tabs", pflag.ContinueOnError)
	flags.String("host", "", "")
	flags.String("addr", "", "")
	assert.NilError(t, flags.Parse([]string{"--addr", "127.0.0.1:3"}))

	cfg, err := config.Load(path, flags)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Host.Backend, config.BackendCDP, "env beats file when the flag is unset")
	assert.Equal(t, cfg.Host.Addr, "127.0.0.1:3", "flag beats env")
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.toml"), nil)
	assert.ErrorContains(t, err, "read config")

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "[host]\nbackend = \"carrier-pigeon\"\n")
	_, err = config.Load(bad, nil)
	assert.ErrorContains(t, err, "invalid host.backend")

	broken := filepath.Join(dir, "broken.toml")
	writeFile(t, broken, "[host\n")
	_, err = config.Load(broken, nil)
	assert.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"unknown list view", func(c *config.Config) { c.UI.ListView = "table" }, "invalid ui.list_view"},
		{"unknown level", func(c *config.Config) { c.Log.Level = "loud" }, "invalid log.level"},
		{"zero timeout", func(c *config.Config) { c.Host.Timeout = 0 }, "invalid host.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NilError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := config.Default()
	want.Host.Backend = config.BackendCDP
	want.Host.Timeout = 1500 * time.Millisecond
	want.Keyboard.IgnoreModifiers = true
	want.UI.ListView = "grid"
	want.Log.Level = "debug"

	assert.NilError(t, config.Save(path, want))

	got, err := config.Load(path, nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, want)
}
