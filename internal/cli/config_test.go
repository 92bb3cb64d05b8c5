package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/pillbox/pkg/errors"
	"github.com/matzehuels/pillbox/pkg/pillbox"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadConfig(configSources{
		file:    filepath.Join(dir, "missing.toml"),
		envFile: filepath.Join(dir, ".env"),
		getenv:  envMap(nil),
	})
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.BaseURL != pillbox.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, pillbox.DefaultBaseURL)
	}
	if cfg.APIKey != "" || cfg.Strict {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.Sources) != 0 {
		t.Errorf("Sources = %v, want none", cfg.Sources)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.toml", `
api_key = "FILEKEY"
base_url = "http://file.example/api.php"
strict = true
`)
	envFile := writeFile(t, dir, ".env", "PILLBOX_API_KEY=DOTENVKEY\nPILLBOX_BASE_URL=http://dotenv.example/api.php\n")

	tests := []struct {
		name       string
		env        map[string]string
		wantKey    string
		wantURL    string
		wantStrict bool
		wantSrc    []string
	}{
		{
			name:       "dotenv over file",
			wantKey:    "DOTENVKEY",
			wantURL:    "http://dotenv.example/api.php",
			wantStrict: true,
			wantSrc:    []string{file, envFile},
		},
		{
			name:       "environment over dotenv",
			env:        map[string]string{envAPIKey: "ENVKEY", envStrict: "false"},
			wantKey:    "ENVKEY",
			wantURL:    "http://dotenv.example/api.php",
			wantStrict: false,
			wantSrc:    []string{file, envFile, "environment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(configSources{file: file, envFile: envFile, getenv: envMap(tt.env)})
			if err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			if cfg.APIKey != tt.wantKey {
				t.Errorf("APIKey = %q, want %q", cfg.APIKey, tt.wantKey)
			}
			if cfg.BaseURL != tt.wantURL {
				t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, tt.wantURL)
			}
			if cfg.Strict != tt.wantStrict {
				t.Errorf("Strict = %v, want %v", cfg.Strict, tt.wantStrict)
			}
			if !reflect.DeepEqual(cfg.Sources, tt.wantSrc) {
				t.Errorf("Sources = %v, want %v", cfg.Sources, tt.wantSrc)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	badTOML := writeFile(t, dir, "bad.toml", "api_key = \n")
	badURL := writeFile(t, dir, "url.toml", `base_url = "ftp://example.org"`)
	badKey := writeFile(t, dir, "key.toml", `api_key = "has space"`)

	tests := []struct {
		name string
		src  configSources
	}{
		{"explicit missing file", configSources{file: filepath.Join(dir, "nope.toml"), explicit: true}},
		{"malformed toml", configSources{file: badTOML}},
		{"invalid base url", configSources{file: badURL}},
		{"invalid api key", configSources{file: badKey}},
		{"invalid strict", configSources{getenv: envMap(map[string]string{envStrict: "maybe"})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.src.getenv == nil {
				tt.src.getenv = envMap(nil)
			}
			_, err := loadConfig(tt.src)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("loadConfig() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestConfigDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}

	path, err := defaultConfigPath()
	if err != nil {
		t.Fatalf("defaultConfigPath() error: %v", err)
	}
	if want := filepath.Join(custom, appName, "config.toml"); path != want {
		t.Errorf("defaultConfigPath() = %q, want %q", path, want)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"abc", "***"},
		{"ABCDEFGH", "****EFGH"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.in); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
