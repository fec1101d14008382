package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Name != "nlsql" {
		t.Errorf("Name = %q, want nlsql", cfg.Server.Name)
	}
	if cfg.Server.Version != "1.0.0" {
		t.Errorf("Version = %q, want 1.0.0", cfg.Server.Version)
	}
	if cfg.Server.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.Server.LogLevel)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  name: gallery-nlsql
  log_level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Name != "gallery-nlsql" {
		t.Errorf("Name = %q, want gallery-nlsql", cfg.Server.Name)
	}
	if cfg.Server.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.Server.LogLevel)
	}
	// Unset fields still receive defaults.
	if cfg.Server.Version != "1.0.0" {
		t.Errorf("Version = %q, want default", cfg.Server.Version)
	}
}

func TestLoadConfig_ExpandsEnvVars(t *testing.T) {
	t.Setenv("NLSQL_TEST_NAME", "from-env")
	path := writeConfig(t, `
server:
  name: ${NLSQL_TEST_NAME}
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Name != "from-env" {
		t.Errorf("Name = %q, want from-env", cfg.Server.Name)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NLSQL_LOG_LEVEL", "error")
	path := writeConfig(t, `
server:
  log_level: info
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want env override error", cfg.Server.LogLevel)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("LoadConfig() expected error for missing file")
	}
}

func TestSchemaText(t *testing.T) {
	t.Run("inline wins", func(t *testing.T) {
		cfg := &Config{}
		cfg.Schema.Inline = "Sales,SaleID,int"
		cfg.Schema.Path = "/nonexistent"

		got, err := cfg.SchemaText("fallback")
		if err != nil {
			t.Fatalf("SchemaText() error = %v", err)
		}
		if got != "Sales,SaleID,int" {
			t.Errorf("SchemaText() = %q", got)
		}
	})

	t.Run("path read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.csv")
		if err := os.WriteFile(path, []byte("Sales,SaleID,int"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg := &Config{}
		cfg.Schema.Path = path

		got, err := cfg.SchemaText("fallback")
		if err != nil {
			t.Fatalf("SchemaText() error = %v", err)
		}
		if got != "Sales,SaleID,int" {
			t.Errorf("SchemaText() = %q", got)
		}
	})

	t.Run("missing path errors", func(t *testing.T) {
		cfg := &Config{}
		cfg.Schema.Path = filepath.Join(t.TempDir(), "missing.csv")
		if _, err := cfg.SchemaText("fallback"); err == nil {
			t.Error("SchemaText() expected error")
		}
	})

	t.Run("fallback", func(t *testing.T) {
		got, err := (&Config{}).SchemaText("fallback")
		if err != nil || got != "fallback" {
			t.Errorf("SchemaText() = %q, %v, want fallback", got, err)
		}
	})
}
