package serve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	loomerrors "github.com/loom-ui/loom/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loom.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
address: ":9000"
allowed_origins:
  - "*"
read_timeout: 30s
metrics: false
debug: true
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Address != ":9000" {
		t.Errorf("address = %q", config.Address)
	}
	if config.ReadTimeout.Std() != 30*time.Second {
		t.Errorf("read_timeout = %v", config.ReadTimeout.Std())
	}
	// Unset fields keep their defaults.
	if config.WriteTimeout.Std() != 10*time.Second {
		t.Errorf("write_timeout = %v, want default", config.WriteTimeout.Std())
	}
	if config.Metrics {
		t.Error("metrics should be disabled")
	}
	if len(config.AllowedOrigins) != 1 || config.AllowedOrigins[0] != "*" {
		t.Errorf("allowed_origins = %v", config.AllowedOrigins)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfig(t, "address: [broken")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error")
	}
	var le *loomerrors.LoomError
	if !errors.As(err, &le) || le.Code != "E300" {
		t.Errorf("got %v, want E300", err)
	}
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := writeConfig(t, "read_timeout: fast")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

func TestValidate(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}

	config.Address = ""
	err := config.Validate()
	var le *loomerrors.LoomError
	if !errors.As(err, &le) || le.Code != "E300" {
		t.Errorf("got %v, want E300", err)
	}

	config = DefaultConfig()
	config.ReadTimeout = Duration(-time.Second)
	if config.Validate() == nil {
		t.Error("negative timeout must not validate")
	}
}
