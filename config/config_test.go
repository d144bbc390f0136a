package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: "9090"
db:
  host: localhost
  port: "3306"
  user: makini
  password: secret
  name: makini
model:
  api_key: test-key
jwt:
  secret_key: jwt-secret
`)

	if err := Load(path); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if Cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", Cfg.Server.Port)
	}
	if Cfg.Model.Name == "" || Cfg.Model.BaseURL == "" {
		t.Error("model defaults were not applied")
	}

	dsn := Cfg.DB.DSN()
	want := "makini:secret@tcp(localhost:3306)/makini?charset=utf8mb4&parseTime=True&loc=Local"
	if dsn != want {
		t.Errorf("DSN = %q, want %q", dsn, want)
	}
}

func TestLoadWithoutAPIKey(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
db:
  host: localhost
  port: "3306"
  user: u
  password: p
  name: n
jwt:
  secret_key: jwt-secret
`)

	// A chave do modelo em falta não impede o arranque.
	if err := Load(path); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if Cfg.Model.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", Cfg.Model.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load must fail for a missing file")
	}
}
