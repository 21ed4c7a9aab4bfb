package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points config lookups at an empty temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for key := range defaults {
		env := "CAMPUS_" + strings.ToUpper(key)
		t.Setenv(env, "")
		_ = os.Unsetenv(env)
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		want      string
	}{
		{
			name:      "with XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			want:      "/custom/config/campus/campus.yml",
		},
		{
			name:      "without XDG_CONFIG_HOME",
			xdgConfig: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)

			got := GlobalPath()
			if tt.want != "" {
				if got != tt.want {
					t.Errorf("GlobalPath() = %v, want %v", got, tt.want)
				}
				return
			}
			if !filepath.IsAbs(got) {
				t.Errorf("GlobalPath() should return absolute path, got %v", got)
			}
			if filepath.Base(got) != "campus.yml" {
				t.Errorf("GlobalPath() should end with campus.yml, got %v", got)
			}
		})
	}
}

func TestProjectPath(t *testing.T) {
	if got := ProjectPath(); got != "campus.yml" {
		t.Errorf("ProjectPath() = %v, want campus.yml", got)
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true, want false when no config files exist")
	}

	if err := os.WriteFile(ProjectPath(), []byte("store: sqlite\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != ".campus" {
		t.Errorf("Load() default DataDir = %v, want .campus", cfg.DataDir)
	}
	if cfg.Store != StoreNATS {
		t.Errorf("Load() default Store = %v, want %v", cfg.Store, StoreNATS)
	}
	if cfg.UploadConcurrency != 4 {
		t.Errorf("Load() default UploadConcurrency = %v, want 4", cfg.UploadConcurrency)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Load() default LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("Load() default MetricsAddr = %v, want empty", cfg.MetricsAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	globalCfg := &Config{
		DataDir:           ".global",
		Store:             StoreSQLite,
		UploadConcurrency: 2,
		LogLevel:          "warn",
		AssistantAddr:     "127.0.0.1:9000",
	}
	if err := WriteGlobal(globalCfg); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	// Project file overrides only the keys it sets.
	if err := os.WriteFile(ProjectPath(), []byte("data_dir: .project\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}

	// ENV overrides both files.
	t.Setenv("CAMPUS_UPLOAD_CONCURRENCY", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != ".project" {
		t.Errorf("Load() DataDir = %v, want .project", cfg.DataDir)
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("Load() Store = %v, want %v", cfg.Store, StoreSQLite)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Load() LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.UploadConcurrency != 8 {
		t.Errorf("Load() UploadConcurrency = %v, want 8", cfg.UploadConcurrency)
	}
	if cfg.AssistantAddr != "127.0.0.1:9000" {
		t.Errorf("Load() AssistantAddr = %v, want 127.0.0.1:9000", cfg.AssistantAddr)
	}
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	if err := WriteProject(&Config{DataDir: ".x", Store: StoreMemory}); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}
	data, err := os.ReadFile(ProjectPath())
	if err != nil {
		t.Fatalf("reading project config: %v", err)
	}
	if !strings.Contains(string(data), "store: memory") {
		t.Errorf("project config missing store key:\n%s", data)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:   "valid nats config",
			config: &Config{DataDir: ".campus", Store: StoreNATS, LogLevel: "info"},
		},
		{
			name:   "memory store needs no data dir",
			config: &Config{Store: StoreMemory},
		},
		{
			name:    "unknown store",
			config:  &Config{DataDir: ".campus", Store: "postgres"},
			wantErr: true,
		},
		{
			name:    "sqlite without data dir",
			config:  &Config{Store: StoreSQLite},
			wantErr: true,
		},
		{
			name:    "negative concurrency",
			config:  &Config{DataDir: ".campus", Store: StoreNATS, UploadConcurrency: -1},
			wantErr: true,
		},
		{
			name:    "bad log level",
			config:  &Config{DataDir: ".campus", Store: StoreNATS, LogLevel: "loud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUploadPath(t *testing.T) {
	cfg := &Config{DataDir: ".campus"}
	if got := cfg.UploadPath(); got != filepath.Join(".campus", "uploads") {
		t.Errorf("UploadPath() = %v", got)
	}
	cfg.UploadDir = "/srv/uploads"
	if got := cfg.UploadPath(); got != "/srv/uploads" {
		t.Errorf("UploadPath() = %v", got)
	}
}
