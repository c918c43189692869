package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Upload.MaxFileSize != 52428800 {
		t.Errorf("Upload.MaxFileSize = %d, want %d", cfg.Upload.MaxFileSize, 52428800)
	}
	if cfg.Upload.MaxConcurrentRuns != 2 {
		t.Errorf("Upload.MaxConcurrentRuns = %d, want %d", cfg.Upload.MaxConcurrentRuns, 2)
	}
	if cfg.Convert.SofficePath != "soffice" {
		t.Errorf("Convert.SofficePath = %q, want %q", cfg.Convert.SofficePath, "soffice")
	}
	if cfg.Registry.TTL != time.Hour {
		t.Errorf("Registry.TTL = %v, want %v", cfg.Registry.TTL, time.Hour)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("UPLOAD_MAX_CONCURRENT_RUNS", "4")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("UPLOAD_MAX_CONCURRENT_RUNS")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Upload.MaxConcurrentRuns != 4 {
		t.Errorf("Upload.MaxConcurrentRuns = %d, want %d", cfg.Upload.MaxConcurrentRuns, 4)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Duration(t *testing.T) {
	os.Setenv("SERVER_READ_TIMEOUT", "45s")
	os.Setenv("REGISTRY_TTL", "1m30s")
	defer func() {
		os.Unsetenv("SERVER_READ_TIMEOUT")
		os.Unsetenv("REGISTRY_TTL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Registry.TTL != 90*time.Second {
		t.Errorf("Registry.TTL = %v, want %v", cfg.Registry.TTL, 90*time.Second)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	os.Setenv("CONVERT_TIMEOUT", "soon")
	defer os.Unsetenv("CONVERT_TIMEOUT")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "CONVERT_TIMEOUT") {
		t.Errorf("error should mention CONVERT_TIMEOUT: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error should mention SERVER_PORT: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("error should mention LOG_LEVEL: %v", err)
	}
}

func TestValidate_NonPositiveTTL(t *testing.T) {
	cfg := validConfig()
	cfg.Registry.TTL = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for zero TTL")
	}
	if !strings.Contains(err.Error(), "REGISTRY_TTL") {
		t.Errorf("error should mention REGISTRY_TTL: %v", err)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"localhost", 443, "localhost:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		got := cfg.Addr()
		if got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestProxyCIDRs(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  int
		first string
	}{
		{"empty", "", 0, ""},
		{"single", "10.0.0.0/8", 1, "10.0.0.0/8"},
		{"several with spaces", " 10.0.0.0/8 , 127.0.0.1 ", 2, "10.0.0.0/8"},
		{"trailing comma", "10.0.0.0/8,", 1, "10.0.0.0/8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ServerConfig{TrustedProxies: tt.raw}
			got := cfg.ProxyCIDRs()
			if len(got) != tt.want {
				t.Fatalf("ProxyCIDRs() = %v, want %d entries", got, tt.want)
			}
			if tt.want > 0 && got[0] != tt.first {
				t.Errorf("ProxyCIDRs()[0] = %q, want %q", got[0], tt.first)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, ReadTimeout: time.Second, ShutdownTimeout: time.Second},
		Upload: UploadConfig{
			MaxFileSize:       1,
			MaxConcurrentRuns: 1,
			MaxWaitTime:       time.Second,
			RunTimeout:        time.Minute,
		},
		Convert:  ConvertConfig{SofficePath: "soffice", Timeout: time.Minute},
		Registry: RegistryConfig{TTL: time.Hour, SweepInterval: time.Minute},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}
