package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialcast.yml")
	body := "local_ip: 10.0.0.2\ndescriptor_port: 9000\nmax_age: 1800\nfriendly_name: bedroom\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LocalIP != "10.0.0.2" {
		t.Fatalf("local_ip wrong: %q", cfg.LocalIP)
	}
	if cfg.DescriptorPort != 9000 {
		t.Fatalf("descriptor_port wrong: %d", cfg.DescriptorPort)
	}
	if cfg.MaxAge != 1800 {
		t.Fatalf("max_age wrong: %d", cfg.MaxAge)
	}
	if cfg.FriendlyName != "bedroom" {
		t.Fatalf("friendly_name wrong: %q", cfg.FriendlyName)
	}
	// Unset fields pick up defaults.
	if cfg.Server == "" || cfg.LogLevel != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadFromEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yml")
	if err := os.WriteFile(path, []byte("descriptor_port: 9100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DIALCAST_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DescriptorPort != 9100 {
		t.Fatalf("config from DIALCAST_CONFIG not used: %d", cfg.DescriptorPort)
	}
}

func TestLoadMissingEnvVarFileFails(t *testing.T) {
	t.Setenv("DIALCAST_CONFIG", filepath.Join(t.TempDir(), "gone.yml"))
	if _, err := Load(""); err == nil {
		t.Fatal("expected an error for a missing DIALCAST_CONFIG file")
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected an error for a missing explicit config")
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	t.Setenv("DIALCAST_CONFIG", "")
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DescriptorPort != 8081 {
		t.Fatalf("default port wrong: %d", cfg.DescriptorPort)
	}
	if cfg.MaxAge != 900 {
		t.Fatalf("default max_age wrong: %d", cfg.MaxAge)
	}
	if cfg.DeviceUUID != "" {
		t.Fatalf("default must not pin a UUID: %q", cfg.DeviceUUID)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("local_ip: [oops\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a YAML error")
	}
}
