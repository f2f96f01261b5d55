package config

import (
	"os"
	"path"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOOLDESC_CONFIG_DIR", t.TempDir())

	config, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if config.DepsOnly || config.Package != "" || len(config.Tools) != 0 {
		t.Fatalf("unexpected configuration %+v", config)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TOOLDESC_CONFIG_DIR", dir)
	data := "tools:\n  - ~/TOOLS.yaml\n  - /opt/st/TOOLS.yaml\ndepsOnly: true\npackage: observationSim\n"
	if err := os.WriteFile(path.Join(dir, "config.yaml"), []byte(data), 0664); err != nil {
		t.Fatal(err)
	}

	config, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !config.DepsOnly || config.Package != "observationSim" {
		t.Fatalf("unexpected configuration %+v", config)
	}

	home, err := homedir.Dir()
	if err != nil {
		t.Fatal(err)
	}
	if len(config.Tools) != 2 || config.Tools[0] != path.Join(home, "TOOLS.yaml") || config.Tools[1] != "/opt/st/TOOLS.yaml" {
		t.Fatalf("unexpected tools %v", config.Tools)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	file := path.Join(t.TempDir(), "tooldesc.yaml")
	if err := os.WriteFile(file, []byte("package: sim\n"), 0664); err != nil {
		t.Fatal(err)
	}

	config, err := Load(file)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if config.Package != "sim" {
		t.Fatalf("unexpected package %q", config.Package)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(path.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error")
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("TOOLDESC_CONFIG_DIR", t.TempDir())
	t.Setenv("TOOLDESC_PACKAGE", "fromEnv")

	config, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if config.Package != "fromEnv" {
		t.Fatalf("unexpected package %q", config.Package)
	}
}
