package tool

import (
	"reflect"
	"testing"
)

var expectedDeps = []string{
	"facilitiesLib",
	"tipLib",
	"astroLib",
	"fluxLib",
	"st_facilitiesLib",
	"celestialSourcesLib",
	"irfsLib",
	"dataSubselectorLib",
	"fitsGenLib",
}

func count(env *Recorder, name string) int {
	n := 0
	for _, registered := range env.Names() {
		if registered == name {
			n++
		}
	}
	return n
}

var variants = []struct {
	name       string
	descriptor Descriptor
	pkg        string
}{
	{"plain", ObservationSim, ""},
	{"packaged", ObservationSimPackaged, "observationSim"},
}

func TestGenerateRegistersTargetThenDeps(t *testing.T) {
	for _, variant := range variants {
		t.Run(variant.name, func(t *testing.T) {
			env := &Recorder{}
			variant.descriptor.Generate(env, Options{})

			if len(env.Registrations) != 10 {
				t.Fatalf("got %d registrations, want 10", len(env.Registrations))
			}

			target := env.Registrations[0]
			if target.Name != AddLibraryTool {
				t.Fatalf("first registration is %q, want %q", target.Name, AddLibraryTool)
			}
			if !reflect.DeepEqual(target.Options.Library, []string{"observationSim"}) {
				t.Fatalf("unexpected library %v", target.Options.Library)
			}
			if target.Options.Package != variant.pkg {
				t.Fatalf("package is %q, want %q", target.Options.Package, variant.pkg)
			}
			if count(env, AddLibraryTool) != 1 {
				t.Fatal("target registered more than once")
			}

			if !reflect.DeepEqual(env.Names()[1:], expectedDeps) {
				t.Fatalf("unexpected dependency order %v", env.Names()[1:])
			}
			if env.Names()[9] != "fitsGenLib" {
				t.Fatal("registration sequence must end with fitsGenLib")
			}
			for _, dep := range expectedDeps {
				if count(env, dep) != 1 {
					t.Fatalf("%s registered %d times", dep, count(env, dep))
				}
			}
		})
	}
}

func TestGenerateDepsOnly(t *testing.T) {
	for _, variant := range variants {
		t.Run(variant.name, func(t *testing.T) {
			env := &Recorder{}
			variant.descriptor.Generate(env, Options{DepsOnly: true})

			if len(env.Registrations) != 9 {
				t.Fatalf("got %d registrations, want 9", len(env.Registrations))
			}
			if count(env, AddLibraryTool) != 0 {
				t.Fatal("target must not be registered")
			}
			if !reflect.DeepEqual(env.Names(), expectedDeps) {
				t.Fatalf("unexpected dependency order %v", env.Names())
			}
		})
	}
}

func TestGeneratePackageOverride(t *testing.T) {
	env := &Recorder{}
	ObservationSim.Generate(env, Options{Package: "simulation"})
	if env.Registrations[0].Options.Package != "simulation" {
		t.Fatalf("unexpected package %q", env.Registrations[0].Options.Package)
	}
}

func TestVariantsShareDependencies(t *testing.T) {
	if !reflect.DeepEqual(ObservationSim.Deps, ObservationSimPackaged.Deps) {
		t.Fatal("variants declare different dependencies")
	}
	if ObservationSim.Target != ObservationSimPackaged.Target {
		t.Fatal("variants declare different targets")
	}
	if ObservationSim.Package != "" {
		t.Fatal("plain variant must not carry a package")
	}
}

func TestExists(t *testing.T) {
	if !ObservationSim.Exists(nil) {
		t.Fatal("exists must be true without an environment")
	}
	env := &Recorder{}
	ObservationSim.Generate(env, Options{})
	if !ObservationSimPackaged.Exists(env) {
		t.Fatal("exists must be true with a populated environment")
	}
	if len(env.Registrations) != 10 {
		t.Fatal("exists must not register anything")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		valid      bool
	}{
		{"builtin", ObservationSim, true},
		{"no name", Descriptor{Target: "a", Deps: []string{"b"}}, false},
		{"no target", Descriptor{Name: "aLib", Deps: []string{"b"}}, false},
		{"no deps", Descriptor{Name: "aLib", Target: "a"}, false},
		{"empty dep", Descriptor{Name: "aLib", Target: "a", Deps: []string{""}}, false},
		{"self dep", Descriptor{Name: "aLib", Target: "a", Deps: []string{"aLib"}}, false},
		{"duplicate dep", Descriptor{Name: "aLib", Target: "a", Deps: []string{"b", "b"}}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.descriptor.Validate()
			if test.valid && err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if !test.valid && err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestWithPackageCopiesDeps(t *testing.T) {
	d := ObservationSim.WithPackage("x")
	d.Deps[0] = "changed"
	if ObservationSim.Deps[0] != "facilitiesLib" {
		t.Fatal("WithPackage shares the dependency slice")
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name     string
		kw       map[string]interface{}
		expected Options
		fails    bool
	}{
		{"empty", map[string]interface{}{}, Options{}, false},
		{"nil", nil, Options{}, false},
		{"bool", map[string]interface{}{"depsOnly": true}, Options{DepsOnly: true}, false},
		{"int", map[string]interface{}{"depsOnly": 1}, Options{DepsOnly: true}, false},
		{"zero", map[string]interface{}{"depsOnly": 0}, Options{}, false},
		{"string", map[string]interface{}{"depsOnly": "yes"}, Options{DepsOnly: true}, false},
		{"padded number", map[string]interface{}{"depsOnly": " 2 "}, Options{DepsOnly: true}, false},
		{"padded zero", map[string]interface{}{"depsOnly": " 0"}, Options{}, false},
		{"package", map[string]interface{}{"package": "observationSim"}, Options{Package: "observationSim"}, false},
		{"bad bool", map[string]interface{}{"depsOnly": "maybe"}, Options{}, true},
		{"bad package", map[string]interface{}{"package": 3}, Options{}, true},
		{"unknown", map[string]interface{}{"library": "x"}, Options{}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts, err := ParseOptions(test.kw)
			if test.fails {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if opts != test.expected {
				t.Fatalf("got %+v, want %+v", opts, test.expected)
			}
		})
	}
}
