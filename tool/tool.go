// Package tool describes libraries to a build orchestration environment.
//
// A Descriptor names one library target and the tools that must be registered
// alongside it. The orchestrator hands an Environment to Generate, which
// registers the target (unless only the dependencies are requested) followed
// by every dependency in declaration order.
package tool

import (
	"fmt"
	"strconv"
	"strings"
)

// AddLibraryTool is the orchestrator tool that registers a library target.
const AddLibraryTool = "addLibrary"

// ToolOptions are the options passed along with a single tool registration.
type ToolOptions struct {
	Library []string
	Package string
}

// Environment is the build environment a descriptor registers tools with.
// Failures to register a tool are reported by the environment itself.
type Environment interface {
	RegisterTool(name string, opts ToolOptions)
}

// Options control a single Generate call.
type Options struct {
	// DepsOnly skips registering the target library itself.
	DepsOnly bool
	// Package overrides the grouping identifier of the descriptor.
	Package string
}

// ParseOptions converts loosely typed keyword options into Options.
// Recognized keys are "depsOnly" and "package".
func ParseOptions(kw map[string]interface{}) (Options, error) {
	opts := Options{}
	for key, value := range kw {
		switch key {
		case "depsOnly":
			depsOnly, err := truthy(value)
			if err != nil {
				return Options{}, fmt.Errorf("option %q: %w", key, err)
			}
			opts.DepsOnly = depsOnly
		case "package":
			pkg, ok := value.(string)
			if !ok {
				return Options{}, fmt.Errorf("option %q: expected a string, got %T", key, value)
			}
			opts.Package = pkg
		default:
			return Options{}, fmt.Errorf("unknown option %q", key)
		}
	}
	return opts, nil
}

func truthy(value interface{}) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case uint:
		return v != 0, nil
	case float64:
		return v != 0, nil
	case string:
		trimmed := strings.TrimSpace(v)
		switch strings.ToLower(trimmed) {
		case "", "0", "false", "no", "off":
			return false, nil
		case "1", "true", "yes", "on":
			return true, nil
		}
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n != 0, nil
		}
		return false, fmt.Errorf("cannot interpret %q as a boolean", v)
	}
	return false, fmt.Errorf("cannot interpret %T as a boolean", value)
}

// Descriptor declares a library target and the tools it depends on.
type Descriptor struct {
	// Name is the tool name the orchestrator knows this descriptor by.
	Name string
	// Target is the library being built.
	Target string
	// Package optionally groups the target. Empty means no grouping.
	Package string
	// Deps are registered in this order.
	Deps []string
}

// Validate checks the invariants of a descriptor.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("descriptor has no name")
	}
	if d.Target == "" {
		return fmt.Errorf("descriptor %q has no target", d.Name)
	}
	if len(d.Deps) == 0 {
		return fmt.Errorf("descriptor %q declares no dependencies", d.Name)
	}

	seen := map[string]struct{}{}
	for _, dep := range d.Deps {
		if dep == "" {
			return fmt.Errorf("descriptor %q has an empty dependency name", d.Name)
		}
		if dep == d.Name {
			return fmt.Errorf("descriptor %q depends on itself", d.Name)
		}
		if _, exists := seen[dep]; exists {
			return fmt.Errorf("descriptor %q lists dependency %q more than once", d.Name, dep)
		}
		seen[dep] = struct{}{}
	}
	return nil
}

// Clone returns a copy of the descriptor that shares no memory with it.
func (d Descriptor) Clone() Descriptor {
	d.Deps = append([]string{}, d.Deps...)
	return d
}

// WithPackage returns a copy of the descriptor grouped under `pkg`.
func (d Descriptor) WithPackage(pkg string) Descriptor {
	d = d.Clone()
	d.Package = pkg
	return d
}

// Generate registers the descriptor with `env`.
func (d Descriptor) Generate(env Environment, opts Options) {
	if !opts.DepsOnly {
		pkg := d.Package
		if opts.Package != "" {
			pkg = opts.Package
		}
		env.RegisterTool(AddLibraryTool, ToolOptions{
			Library: []string{d.Target},
			Package: pkg,
		})
	}
	for _, dep := range d.Deps {
		env.RegisterTool(dep, ToolOptions{})
	}
}

// Exists reports whether the descriptor is available. Descriptors are always available.
func (d Descriptor) Exists(env Environment) bool {
	return true
}
