// Package frontend manages the npm packages the host bundler must install for
// the graph component.
package frontend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidPackage is returned for specs that are not "name@version".
var ErrInvalidPackage = errors.New("frontend: invalid package spec")

// Package is a pinned npm dependency.
type Package struct {
	Name    string
	Version string
}

// String returns the "name@version" form.
func (p Package) String() string {
	return p.Name + "@" + p.Version
}

// DefaultPackages are the versions the staged JSX sources are written against.
var DefaultPackages = []string{
	"@react-sigma/core@5.0.4",
	"@sigma/edge-curve@3.1.0",
	"sigma@3.0.2",
	"graphology@0.26.0",
	"graphology-layout@0.6.1",
	"graphology-layout-forceatlas2@0.10.1",
	"graphology-layout-noverlap@0.4.2",
	"graphology-shortest-path@2.0.2",
}

// ParsePackage parses "name@version". Scoped names ("@scope/name@1.0.0") are
// split at the last "@".
func ParsePackage(spec string) (Package, error) {
	spec = strings.TrimSpace(spec)
	at := strings.LastIndex(spec, "@")
	if at <= 0 || at == len(spec)-1 {
		return Package{}, fmt.Errorf("%w: %q", ErrInvalidPackage, spec)
	}
	name, version := spec[:at], spec[at+1:]
	if strings.HasPrefix(name, "@") && !strings.Contains(name, "/") {
		return Package{}, fmt.Errorf("%w: %q", ErrInvalidPackage, spec)
	}
	return Package{Name: name, Version: version}, nil
}

// ParsePackages parses every spec, stopping at the first invalid one.
func ParsePackages(specs []string) ([]Package, error) {
	pkgs := make([]Package, 0, len(specs))
	for _, spec := range specs {
		p, err := ParsePackage(spec)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, nil
}

// WritePackageJSON merges pkgs into the "dependencies" object of the
// package.json at path, creating the file and its directory when missing.
// Other keys are preserved. It returns the names whose version changed.
func WritePackageJSON(path string, pkgs []Package) ([]string, error) {
	doc := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	deps, _ := doc["dependencies"].(map[string]any)
	if deps == nil {
		deps = map[string]any{}
	}

	var changed []string
	for _, p := range pkgs {
		if current, ok := deps[p.Name].(string); ok && current == p.Version {
			continue
		}
		deps[p.Name] = p.Version
		changed = append(changed, p.Name)
	}
	sort.Strings(changed)
	doc["dependencies"] = deps

	// encoding/json sorts map keys, keeping the file diff-friendly.
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return changed, nil
}
