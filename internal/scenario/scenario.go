// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scenario loads and saves the JSON scenario file format external
// tooling uses to describe a package universe for the solver to run
// against. The core itself has no notion of this format; materializing a
// scenario into a DependencyProvider is this package's job.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/contriboss/pubgrub-go"
	"github.com/contriboss/pubgrub-go/internal/provider"
)

// PackageSpec declares the known versions of one package.
type PackageSpec struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
}

// DependencySpec declares that one (package, version) depends on another
// package within some constraint.
type DependencySpec struct {
	Package    string `json:"package"`
	Version    string `json:"version"`
	Dependency string `json:"dependency"`
	Constraint string `json:"constraint"`
}

// Scenario is the top-level JSON document shape.
type Scenario struct {
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Packages     []PackageSpec    `json:"packages"`
	Dependencies []DependencySpec `json:"dependencies"`
}

// Load parses a scenario document from r.
func Load(r io.Reader) (*Scenario, error) {
	var s Scenario
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &s, nil
}

// LoadFile reads and parses a scenario document from path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Save writes the scenario as indented JSON to w.
func (s *Scenario) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	return nil
}

// SaveFile writes the scenario as indented JSON to path.
func (s *Scenario) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scenario file: %w", err)
	}
	defer f.Close()
	return s.Save(f)
}

// BuildProvider materializes the scenario into an in-memory
// DependencyProvider, resolving every version and constraint string.
func (s *Scenario) BuildProvider() (*provider.InMemory, error) {
	mem := provider.NewInMemory()

	versionsByPackage := make(map[string][]pubgrub.Version)
	for _, spec := range s.Packages {
		versions := make([]pubgrub.Version, 0, len(spec.Versions))
		for _, vs := range spec.Versions {
			v, err := pubgrub.ParseVersion(vs)
			if err != nil {
				return nil, fmt.Errorf("package %q: %w", spec.Name, err)
			}
			versions = append(versions, v)
		}
		versionsByPackage[spec.Name] = versions
	}

	deps := make(map[string]map[pubgrub.Version][]pubgrub.Dependency)
	for _, d := range s.Dependencies {
		version, err := pubgrub.ParseVersion(d.Version)
		if err != nil {
			return nil, fmt.Errorf("dependency of %s: %w", d.Package, err)
		}
		set, err := pubgrub.ParseVersionSet(d.Constraint)
		if err != nil {
			return nil, fmt.Errorf("dependency %s -> %s: %w", d.Package, d.Dependency, err)
		}

		if _, ok := deps[d.Package]; !ok {
			deps[d.Package] = make(map[pubgrub.Version][]pubgrub.Dependency)
		}
		deps[d.Package][version] = append(deps[d.Package][version], pubgrub.Dependency{
			Package: pubgrub.NewPackage(d.Dependency),
			Set:     set,
		})
	}

	for name, versions := range versionsByPackage {
		pkg := pubgrub.NewPackage(name)
		for _, v := range versions {
			mem.AddVersion(pkg, v, deps[name][v])
		}
	}

	return mem, nil
}
