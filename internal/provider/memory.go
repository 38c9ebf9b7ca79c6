// Copyright 2024 The University of Queensland
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

// Package provider holds concrete pubgrub.DependencyProvider
// implementations: an in-memory fixture for tests and scenario playback, a
// read-through cache, and a combinator that tries several providers in
// sequence.
package provider

import (
	"fmt"
	"slices"

	"github.com/contriboss/pubgrub-go"
)

// InMemory is a DependencyProvider backed by a map the caller populates
// directly, typically from a scenario file or a hand-built test fixture.
type InMemory struct {
	packages map[pubgrub.Name]map[pubgrub.Version][]pubgrub.Dependency
}

// NewInMemory returns an empty InMemory provider.
func NewInMemory() *InMemory {
	return &InMemory{packages: make(map[pubgrub.Name]map[pubgrub.Version][]pubgrub.Dependency)}
}

// AddVersion registers a version of pkg with its declared dependencies.
func (m *InMemory) AddVersion(pkg pubgrub.Package, version pubgrub.Version, deps []pubgrub.Dependency) {
	versions, ok := m.packages[pkg.Name()]
	if !ok {
		versions = make(map[pubgrub.Version][]pubgrub.Dependency)
		m.packages[pkg.Name()] = versions
	}
	versions[version] = deps
}

// ListVersions returns every registered version of pkg, newest first.
func (m *InMemory) ListVersions(pkg pubgrub.Package) ([]pubgrub.Version, error) {
	versions, ok := m.packages[pkg.Name()]
	if !ok {
		return nil, &pubgrub.PackageNotFoundError{Package: pkg}
	}

	out := make([]pubgrub.Version, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b pubgrub.Version) int { return b.Compare(a) })
	return out, nil
}

// GetDependencies returns the dependencies declared for (pkg, version).
func (m *InMemory) GetDependencies(pkg pubgrub.Package, version pubgrub.Version) ([]pubgrub.Dependency, error) {
	versions, ok := m.packages[pkg.Name()]
	if !ok {
		return nil, &pubgrub.PackageNotFoundError{Package: pkg}
	}
	deps, ok := versions[version]
	if !ok {
		return nil, &pubgrub.PackageVersionNotFoundError{Package: pkg, Version: version}
	}
	return deps, nil
}

var _ pubgrub.DependencyProvider = (*InMemory)(nil)

// String renders the number of packages and versions registered, useful in
// scenario-runner diagnostics.
func (m *InMemory) String() string {
	versionCount := 0
	for _, versions := range m.packages {
		versionCount += len(versions)
	}
	return fmt.Sprintf("InMemory(%d packages, %d versions)", len(m.packages), versionCount)
}
