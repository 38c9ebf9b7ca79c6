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

package pubgrub

// Dependency is one edge in a package's dependency declaration: a required
// package and the set of its versions that satisfy the requirement.
type Dependency struct {
	Package Package
	Set     VersionSet
}

// DependencyProvider is the external interface the core consumes to learn
// about the package universe. Implementations must be referentially stable:
// repeated calls with equal arguments return equal results within one solve.
type DependencyProvider interface {
	// ListVersions returns every known version of pkg, ordered from
	// most-preferred to least-preferred. The solver treats the first
	// version satisfying a term as the chosen one; preference order is an
	// input, not a policy, of the core.
	ListVersions(pkg Package) ([]Version, error)

	// GetDependencies returns the dependencies declared by (pkg, version).
	// The returned error must distinguish "no such version" from "version
	// exists but declares no dependencies" (an empty, nil-error slice).
	GetDependencies(pkg Package, version Version) ([]Dependency, error)
}

// VersionChooser is an optional fast path a DependencyProvider may also
// implement: choose a version for pkg satisfying term directly, instead of
// the core filtering ListVersions by term.Set.Contains. The resolver always
// re-validates the suggestion against term before accepting it.
type VersionChooser interface {
	ChooseVersion(pkg Package, term Term) (Version, bool, error)
}
