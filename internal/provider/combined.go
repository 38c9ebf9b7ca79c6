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

package provider

import (
	"slices"

	"github.com/contriboss/pubgrub-go"
)

// Combined queries a sequence of providers for ListVersions (merging and
// sorting the union) and takes GetDependencies from the first provider that
// recognizes the package.
type Combined []pubgrub.DependencyProvider

// ListVersions returns the union of every member provider's known versions
// for pkg, sorted newest first. A member that doesn't recognize pkg is
// skipped rather than treated as an error.
func (c Combined) ListVersions(pkg pubgrub.Package) ([]pubgrub.Version, error) {
	seen := make(map[pubgrub.Version]bool)
	var all []pubgrub.Version
	var lastErr error

	for _, p := range c {
		versions, err := p.ListVersions(pkg)
		if err != nil {
			lastErr = err
			continue
		}
		for _, v := range versions {
			if !seen[v] {
				seen[v] = true
				all = append(all, v)
			}
		}
	}

	if len(all) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, &pubgrub.PackageNotFoundError{Package: pkg}
	}

	slices.SortFunc(all, func(a, b pubgrub.Version) int { return b.Compare(a) })
	return all, nil
}

// GetDependencies returns the dependencies from the first member provider
// that recognizes (pkg, version).
func (c Combined) GetDependencies(pkg pubgrub.Package, version pubgrub.Version) ([]pubgrub.Dependency, error) {
	var lastErr error
	for _, p := range c {
		deps, err := p.GetDependencies(pkg, version)
		if err == nil {
			return deps, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &pubgrub.PackageNotFoundError{Package: pkg}
}

var _ pubgrub.DependencyProvider = Combined(nil)
