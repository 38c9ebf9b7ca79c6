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

// Package rootprovider supplies the synthetic root package a solve is
// seeded from: a single version whose declared dependencies are whatever
// the caller wants the solve to start from.
package rootprovider

import "github.com/contriboss/pubgrub-go"

// Provider answers DependencyProvider queries about the root package only;
// it is meant to be the first member of an internal/provider.Combined
// alongside the provider that knows about everything else.
type Provider struct {
	root pubgrub.Package
	deps []pubgrub.Dependency
}

// New returns a root provider whose single version depends on deps.
func New(deps ...pubgrub.Dependency) *Provider {
	return &Provider{root: pubgrub.RootPackage(), deps: deps}
}

// Root returns the synthetic root package identity to pass to Solver.Solve.
func (p *Provider) Root() pubgrub.Package {
	return p.root
}

// ListVersions reports the root's single version.
func (p *Provider) ListVersions(pkg pubgrub.Package) ([]pubgrub.Version, error) {
	if pkg.Name() != p.root.Name() {
		return nil, &pubgrub.PackageNotFoundError{Package: pkg}
	}
	return []pubgrub.Version{{}}, nil
}

// GetDependencies returns the root's declared dependencies.
func (p *Provider) GetDependencies(pkg pubgrub.Package, version pubgrub.Version) ([]pubgrub.Dependency, error) {
	if pkg.Name() != p.root.Name() {
		return nil, &pubgrub.PackageNotFoundError{Package: pkg}
	}
	return p.deps, nil
}

var _ pubgrub.DependencyProvider = (*Provider)(nil)
