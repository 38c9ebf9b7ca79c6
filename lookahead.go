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

// passesLookahead applies the bounded-lookahead filter before a decision is
// committed: a candidate version is rejected if it would immediately empty
// the accumulated set of one of its own dependencies, or of any other
// already-constrained package reachable one step further through the
// dependency graph. This is a heuristic to avoid gratuitous backtracking,
// not a correctness gate — rejected candidates are still caught correctly
// by conflict analysis if the fallback below ends up choosing them anyway.
func passesLookahead(ps *partialSolution, provider DependencyProvider, deps []Dependency) bool {
	for _, dep := range deps {
		accumulated := ps.allowedSet(dep.Package.Name())
		if accumulated.Intersection(dep.Set).IsEmpty() {
			return false
		}
	}

	for _, dep := range deps {
		transitive, ok, err := firstSatisfying(provider, dep.Package, dep.Set)
		if err != nil || !ok {
			continue
		}

		grandDeps, err := provider.GetDependencies(dep.Package, transitive)
		if err != nil {
			continue
		}

		for _, g := range grandDeps {
			if !ps.hasAssignments(g.Package.Name()) {
				continue
			}
			current := ps.allowedSet(g.Package.Name())
			if current.Intersection(g.Set).IsEmpty() {
				return false
			}
		}
	}

	return true
}

// firstSatisfying returns the first version of pkg (in provider preference
// order) lying in set, used by the lookahead's one-step transitive check.
func firstSatisfying(provider DependencyProvider, pkg Package, set VersionSet) (Version, bool, error) {
	versions, err := provider.ListVersions(pkg)
	if err != nil {
		return Version{}, false, err
	}
	for _, v := range versions {
		if set.Contains(v) {
			return v, true, nil
		}
	}
	return Version{}, false, nil
}

// chooseWithLookahead walks pkg's candidate versions satisfying term in
// provider preference order, returning the first whose dependencies pass
// passesLookahead together with those dependencies. If every candidate is
// rejected, it falls back to the first candidate merely compatible with
// term, letting conflict analysis handle any later incompatibility.
func chooseWithLookahead(ps *partialSolution, provider DependencyProvider, pkg Package, term Term) (Version, []Dependency, bool, error) {
	// A VersionChooser fast-path hint is only ever a suggestion: the
	// resolver always re-validates it against term before accepting it,
	// since a stale or mistaken hint must never bypass the lookahead check.
	if chooser, ok := provider.(VersionChooser); ok {
		if v, found, err := chooser.ChooseVersion(pkg, term); err != nil {
			return Version{}, nil, false, err
		} else if found && term.SatisfiedBy(v) {
			deps, err := provider.GetDependencies(pkg, v)
			if err != nil {
				return Version{}, nil, false, err
			}
			if passesLookahead(ps, provider, deps) {
				return v, deps, true, nil
			}
		}
	}

	versions, err := provider.ListVersions(pkg)
	if err != nil {
		return Version{}, nil, false, err
	}

	var fallbackVersion Version
	var fallbackDeps []Dependency
	haveFallback := false

	for _, v := range versions {
		if !term.SatisfiedBy(v) {
			continue
		}
		deps, err := provider.GetDependencies(pkg, v)
		if err != nil {
			return Version{}, nil, false, err
		}
		if !haveFallback {
			fallbackVersion, fallbackDeps, haveFallback = v, deps, true
		}
		if passesLookahead(ps, provider, deps) {
			return v, deps, true, nil
		}
	}

	if haveFallback {
		return fallbackVersion, fallbackDeps, true, nil
	}
	return Version{}, nil, false, nil
}
