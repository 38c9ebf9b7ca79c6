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

import "github.com/contriboss/pubgrub-go"

// Cached wraps a DependencyProvider with a read-through cache, so a
// provider backed by a slow source (network, disk) is only ever queried
// once per (package, version) pair during a solve.
type Cached struct {
	inner pubgrub.DependencyProvider

	versions map[pubgrub.Name][]pubgrub.Version
	deps     map[dependencyKey][]pubgrub.Dependency
	hits     int
	misses   int
}

type dependencyKey struct {
	name    pubgrub.Name
	version pubgrub.Version
}

// NewCached wraps inner with an empty cache.
func NewCached(inner pubgrub.DependencyProvider) *Cached {
	return &Cached{
		inner:    inner,
		versions: make(map[pubgrub.Name][]pubgrub.Version),
		deps:     make(map[dependencyKey][]pubgrub.Dependency),
	}
}

// ListVersions serves from cache if pkg was seen before, else delegates and
// caches the result.
func (c *Cached) ListVersions(pkg pubgrub.Package) ([]pubgrub.Version, error) {
	if versions, ok := c.versions[pkg.Name()]; ok {
		c.hits++
		return versions, nil
	}
	c.misses++

	versions, err := c.inner.ListVersions(pkg)
	if err != nil {
		return nil, err
	}
	c.versions[pkg.Name()] = versions
	return versions, nil
}

// GetDependencies serves from cache if (pkg, version) was seen before, else
// delegates and caches the result.
func (c *Cached) GetDependencies(pkg pubgrub.Package, version pubgrub.Version) ([]pubgrub.Dependency, error) {
	key := dependencyKey{name: pkg.Name(), version: version}
	if deps, ok := c.deps[key]; ok {
		c.hits++
		return deps, nil
	}
	c.misses++

	deps, err := c.inner.GetDependencies(pkg, version)
	if err != nil {
		return nil, err
	}
	c.deps[key] = deps
	return deps, nil
}

// CacheStats reports hit/miss counters since the cache was created or last
// cleared.
type CacheStats struct {
	Hits   int
	Misses int
}

// GetCacheStats returns the current hit/miss counters.
func (c *Cached) GetCacheStats() CacheStats {
	return CacheStats{Hits: c.hits, Misses: c.misses}
}

// ClearCache discards all cached entries and resets the counters.
func (c *Cached) ClearCache() {
	c.versions = make(map[pubgrub.Name][]pubgrub.Version)
	c.deps = make(map[dependencyKey][]pubgrub.Dependency)
	c.hits = 0
	c.misses = 0
}

var _ pubgrub.DependencyProvider = (*Cached)(nil)
