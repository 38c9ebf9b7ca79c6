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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contriboss/pubgrub-go"
)

func TestInMemoryListVersionsSortedNewestFirst(t *testing.T) {
	mem := NewInMemory()
	pkg := pubgrub.NewPackage("a")
	mem.AddVersion(pkg, pubgrub.MustParseVersion("1.0.0"), nil)
	mem.AddVersion(pkg, pubgrub.MustParseVersion("2.0.0"), nil)
	mem.AddVersion(pkg, pubgrub.MustParseVersion("1.5.0"), nil)

	versions, err := mem.ListVersions(pkg)
	require.NoError(t, err)
	require.Equal(t, []pubgrub.Version{
		pubgrub.MustParseVersion("2.0.0"),
		pubgrub.MustParseVersion("1.5.0"),
		pubgrub.MustParseVersion("1.0.0"),
	}, versions)
}

func TestInMemoryUnknownPackage(t *testing.T) {
	mem := NewInMemory()
	_, err := mem.ListVersions(pubgrub.NewPackage("missing"))
	require.Error(t, err)
	var notFound *pubgrub.PackageNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestInMemoryUnknownVersion(t *testing.T) {
	mem := NewInMemory()
	pkg := pubgrub.NewPackage("a")
	mem.AddVersion(pkg, pubgrub.MustParseVersion("1.0.0"), nil)

	_, err := mem.GetDependencies(pkg, pubgrub.MustParseVersion("2.0.0"))
	require.Error(t, err)
	var notFound *pubgrub.PackageVersionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

type countingProvider struct {
	inner pubgrub.DependencyProvider
	calls int
}

func (c *countingProvider) ListVersions(pkg pubgrub.Package) ([]pubgrub.Version, error) {
	c.calls++
	return c.inner.ListVersions(pkg)
}

func (c *countingProvider) GetDependencies(pkg pubgrub.Package, version pubgrub.Version) ([]pubgrub.Dependency, error) {
	c.calls++
	return c.inner.GetDependencies(pkg, version)
}

func TestCachedServesRepeatedCallsFromCache(t *testing.T) {
	mem := NewInMemory()
	pkg := pubgrub.NewPackage("a")
	mem.AddVersion(pkg, pubgrub.MustParseVersion("1.0.0"), nil)

	counting := &countingProvider{inner: mem}
	cached := NewCached(counting)

	_, err := cached.ListVersions(pkg)
	require.NoError(t, err)
	_, err = cached.ListVersions(pkg)
	require.NoError(t, err)

	require.Equal(t, 1, counting.calls)
	stats := cached.GetCacheStats()
	require.Equal(t, 1, stats.Hits)
	require.Equal(t, 1, stats.Misses)
}

func TestCachedClearCacheResetsStats(t *testing.T) {
	mem := NewInMemory()
	pkg := pubgrub.NewPackage("a")
	mem.AddVersion(pkg, pubgrub.MustParseVersion("1.0.0"), nil)

	cached := NewCached(mem)
	_, err := cached.ListVersions(pkg)
	require.NoError(t, err)

	cached.ClearCache()
	stats := cached.GetCacheStats()
	require.Zero(t, stats.Hits)
	require.Zero(t, stats.Misses)

	_, err = cached.ListVersions(pkg)
	require.NoError(t, err)
	require.Equal(t, 1, cached.GetCacheStats().Misses)
}

func TestCombinedMergesVersionsAcrossMembers(t *testing.T) {
	first := NewInMemory()
	second := NewInMemory()
	pkg := pubgrub.NewPackage("a")
	first.AddVersion(pkg, pubgrub.MustParseVersion("1.0.0"), nil)
	second.AddVersion(pkg, pubgrub.MustParseVersion("2.0.0"), nil)

	combined := Combined{first, second}
	versions, err := combined.ListVersions(pkg)
	require.NoError(t, err)
	require.Equal(t, []pubgrub.Version{
		pubgrub.MustParseVersion("2.0.0"),
		pubgrub.MustParseVersion("1.0.0"),
	}, versions)
}

func TestCombinedGetDependenciesFromFirstMatch(t *testing.T) {
	first := NewInMemory()
	second := NewInMemory()
	pkg := pubgrub.NewPackage("a")
	dep := []pubgrub.Dependency{{Package: pubgrub.NewPackage("b"), Set: pubgrub.FullVersionSet()}}
	second.AddVersion(pkg, pubgrub.MustParseVersion("1.0.0"), dep)

	combined := Combined{first, second}
	deps, err := combined.GetDependencies(pkg, pubgrub.MustParseVersion("1.0.0"))
	require.NoError(t, err)
	require.Equal(t, dep, deps)
}

func TestCombinedUnknownPackage(t *testing.T) {
	combined := Combined{NewInMemory()}
	_, err := combined.ListVersions(pubgrub.NewPackage("missing"))
	require.Error(t, err)
}
