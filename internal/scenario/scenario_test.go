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

package scenario

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contriboss/pubgrub-go"
)

func basicScenario() *Scenario {
	return &Scenario{
		Name:        "basic",
		Description: "root depends on a and b",
		Packages: []PackageSpec{
			{Name: "root", Versions: []string{"1.0.0"}},
			{Name: "a", Versions: []string{"1.0.0"}},
			{Name: "b", Versions: []string{"1.0.0"}},
		},
		Dependencies: []DependencySpec{
			{Package: "root", Version: "1.0.0", Dependency: "a", Constraint: ">=1.0.0"},
			{Package: "root", Version: "1.0.0", Dependency: "b", Constraint: ">=1.0.0"},
		},
	}
}

func TestScenarioRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, basicScenario().Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	require.Equal(t, basicScenario(), loaded)
}

func TestScenarioBuildProvider(t *testing.T) {
	mem, err := basicScenario().BuildProvider()
	require.NoError(t, err)

	versions, err := mem.ListVersions(pubgrub.NewPackage("a"))
	require.NoError(t, err)
	require.Equal(t, []pubgrub.Version{pubgrub.MustParseVersion("1.0.0")}, versions)

	deps, err := mem.GetDependencies(pubgrub.NewPackage("root"), pubgrub.MustParseVersion("1.0.0"))
	require.NoError(t, err)
	require.Len(t, deps, 2)
}

func TestScenarioBuildProviderInvalidVersion(t *testing.T) {
	sc := &Scenario{
		Name:     "bad",
		Packages: []PackageSpec{{Name: "a", Versions: []string{"not-a-version"}}},
	}
	_, err := sc.BuildProvider()
	require.Error(t, err)
}

func TestScenarioBuildProviderInvalidConstraint(t *testing.T) {
	sc := &Scenario{
		Name:     "bad",
		Packages: []PackageSpec{{Name: "a", Versions: []string{"1.0.0"}}},
		Dependencies: []DependencySpec{
			{Package: "a", Version: "1.0.0", Dependency: "b", Constraint: "~>1.0.0"},
		},
	}
	_, err := sc.BuildProvider()
	require.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/scenario.json")
	require.Error(t, err)
}
