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

import (
	"fmt"
	"strings"
)

// CauseKind classifies how an Incompatibility came to exist.
type CauseKind int

const (
	// CauseRoot is the single seed incompatibility asserting the root
	// package must be selected: {not $root}.
	CauseRoot CauseKind = iota
	// CauseDependencyOf encodes "pkg@version depends on dep": {pkg@version, not dep}.
	CauseDependencyOf
	// CauseNoVersions encodes that no version of a package satisfies a term.
	CauseNoVersions
	// CauseDerived is produced by resolving two existing incompatibilities
	// during conflict resolution.
	CauseDerived
)

func (k CauseKind) String() string {
	switch k {
	case CauseRoot:
		return "root"
	case CauseDependencyOf:
		return "dependency"
	case CauseNoVersions:
		return "no-versions"
	default:
		return "derived"
	}
}

// Incompatibility is a conjunction of terms that cannot all hold at once:
// at least one term must be false in any valid solution.
type Incompatibility struct {
	Terms []Term
	Cause CauseKind

	// DependencyPackage/DependencyVersion identify the depending package for
	// CauseDependencyOf incompatibilities.
	DependencyPackage Package
	DependencyVersion Version

	// Derived1/Derived2 are the two incompatibilities resolveConflict
	// combined to produce this one, set only for CauseDerived.
	Derived1 *Incompatibility
	Derived2 *Incompatibility
}

// NewRootIncompatibility seeds the solve: the root package must be chosen.
func NewRootIncompatibility(root Package) *Incompatibility {
	return &Incompatibility{
		Terms: []Term{NegativeTerm(root, FullVersionSet())},
		Cause: CauseRoot,
	}
}

// NewNoVersionsIncompatibility records that term cannot be satisfied because
// no version of its package exists that would satisfy it.
func NewNoVersionsIncompatibility(term Term) *Incompatibility {
	return &Incompatibility{
		Terms: []Term{term},
		Cause: CauseNoVersions,
	}
}

// NewDependencyIncompatibility encodes "pkg@version depends on dependency"
// as {pkg==version, not dependency}.
func NewDependencyIncompatibility(pkg Package, version Version, dependency Term) *Incompatibility {
	self := PositiveTerm(pkg, SingletonVersionSet(version))
	terms := dedupeTerms([]Term{self, dependency.Negate()})
	return &Incompatibility{
		Terms:             terms,
		Cause:             CauseDependencyOf,
		DependencyPackage: pkg,
		DependencyVersion: version,
	}
}

// NewDerivedIncompatibility builds a CauseDerived incompatibility from the
// resolution of two prior incompatibilities.
func NewDerivedIncompatibility(terms []Term, cause1, cause2 *Incompatibility) *Incompatibility {
	return &Incompatibility{
		Terms:    dedupeTerms(terms),
		Cause:    CauseDerived,
		Derived1: cause1,
		Derived2: cause2,
	}
}

func dedupeTerms(terms []Term) []Term {
	seen := make(map[Name]int, len(terms))
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		if idx, ok := seen[t.Package.Name()]; ok {
			out[idx] = out[idx].IntersectWith(t)
			continue
		}
		seen[t.Package.Name()] = len(out)
		out = append(out, t)
	}
	return out
}

// String renders the incompatibility in PubGrub's conventional phrasing.
func (inc *Incompatibility) String() string {
	if len(inc.Terms) == 0 {
		return "version solving failed"
	}

	if len(inc.Terms) == 1 {
		t := inc.Terms[0]
		if t.Package.IsRoot() {
			return "version solving failed"
		}
		return fmt.Sprintf("%s is forbidden", t)
	}

	if inc.Cause == CauseDependencyOf && len(inc.Terms) == 2 {
		var dep Term
		for _, t := range inc.Terms {
			if t.Package.Name() != inc.DependencyPackage.Name() {
				dep = t
				break
			}
		}
		if !dep.Positive {
			dep = dep.Negate()
		}
		return fmt.Sprintf("%s %s depends on %s", inc.DependencyPackage, inc.DependencyVersion, dep)
	}

	parts := make([]string, len(inc.Terms))
	for i, t := range inc.Terms {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s are incompatible", strings.Join(parts, " and "))
}
