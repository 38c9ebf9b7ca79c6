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

import "fmt"

// Term is a signed constraint over a package: a positive term asserts the
// chosen version must lie in Set, a negative term asserts it must not.
type Term struct {
	Package  Package
	Positive bool
	Set      VersionSet
}

// PositiveTerm builds a term requiring pkg's version to lie in set.
func PositiveTerm(pkg Package, set VersionSet) Term {
	return Term{Package: pkg, Positive: true, Set: set}
}

// NegativeTerm builds a term requiring pkg's version to lie outside set.
func NegativeTerm(pkg Package, set VersionSet) Term {
	return Term{Package: pkg, Positive: false, Set: set}
}

// String renders the term, e.g. "foo >=1.0.0, <2.0.0" or "not foo ==1.5.0".
func (t Term) String() string {
	set := t.Set.String()
	if t.Positive {
		if set == "*" {
			return t.Package.String()
		}
		return fmt.Sprintf("%s %s", t.Package, set)
	}
	if set == "*" {
		return fmt.Sprintf("not %s", t.Package)
	}
	return fmt.Sprintf("not %s %s", t.Package, set)
}

// Negate returns the logical negation of the term: same package and set,
// opposite sign.
func (t Term) Negate() Term {
	return Term{Package: t.Package, Positive: !t.Positive, Set: t.Set}
}

// IsPositive reports whether the term asserts a positive constraint.
func (t Term) IsPositive() bool {
	return t.Positive
}

// allowedSet returns the set of versions that satisfy the term in isolation:
// Set itself if positive, its complement if negative.
func (t Term) allowedSet() VersionSet {
	if t.Positive {
		return t.Set
	}
	return t.Set.Complement()
}

// IntersectWith returns the term representing "t AND other" restricted to
// the shared package, expressed as the resulting allowed set. The sign of
// the result is chosen so the allowed set stays as small as possible to
// represent directly: a set is always representable as a positive term.
func (t Term) IntersectWith(other Term) Term {
	allowed := t.allowedSet().Intersection(other.allowedSet())
	return PositiveTerm(t.Package, allowed)
}

// SatisfiedBy reports whether the given version satisfies the term.
func (t Term) SatisfiedBy(v Version) bool {
	if t.Positive {
		return t.Set.Contains(v)
	}
	return !t.Set.Contains(v)
}

// TermRelation classifies how one term relates to another over the same
// package: whether the first implies, contradicts, or is inconclusive
// relative to the second.
type TermRelation int

const (
	// RelationSatisfies means every version satisfying t also satisfies other.
	RelationSatisfies TermRelation = iota
	// RelationContradicts means no version can satisfy both t and other.
	RelationContradicts
	// RelationInconclusive means neither Satisfies nor Contradicts holds.
	RelationInconclusive
)

func (r TermRelation) String() string {
	switch r {
	case RelationSatisfies:
		return "satisfies"
	case RelationContradicts:
		return "contradicts"
	default:
		return "inconclusive"
	}
}

// Relation classifies t's relationship to other, which must share the same
// Package.
func (t Term) Relation(other Term) TermRelation {
	a, b := t.allowedSet(), other.allowedSet()
	switch {
	case a.IsSubset(b):
		return RelationSatisfies
	case a.IsDisjoint(b):
		return RelationContradicts
	default:
		return RelationInconclusive
	}
}
