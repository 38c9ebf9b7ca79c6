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

import "testing"

func TestTermSatisfiedBy(t *testing.T) {
	pkg := NewPackage("foo")
	set := mustVersionSet(t, ">=1.0.0, <2.0.0")

	positive := PositiveTerm(pkg, set)
	negative := NegativeTerm(pkg, set)

	v := mustVersion(t, "1.5.0")
	if !positive.SatisfiedBy(v) {
		t.Error("positive term should be satisfied by 1.5.0")
	}
	if negative.SatisfiedBy(v) {
		t.Error("negative term should not be satisfied by 1.5.0")
	}

	outside := mustVersion(t, "3.0.0")
	if positive.SatisfiedBy(outside) {
		t.Error("positive term should not be satisfied by 3.0.0")
	}
	if !negative.SatisfiedBy(outside) {
		t.Error("negative term should be satisfied by 3.0.0")
	}
}

func TestTermNegate(t *testing.T) {
	pkg := NewPackage("foo")
	term := PositiveTerm(pkg, mustVersionSet(t, ">=1.0.0"))
	negated := term.Negate()

	if negated.Positive {
		t.Error("Negate should flip Positive to false")
	}
	if negated.Negate().Positive != term.Positive {
		t.Error("double negation should return to the original sign")
	}
}

func TestTermRelation(t *testing.T) {
	pkg := NewPackage("foo")

	wide := PositiveTerm(pkg, mustVersionSet(t, ">=1.0.0"))
	narrow := PositiveTerm(pkg, mustVersionSet(t, ">=1.0.0, <2.0.0"))
	disjoint := PositiveTerm(pkg, mustVersionSet(t, ">=5.0.0"))
	overlapping := PositiveTerm(pkg, mustVersionSet(t, ">=1.5.0, <10.0.0"))

	if narrow.Relation(wide) != RelationSatisfies {
		t.Error("a narrower term should satisfy a wider one")
	}
	if narrow.Relation(disjoint) != RelationContradicts {
		t.Error("disjoint terms should contradict")
	}
	if narrow.Relation(overlapping) != RelationInconclusive {
		t.Error("partially overlapping terms should be inconclusive")
	}
}

func TestTermIntersectWith(t *testing.T) {
	pkg := NewPackage("foo")
	a := PositiveTerm(pkg, mustVersionSet(t, ">=1.0.0, <3.0.0"))
	b := PositiveTerm(pkg, mustVersionSet(t, ">=2.0.0, <4.0.0"))

	merged := a.IntersectWith(b)
	if !merged.SatisfiedBy(mustVersion(t, "2.5.0")) {
		t.Error("merged term should allow 2.5.0")
	}
	if merged.SatisfiedBy(mustVersion(t, "1.5.0")) {
		t.Error("merged term should reject 1.5.0")
	}
}

func TestTermRelationToItselfSatisfies(t *testing.T) {
	pkg := NewPackage("foo")
	for _, term := range []Term{
		PositiveTerm(pkg, mustVersionSet(t, ">=1.0.0, <2.0.0")),
		NegativeTerm(pkg, mustVersionSet(t, ">=1.0.0, <2.0.0")),
		PositiveTerm(pkg, FullVersionSet()),
	} {
		if term.Relation(term) != RelationSatisfies {
			t.Errorf("%s should satisfy itself", term)
		}
	}
}
