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

func TestResolveIncompatibilityDropsSharedPackage(t *testing.T) {
	a := NewPackage("a")
	b := NewPackage("b")
	shared := NewPackage("shared")

	inc := NewDependencyIncompatibility(a, mustVersion(t, "1.0.0"),
		PositiveTerm(shared, mustVersionSet(t, ">=1.0.0, <2.0.0")))
	cause := NewDependencyIncompatibility(b, mustVersion(t, "1.0.0"),
		PositiveTerm(shared, mustVersionSet(t, ">=2.0.0")))

	resolved, ok := resolveIncompatibility(inc, cause, shared.Name())
	if !ok {
		t.Fatal("resolution of two dependency clauses should not yield the empty clause")
	}
	for _, term := range resolved.Terms {
		if term.Package.Name() == shared.Name() {
			t.Errorf("shared package should be dropped from the resolvent, got %v", resolved.Terms)
		}
	}
	if len(resolved.Terms) != 2 {
		t.Errorf("expected terms for a and b only, got %v", resolved.Terms)
	}
	if resolved.Cause != CauseDerived {
		t.Errorf("resolvent cause = %v, want CauseDerived", resolved.Cause)
	}
	if resolved.Derived1 != inc || resolved.Derived2 != cause {
		t.Error("resolvent should reference both parents for the derivation tree")
	}
}

func TestResolveIncompatibilityEmptyClause(t *testing.T) {
	shared := NewPackage("shared")

	inc := NewNoVersionsIncompatibility(PositiveTerm(shared, mustVersionSet(t, ">=1.0.0")))
	cause := NewNoVersionsIncompatibility(PositiveTerm(shared, mustVersionSet(t, "<1.0.0")))

	resolved, ok := resolveIncompatibility(inc, cause, shared.Name())
	if ok {
		t.Fatalf("resolution with only the shared package should derive the empty clause, got %v", resolved.Terms)
	}
	if len(resolved.Terms) != 0 {
		t.Errorf("empty clause should carry no terms, got %v", resolved.Terms)
	}
}

func TestResolveIncompatibilityMergesDuplicateTerms(t *testing.T) {
	a := NewPackage("a")
	shared := NewPackage("shared")

	inc := &Incompatibility{Terms: []Term{
		PositiveTerm(shared, mustVersionSet(t, ">=1.0.0")),
		PositiveTerm(a, mustVersionSet(t, ">=1.0.0, <3.0.0")),
	}}
	cause := &Incompatibility{Terms: []Term{
		PositiveTerm(shared, mustVersionSet(t, "<1.0.0")),
		PositiveTerm(a, mustVersionSet(t, ">=2.0.0, <4.0.0")),
	}}

	resolved, ok := resolveIncompatibility(inc, cause, shared.Name())
	if !ok {
		t.Fatal("expected a non-empty resolvent")
	}
	if len(resolved.Terms) != 1 {
		t.Fatalf("expected the two terms on a to merge into one, got %v", resolved.Terms)
	}
	merged := resolved.Terms[0]
	if !merged.SatisfiedBy(mustVersion(t, "2.5.0")) {
		t.Error("merged term should keep the overlap of both ranges")
	}
	if merged.SatisfiedBy(mustVersion(t, "1.5.0")) {
		t.Error("merged term should exclude versions outside the overlap")
	}
}

func TestResolveIncompatibilityDropsEmptyMergedTerm(t *testing.T) {
	a := NewPackage("a")
	shared := NewPackage("shared")

	inc := &Incompatibility{Terms: []Term{
		PositiveTerm(shared, mustVersionSet(t, ">=1.0.0")),
		PositiveTerm(a, mustVersionSet(t, "<2.0.0")),
	}}
	cause := &Incompatibility{Terms: []Term{
		PositiveTerm(shared, mustVersionSet(t, "<1.0.0")),
		PositiveTerm(a, mustVersionSet(t, ">=3.0.0")),
	}}

	resolved, ok := resolveIncompatibility(inc, cause, shared.Name())
	if ok {
		t.Fatalf("disjoint merged terms should drop a entirely, leaving the empty clause, got %v", resolved.Terms)
	}
}

func TestResolveConflictBacktracksToDecision(t *testing.T) {
	root := RootPackage()
	x := NewPackage("x")
	y := NewPackage("y")

	ps := newPartialSolution(root.Name())
	ps.seedRoot(root, rootVersion)
	ps.addDecision(x, mustVersion(t, "2.0.0")) // level 1

	// x 2.0.0 depends on y ==1.0.0, but no version of y satisfies it.
	depInc := NewDependencyIncompatibility(x, mustVersion(t, "2.0.0"),
		PositiveTerm(y, mustVersionSet(t, "==1.0.0")))
	if _, _, err := ps.addDerivation(PositiveTerm(y, mustVersionSet(t, "==1.0.0")), depInc); err != nil {
		t.Fatalf("unexpected derivation error: %v", err)
	}
	noVersions := NewNoVersionsIncompatibility(PositiveTerm(y, mustVersionSet(t, "==1.0.0")))

	learned, level, ok := resolveConflict(ps, noVersions)
	if !ok {
		t.Fatal("a conflict above level 0 should be recoverable")
	}
	if level != 0 {
		t.Errorf("backtrack level = %d, want 0 (below x's decision)", level)
	}
	if learned == nil || len(learned.Terms) == 0 {
		t.Fatal("expected a learned clause naming x")
	}
	if learned.Terms[0].Package.Name() != x.Name() {
		t.Errorf("learned clause should constrain x, got %v", learned.Terms)
	}
}

func TestResolveConflictAtRootLevelIsUnsolvable(t *testing.T) {
	root := RootPackage()
	z := NewPackage("z")

	ps := newPartialSolution(root.Name())
	ps.seedRoot(root, rootVersion)

	depInc := NewDependencyIncompatibility(root, rootVersion,
		PositiveTerm(z, mustVersionSet(t, "==1.0.0")))
	if _, _, err := ps.addDerivation(PositiveTerm(z, mustVersionSet(t, "==1.0.0")), depInc); err != nil {
		t.Fatalf("unexpected derivation error: %v", err)
	}
	noVersions := NewNoVersionsIncompatibility(PositiveTerm(z, mustVersionSet(t, "==1.0.0")))

	_, _, ok := resolveConflict(ps, noVersions)
	if ok {
		t.Fatal("a conflict rooted entirely at level 0 should be unsolvable")
	}
}
