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

// incompatibilityRelation classifies how an incompatibility currently
// relates to the partial solution.
type incompatibilityRelation int

const (
	relationInconclusive incompatibilityRelation = iota
	relationAlmostSatisfied
	relationSatisfied
	relationContradicted
)

// relationForTerm compares a package's accumulated term in the partial
// solution against a single incompatibility term.
func relationForTerm(accumulated VersionSet, term Term) TermRelation {
	allowed := term.allowedSet()
	switch {
	case accumulated.IsSubset(allowed):
		return RelationSatisfies
	case accumulated.IsDisjoint(allowed):
		return RelationContradicts
	default:
		return RelationInconclusive
	}
}

// evaluateIncompatibility computes the incompatibility's relation to ps, and
// when the result is relationAlmostSatisfied, the single unit term whose
// negation must be derived.
func evaluateIncompatibility(ps *partialSolution, inc *Incompatibility) (incompatibilityRelation, Term) {
	inconclusiveCount := 0
	var unit Term

	for _, term := range inc.Terms {
		accumulated := ps.allowedSet(term.Package.Name())
		switch relationForTerm(accumulated, term) {
		case RelationContradicts:
			return relationContradicted, Term{}
		case RelationInconclusive:
			inconclusiveCount++
			unit = term
			if inconclusiveCount > 1 {
				return relationInconclusive, Term{}
			}
		}
	}

	switch inconclusiveCount {
	case 0:
		return relationSatisfied, Term{}
	case 1:
		return relationAlmostSatisfied, unit
	default:
		return relationInconclusive, Term{}
	}
}

// mergeTerms combines two terms about the same package using Boolean
// resolution's per-package merge rule: intersect their allowed sets.
func mergeTerms(a, b Term) Term {
	return a.IntersectWith(b)
}

// resolveIncompatibility performs one step of Boolean resolution between a
// violated incompatibility and the cause of its most recent derivation,
// dropping the shared package and merging any other terms they have in
// common. Returns the resolved incompatibility, or ok=false if the result
// is the empty clause (the instance is unsolvable).
func resolveIncompatibility(inc, cause *Incompatibility, shared Name) (*Incompatibility, bool) {
	merged := make(map[Name]Term)
	order := make([]Name, 0, len(inc.Terms)+len(cause.Terms))

	add := func(t Term) {
		name := t.Package.Name()
		if name == shared {
			return
		}
		if existing, ok := merged[name]; ok {
			result := mergeTerms(existing, t)
			merged[name] = result
			return
		}
		merged[name] = t
		order = append(order, name)
	}

	for _, t := range inc.Terms {
		add(t)
	}
	for _, t := range cause.Terms {
		add(t)
	}

	terms := make([]Term, 0, len(order))
	for _, name := range order {
		t := merged[name]
		if t.allowedSet().IsEmpty() {
			continue
		}
		terms = append(terms, t)
	}

	return NewDerivedIncompatibility(terms, inc, cause), len(terms) > 0
}

// resolveConflict runs the CDCL loop (§4.7): walk back through the
// derivation chain of a violated incompatibility until either a decision
// whose level exceeds the previous satisfier level is found (the backtrack
// point) or the empty clause is derived (no solution exists). The returned
// bool is false only in the latter case, in which the Incompatibility is the
// empty (or otherwise unsatisfiable) derived clause the caller should report.
func resolveConflict(ps *partialSolution, violated *Incompatibility) (*Incompatibility, int, bool) {
	inc := violated

	for {
		satisfier := ps.satisfier(inc)
		if satisfier == nil {
			return inc, 0, false
		}

		prevLevel := ps.previousDecisionLevel(inc, satisfier)

		if satisfier.kind == assignmentDecision && satisfier.decisionLevel > prevLevel {
			return inc, prevLevel, true
		}

		if satisfier.kind == assignmentDecision {
			return inc, 0, false
		}

		cause := satisfier.cause
		if cause == nil {
			return inc, 0, false
		}

		resolved, ok := resolveIncompatibility(inc, cause, satisfier.pkg.Name())
		if !ok {
			return resolved, 0, false
		}
		inc = resolved
	}
}
