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
	"errors"
	"fmt"
	"strings"
)

// partialSolution maintains the evolving solution during dependency
// resolution: an ordered assignment log, indexed both chronologically (for
// satisfier search) and per package (for allowed-set queries), plus the
// current decision level.
//
// The log grows as the solver:
//  1. Makes decisions (selects package versions)
//  2. Derives constraints via unit propagation
//  3. Backtracks (discards assignments above a target level) on conflict
type partialSolution struct {
	assignments []*assignment
	perPackage  map[Name][]*assignment
	decisionLvl int
	nextIndex   int
	root        Name
}

func newPartialSolution(root Name) *partialSolution {
	return &partialSolution{
		perPackage: make(map[Name][]*assignment),
		root:       root,
	}
}

var errNoAllowedVersions = errors.New("no versions satisfy constraints")

func (ps *partialSolution) append(term Term, kind assignmentKind, cause *Incompatibility, version Version) *assignment {
	prior := ps.allowedSet(term.Package.Name())
	allowed := prior.Intersection(term.allowedSet())

	assign := &assignment{
		pkg:           term.Package,
		term:          term,
		kind:          kind,
		cause:         cause,
		decisionLevel: ps.decisionLvl,
		index:         ps.nextIndex,
		allowed:       allowed,
		version:       version,
	}

	ps.assignments = append(ps.assignments, assign)
	ps.perPackage[term.Package.Name()] = append(ps.perPackage[term.Package.Name()], assign)
	ps.nextIndex++
	return assign
}

// latest returns the most recent assignment for a package, or nil.
func (ps *partialSolution) latest(name Name) *assignment {
	stack := ps.perPackage[name]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// allowedSet returns the currently allowed version set for a package: the
// intersection of every term asserted about it so far.
func (ps *partialSolution) allowedSet(name Name) VersionSet {
	if assign := ps.latest(name); assign != nil {
		return assign.allowed
	}
	return FullVersionSet()
}

func (ps *partialSolution) hasAssignments(name Name) bool {
	return len(ps.perPackage[name]) > 0
}

// addDecision records the choice of version for pkg, incrementing the
// decision level.
func (ps *partialSolution) addDecision(pkg Package, version Version) *assignment {
	ps.decisionLvl++
	return ps.append(PositiveTerm(pkg, SingletonVersionSet(version)), assignmentDecision, nil, version)
}

// seedRoot places the root package's decision at level 0, at the version the
// caller asked the solve to start from.
func (ps *partialSolution) seedRoot(root Package, version Version) *assignment {
	return ps.append(PositiveTerm(root, SingletonVersionSet(version)), assignmentDecision, nil, version)
}

// addDerivation records a term forced by unit propagation. changed reports
// whether this narrowed the package's allowed set relative to before.
func (ps *partialSolution) addDerivation(term Term, cause *Incompatibility) (assign *assignment, changed bool, err error) {
	before := ps.allowedSet(term.Package.Name())
	assign = ps.append(term, assignmentDerivation, cause, Version{})
	if assign.allowed.IsEmpty() {
		return assign, false, errNoAllowedVersions
	}
	return assign, !before.Equal(assign.allowed), nil
}

// backtrack discards every assignment above the given decision level.
func (ps *partialSolution) backtrack(level int) {
	if level < 0 {
		level = 0
	}

	for len(ps.assignments) > 0 {
		last := ps.assignments[len(ps.assignments)-1]
		if last.decisionLevel <= level {
			break
		}
		ps.assignments = ps.assignments[:len(ps.assignments)-1]
		name := last.pkg.Name()
		stack := ps.perPackage[name]
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			delete(ps.perPackage, name)
		} else {
			ps.perPackage[name] = stack
		}
	}

	ps.decisionLvl = level
}

// isComplete reports whether every non-root package that some assignment
// positively requires has a decided version. Packages constrained only
// negatively do not need one.
func (ps *partialSolution) isComplete() bool {
	for name := range ps.perPackage {
		if name == ps.root {
			continue
		}
		if !ps.hasDecision(name) && ps.hasPositiveTerm(name) {
			return false
		}
	}
	return true
}

// nextDecisionCandidate returns the next package awaiting a version choice.
// Only packages something positively requires qualify: a package left with
// nothing but negative derivations (possible after a backtrack) is not part
// of the solution and must not be decided.
func (ps *partialSolution) nextDecisionCandidate() (Name, bool) {
	seen := make(map[Name]bool)
	for _, assign := range ps.assignments {
		name := assign.pkg.Name()
		if name == ps.root || seen[name] {
			continue
		}
		seen[name] = true
		if !ps.hasDecision(name) && ps.hasPositiveTerm(name) {
			return name, true
		}
	}
	return EmptyName(), false
}

// hasPositiveTerm reports whether any assignment positively requires the
// package.
func (ps *partialSolution) hasPositiveTerm(name Name) bool {
	for _, assign := range ps.perPackage[name] {
		if assign.term.Positive {
			return true
		}
	}
	return false
}

func (ps *partialSolution) hasDecision(name Name) bool {
	for _, assign := range ps.perPackage[name] {
		if assign.kind == assignmentDecision {
			return true
		}
	}
	return false
}

// satisfier finds the assignment whose addition completed the incompatibility,
// i.e. the earliest point at which every term in inc became forced.
func (ps *partialSolution) satisfier(inc *Incompatibility) *assignment {
	satisfied := make(map[Name]bool, len(inc.Terms))
	var selected *assignment

	for _, assign := range ps.assignments {
		name := assign.pkg.Name()
		for _, term := range inc.Terms {
			if term.Package.Name() != name || satisfied[name] {
				continue
			}
			if termSatisfiedBy(term, assign) {
				satisfied[name] = true
				selected = assign
			}
		}

		all := true
		for _, term := range inc.Terms {
			if !satisfied[term.Package.Name()] {
				all = false
				break
			}
		}
		if all {
			return selected
		}
	}

	return selected
}

// previousDecisionLevel finds the highest decision level among assignments
// that satisfy a term of inc, excluding satisfier itself. Used to compute
// the backtrack target during conflict resolution.
func (ps *partialSolution) previousDecisionLevel(inc *Incompatibility, satisfier *assignment) int {
	level := 0
	for _, term := range inc.Terms {
		for _, assign := range ps.perPackage[term.Package.Name()] {
			if assign == satisfier {
				continue
			}
			if termSatisfiedBy(term, assign) && assign.decisionLevel > level {
				level = assign.decisionLevel
			}
		}
	}
	return level
}

// buildSolution extracts the final package/version pairs from the decision
// assignments, in the order they were made. Every decided package is
// included, the root among them.
func (ps *partialSolution) buildSolution() Solution {
	result := make(Solution, 0)
	seen := make(map[Name]bool)
	for _, assign := range ps.assignments {
		if assign.kind != assignmentDecision {
			continue
		}
		name := assign.pkg.Name()
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, NameVersion{Name: name, Version: assign.version})
	}
	return result
}

func (ps *partialSolution) snapshot() string {
	var b strings.Builder
	fmt.Fprintf(&b, "decision_level=%d next_index=%d assignments=%d\n", ps.decisionLvl, ps.nextIndex, len(ps.assignments))
	for _, assign := range ps.assignments {
		fmt.Fprintf(&b, "  %s\n", assign.describe())
	}
	return b.String()
}

// pendingPackages lists non-root packages that some assignment positively
// requires but that have no decided version yet.
func (ps *partialSolution) pendingPackages() []Name {
	pending := make([]Name, 0)
	seen := make(map[Name]bool)
	for _, assign := range ps.assignments {
		name := assign.pkg.Name()
		if name == ps.root || seen[name] {
			continue
		}
		seen[name] = true
		if !ps.hasDecision(name) && ps.hasPositiveTerm(name) {
			pending = append(pending, name)
		}
	}
	return pending
}

// termSatisfiedBy reports whether assign's cumulative allowed set forces
// term to hold, i.e. every remaining possibility satisfies it.
func termSatisfiedBy(term Term, assign *assignment) bool {
	if assign == nil {
		return false
	}
	return assign.allowed.IsSubset(term.allowedSet())
}
