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

// Solver runs the PubGrub algorithm against a DependencyProvider: unit
// propagation to a fixpoint, then a bounded-lookahead decision, repeated
// until every package has a chosen version or the empty clause is derived.
type Solver struct {
	provider  DependencyProvider
	options   SolverOptions
	pool      []*Incompatibility
	byPackage map[Name][]*Incompatibility
	learned   []*Incompatibility
}

// NewSolver creates a Solver with default options.
func NewSolver(provider DependencyProvider) *Solver {
	return NewSolverWithOptions(provider)
}

// NewSolverWithOptions creates a Solver configured by opts.
func NewSolverWithOptions(provider DependencyProvider, opts ...SolverOption) *Solver {
	options := defaultSolverOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Solver{provider: provider, options: options}
}

// Configure applies additional options to an existing solver.
func (s *Solver) Configure(opts ...SolverOption) {
	for _, opt := range opts {
		opt(&s.options)
	}
}

// EnableIncompatibilityTracking turns on collection of learned clauses.
func (s *Solver) EnableIncompatibilityTracking() {
	s.options.TrackIncompatibilities = true
}

// DisableIncompatibilityTracking turns off collection of learned clauses.
func (s *Solver) DisableIncompatibilityTracking() {
	s.options.TrackIncompatibilities = false
}

// GetIncompatibilities returns the incompatibilities learned by the most
// recent Solve call, if tracking was enabled.
func (s *Solver) GetIncompatibilities() []*Incompatibility {
	return s.learned
}

// ClearIncompatibilities discards any previously learned incompatibilities.
func (s *Solver) ClearIncompatibilities() {
	s.learned = nil
}

func (s *Solver) addIncompatibility(inc *Incompatibility) {
	s.pool = append(s.pool, inc)
	for _, t := range inc.Terms {
		name := t.Package.Name()
		s.byPackage[name] = append(s.byPackage[name], inc)
	}
	if s.options.TrackIncompatibilities {
		s.learned = append(s.learned, inc)
	}
	if s.options.Logger != nil {
		s.debug("incompatibility added", "incompatibility", inc.String())
	}
}

func (s *Solver) debug(msg string, args ...any) {
	if s.options.Logger != nil {
		s.options.Logger.Debug(msg, args...)
	}
}

func packageFromName(name Name) Package {
	return Package{name: name}
}

// fail reports an unsolvable conflict. With incompatibility tracking enabled
// it returns the full derivation tree via NoSolutionError; otherwise it
// returns the lighter ErrNoSolutionFound, naming just the term that could
// not be satisfied.
func (s *Solver) fail(inc *Incompatibility) error {
	if s.options.TrackIncompatibilities {
		return NewNoSolutionError(inc)
	}
	return ErrNoSolutionFound{Term: fallbackTerm(inc)}
}

// fallbackTerm extracts a representative term to name in ErrNoSolutionFound
// when the full derivation tree isn't being tracked.
func fallbackTerm(inc *Incompatibility) Term {
	if inc != nil && len(inc.Terms) > 0 {
		return inc.Terms[0]
	}
	return Term{}
}

// Solve resolves root's dependency graph at the given version and returns a
// consistent set of package versions, or an error explaining why none
// exists. The returned Solution includes root itself at version.
func (s *Solver) Solve(root Package, version Version) (Solution, error) {
	ps := newPartialSolution(root.Name())
	s.pool = nil
	s.byPackage = make(map[Name][]*Incompatibility)
	if s.options.TrackIncompatibilities {
		s.learned = nil
	}

	s.addIncompatibility(NewRootIncompatibility(root))
	ps.seedRoot(root, version)

	rootDeps, err := s.provider.GetDependencies(root, version)
	if err != nil {
		return nil, &DependencyError{Package: root, Version: version, Err: err}
	}
	for _, dep := range rootDeps {
		s.addIncompatibility(NewDependencyIncompatibility(root, version, PositiveTerm(dep.Package, dep.Set)))
	}

	queue := []Name{root.Name()}
	steps := 0

	for {
		for len(queue) > 0 {
			steps++
			if s.options.MaxSteps > 0 && steps > s.options.MaxSteps {
				return nil, ErrIterationLimit{Steps: steps}
			}

			name := queue[0]
			queue = queue[1:]

			incs := append([]*Incompatibility(nil), s.byPackage[name]...)
			for _, inc := range incs {
				relation, unit := evaluateIncompatibility(ps, inc)
				switch relation {
				case relationSatisfied:
					learned, backLevel, ok := resolveConflict(ps, inc)
					if !ok {
						return nil, s.fail(learned)
					}
					s.addIncompatibility(learned)
					ps.backtrack(backLevel)
					if s.options.Logger != nil {
						s.debug("backtracked", "level", backLevel, "state", ps.snapshot())
					}
					queue = namesOf(learned.Terms)

				case relationAlmostSatisfied:
					derived := unit.Negate()
					_, changed, err := ps.addDerivation(derived, inc)
					if err != nil {
						learned, backLevel, ok := resolveConflict(ps, inc)
						if !ok {
							return nil, s.fail(learned)
						}
						s.addIncompatibility(learned)
						ps.backtrack(backLevel)
						if s.options.Logger != nil {
							s.debug("backtracked", "level", backLevel, "state", ps.snapshot())
						}
						queue = namesOf(learned.Terms)
						continue
					}
					if changed {
						queue = append(queue, unit.Package.Name())
					}
				}
			}
		}

		name, ok := ps.nextDecisionCandidate()
		if !ok {
			return ps.buildSolution(), nil
		}

		pkg := packageFromName(name)
		term := PositiveTerm(pkg, ps.allowedSet(name))

		version, deps, found, err := chooseWithLookahead(ps, s.provider, pkg, term)
		if err != nil {
			return nil, &DependencyError{Package: pkg, Err: err}
		}
		if !found {
			s.addIncompatibility(NewNoVersionsIncompatibility(term))
			queue = []Name{name}
			continue
		}

		ps.addDecision(pkg, version)
		if s.options.Logger != nil {
			s.debug("decision made", "package", pkg.String(), "version", version.String())
		}

		for _, dep := range deps {
			s.addIncompatibility(NewDependencyIncompatibility(pkg, version, PositiveTerm(dep.Package, dep.Set)))
		}
		queue = []Name{name}
	}
}

func namesOf(terms []Term) []Name {
	names := make([]Name, len(terms))
	for i, t := range terms {
		names[i] = t.Package.Name()
	}
	return names
}
