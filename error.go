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

// NoSolutionError is returned when version solving fails. It carries the
// root incompatibility of the derivation tree so a Reporter can explain why.
type NoSolutionError struct {
	Incompatibility *Incompatibility
	Reporter        Reporter
}

func (e *NoSolutionError) Error() string {
	if e.Incompatibility == nil {
		return "no solution found"
	}
	reporter := e.Reporter
	if reporter == nil {
		reporter = &DefaultReporter{}
	}
	return reporter.Report(e.Incompatibility)
}

// WithReporter returns a copy of e that formats its message with reporter.
func (e *NoSolutionError) WithReporter(reporter Reporter) *NoSolutionError {
	return &NoSolutionError{Incompatibility: e.Incompatibility, Reporter: reporter}
}

func (e *NoSolutionError) Unwrap() error {
	return nil
}

// NewNoSolutionError wraps incomp in a NoSolutionError with the default reporter.
func NewNoSolutionError(incomp *Incompatibility) *NoSolutionError {
	return &NoSolutionError{Incompatibility: incomp, Reporter: &DefaultReporter{}}
}

// VersionError reports a problem with a version constraint for a package.
type VersionError struct {
	Package Package
	Message string
}

func (e *VersionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Package, e.Message)
	}
	return fmt.Sprintf("version error for package %s", e.Package)
}

// DependencyError wraps a failure to fetch a package's dependencies.
type DependencyError struct {
	Package Package
	Version Version
	Err     error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("failed to get dependencies for %s %s: %v", e.Package, e.Version, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// PackageNotFoundError indicates that a package is absent from the provider.
type PackageNotFoundError struct {
	Package Package
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package %s not found", e.Package)
}

// PackageVersionNotFoundError indicates a specific version is unavailable.
type PackageVersionNotFoundError struct {
	Package Package
	Version Version
}

func (e *PackageVersionNotFoundError) Error() string {
	return fmt.Sprintf("package %s version %s not found", e.Package, e.Version)
}

// ErrNoSolutionFound is returned when solving fails with incompatibility
// tracking disabled, so no derivation tree is available to report.
//
//	solver := NewSolver(provider)
//	_, err := solver.Solve(root, rootVersion)
//	var notFound ErrNoSolutionFound
//	if errors.As(err, &notFound) { ... }
type ErrNoSolutionFound struct {
	Term Term
}

func (e ErrNoSolutionFound) Error() string {
	// The empty clause carries no term at all.
	if e.Term.Package == (Package{}) {
		return "no solution found"
	}
	return fmt.Sprintf("no solution found for %s", e.Term)
}

// ErrIterationLimit is returned when the solver exceeds SolverOptions.MaxSteps.
// Configure WithMaxSteps(0) to disable the limit (not recommended for
// untrusted inputs, since a buggy provider can loop forever).
type ErrIterationLimit struct {
	Steps int
}

func (e ErrIterationLimit) Error() string {
	if e.Steps <= 0 {
		return "solver exceeded iteration limit"
	}
	return fmt.Sprintf("solver exceeded iteration limit after %d steps", e.Steps)
}

var (
	_ error = (*NoSolutionError)(nil)
	_ error = (*VersionError)(nil)
	_ error = (*DependencyError)(nil)
	_ error = (*PackageNotFoundError)(nil)
	_ error = (*PackageVersionNotFoundError)(nil)
	_ error = ErrNoSolutionFound{}
	_ error = ErrIterationLimit{}
)
