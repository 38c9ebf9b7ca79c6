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

type assignmentKind int

const (
	assignmentDecision assignmentKind = iota
	assignmentDerivation
)

// assignment is one entry in the partial solution's chronological log: a
// decision (a chosen version) or a derivation (a term forced by
// propagation). allowed caches the cumulative allowed version set for the
// assignment's package up to and including this entry, so later lookups
// don't need to replay history.
type assignment struct {
	pkg           Package
	term          Term
	kind          assignmentKind
	cause         *Incompatibility
	decisionLevel int
	index         int
	allowed       VersionSet
	version       Version
}

func (a *assignment) describe() string {
	kind := "derivation"
	if a.kind == assignmentDecision {
		kind = "decision"
	}
	return fmt.Sprintf("[%d@%d %s] %s (allowed=%s)", a.index, a.decisionLevel, kind, a.term, a.allowed)
}
