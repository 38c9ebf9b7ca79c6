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

// Reporter formats a failed solve's derivation tree into a human-readable
// explanation.
type Reporter interface {
	Report(incomp *Incompatibility) string
}

// DefaultReporter renders the full derivation tree, indented by depth.
type DefaultReporter struct{}

func (r *DefaultReporter) Report(incomp *Incompatibility) string {
	if incomp == nil {
		return "no solution found"
	}
	var lines []string
	r.reportIncompatibility(incomp, &lines, 0, make(map[*Incompatibility]bool))
	return strings.Join(lines, "\n")
}

func (r *DefaultReporter) reportIncompatibility(incomp *Incompatibility, lines *[]string, depth int, visited map[*Incompatibility]bool) {
	if visited[incomp] {
		return
	}
	visited[incomp] = true

	indent := strings.Repeat("  ", depth)

	switch incomp.Cause {
	case CauseNoVersions:
		if len(incomp.Terms) > 0 {
			*lines = append(*lines, fmt.Sprintf("%sNo versions of %s satisfy the constraint", indent, incomp.Terms[0]))
		}

	case CauseDependencyOf:
		if len(incomp.Terms) == 2 {
			dep := incomp.Terms[1]
			if !dep.Positive {
				dep = dep.Negate()
			}
			*lines = append(*lines, fmt.Sprintf("%sBecause %s %s depends on %s",
				indent, incomp.DependencyPackage, incomp.DependencyVersion, dep))
		}

	case CauseDerived:
		if incomp.Derived1 != nil && incomp.Derived2 != nil {
			*lines = append(*lines, fmt.Sprintf("%sBecause:", indent))
			r.reportIncompatibility(incomp.Derived1, lines, depth+1, visited)
			*lines = append(*lines, fmt.Sprintf("%sand:", indent))
			r.reportIncompatibility(incomp.Derived2, lines, depth+1, visited)

			switch len(incomp.Terms) {
			case 0:
				*lines = append(*lines, fmt.Sprintf("%sversion solving has failed.", indent))
			case 1:
				*lines = append(*lines, fmt.Sprintf("%s%s is forbidden.", indent, incomp.Terms[0]))
			default:
				termStrs := make([]string, len(incomp.Terms))
				for i, term := range incomp.Terms {
					termStrs[i] = term.String()
				}
				*lines = append(*lines, fmt.Sprintf("%sthese constraints conflict: %s",
					indent, strings.Join(termStrs, " and ")))
			}
		}

	default:
		*lines = append(*lines, fmt.Sprintf("%s%s", indent, incomp.String()))
	}
}

// CollapsedReporter renders a flat "And because..." chain instead of a tree.
type CollapsedReporter struct{}

func (r *CollapsedReporter) Report(incomp *Incompatibility) string {
	if incomp == nil {
		return "no solution found"
	}

	var lines []string
	r.collectLines(incomp, &lines, make(map[*Incompatibility]bool))
	if len(lines) == 0 {
		return "version solving failed"
	}

	result := lines[0]
	for _, line := range lines[1:] {
		result += "\nAnd because " + line
	}
	return result
}

func (r *CollapsedReporter) collectLines(incomp *Incompatibility, lines *[]string, visited map[*Incompatibility]bool) {
	if visited[incomp] {
		return
	}
	visited[incomp] = true

	switch incomp.Cause {
	case CauseNoVersions:
		if len(incomp.Terms) > 0 {
			*lines = append(*lines, fmt.Sprintf("no versions of %s satisfy the constraint", incomp.Terms[0]))
		}

	case CauseDependencyOf:
		if len(incomp.Terms) == 2 {
			dep := incomp.Terms[1]
			if !dep.Positive {
				dep = dep.Negate()
			}
			*lines = append(*lines, fmt.Sprintf("%s %s depends on %s",
				incomp.DependencyPackage, incomp.DependencyVersion, dep))
		}

	case CauseDerived:
		if incomp.Derived1 != nil && incomp.Derived2 != nil {
			r.collectLines(incomp.Derived1, lines, visited)
			r.collectLines(incomp.Derived2, lines, visited)

			switch {
			case len(incomp.Terms) == 1:
				*lines = append(*lines, fmt.Sprintf("%s is forbidden", incomp.Terms[0]))
			case len(incomp.Terms) > 1:
				termStrs := make([]string, len(incomp.Terms))
				for i, term := range incomp.Terms {
					termStrs[i] = term.String()
				}
				*lines = append(*lines, fmt.Sprintf("these constraints conflict: %s",
					strings.Join(termStrs, " and ")))
			}
		}

	default:
		*lines = append(*lines, incomp.String())
	}
}
