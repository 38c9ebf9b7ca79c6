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

import "unique"

// Name is an interned package identifier. Equal strings intern to the same
// handle, so comparisons and map lookups are pointer-cheap regardless of how
// often a package name recurs across a solve.
type Name = unique.Handle[string]

// MakeName interns s as a Name.
func MakeName(s string) Name {
	return unique.Make(s)
}

// EmptyName is the interned empty string, used as a sentinel absence value.
func EmptyName() Name {
	return unique.Make("")
}

// rootPackageName is the synthetic package the resolver seeds the solve
// from. It is never visible in a DependencyProvider's own package space.
const rootPackageName = "$root"

// rootVersion is the default version the synthetic root package carries when
// a caller has no real root version of its own to supply.
var rootVersion = Version{Major: 0, Minor: 0, Patch: 0}

// RootVersion returns the default version associated with RootPackage.
func RootVersion() Version {
	return rootVersion
}

// Package is the identity of a resolvable unit: a name plus whether it is
// the distinguished root of the solve. Equality is by name.
type Package struct {
	name   Name
	isRoot bool
}

// NewPackage returns the identity for an ordinary (non-root) package.
func NewPackage(name string) Package {
	return Package{name: MakeName(name)}
}

// RootPackage returns the synthetic identity the resolver seeds a solve
// with. Every solve has exactly one.
func RootPackage() Package {
	return Package{name: MakeName(rootPackageName), isRoot: true}
}

// Name returns the package's interned name.
func (p Package) Name() Name {
	return p.name
}

// IsRoot reports whether this is the solve's distinguished root package.
func (p Package) IsRoot() bool {
	return p.isRoot
}

// String returns the package's name as plain text.
func (p Package) String() string {
	return p.name.Value()
}
