// Copyright 2026 The Quarry Authors
// SPDX-License-Identifier: Apache-2.0

// Package entryset tracks which entry names a composed archive has
// already claimed.
//
// Every composer in Quarry resolves name conflicts the same way: the
// first source to claim a name wins, and later claimants are silently
// dropped. Set makes that policy explicit — an insertion-ordered list
// of names plus a membership map — instead of leaving it implicit in
// archive write order.
package entryset

// Set is an insertion-ordered set of claimed entry names.
//
// The zero value is not usable; call New.
type Set struct {
	names   []string
	members map[string]struct{}
}

// New returns an empty Set.
func New() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Claim records name as claimed and reports whether the claim is new.
// A false return means an earlier source already owns the name and the
// caller must not write the entry.
func (s *Set) Claim(name string) bool {
	if _, taken := s.members[name]; taken {
		return false
	}
	s.members[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

// Claimed reports whether name has been claimed.
func (s *Set) Claimed(name string) bool {
	_, taken := s.members[name]
	return taken
}

// Names returns the claimed names in claim order. The returned slice
// is shared; callers must not modify it.
func (s *Set) Names() []string {
	return s.names
}

// Len returns the number of claimed names.
func (s *Set) Len() int {
	return len(s.names)
}
