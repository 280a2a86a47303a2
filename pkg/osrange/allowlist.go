/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package osrange

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator delimits operating system names in a raw allow-list.
const Separator = ","

// AllowList is a normalized set of operating system identifiers.
// Entries are trimmed, lowercased and never empty. The zero value is an empty list.
type AllowList struct {
	entries []string
	set     map[string]struct{}
}

// ParseAllowList builds an AllowList from a comma-separated string.
// Blank input yields an empty list. Tokens are trimmed and lowercased;
// empty tokens and duplicates are dropped.
func ParseAllowList(raw string) AllowList {
	var list AllowList
	if strings.TrimSpace(raw) == "" {
		return list
	}

	for _, token := range strings.Split(raw, Separator) {
		name := Normalize(token)
		if name == "" {
			continue
		}
		list.add(name)
	}
	return list
}

// NewAllowList builds an AllowList from already split names, normalizing each.
func NewAllowList(names ...string) AllowList {
	var list AllowList
	for _, n := range names {
		if name := Normalize(n); name != "" {
			list.add(name)
		}
	}
	return list
}

func (a *AllowList) add(name string) {
	if a.set == nil {
		a.set = make(map[string]struct{})
	}
	if _, ok := a.set[name]; ok {
		return
	}
	a.set[name] = struct{}{}
	a.entries = append(a.entries, name)
}

// Normalize trims surrounding whitespace and lowercases name.
func Normalize(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

// Contains reports whether name is in the list. name is compared as is.
func (a AllowList) Contains(name string) bool {
	_, ok := a.set[name]
	return ok
}

// Len returns the number of distinct entries.
func (a AllowList) Len() int {
	return len(a.entries)
}

// IsEmpty reports whether the list has no entries.
func (a AllowList) IsEmpty() bool {
	return len(a.entries) == 0
}

// Entries returns a copy of the entries in first-seen order.
func (a AllowList) Entries() []string {
	if len(a.entries) == 0 {
		return nil
	}
	out := make([]string, len(a.entries))
	copy(out, a.entries)
	return out
}

// String renders the list as "[a, b]".
func (a AllowList) String() string {
	return "[" + strings.Join(a.entries, ", ") + "]"
}
