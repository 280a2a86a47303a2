/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package osrange checks an operating system name against an allow-list.
//
// # Overview
//
// The allow-list is configured as a single comma-separated string such as
// "linux, mac os x". ParseAllowList normalizes it into a set of trimmed,
// lowercase names and Validate reports whether the current OS is a member.
//
//	list := osrange.ParseAllowList("Linux, Windows")
//	out := osrange.Validate("windows", list)
//	if err := out.Err(); err != nil {
//	    return err
//	}
//
// # Outcomes
//
// Validate never returns an error. It returns an Outcome with one of three
// terminal states:
//   - fail, EmptyAllowList: nothing was configured
//   - fail, OSNotInRange: the OS is not in the list
//   - pass: the OS is in the list
//
// Outcome.Err maps the failing states to ErrEmptyAllowList and ErrOSNotInRange.
//
// # Normalization
//
// Tokens are trimmed and lowercased. Empty tokens produced by repeated or
// trailing commas are dropped, so "linux,,windows," is the same list as
// "linux,windows". The current OS name is compared as given; callers lowercase
// it before calling Validate.
//
// The package holds no state; concurrent calls are safe.
package osrange
