// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import "strings"

// CommandName returns the base name of args[0] without a trailing .exe, or
// fallback when args is empty or the name is blank.
//
// Both '/' and '\' are treated as separators, so a Windows path yields the
// same result on every OS.
func CommandName(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}

	name := strings.TrimRight(args[0], `/\`)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if len(name) > len(".exe") && strings.EqualFold(name[len(name)-len(".exe"):], ".exe") {
		name = name[:len(name)-len(".exe")]
	}

	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return fallback
	}
	return name
}
