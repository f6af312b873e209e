// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Line folding for long scalars. Folds happen at spaces only, never inside
// a word, and only at points where the fold survives a reparse: the space
// being replaced must not neighbour another space.

package yamlcore

import "strings"

// foldString inserts "\n"+indent at fold points so that no output line
// exceeds width columns. A width of 0 disables folding. minWidth keeps at
// least that much content per line when the indent is large.
func foldString(text, indent string, width, minWidth int) string {
	if width <= 0 || len(text) <= width {
		return text
	}
	avail := width - len(indent)
	if avail < minWidth {
		avail = minWidth
	}
	if avail < 1 {
		return text
	}
	var b strings.Builder
	rest := text
	for len(rest) > avail {
		// Find the last foldable space within the window.
		window := rest
		if len(window) > avail {
			window = window[:avail+1]
		}
		fold := -1
		for i := len(window) - 1; i > 0; i-- {
			if window[i] == ' ' && window[i-1] != ' ' &&
				i+1 < len(rest) && rest[i+1] != ' ' {
				fold = i
				break
			}
		}
		if fold < 0 {
			// No space in the window; fold at the next opportunity.
			for i := avail; i < len(rest); i++ {
				if rest[i] == ' ' && rest[i-1] != ' ' &&
					i+1 < len(rest) && rest[i+1] != ' ' {
					fold = i
					break
				}
			}
		}
		if fold < 0 {
			break
		}
		b.WriteString(rest[:fold])
		b.WriteByte('\n')
		b.WriteString(indent)
		rest = rest[fold+1:]
	}
	b.WriteString(rest)
	return b.String()
}
