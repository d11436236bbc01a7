// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package grouping

// LongestCommonSubstring returns the longest contiguous run of runes shared
// by a and b. It fills the classic dynamic-programming table row by row over
// a; when several runs share the maximum length, the first one found wins
// (the one ending earliest in a, then earliest in b). Either input being
// empty yields "".
func LongestCommonSubstring(a, b string) string {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return ""
	}

	// Only the previous row is needed to extend a diagonal.
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	best, end := 0, 0
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best = cur[j]
					end = i
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return string(ra[end-best : end])
}
