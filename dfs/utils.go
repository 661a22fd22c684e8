package dfs

import "strings"

// indexOf returns the first index of val in s, or -1.
func indexOf(s []string, val string) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}

	return -1
}

// reverse returns a reversed copy of s.
func reverse(s []string) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[len(s)-1-i]
	}

	return out
}

// compare orders two equal-length slices lexicographically: -1, 0 or +1.
func compare(a, b []string) int {
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}

	return 0
}

// joinSig is the comma-joined signature of a cycle.
func joinSig(c []string) string { return strings.Join(c, ",") }

// minimalRotation returns the lexicographically least rotation of s using
// Booth's failure-function scan over s doubled.
//
// Time: O(n).
func minimalRotation(s []string) []string {
	n := len(s)
	doubled := make([]string, 0, 2*n)
	doubled = append(append(doubled, s...), s...)
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}

	return append([]string(nil), doubled[k:k+n]...)
}
