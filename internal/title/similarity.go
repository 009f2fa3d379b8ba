package title

// Similarity returns a ratio in [0,1] describing how close two titles are
// after normalization. It is the Ratcliff/Obershelp measure: twice the total
// length of the matching blocks divided by the combined length of both
// strings. Identical titles score 1.0, disjoint titles score 0.0.
func Similarity(a, b string) float64 {
	na := []rune(Normalize(a))
	nb := []rune(Normalize(b))

	if len(na) == 0 && len(nb) == 0 {
		return 1.0
	}
	if len(na) == 0 || len(nb) == 0 {
		return 0.0
	}

	matched := matchingTotal(na, nb)
	return 2.0 * float64(matched) / float64(len(na)+len(nb))
}

// matchingTotal sums the lengths of the matching blocks between a and b:
// the longest common substring, then recursively the pieces to its left
// and to its right.
func matchingTotal(a, b []rune) int {
	aStart, bStart, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}

	total := size
	total += matchingTotal(a[:aStart], b[:bStart])
	total += matchingTotal(a[aStart+size:], b[bStart+size:])
	return total
}

func longestCommonSubstring(a, b []rune) (aStart, bStart, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// lengths[j] holds the length of the common suffix ending at a[i-1], b[j-1]
	// for the current row i.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > size {
					size = curr[j]
					aStart = i - size
					bStart = j - size
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}

	return aStart, bStart, size
}
