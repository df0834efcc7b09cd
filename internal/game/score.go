package game

import "strings"

// Score evaluates guess against target and returns one Mark per guess
// letter. Comparison is case-insensitive.
//
// Pass 1 marks exact positional matches correct and consumes that target
// slot. Pass 2 walks the remaining guess letters left to right; each one
// consumes the lowest-index unconsumed target slot holding the same letter
// and is marked present, or is marked absent when none is left. A target
// letter therefore never satisfies two guess positions.
func Score(guess, target string) []Mark {
	g := []rune(strings.ToUpper(guess))
	t := []rune(strings.ToUpper(target))

	marks := make([]Mark, len(g))
	taken := make([]bool, len(t))

	for i := range g {
		if i < len(t) && g[i] == t[i] {
			marks[i] = MarkCorrect
			taken[i] = true
		}
	}

	for i := range g {
		if marks[i] == MarkCorrect {
			continue
		}
		marks[i] = MarkAbsent
		for j := range t {
			if !taken[j] && t[j] == g[i] {
				marks[i] = MarkPresent
				taken[j] = true
				break
			}
		}
	}
	return marks
}

// allCorrect reports whether every mark is MarkCorrect.
func allCorrect(m []Mark) bool {
	for _, x := range m {
		if x != MarkCorrect {
			return false
		}
	}
	return len(m) > 0
}
