package services

import (
	"regexp"
	"strings"
)

// ComplexityMetrics summarizes the static shape of a submitted solution.
// The analysis is language-agnostic and deterministic, so reranking the same
// submission always yields the same numbers.
type ComplexityMetrics struct {
	Cyclomatic      int
	LinesOfCode     int
	MaxNestingDepth int
	HasRecursion    bool
}

var (
	branchKeywordRe = regexp.MustCompile(`\b(if|else if|elif|for|while|case|when|catch|except)\b|&&|\|\||\?`)
	funcNameRe      = regexp.MustCompile(`\b(?:func|function|def|fn)\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// AnalyzeComplexity derives complexity metrics from raw source code.
// Empty code yields zero metrics.
func AnalyzeComplexity(code string) ComplexityMetrics {
	if strings.TrimSpace(code) == "" {
		return ComplexityMetrics{}
	}

	metrics := ComplexityMetrics{
		// Cyclomatic complexity starts at 1 for the single entry path
		Cyclomatic: 1,
	}

	depth := 0
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		metrics.LinesOfCode++
		metrics.Cyclomatic += len(branchKeywordRe.FindAllString(trimmed, -1))

		for _, r := range trimmed {
			switch r {
			case '{', '(':
				depth++
				if depth > metrics.MaxNestingDepth {
					metrics.MaxNestingDepth = depth
				}
			case '}', ')':
				if depth > 0 {
					depth--
				}
			}
		}
	}

	// A function that mentions its own name in its body is treated as
	// recursive. Naive, but stable across replays.
	for _, match := range funcNameRe.FindAllStringSubmatch(code, -1) {
		name := match[1]
		if strings.Count(code, name) > 1 {
			metrics.HasRecursion = true
			break
		}
	}

	return metrics
}

// ComplexityScore reduces metrics to the secondary ranking signal. Cleaner
// solutions (fewer branches, shallower nesting, fewer lines) score higher;
// the result is clamped to 0..100.
func ComplexityScore(m ComplexityMetrics) int {
	if m.LinesOfCode == 0 {
		return 0
	}

	score := 100
	score -= (m.Cyclomatic - 1) * 4
	score -= m.MaxNestingDepth * 3
	score -= m.LinesOfCode / 5
	if m.HasRecursion {
		// Recursion is rewarded as an elegance signal
		score += 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// BonusPoints converts the complexity score into the bonus folded into
// finalScore: up to 10 extra points for the cleanest solutions.
func BonusPoints(complexityScore int) int {
	return complexityScore / 10
}
