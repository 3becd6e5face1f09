package analyzer

import "github.com/ludo-technologies/lintreport/domain"

// ErrorWeight is the malus of one error relative to other categories
const ErrorWeight = 5.0

// EvaluateScore grades a run from its statistics:
//
//	malus = 5*error + warning + refactor + convention
//	score = 10 - 10*malus/statement
//
// The score is undefined when statement is missing or not positive.
// It is not clamped to [0, 10].
func EvaluateScore(stats domain.RunStats) domain.Score {
	statement, ok := stats.Number(domain.StatStatement)
	if !ok || statement <= 0 {
		return domain.UndefinedScore()
	}

	malus := ErrorWeight*stats.NumberOr(domain.StatError, 0) +
		stats.NumberOr(domain.StatWarning, 0) +
		stats.NumberOr(domain.StatRefactor, 0) +
		stats.NumberOr(domain.StatConvention, 0)

	return domain.NewScore(domain.MaxScore - malus/statement*10)
}
