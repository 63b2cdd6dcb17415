package pipeline

import "github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"

// VerdictWriter writes verdict outputs.
type VerdictWriter interface {
	WriteVerdicts(verdicts []*models.Verdict) error
	Close() error
}

// AnswerWriter writes rendered answer outputs.
type AnswerWriter interface {
	WriteAnswers(answers []*models.Answer) error
	Close() error
}
