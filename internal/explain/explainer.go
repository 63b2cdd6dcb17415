package explain

import (
	"context"
	"fmt"
	"time"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/inference"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/policy"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/slots"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// Path records which rendering path produced an answer.
type Path string

const (
	PathGenerated Path = "GENERATED"
	PathTemplate  Path = "TEMPLATE"
)

// Report describes how an answer was produced.
type Report struct {
	Path              Path
	FallbackReason    string
	SlotOutcome       slots.Outcome
	PolicyCorrections int
}

// Explainer produces a guarded answer for an incident. With no client
// configured it renders templates only.
type Explainer struct {
	client    inference.Client
	mode      slots.Mode
	maxTokens int
	timeout   time.Duration
}

// Config configures the explainer.
type Config struct {
	Client    inference.Client
	Mode      slots.Mode
	MaxTokens int
	Timeout   time.Duration
}

// New creates an explainer.
func New(cfg Config) *Explainer {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 512
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Explainer{
		client:    cfg.Client,
		mode:      cfg.Mode,
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

// Explain renders an answer for the incident. It tries the generated path
// first and falls back to the template on any failure; either way the answer
// has passed policy validation before it is returned. Explain never fails.
func (e *Explainer) Explain(ctx context.Context, incident models.Incident) (models.Answer, Report) {
	if e.client != nil {
		answer, report, err := e.generate(ctx, incident)
		if err == nil {
			return answer, report
		}
		report = Report{Path: PathTemplate, FallbackReason: err.Error(), SlotOutcome: report.SlotOutcome}
		answer, corrections := policy.ValidateAnswer(RenderTemplate(incident), incident)
		report.PolicyCorrections = corrections
		return answer, report
	}

	answer, corrections := policy.ValidateAnswer(RenderTemplate(incident), incident)
	return answer, Report{Path: PathTemplate, PolicyCorrections: corrections}
}

func (e *Explainer) generate(ctx context.Context, incident models.Incident) (models.Answer, Report, error) {
	constraints := policy.DetermineConstraints(incident)

	resp, err := e.client.Generate(ctx, inference.Request{
		Prompt:    BuildPrompt(incident, constraints),
		MaxTokens: e.maxTokens,
		Timeout:   e.timeout,
	})
	if err != nil {
		// Typed failures and transport errors alike fall back; the distinction
		// only matters for the report's reason string.
		if inference.Recoverable(err) {
			return models.Answer{}, Report{}, fmt.Errorf("generation failed: %w", err)
		}
		return models.Answer{}, Report{}, fmt.Errorf("generation transport error: %w", err)
	}

	parsed, err := slots.Parse(resp.Text)
	if err != nil {
		return models.Answer{}, Report{}, fmt.Errorf("slot extraction failed: %w", err)
	}

	result := slots.Validate(parsed, incident, e.mode)
	if result.Outcome == slots.Rejected {
		return models.Answer{}, Report{SlotOutcome: result.Outcome}, fmt.Errorf("slots rejected: %s", result.Reason)
	}

	answer, corrections := policy.ValidateAnswer(composeAnswer(incident, result.Slots), incident)
	return answer, Report{
		Path:              PathGenerated,
		SlotOutcome:       result.Outcome,
		PolicyCorrections: corrections,
	}, nil
}

// composeAnswer turns validated slots into an answer, reusing the incident's
// action texts for the categories the generator picked.
func composeAnswer(incident models.Incident, validated models.StructuredSlots) models.Answer {
	texts := make(map[models.ActionCategory]string, len(incident.Actions))
	for _, action := range incident.Actions {
		texts[action.Category] = action.Text
	}

	steps := make([]models.RecommendedAction, 0, len(validated.Actions))
	seen := make(map[models.ActionCategory]bool, len(validated.Actions))
	for _, cat := range validated.Actions {
		if seen[cat] {
			continue
		}
		seen[cat] = true
		steps = append(steps, models.RecommendedAction{
			Step:     len(steps) + 1,
			Category: cat,
			Text:     texts[cat],
		})
	}

	return models.Answer{
		IncidentID:   incident.ID,
		Severity:     validated.Severity,
		Headline:     headline(incident, nil),
		Body:         validated.Notes,
		EvidenceIDs:  validated.EvidenceIDs,
		Steps:        steps,
		Confidence:   validated.Confidence,
		CanBeIgnored: validated.CanBeIgnored,
		IgnoreReason: validated.IgnoreReason,
		Generated:    true,
	}
}
