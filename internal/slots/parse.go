// Package slots guards the boundary between free-form generated text and the
// policy layer: it extracts a structured result from arbitrary text and
// validates every field against the incident's own evidence.
package slots

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// Fixed maxima applied during parsing. Oversized inputs are truncated, not
// rejected.
const (
	maxEvidenceIDs = 16
	maxActions     = 8
	maxIDLength    = 64
	maxNotesLength = 500
)

// rawSlots mirrors the JSON shape the generator is asked to produce.
type rawSlots struct {
	Severity     string   `json:"assessed_severity"`
	EvidenceIDs  []string `json:"reason_ids"`
	Actions      []string `json:"action_categories"`
	Confidence   *float64 `json:"confidence"`
	CanBeIgnored bool     `json:"can_be_ignored"`
	IgnoreReason string   `json:"ignore_reason"`
	Notes        string   `json:"notes"`
}

var knownActions = map[models.ActionCategory]bool{
	models.ActionMonitor:           true,
	models.ActionReviewPermissions: true,
	models.ActionDisableCapability: true,
	models.ActionUpdateApp:         true,
	models.ActionUninstall:         true,
	models.ActionFactoryReset:      true,
}

// Parse extracts the first balanced JSON object from raw generated text,
// tolerating preamble, postamble, and markdown code fences, and decodes it
// into structured slots. Any required-field failure returns an error with no
// partial result.
func Parse(raw string) (models.StructuredSlots, error) {
	obj, ok := extractObject(raw)
	if !ok {
		return models.StructuredSlots{}, fmt.Errorf("no JSON object found in generated text")
	}

	var decoded rawSlots
	if err := json.Unmarshal([]byte(obj), &decoded); err != nil {
		return models.StructuredSlots{}, fmt.Errorf("decode slots: %w", err)
	}

	severity, ok := models.ParseSeverity(decoded.Severity)
	if !ok {
		return models.StructuredSlots{}, fmt.Errorf("unrecognized severity %q", decoded.Severity)
	}

	ids := make([]string, 0, len(decoded.EvidenceIDs))
	for _, id := range decoded.EvidenceIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if len(id) > maxIDLength {
			id = id[:maxIDLength]
		}
		ids = append(ids, id)
		if len(ids) == maxEvidenceIDs {
			break
		}
	}
	if len(ids) == 0 {
		return models.StructuredSlots{}, fmt.Errorf("no evidence ids in generated slots")
	}

	actions := make([]models.ActionCategory, 0, len(decoded.Actions))
	for _, a := range decoded.Actions {
		cat := models.ActionCategory(strings.ToUpper(strings.TrimSpace(a)))
		if !knownActions[cat] {
			continue
		}
		actions = append(actions, cat)
		if len(actions) == maxActions {
			break
		}
	}
	if len(actions) == 0 {
		return models.StructuredSlots{}, fmt.Errorf("no recognized action categories in generated slots")
	}

	if decoded.Confidence == nil {
		return models.StructuredSlots{}, fmt.Errorf("missing confidence")
	}
	if *decoded.Confidence < 0 || *decoded.Confidence > 1 {
		return models.StructuredSlots{}, fmt.Errorf("confidence %f outside [0,1]", *decoded.Confidence)
	}

	notes := decoded.Notes
	if len(notes) > maxNotesLength {
		notes = notes[:maxNotesLength]
	}

	return models.StructuredSlots{
		Severity:     severity,
		EvidenceIDs:  ids,
		Actions:      actions,
		Confidence:   *decoded.Confidence,
		CanBeIgnored: decoded.CanBeIgnored,
		IgnoreReason: models.IgnoreReason(strings.ToUpper(strings.TrimSpace(decoded.IgnoreReason))),
		Notes:        notes,
	}, nil
}

// extractObject returns the first balanced top-level JSON object in the text.
// Braces inside JSON strings do not count toward the balance.
func extractObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}
