package models

// Reason is one ranked explanation entry behind a verdict.
type Reason struct {
	Kind     string      `json:"kind"` // finding or combo
	Type     FindingType `json:"type,omitempty"`
	Combo    string      `json:"combo,omitempty"`
	Severity Severity    `json:"severity"`
	Hardness Hardness    `json:"hardness,omitempty"`
	Message  string      `json:"message,omitempty"`
}

const (
	ReasonFinding = "finding"
	ReasonCombo   = "combo"
	ReasonTrust   = "trust"
)

// Verdict is the deterministic risk outcome for one app.
type Verdict struct {
	Package          string            `json:"package"`
	Risk             RiskLevel         `json:"risk"`
	Findings         []AdjustedFinding `json:"findings,omitempty"`
	ActiveClusters   []string          `json:"active_clusters,omitempty"`
	UnexpectedClusters []string        `json:"unexpected_clusters,omitempty"`
	MatchedCombos    []string          `json:"matched_combos,omitempty"`
	TopReasons       []Reason          `json:"top_reasons,omitempty"`
	RiskScore        int               `json:"risk_score"`
	ShowProminently  bool              `json:"show_prominently"`
}
