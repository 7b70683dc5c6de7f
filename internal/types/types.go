package types

import (
	"encoding/json"
	"time"
)

// Issue is one normalized finding produced by a detector or a linter
// adapter. Issues are value records: once emitted they are never mutated,
// and identical findings from different producers are kept as-is, never
// deduplicated.
type Issue struct {
	File       string
	Line       int // 1-based
	Column     int // 0-based, 0 when the producer cannot locate one
	Severity   Severity
	Type       IssueType
	Message    string
	RuleID     string // tool rule code, empty for heuristic detectors
	Suggestion string
	Fixable    bool
}

// issueJSON is the flat wire record consumed by the reporting layer.
// rule_id and suggestion serialize as null when absent, not as "".
type issueJSON struct {
	File       string    `json:"file"`
	Line       int       `json:"line"`
	Column     int       `json:"column"`
	Severity   Severity  `json:"severity"`
	Type       IssueType `json:"type"`
	Message    string    `json:"message"`
	RuleID     *string   `json:"rule_id"`
	Suggestion *string   `json:"suggestion"`
	Fixable    bool      `json:"fixable"`
}

func (i Issue) MarshalJSON() ([]byte, error) {
	w := issueJSON{
		File:     i.File,
		Line:     i.Line,
		Column:   i.Column,
		Severity: i.Severity,
		Type:     i.Type,
		Message:  i.Message,
		Fixable:  i.Fixable,
	}
	if i.RuleID != "" {
		w.RuleID = &i.RuleID
	}
	if i.Suggestion != "" {
		w.Suggestion = &i.Suggestion
	}
	return json.Marshal(w)
}

func (i *Issue) UnmarshalJSON(data []byte) error {
	var w issueJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*i = Issue{
		File:     w.File,
		Line:     w.Line,
		Column:   w.Column,
		Severity: w.Severity,
		Type:     w.Type,
		Message:  w.Message,
		Fixable:  w.Fixable,
	}
	if w.RuleID != nil {
		i.RuleID = *w.RuleID
	}
	if w.Suggestion != nil {
		i.Suggestion = *w.Suggestion
	}
	return nil
}

// ScanResult aggregates every issue from one run. The aggregator fills it
// once; the reporting layer reads it, nothing writes to it afterwards.
type ScanResult struct {
	Timestamp         time.Time
	FilesScanned      int
	IssuesFound       int
	IssuesBySeverity  map[Severity]int
	IssuesByType      map[IssueType]int
	CriticalIssues    []Issue // emission order
	AutoFixableIssues []Issue // emission order; issues may be in both subsets
	Issues            []Issue
}

// NewScanResult returns an empty result stamped with the run start time.
func NewScanResult(start time.Time) *ScanResult {
	return &ScanResult{
		Timestamp:        start,
		IssuesBySeverity: make(map[Severity]int),
		IssuesByType:     make(map[IssueType]int),
	}
}

// HasCriticalIssues reports the gate signal: blocking iff at least one
// critical issue was found.
func (r *ScanResult) HasCriticalIssues() bool {
	return len(r.CriticalIssues) > 0
}

type summaryJSON struct {
	FilesScanned     int               `json:"files_scanned"`
	TotalIssues      int               `json:"total_issues"`
	BySeverity       map[Severity]int  `json:"by_severity"`
	ByType           map[IssueType]int `json:"by_type"`
	CriticalCount    int               `json:"critical_count"`
	AutoFixableCount int               `json:"auto_fixable_count"`
}

type scanResultJSON struct {
	Timestamp         string      `json:"timestamp"`
	Summary           summaryJSON `json:"summary"`
	CriticalIssues    []Issue     `json:"critical_issues"`
	AutoFixableIssues []Issue     `json:"auto_fixable_issues"`
	AllIssues         []Issue     `json:"all_issues"`
}

// MarshalJSON emits the persisted result schema. Empty collections stay []
// and {} on the wire so downstream consumers never see null.
func (r *ScanResult) MarshalJSON() ([]byte, error) {
	w := scanResultJSON{
		Timestamp: r.Timestamp.Format(time.RFC3339),
		Summary: summaryJSON{
			FilesScanned:     r.FilesScanned,
			TotalIssues:      r.IssuesFound,
			BySeverity:       r.IssuesBySeverity,
			ByType:           r.IssuesByType,
			CriticalCount:    len(r.CriticalIssues),
			AutoFixableCount: len(r.AutoFixableIssues),
		},
		CriticalIssues:    r.CriticalIssues,
		AutoFixableIssues: r.AutoFixableIssues,
		AllIssues:         r.Issues,
	}
	if w.Summary.BySeverity == nil {
		w.Summary.BySeverity = map[Severity]int{}
	}
	if w.Summary.ByType == nil {
		w.Summary.ByType = map[IssueType]int{}
	}
	if w.CriticalIssues == nil {
		w.CriticalIssues = []Issue{}
	}
	if w.AutoFixableIssues == nil {
		w.AutoFixableIssues = []Issue{}
	}
	if w.AllIssues == nil {
		w.AllIssues = []Issue{}
	}
	return json.Marshal(w)
}

func (r *ScanResult) UnmarshalJSON(data []byte) error {
	var w scanResultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	ts, err := time.Parse(time.RFC3339, w.Timestamp)
	if err != nil {
		return err
	}
	*r = ScanResult{
		Timestamp:         ts,
		FilesScanned:      w.Summary.FilesScanned,
		IssuesFound:       w.Summary.TotalIssues,
		IssuesBySeverity:  w.Summary.BySeverity,
		IssuesByType:      w.Summary.ByType,
		CriticalIssues:    w.CriticalIssues,
		AutoFixableIssues: w.AutoFixableIssues,
		Issues:            w.AllIssues,
	}
	if r.IssuesBySeverity == nil {
		r.IssuesBySeverity = make(map[Severity]int)
	}
	if r.IssuesByType == nil {
		r.IssuesByType = make(map[IssueType]int)
	}
	return nil
}
