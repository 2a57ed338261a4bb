package models

// Severity represents the impact level of a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// ResourceKind identifies the kind of manifest object a finding refers to.
type ResourceKind string

const (
	ResourceK8sDeployment ResourceKind = "Deployment"
	ResourceK8sService    ResourceKind = "Service"

	// ResourceK8sManifest marks findings about the manifest as a whole
	// rather than a single object (e.g. missing RBAC objects).
	ResourceK8sManifest ResourceKind = "Manifest"
)

// Finding is a single observation produced by the rule engine.
// It is the atomic output unit of an audit.
//
// A finding renders as its Explanation line followed, when Recommendation is
// non-empty, by a "Solution: <Recommendation>" line.
type Finding struct {
	ID           string       `json:"id"`
	RuleID       string       `json:"rule_id"`
	ResourceKind ResourceKind `json:"resource_kind"`
	ResourceName string       `json:"resource_name,omitempty"`

	// Container is set for container-level findings inside a Deployment.
	Container string `json:"container,omitempty"`

	// DocumentIndex is the position of the source document; -1 for
	// manifest-level findings.
	DocumentIndex  int      `json:"document_index"`
	Severity       Severity `json:"severity"`
	Explanation    string   `json:"explanation"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// AuditSummary aggregates counts across all findings.
type AuditSummary struct {
	TotalFindings    int `json:"total_findings"`
	CriticalFindings int `json:"critical_findings"`
	HighFindings     int `json:"high_findings"`
	MediumFindings   int `json:"medium_findings"`
	LowFindings      int `json:"low_findings"`
	InfoFindings     int `json:"info_findings"`
}

// AuditReport is the top-level output of a manifest audit run.
type AuditReport struct {
	// Source describes where the manifest came from: a file path, "-" for
	// stdin, or "embedded".
	Source string `json:"source"`

	// Documents is the number of non-empty documents audited.
	Documents int          `json:"documents"`
	Summary   AuditSummary `json:"summary"`

	// Findings are in evaluation order; callers must not re-sort them.
	Findings []Finding `json:"findings"`
}
