package rules

import (
	"github.com/pankaj-dahiya-devops/kaudit/internal/manifest"
	"github.com/pankaj-dahiya-devops/kaudit/internal/models"
)

// Scope determines at which level of the manifest a rule is evaluated.
type Scope int

const (
	// ScopeContainer rules run once per container of every Deployment.
	// RuleContext.Document and RuleContext.Container are both set.
	ScopeContainer Scope = iota

	// ScopeDocument rules run once per document. RuleContext.Document is set.
	ScopeDocument

	// ScopeManifest rules run once, after every document has been evaluated.
	ScopeManifest
)

// RuleContext carries the data for a single rule invocation.
// It is the sole input to Rule.Evaluate; rules must never read files,
// make network calls or keep state between invocations.
type RuleContext struct {
	// Documents is the full, ordered set of parsed documents.
	Documents []manifest.Document

	// Document is the document under evaluation. Nil for ScopeManifest.
	Document *manifest.Document

	// Container is the container under evaluation. Nil unless ScopeContainer.
	Container *manifest.Container
}

// Rule is a single deterministic manifest check.
// Rules must be stateless and safe to call repeatedly on the same input.
type Rule interface {
	// ID returns the unique, stable identifier for this rule (e.g. "K8S_CONTAINER_NO_RESOURCES").
	ID() string

	// Name returns a short human-readable rule name.
	Name() string

	// Scope reports the level at which the rule is evaluated.
	Scope() Scope

	// Evaluate inspects the provided context and returns zero or more findings.
	// An empty slice means no issue was detected.
	Evaluate(ctx RuleContext) []models.Finding
}

// RuleRegistry manages the set of active rules and drives evaluation.
type RuleRegistry interface {
	// Register adds a rule to the registry. Panics on duplicate ID.
	Register(rule Rule)

	// All returns all registered rules in registration order.
	All() []Rule

	// EvaluateAll walks docs and returns the findings of every registered rule.
	EvaluateAll(docs []manifest.Document) []models.Finding
}
