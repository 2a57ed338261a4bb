package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/kaudit/internal/manifest"
	"github.com/pankaj-dahiya-devops/kaudit/internal/models"
)

// DefaultRuleRegistry is a simple, ordered, in-memory registry.
// Register panics on duplicate rule IDs to catch wiring mistakes at startup.
type DefaultRuleRegistry struct {
	rules []Rule
	index map[string]struct{}
}

// NewDefaultRuleRegistry returns an empty registry ready for rule registration.
func NewDefaultRuleRegistry() *DefaultRuleRegistry {
	return &DefaultRuleRegistry{
		index: make(map[string]struct{}),
	}
}

// Register adds rule to the registry. Panics if the same ID is registered twice.
func (r *DefaultRuleRegistry) Register(rule Rule) {
	if _, exists := r.index[rule.ID()]; exists {
		panic(fmt.Sprintf("duplicate rule ID: %q", rule.ID()))
	}
	r.rules = append(r.rules, rule)
	r.index[rule.ID()] = struct{}{}
}

// All returns all registered rules in registration order.
func (r *DefaultRuleRegistry) All() []Rule {
	return r.rules
}

// EvaluateAll walks docs in input order and returns the merged findings.
//
// Evaluation order is fixed: for each document, container rules run for each
// container of a Deployment (in container order), then document rules run;
// manifest rules run once at the end. Within a scope rules run in
// registration order.
func (r *DefaultRuleRegistry) EvaluateAll(docs []manifest.Document) []models.Finding {
	var findings []models.Finding
	for i := range docs {
		doc := &docs[i]
		if doc.Deployment != nil {
			for j := range doc.Deployment.Containers {
				ctx := RuleContext{
					Documents: docs,
					Document:  doc,
					Container: &doc.Deployment.Containers[j],
				}
				findings = append(findings, r.evaluateScope(ScopeContainer, ctx)...)
			}
		}
		findings = append(findings, r.evaluateScope(ScopeDocument, RuleContext{Documents: docs, Document: doc})...)
	}
	findings = append(findings, r.evaluateScope(ScopeManifest, RuleContext{Documents: docs})...)
	return findings
}

func (r *DefaultRuleRegistry) evaluateScope(scope Scope, ctx RuleContext) []models.Finding {
	var findings []models.Finding
	for _, rule := range r.rules {
		if rule.Scope() != scope {
			continue
		}
		findings = append(findings, rule.Evaluate(ctx)...)
	}
	return findings
}
