package rules

import (
	"github.com/pankaj-dahiya-devops/kaudit/internal/models"
)

// rbacKinds are the kinds whose presence counts as RBAC being defined.
var rbacKinds = map[string]struct{}{
	"Role":               {},
	"ClusterRole":        {},
	"RoleBinding":        {},
	"ClusterRoleBinding": {},
}

// ── K8S_RBAC_NOT_DEFINED ─────────────────────────────────────────────────────

// K8SRBACNotDefinedRule fires once per manifest when none of its documents is
// a Role, ClusterRole, RoleBinding or ClusterRoleBinding.
type K8SRBACNotDefinedRule struct{}

func (r K8SRBACNotDefinedRule) ID() string   { return "K8S_RBAC_NOT_DEFINED" }
func (r K8SRBACNotDefinedRule) Name() string { return "Manifest Defines No RBAC Objects" }
func (r K8SRBACNotDefinedRule) Scope() Scope { return ScopeManifest }

func (r K8SRBACNotDefinedRule) Evaluate(ctx RuleContext) []models.Finding {
	for _, doc := range ctx.Documents {
		if _, ok := rbacKinds[doc.Kind]; ok {
			return nil
		}
	}
	return []models.Finding{
		{
			ID:             r.ID(),
			RuleID:         r.ID(),
			ResourceKind:   models.ResourceK8sManifest,
			DocumentIndex:  -1,
			Severity:       models.SeverityMedium,
			Explanation:    "RBAC settings are not defined for specific user access.",
			Recommendation: "Define appropriate roles and role bindings to restrict access based on least privilege principle.",
		},
	}
}
