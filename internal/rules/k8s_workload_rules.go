package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/kaudit/internal/models"
)

// containerFinding fills the fields shared by every container-level finding.
func containerFinding(ruleID string, ctx RuleContext, suffix string) models.Finding {
	id := fmt.Sprintf("%s:%d/%s", ruleID, ctx.Document.Index, ctx.Container.Name)
	if suffix != "" {
		id += "/" + suffix
	}
	return models.Finding{
		ID:            id,
		RuleID:        ruleID,
		ResourceKind:  models.ResourceK8sDeployment,
		ResourceName:  ctx.Document.Name,
		Container:     ctx.Container.Name,
		DocumentIndex: ctx.Document.Index,
	}
}

// ── K8S_CONTAINER_PORT_EXPOSED ───────────────────────────────────────────────

// K8SContainerPortExposedRule reports every port a Deployment container
// declares, one finding per port in declaration order.
type K8SContainerPortExposedRule struct{}

func (r K8SContainerPortExposedRule) ID() string   { return "K8S_CONTAINER_PORT_EXPOSED" }
func (r K8SContainerPortExposedRule) Name() string { return "Container Exposes Port" }
func (r K8SContainerPortExposedRule) Scope() Scope { return ScopeContainer }

func (r K8SContainerPortExposedRule) Evaluate(ctx RuleContext) []models.Finding {
	if ctx.Document == nil || ctx.Container == nil {
		return nil
	}
	var findings []models.Finding
	for _, p := range ctx.Container.Ports {
		f := containerFinding(r.ID(), ctx, fmt.Sprint(p.ContainerPort))
		f.Severity = models.SeverityInfo
		f.Explanation = fmt.Sprintf("Container '%s' exposes port %d.", ctx.Container.Name, p.ContainerPort)
		findings = append(findings, f)
	}
	return findings
}

// ── K8S_CONTAINER_NO_RESOURCES ───────────────────────────────────────────────

// K8SContainerNoResourcesRule fires when a container declares no resources
// block at all. Without requests and limits the scheduler cannot place the
// pod accurately and the container may consume unbounded CPU and memory.
type K8SContainerNoResourcesRule struct{}

func (r K8SContainerNoResourcesRule) ID() string   { return "K8S_CONTAINER_NO_RESOURCES" }
func (r K8SContainerNoResourcesRule) Name() string { return "Container Missing Resource Limits" }
func (r K8SContainerNoResourcesRule) Scope() Scope { return ScopeContainer }

func (r K8SContainerNoResourcesRule) Evaluate(ctx RuleContext) []models.Finding {
	if ctx.Document == nil || ctx.Container == nil {
		return nil
	}
	if ctx.Container.Resources != nil {
		return nil
	}
	f := containerFinding(r.ID(), ctx, "")
	f.Severity = models.SeverityMedium
	f.Explanation = fmt.Sprintf("Container '%s' does not have resource limits set.", ctx.Container.Name)
	f.Recommendation = "Define CPU and memory requests and limits in the container spec."
	return []models.Finding{f}
}

// ── K8S_CONTAINER_NO_LIVENESS_PROBE ──────────────────────────────────────────

// K8SContainerNoLivenessProbeRule fires when a container has no livenessProbe.
type K8SContainerNoLivenessProbeRule struct{}

func (r K8SContainerNoLivenessProbeRule) ID() string   { return "K8S_CONTAINER_NO_LIVENESS_PROBE" }
func (r K8SContainerNoLivenessProbeRule) Name() string { return "Container Missing Liveness Probe" }
func (r K8SContainerNoLivenessProbeRule) Scope() Scope { return ScopeContainer }

func (r K8SContainerNoLivenessProbeRule) Evaluate(ctx RuleContext) []models.Finding {
	if ctx.Document == nil || ctx.Container == nil {
		return nil
	}
	if ctx.Container.LivenessProbe != nil {
		return nil
	}
	f := containerFinding(r.ID(), ctx, "")
	f.Severity = models.SeverityLow
	f.Explanation = fmt.Sprintf("No livenessProbe set for '%s'.", ctx.Container.Name)
	f.Recommendation = "Add a livenessProbe to the container spec to check the health of the application."
	return []models.Finding{f}
}

// ── K8S_CONTAINER_NO_READINESS_PROBE ─────────────────────────────────────────

// K8SContainerNoReadinessProbeRule fires when a container has no readinessProbe,
// so it may receive traffic before it is able to serve it.
type K8SContainerNoReadinessProbeRule struct{}

func (r K8SContainerNoReadinessProbeRule) ID() string   { return "K8S_CONTAINER_NO_READINESS_PROBE" }
func (r K8SContainerNoReadinessProbeRule) Name() string { return "Container Missing Readiness Probe" }
func (r K8SContainerNoReadinessProbeRule) Scope() Scope { return ScopeContainer }

func (r K8SContainerNoReadinessProbeRule) Evaluate(ctx RuleContext) []models.Finding {
	if ctx.Document == nil || ctx.Container == nil {
		return nil
	}
	if ctx.Container.ReadinessProbe != nil {
		return nil
	}
	f := containerFinding(r.ID(), ctx, "")
	f.Severity = models.SeverityLow
	f.Explanation = fmt.Sprintf("No readinessProbe set for '%s'.", ctx.Container.Name)
	f.Recommendation = "Add a readinessProbe to ensure the container does not receive traffic before it is ready."
	return []models.Finding{f}
}
