package rules

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"

	"github.com/pankaj-dahiya-devops/kaudit/internal/models"
)

// ── K8S_SERVICE_TYPE ─────────────────────────────────────────────────────────

// K8SServiceTypeRule reports the exposure type of every Service. A
// LoadBalancer Service gets an informational finding; any other type gets a
// finding naming the actual type and recommending LoadBalancer.
type K8SServiceTypeRule struct{}

func (r K8SServiceTypeRule) ID() string   { return "K8S_SERVICE_TYPE" }
func (r K8SServiceTypeRule) Name() string { return "Service Type Check" }
func (r K8SServiceTypeRule) Scope() Scope { return ScopeDocument }

func (r K8SServiceTypeRule) Evaluate(ctx RuleContext) []models.Finding {
	if ctx.Document == nil || ctx.Document.Service == nil {
		return nil
	}
	doc := ctx.Document
	f := models.Finding{
		ID:            fmt.Sprintf("%s:%d/%s", r.ID(), doc.Index, doc.Name),
		RuleID:        r.ID(),
		ResourceKind:  models.ResourceK8sService,
		ResourceName:  doc.Name,
		DocumentIndex: doc.Index,
	}
	if doc.Service.Type == corev1.ServiceTypeLoadBalancer {
		f.Severity = models.SeverityInfo
		f.Explanation = "Service type is LoadBalancer, which provides an external load-balanced IP."
		return []models.Finding{f}
	}
	f.Severity = models.SeverityLow
	f.Explanation = fmt.Sprintf(
		"Service '%s' does not use a LoadBalancer; it uses %s type instead.",
		doc.Name, doc.Service.Type,
	)
	f.Recommendation = "Change the service type to 'LoadBalancer' if external access is needed with load balancing."
	return []models.Finding{f}
}

// ── K8S_SERVICE_PORT_MAPPING ─────────────────────────────────────────────────

// K8SServicePortMappingRule reports every port mapping of a Service in
// declaration order.
type K8SServicePortMappingRule struct{}

func (r K8SServicePortMappingRule) ID() string   { return "K8S_SERVICE_PORT_MAPPING" }
func (r K8SServicePortMappingRule) Name() string { return "Service Port Mapping" }
func (r K8SServicePortMappingRule) Scope() Scope { return ScopeDocument }

func (r K8SServicePortMappingRule) Evaluate(ctx RuleContext) []models.Finding {
	if ctx.Document == nil || ctx.Document.Service == nil {
		return nil
	}
	doc := ctx.Document
	var findings []models.Finding
	for _, p := range doc.Service.Ports {
		findings = append(findings, models.Finding{
			ID:            fmt.Sprintf("%s:%d/%s/%d", r.ID(), doc.Index, doc.Name, p.Port),
			RuleID:        r.ID(),
			ResourceKind:  models.ResourceK8sService,
			ResourceName:  doc.Name,
			DocumentIndex: doc.Index,
			Severity:      models.SeverityInfo,
			Explanation:   fmt.Sprintf("Service maps port %d to target port %s.", p.Port, p.TargetPort.String()),
		})
	}
	return findings
}
