// Package kubernetes_manifest provides the static manifest audit rule pack.
// It groups the container, Service and RBAC checks into a single
// registration call.
package kubernetes_manifest

import "github.com/pankaj-dahiya-devops/kaudit/internal/rules"

// New returns the manifest audit rules in evaluation order. The order within
// each scope fixes the order of the rendered findings, so it must not change.
func New() []rules.Rule {
	return []rules.Rule{
		// container scope
		rules.K8SContainerPortExposedRule{},      // K8S_CONTAINER_PORT_EXPOSED
		rules.K8SContainerNoResourcesRule{},      // K8S_CONTAINER_NO_RESOURCES
		rules.K8SContainerNoLivenessProbeRule{},  // K8S_CONTAINER_NO_LIVENESS_PROBE
		rules.K8SContainerNoReadinessProbeRule{}, // K8S_CONTAINER_NO_READINESS_PROBE

		// document scope
		rules.K8SServiceTypeRule{},        // K8S_SERVICE_TYPE
		rules.K8SServicePortMappingRule{}, // K8S_SERVICE_PORT_MAPPING

		// manifest scope
		rules.K8SRBACNotDefinedRule{}, // K8S_RBAC_NOT_DEFINED
	}
}
