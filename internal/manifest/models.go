package manifest

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// Well-known kinds that carry a typed variant in Document.
const (
	KindDeployment = "Deployment"
	KindService    = "Service"
)

// Document is one parsed object from a multi-document manifest.
// It is a tagged variant: Kind selects which of Deployment or Service is set.
// Documents of any other kind carry neither and are only visible through Kind.
type Document struct {
	// Index is the zero-based position of the document in the input,
	// counting only non-empty documents.
	Index int

	// Kind is the object kind (e.g. "Deployment", "Service", "ClusterRole").
	Kind string

	// Name is metadata.name. Empty when the document does not set it.
	Name string

	// Deployment is set only when Kind == KindDeployment.
	Deployment *Deployment

	// Service is set only when Kind == KindService.
	Service *Service
}

// Deployment holds the parts of an apps/v1 Deployment the auditor inspects.
type Deployment struct {
	// Containers is spec.template.spec.containers in declaration order.
	Containers []Container
}

// Container holds a single pod-template container.
// Pointer fields are nil only when the key is absent from the manifest. A key
// that is present is never nil, even when its value is null, empty, or does
// not match the Kubernetes schema; the value is then the zero value.
type Container struct {
	// Name is the container name.
	Name string

	// Ports lists the declared container ports in order. Nil when absent.
	Ports []ContainerPort

	// Resources is the container's requests/limits block.
	Resources *corev1.ResourceRequirements

	// LivenessProbe is the declared liveness probe.
	LivenessProbe *corev1.Probe

	// ReadinessProbe is the declared readiness probe.
	ReadinessProbe *corev1.Probe
}

// ContainerPort is one entry of a container's ports list.
type ContainerPort struct {
	Name          string
	ContainerPort int32
	Protocol      corev1.Protocol
}

// Service holds the parts of a core/v1 Service the auditor inspects.
type Service struct {
	// Type is spec.type (e.g. "ClusterIP", "NodePort", "LoadBalancer").
	Type corev1.ServiceType

	// Ports lists spec.ports in declaration order.
	Ports []ServicePort
}

// ServicePort maps a Service port to a target port on the selected pods.
type ServicePort struct {
	Name string
	Port int32

	// TargetPort is either a number or a named container port.
	TargetPort intstr.IntOrString
}
