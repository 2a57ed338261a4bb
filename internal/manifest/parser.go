package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	"sigs.k8s.io/yaml"
)

// The *Wire types mirror the manifest layout with pointer fields so that an
// absent key can be told apart from a zero value. Fields the auditor judges
// only by presence are kept raw: a json.RawMessage is set even for null.
// They never leave this file.

type documentHeader struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        metav1.ObjectMeta `json:"metadata"`
}

type deploymentWire struct {
	Spec *struct {
		Template *struct {
			Spec *podSpecWire `json:"spec"`
		} `json:"template"`
	} `json:"spec"`
}

type podSpecWire struct {
	Containers []containerWire `json:"containers"`
}

type containerWire struct {
	Name           *string             `json:"name"`
	Ports          []containerPortWire `json:"ports"`
	Resources      json.RawMessage     `json:"resources"`
	LivenessProbe  json.RawMessage     `json:"livenessProbe"`
	ReadinessProbe json.RawMessage     `json:"readinessProbe"`
}

type containerPortWire struct {
	Name          string          `json:"name"`
	ContainerPort *int32          `json:"containerPort"`
	Protocol      corev1.Protocol `json:"protocol"`
}

type serviceWire struct {
	Spec *struct {
		Type  *corev1.ServiceType `json:"type"`
		Ports []servicePortWire   `json:"ports"`
	} `json:"spec"`
}

type servicePortWire struct {
	Name       string              `json:"name"`
	Port       *int32              `json:"port"`
	TargetPort *intstr.IntOrString `json:"targetPort"`
}

// Decoder parses manifests. Problems that do not prevent an audit, such as a
// probe whose contents do not match the Kubernetes schema, are logged at
// debug level and otherwise ignored.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder returns a Decoder logging to logger. A nil logger discards output.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Decoder{logger: logger}
}

// Parse reads a multi-document YAML (or JSON) manifest from r and returns its
// documents in input order. Empty documents (e.g. a trailing "---") are skipped.
//
// Parsing is fail-fast: the first document that cannot be decoded or that
// lacks a required field aborts the parse and no documents are returned.
func (d *Decoder) Parse(r io.Reader) ([]Document, error) {
	reader := utilyaml.NewYAMLReader(bufio.NewReader(r))

	var docs []Document
	for {
		chunk, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("split manifest: %w", err)
		}

		doc, ok, err := d.decodeDocument(len(docs), chunk)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ParseBytes is Parse over an in-memory manifest.
func (d *Decoder) ParseBytes(data []byte) ([]Document, error) {
	return d.Parse(bytes.NewReader(data))
}

// Parse decodes r with a Decoder that discards log output.
func Parse(r io.Reader) ([]Document, error) {
	return NewDecoder(nil).Parse(r)
}

// ParseBytes decodes data with a Decoder that discards log output.
func ParseBytes(data []byte) ([]Document, error) {
	return NewDecoder(nil).ParseBytes(data)
}

// decodeDocument decodes one raw document. ok is false for empty documents.
func (d *Decoder) decodeDocument(index int, chunk []byte) (Document, bool, error) {
	var header *documentHeader
	if err := yaml.Unmarshal(chunk, &header); err != nil {
		return Document{}, false, fmt.Errorf("document %d: %w: %v", index, ErrInvalidDocument, err)
	}
	if header == nil {
		return Document{}, false, nil
	}
	if header.Kind == "" {
		return Document{}, false, missingField(index, "", "kind")
	}

	doc := Document{
		Index: index,
		Kind:  header.Kind,
		Name:  header.Metadata.Name,
	}

	switch doc.Kind {
	case KindDeployment:
		dep, err := d.decodeDeployment(index, chunk)
		if err != nil {
			return Document{}, false, err
		}
		doc.Deployment = dep
	case KindService:
		s, err := decodeService(index, doc.Name, chunk)
		if err != nil {
			return Document{}, false, err
		}
		doc.Service = s
	}
	return doc, true, nil
}

func (d *Decoder) decodeDeployment(index int, chunk []byte) (*Deployment, error) {
	var w deploymentWire
	if err := yaml.Unmarshal(chunk, &w); err != nil {
		return nil, fmt.Errorf("document %d (%s): %w: %v", index, KindDeployment, ErrInvalidDocument, err)
	}

	switch {
	case w.Spec == nil:
		return nil, missingField(index, KindDeployment, "spec")
	case w.Spec.Template == nil:
		return nil, missingField(index, KindDeployment, "spec.template")
	case w.Spec.Template.Spec == nil:
		return nil, missingField(index, KindDeployment, "spec.template.spec")
	case w.Spec.Template.Spec.Containers == nil:
		return nil, missingField(index, KindDeployment, "spec.template.spec.containers")
	}

	wc := w.Spec.Template.Spec.Containers
	dep := &Deployment{Containers: make([]Container, 0, len(wc))}
	for i, c := range wc {
		path := fmt.Sprintf("spec.template.spec.containers[%d]", i)
		if c.Name == nil {
			return nil, missingField(index, KindDeployment, path+".name")
		}

		container := Container{
			Name:           *c.Name,
			Resources:      decodeOptional[corev1.ResourceRequirements](d, c.Resources, index, path+".resources"),
			LivenessProbe:  decodeOptional[corev1.Probe](d, c.LivenessProbe, index, path+".livenessProbe"),
			ReadinessProbe: decodeOptional[corev1.Probe](d, c.ReadinessProbe, index, path+".readinessProbe"),
		}
		if c.Ports != nil {
			container.Ports = make([]ContainerPort, 0, len(c.Ports))
		}
		for j, p := range c.Ports {
			if p.ContainerPort == nil {
				return nil, missingField(index, KindDeployment, fmt.Sprintf("%s.ports[%d].containerPort", path, j))
			}
			container.Ports = append(container.Ports, ContainerPort{
				Name:          p.Name,
				ContainerPort: *p.ContainerPort,
				Protocol:      p.Protocol,
			})
		}
		dep.Containers = append(dep.Containers, container)
	}
	return dep, nil
}

// decodeOptional returns nil when the key was absent. A present key always
// yields a non-nil value; null or contents that do not decode leave it zero.
func decodeOptional[T any](d *Decoder, raw json.RawMessage, index int, field string) *T {
	if len(raw) == 0 {
		return nil
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		d.logger.Debug("ignoring undecodable field", "document", index, "field", field, "error", err)
		var zero T
		*v = zero
	}
	return v
}

// decodeService requires metadata.name only when the type is not
// LoadBalancer, since only that finding names the Service.
func decodeService(index int, name string, chunk []byte) (*Service, error) {
	var w serviceWire
	if err := yaml.Unmarshal(chunk, &w); err != nil {
		return nil, fmt.Errorf("document %d (%s): %w: %v", index, KindService, ErrInvalidDocument, err)
	}

	switch {
	case w.Spec == nil:
		return nil, missingField(index, KindService, "spec")
	case w.Spec.Type == nil:
		return nil, missingField(index, KindService, "spec.type")
	case *w.Spec.Type != corev1.ServiceTypeLoadBalancer && name == "":
		return nil, missingField(index, KindService, "metadata.name")
	case w.Spec.Ports == nil:
		return nil, missingField(index, KindService, "spec.ports")
	}

	s := &Service{
		Type:  *w.Spec.Type,
		Ports: make([]ServicePort, 0, len(w.Spec.Ports)),
	}
	for i, p := range w.Spec.Ports {
		switch {
		case p.Port == nil:
			return nil, missingField(index, KindService, fmt.Sprintf("spec.ports[%d].port", i))
		case p.TargetPort == nil:
			return nil, missingField(index, KindService, fmt.Sprintf("spec.ports[%d].targetPort", i))
		}
		s.Ports = append(s.Ports, ServicePort{
			Name:       p.Name,
			Port:       *p.Port,
			TargetPort: *p.TargetPort,
		})
	}
	return s, nil
}
