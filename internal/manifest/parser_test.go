package manifest_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/pankaj-dahiya-devops/kaudit/internal/manifest"
)

// ── Default manifest ─────────────────────────────────────────────────────────

func TestParse_DefaultManifest(t *testing.T) {
	docs, err := manifest.ParseBytes(manifest.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []manifest.Document{
		{
			Index: 0,
			Kind:  manifest.KindDeployment,
			Name:  "myapp",
			Deployment: &manifest.Deployment{
				Containers: []manifest.Container{
					{
						Name:  "myapp",
						Ports: []manifest.ContainerPort{{ContainerPort: 3000}},
					},
				},
			},
		},
		{
			Index: 1,
			Kind:  manifest.KindService,
			Name:  "myapp",
			Service: &manifest.Service{
				Type: corev1.ServiceTypeNodePort,
				Ports: []manifest.ServicePort{
					{Name: "app-myapp", Port: 3000, TargetPort: intstr.FromInt32(3000)},
				},
			},
		},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("parsed documents mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_ReturnsCopy(t *testing.T) {
	a := manifest.Default()
	a[0] = '#'
	b := manifest.Default()
	if b[0] == '#' {
		t.Fatal("Default() must not expose the embedded buffer")
	}
}

// ── Optional container fields ────────────────────────────────────────────────

func TestParse_ContainerOptionalFieldsPresent(t *testing.T) {
	in := `
kind: Deployment
metadata:
  name: web
spec:
  template:
    spec:
      containers:
      - name: web
        resources:
          limits:
            cpu: 500m
            memory: 128Mi
        livenessProbe:
          httpGet:
            path: /healthz
            port: 8080
        readinessProbe:
          tcpSocket:
            port: http
`
	docs, err := manifest.ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := docs[0].Deployment.Containers[0]
	if c.Resources == nil {
		t.Error("Resources must be non-nil when declared")
	} else if got := c.Resources.Limits.Cpu().MilliValue(); got != 500 {
		t.Errorf("cpu limit = %dm; want 500m", got)
	}
	if c.LivenessProbe == nil || c.LivenessProbe.HTTPGet == nil {
		t.Error("LivenessProbe.HTTPGet must be decoded")
	}
	if c.ReadinessProbe == nil || c.ReadinessProbe.TCPSocket == nil {
		t.Error("ReadinessProbe.TCPSocket must be decoded")
	}
	if c.Ports != nil {
		t.Errorf("Ports must be nil when absent; got %v", c.Ports)
	}
}

func TestParse_EmptyResourcesCountsAsPresent(t *testing.T) {
	in := `
kind: Deployment
spec:
  template:
    spec:
      containers:
      - name: web
        resources: {}
`
	docs, err := manifest.ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].Deployment.Containers[0].Resources == nil {
		t.Error("resources: {} must be treated as present")
	}
}

func TestParse_NullValuedKeysCountAsPresent(t *testing.T) {
	in := `
kind: Deployment
spec:
  template:
    spec:
      containers:
      - name: web
        resources:
        livenessProbe: null
        readinessProbe: ~
`
	docs, err := manifest.ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := docs[0].Deployment.Containers[0]
	if c.Resources == nil {
		t.Error("resources with a null value must be treated as present")
	}
	if c.LivenessProbe == nil {
		t.Error("livenessProbe: null must be treated as present")
	}
	if c.ReadinessProbe == nil {
		t.Error("readinessProbe: ~ must be treated as present")
	}
}

func TestParse_UndecodableOptionalFieldsArePresent(t *testing.T) {
	in := `
kind: Deployment
spec:
  template:
    spec:
      containers:
      - name: web
        resources:
          limits:
            cpu: lots
        livenessProbe:
          exec:
            command: "true"
        readinessProbe:
          tcpSocket:
            port: 8080
`
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	docs, err := manifest.NewDecoder(logger).ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := docs[0].Deployment.Containers[0]
	if c.Resources == nil || len(c.Resources.Limits) != 0 {
		t.Errorf("Resources = %+v; want present and empty", c.Resources)
	}
	if c.LivenessProbe == nil || c.LivenessProbe.Exec != nil {
		t.Errorf("LivenessProbe = %+v; want present and empty", c.LivenessProbe)
	}
	if c.ReadinessProbe == nil || c.ReadinessProbe.TCPSocket == nil {
		t.Error("well-formed readinessProbe must still be decoded")
	}

	out := buf.String()
	for _, want := range []string{
		"field=spec.template.spec.containers[0].resources",
		"field=spec.template.spec.containers[0].livenessProbe",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q; got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "readinessProbe") {
		t.Errorf("readinessProbe decoded cleanly and must not be logged; got:\n%s", out)
	}
}

func TestParse_LoadBalancerServiceWithoutName(t *testing.T) {
	in := `
kind: Service
spec:
  type: LoadBalancer
  ports:
  - port: 443
    targetPort: 8443
`
	docs, err := manifest.ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].Name != "" || docs[0].Service == nil {
		t.Errorf("document = %+v; want unnamed Service variant", docs[0])
	}
}

func TestParse_NamedTargetPort(t *testing.T) {
	in := `
kind: Service
metadata:
  name: api
spec:
  type: ClusterIP
  ports:
  - port: 80
    targetPort: http
`
	docs, err := manifest.ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := docs[0].Service.Ports[0].TargetPort.String(); got != "http" {
		t.Errorf("TargetPort = %q; want http", got)
	}
}

// ── Document handling ────────────────────────────────────────────────────────

func TestParse_SkipsEmptyDocuments(t *testing.T) {
	in := `---
kind: ConfigMap
metadata:
  name: a
---
# only a comment
---
kind: ClusterRole
metadata:
  name: b
---
`
	docs, err := manifest.ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents; got %d", len(docs))
	}
	if docs[1].Kind != "ClusterRole" || docs[1].Index != 1 {
		t.Errorf("second document = %s/%d; want ClusterRole/1", docs[1].Kind, docs[1].Index)
	}
}

func TestParse_OtherKindHasNoVariant(t *testing.T) {
	docs, err := manifest.ParseBytes([]byte("kind: ConfigMap\nmetadata:\n  name: cfg\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].Deployment != nil || docs[0].Service != nil {
		t.Error("unknown kinds must not populate a typed variant")
	}
}

func TestParse_Empty(t *testing.T) {
	docs, err := manifest.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents; got %d", len(docs))
	}
}

func TestParse_InvalidDocument(t *testing.T) {
	_, err := manifest.ParseBytes([]byte("- just\n- a list\n"))
	if !errors.Is(err, manifest.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument; got %v", err)
	}
}

// ── Required fields ──────────────────────────────────────────────────────────

func TestParse_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		index int
		field string
	}{
		{
			name:  "kind",
			in:    "metadata:\n  name: x\n",
			field: "kind",
		},
		{
			name:  "deployment spec",
			in:    "kind: Deployment\n",
			field: "spec",
		},
		{
			name:  "deployment containers",
			in:    "kind: Deployment\nspec:\n  template:\n    spec: {}\n",
			field: "spec.template.spec.containers",
		},
		{
			name:  "container name",
			in:    "kind: Deployment\nspec:\n  template:\n    spec:\n      containers:\n      - image: nginx\n",
			field: "spec.template.spec.containers[0].name",
		},
		{
			name:  "container port number",
			in:    "kind: Deployment\nspec:\n  template:\n    spec:\n      containers:\n      - name: a\n        ports:\n        - name: http\n",
			field: "spec.template.spec.containers[0].ports[0].containerPort",
		},
		{
			name:  "service type",
			in:    "kind: Service\nmetadata:\n  name: s\nspec:\n  ports: []\n",
			field: "spec.type",
		},
		{
			name:  "service ports",
			in:    "kind: Service\nmetadata:\n  name: s\nspec:\n  type: ClusterIP\n",
			field: "spec.ports",
		},
		{
			name:  "service target port",
			in:    "kind: Service\nmetadata:\n  name: s\nspec:\n  type: ClusterIP\n  ports:\n  - port: 80\n",
			field: "spec.ports[0].targetPort",
		},
		{
			name:  "service name",
			in:    "kind: Service\nspec:\n  type: ClusterIP\n  ports: []\n",
			field: "metadata.name",
		},
		{
			name:  "second document",
			in:    "kind: ConfigMap\n---\nkind: Service\nmetadata:\n  name: s\n",
			index: 1,
			field: "spec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := manifest.ParseBytes([]byte(tt.in))
			if !errors.Is(err, manifest.ErrMissingField) {
				t.Fatalf("expected ErrMissingField; got %v", err)
			}
			if docs != nil {
				t.Errorf("expected no documents on error; got %d", len(docs))
			}
			var mfe *manifest.MissingFieldError
			if !errors.As(err, &mfe) {
				t.Fatalf("expected *MissingFieldError; got %T", err)
			}
			if mfe.Field != tt.field {
				t.Errorf("Field = %q; want %q", mfe.Field, tt.field)
			}
			if mfe.Index != tt.index {
				t.Errorf("Index = %d; want %d", mfe.Index, tt.index)
			}
		})
	}
}

func TestMissingFieldError_Message(t *testing.T) {
	err := &manifest.MissingFieldError{Index: 2, Kind: "Service", Field: "spec.type"}
	want := "document 2 (Service): missing required field spec.type"
	if err.Error() != want {
		t.Errorf("Error() = %q; want %q", err.Error(), want)
	}
}
