package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pankaj-dahiya-devops/kaudit/internal/manifest"
	"github.com/pankaj-dahiya-devops/kaudit/internal/models"
	"github.com/pankaj-dahiya-devops/kaudit/internal/rules"
)

// ManifestEngine audits a static Kubernetes manifest.
// It never contacts a cluster; the manifest is the only input.
type ManifestEngine struct {
	registry rules.RuleRegistry
	logger   *slog.Logger
}

// NewManifestEngine constructs a ManifestEngine evaluating the rules in
// registry. A nil logger discards all log output.
func NewManifestEngine(registry rules.RuleRegistry, logger *slog.Logger) *ManifestEngine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ManifestEngine{
		registry: registry,
		logger:   logger,
	}
}

// Audit evaluates every registered rule against docs and returns the findings
// in evaluation order. It does not modify docs, so repeated calls on the same
// input return identical results.
func (e *ManifestEngine) Audit(docs []manifest.Document) []models.Finding {
	findings := e.registry.EvaluateAll(docs)

	if e.logger.Enabled(context.Background(), slog.LevelDebug) {
		perRule := make(map[string]int, len(e.registry.All()))
		for _, f := range findings {
			perRule[f.RuleID]++
		}
		for _, r := range e.registry.All() {
			e.logger.Debug("rule evaluated", "rule_id", r.ID(), "findings", perRule[r.ID()])
		}
	}
	return findings
}

// RunAudit implements Engine. It reads the manifest selected by opts, parses
// it, evaluates all registered rules and returns the report.
//
// Parsing is fail-fast: a manifest with any missing required field yields an
// error and no findings.
func (e *ManifestEngine) RunAudit(ctx context.Context, opts AuditOptions) (*models.AuditReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, data, err := readManifest(opts)
	if err != nil {
		return nil, err
	}

	docs, err := manifest.NewDecoder(e.logger).ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", source, err)
	}
	e.logger.Debug("manifest parsed", "source", source, "documents", len(docs))

	findings := e.Audit(docs)
	e.logger.Debug("audit complete", "source", source, "findings", len(findings))

	return &models.AuditReport{
		Source:    source,
		Documents: len(docs),
		Summary:   computeSummary(findings),
		Findings:  findings,
	}, nil
}

// readManifest returns the source label and raw bytes selected by opts.
func readManifest(opts AuditOptions) (string, []byte, error) {
	switch opts.Path {
	case "":
		return SourceEmbedded, manifest.Default(), nil
	case SourceStdin:
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", nil, fmt.Errorf("read manifest from stdin: %w", err)
		}
		return SourceStdin, data, nil
	default:
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return "", nil, fmt.Errorf("read manifest %q: %w", opts.Path, err)
		}
		return opts.Path, data, nil
	}
}

// computeSummary counts findings per severity.
func computeSummary(findings []models.Finding) models.AuditSummary {
	var s models.AuditSummary
	s.TotalFindings = len(findings)
	for _, f := range findings {
		switch f.Severity {
		case models.SeverityCritical:
			s.CriticalFindings++
		case models.SeverityHigh:
			s.HighFindings++
		case models.SeverityMedium:
			s.MediumFindings++
		case models.SeverityLow:
			s.LowFindings++
		case models.SeverityInfo:
			s.InfoFindings++
		}
	}
	return s
}
