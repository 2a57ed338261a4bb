package engine

import (
	"context"
	"io"

	"github.com/pankaj-dahiya-devops/kaudit/internal/models"
)

// Sources reported in AuditReport.Source when no file path is involved.
const (
	SourceEmbedded = "embedded"
	SourceStdin    = "-"
)

// AuditOptions configures a single audit run.
// It is the sole input to Engine.RunAudit.
type AuditOptions struct {
	// Path is the manifest file to audit. Empty selects the manifest compiled
	// into the binary; SourceStdin ("-") reads from Stdin.
	Path string

	// Stdin is read when Path is SourceStdin. Defaults to os.Stdin when nil.
	Stdin io.Reader
}

// Engine is the central orchestration interface.
// It coordinates manifest loading, parsing and rule evaluation, returning a
// fully populated AuditReport.
type Engine interface {
	RunAudit(ctx context.Context, opts AuditOptions) (*models.AuditReport, error)
}
