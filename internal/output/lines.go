package output

import (
	"fmt"
	"io"

	"github.com/pankaj-dahiya-devops/kaudit/internal/models"
)

// SolutionPrefix starts the line rendered for a finding's Recommendation.
const SolutionPrefix = "Solution: "

// Lines flattens findings into the printed line sequence: each finding's
// Explanation, followed by a "Solution: ..." line when it carries a
// Recommendation. Order is preserved.
func Lines(findings []models.Finding) []string {
	lines := make([]string, 0, len(findings)*2)
	for _, f := range findings {
		lines = append(lines, f.Explanation)
		if f.Recommendation != "" {
			lines = append(lines, SolutionPrefix+f.Recommendation)
		}
	}
	return lines
}

// RenderLines writes one line per entry of Lines(findings) to w.
// An empty findings slice writes nothing.
func RenderLines(w io.Writer, findings []models.Finding) error {
	for _, line := range Lines(findings) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write findings: %w", err)
		}
	}
	return nil
}
