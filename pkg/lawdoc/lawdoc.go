// Package lawdoc loads the static law corpus the analysis prompt is
// grounded on.
package lawdoc

import (
	"os"

	"go.uber.org/zap"
)

// Load reads the law document at path. A missing or unreadable file
// degrades to an empty corpus: the analysis then runs without legal
// grounding text, which may lower answer quality but must not stop the
// pipeline.
func Load(path string, logger *zap.Logger) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("law document unavailable, proceeding without corpus",
			zap.String("path", path),
			zap.Error(err))
		return ""
	}
	return string(data)
}
