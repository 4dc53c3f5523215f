package check

import (
	"fmt"

	"github.com/olimci/depcat/pkg/diagnostic"
	"github.com/olimci/depcat/pkg/manifest"
	"github.com/olimci/depcat/pkg/semver"
)

// Lint reports manifest versions that are not semantic versions. Such
// versions are legal but cannot be compared or range-checked. It returns the
// number of findings.
func Lint(m *manifest.Manifest, sink diagnostic.Sink) int {
	n := 0
	for _, r := range m.Records() {
		if semver.Valid(r.Version) {
			continue
		}
		n++
		sink.Report(diagnostic.Diagnostic{
			Level:   diagnostic.LevelInfo,
			Subject: r.Coordinate().String(),
			Message: fmt.Sprintf("version %q is not a semantic version", r.Version),
		})
	}
	return n
}
