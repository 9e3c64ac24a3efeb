package pipeline

import (
	"fmt"
	"os"

	"packlens/internal"
	"packlens/internal/extract"
	"packlens/internal/techpack"
)

// AnalyzeFile runs the full analysis over a single document on disk.
// An unreadable or unparseable document is logged and yields the empty
// skeleton rather than an error: all seven sections present and empty,
// no components, blank base information.
func AnalyzeFile(path string) internal.Envelope {
	analyzer := techpack.NewAnalyzer(nil)

	lines, err := extract.LinesFromFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "document read failed: %v\n", err)
		return analyzer.Analyze(nil)
	}
	return analyzer.Analyze(lines)
}
