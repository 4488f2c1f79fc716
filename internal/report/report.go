// Package report renders aggregated search results: a colorized console
// report and an optional plain-text report file.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/kernelgrep/internal/filelock"
	"github.com/harrison/kernelgrep/internal/pattern"
	"github.com/harrison/kernelgrep/internal/search"
)

const (
	bannerWidth  = 80
	dividerWidth = 60
)

// URLFunc maps a version directory label to its changes file URL.
type URLFunc func(dir string) string

// Reporter prints search results to a writer, highlighting matched spans
// when color output is enabled.
type Reporter struct {
	writer      io.Writer
	colorOutput bool
}

// NewReporter creates a Reporter. colorOutput controls ANSI highlighting of
// matched pattern spans.
func NewReporter(w io.Writer, colorOutput bool) *Reporter {
	return &Reporter{
		writer:      w,
		colorOutput: colorOutput,
	}
}

// Print writes the console report: a banner, overall counts, then one block
// per matched directory sorted newest first. With zero matches it prints a
// single "no matches" line instead.
func (r *Reporter) Print(results *search.ResultSet, patterns pattern.Set, changesURL URLFunc) {
	if results.Len() == 0 {
		fmt.Fprintf(r.writer, "\nNo matches found for patterns: %v\n", patterns.Raw())
		return
	}

	banner := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(r.writer, "\n%s\n", banner)
	fmt.Fprintf(r.writer, "SEARCH RESULTS for patterns: %v\n", patterns.Raw())
	fmt.Fprintf(r.writer, "%s\n", banner)
	fmt.Fprintf(r.writer, "Found %d matches in %d kernel versions\n", results.TotalMatches(), results.Len())

	highlight := func(s string) string { return s }
	versionHeading := highlight
	if r.colorOutput {
		matchColor := color.New(color.FgYellow, color.Bold)
		headingColor := color.New(color.Bold)
		highlight = func(s string) string { return matchColor.Sprint(s) }
		versionHeading = func(s string) string { return headingColor.Sprint(s) }
	}

	for _, dir := range results.Directories() {
		matches := results.Matches(dir)

		fmt.Fprintf(r.writer, "\nKernel Version: %s\n", versionHeading(dir))
		fmt.Fprintf(r.writer, "   URL: %s\n", changesURL(dir))
		fmt.Fprintf(r.writer, "   Matches: %d\n", len(matches))
		fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", dividerWidth))

		for _, m := range matches {
			fmt.Fprintf(r.writer, "   Line %d: %s\n", m.Number, patterns.Highlight(m.Line, highlight))
		}
	}

	fmt.Fprintf(r.writer, "\n%s\n", banner)
}

// PrintElapsed writes the closing timing line.
func (r *Reporter) PrintElapsed(elapsed time.Duration) {
	fmt.Fprintf(r.writer, "\nSearch completed in %.2f seconds\n", elapsed.Seconds())
}

// WriteFile renders the plain-text report (no highlighting markup) and saves
// it atomically under a file lock, so concurrent runs sharing an output path
// cannot interleave. The header records the patterns, the timestamp, and the
// run ID of the invocation.
func WriteFile(path string, results *search.ResultSet, patterns pattern.Set, runID string, generatedAt time.Time, changesURL URLFunc) error {
	var buf bytes.Buffer

	buf.WriteString("Ubuntu Kernel CHANGES Search Results\n")
	fmt.Fprintf(&buf, "Search patterns: %v\n", patterns.Raw())
	fmt.Fprintf(&buf, "Search date: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "Run ID: %s\n", runID)
	buf.WriteString(strings.Repeat("=", bannerWidth) + "\n\n")

	if results.Len() == 0 {
		buf.WriteString("No matches found.\n")
	} else {
		for _, dir := range results.Directories() {
			matches := results.Matches(dir)

			fmt.Fprintf(&buf, "Kernel Version: %s\n", dir)
			fmt.Fprintf(&buf, "URL: %s\n", changesURL(dir))
			fmt.Fprintf(&buf, "Matches: %d\n", len(matches))
			buf.WriteString(strings.Repeat("-", dividerWidth) + "\n")

			for _, m := range matches {
				fmt.Fprintf(&buf, "Line %d: %s\n", m.Number, m.Line)
			}
			buf.WriteString("\n")
		}
	}

	return filelock.LockAndWrite(path, buf.Bytes())
}
