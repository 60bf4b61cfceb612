package matrix

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"ddsmatrix/internal/color"
	"ddsmatrix/internal/config"
)

// Reporter receives progress events of a matrix run.
type Reporter interface {
	// ReportStart is called once before the first build.
	ReportStart(cfg config.MatrixConfig, runID string)
	// ReportBuild is called before the images of one base image are built.
	ReportBuild(img config.BaseImage, tag string)
	// ReportPairStart is called before a pair is started.
	ReportPairStart(p Pair, project string)
	// ReportPairResult is called after a pair has been torn down.
	ReportPairResult(result PairResult)
	// ReportSummary is called once at the end of the run, also after a fatal error.
	ReportSummary(summary Summary)
}

// consoleReporter writes human readable progress to an io.Writer.
type consoleReporter struct {
	out        io.Writer
	labelWidth int
}

// NewConsoleReporter creates a reporter printing to out.
func NewConsoleReporter(out io.Writer) Reporter {
	return &consoleReporter{out: out}
}

func (r *consoleReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

// ReportStart is called when the run begins
func (r *consoleReporter) ReportStart(cfg config.MatrixConfig, runID string) {
	r.labelWidth = 0
	for _, img := range cfg.BaseImages {
		if w := runewidth.StringWidth(img.Label); w > r.labelWidth {
			r.labelWidth = w
		}
	}

	n := len(cfg.BaseImages)
	r.printf("🧪 ddsmatrix run %s: %d base images, %d pairs (distro: %s, transport: %s)\n",
		runID, n, n*n, cfg.Distro, cfg.Transport)
	r.printf("   Waiting for %d × %q per pair, timeout %v\n", cfg.TargetMessages, cfg.Marker, cfg.Timeout)
}

// ReportBuild is called before a base image is built
func (r *consoleReporter) ReportBuild(img config.BaseImage, tag string) {
	r.printf("\n[build] %s -> %s\n", runewidth.FillRight(img.Label, r.labelWidth), tag)
}

// ReportPairStart is called before a pair is started
func (r *consoleReporter) ReportPairStart(p Pair, project string) {
	r.printf("\n=== talker: %s / listener: %s (project: %s) ===\n", p.Talker.Label, p.Listener.Label, project)
}

// ReportPairResult is called when a pair completes
func (r *consoleReporter) ReportPairResult(result PairResult) {
	r.printf("successes: %d/%d %s (%s, %v)\n",
		result.Successes, result.Target, styleStatus(result.Status()), result.Reason, color.MutedStyle.Render(formatDuration(result.Duration)))
}

// ReportSummary is called when the run ends
func (r *consoleReporter) ReportSummary(summary Summary) {
	r.printf("\n==== Summary ====\n")

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Run %s (%s)", summary.RunID, formatDuration(summary.Duration)))
	t.AppendHeader(table.Row{"#", "Talker", "Listener", "Received", "Status", "Stopped", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Talker", AutoMerge: true},
		{Name: "Received", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
	})

	for i, res := range summary.Results {
		t.AppendRow(table.Row{
			i + 1,
			res.Talker,
			res.Listener,
			fmt.Sprintf("%d/%d", res.Successes, res.Target),
			styleStatus(res.Status()),
			res.Reason.String(),
			formatDuration(res.Duration),
		})
	}

	t.AppendFooter(table.Row{
		"",
		"TOTAL",
		"",
		fmt.Sprintf("%d/%d passed", summary.Passed(), len(summary.Results)),
		"",
		"",
		"",
	})
	t.SetStyle(table.StyleLight)
	r.printf("%s\n", t.Render())

	if n := summary.Interrupted(); n > 0 {
		r.printf("\n⚠️  %d pair(s) were interrupted before the observation finished; their counts are incomplete\n", n)
	}

	switch {
	case summary.Err != nil:
		r.printf("\n💥 Run aborted after %d/%d pairs: %v\n", len(summary.Results), summary.TotalPairs, summary.Err)
	case summary.Passed() == len(summary.Results):
		r.printf("\n🎉 All %d pairs received %d/%d messages\n", len(summary.Results), summary.Target, summary.Target)
	default:
		r.printf("\n💔 %d of %d pairs did not receive every message\n", len(summary.Results)-summary.Passed(), len(summary.Results))
	}
}

func styleStatus(s Status) string {
	return color.Status(string(s))
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
