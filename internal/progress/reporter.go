package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback for multi-step jobs such as writing
// the extension files.
type Reporter interface {
	Start(total int, label string)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a LineReporter when the CI environment variable is
// set, or a BarReporter drawing on w otherwise.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{w: w}
	}
	return &BarReporter{w: w}
}

// BarReporter displays a progress bar in the terminal.
type BarReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *BarReporter) Start(total int, label string) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *BarReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints one line per step, suitable for CI logs.
type LineReporter struct {
	w     io.Writer
	total int
	label string
}

func (r *LineReporter) Start(total int, label string) {
	r.total = total
	r.label = label
	fmt.Fprintf(r.w, "%s: %d steps\n", label, total)
}

func (r *LineReporter) Update(current int, message string) {
	fmt.Fprintf(r.w, "[%d/%d] %s\n", current, r.total, message)
}

func (r *LineReporter) Finish() {
	fmt.Fprintf(r.w, "%s: done\n", r.label)
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int, string)  {}
func (Nop) Update(int, string) {}
func (Nop) Finish()            {}
