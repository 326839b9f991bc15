// Package table renders reports as aligned text tables for the terminal.
package table

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/ui/output"
	"github.com/gmackall/flutter-fix-status/internal/ui/style"
	"github.com/muesli/termenv"
)

const columnGap = "  "

var headers = []string{"CHANNEL", "LATEST", "INCLUDED", "FIRST RELEASE", "DATE", "RELEASES AGO"}

// Renderer writes reports to a terminal.
type Renderer struct {
	out *termenv.Output
}

// New creates a Renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{out: output.New(w)}
}

// NewWithOutput creates a Renderer on an existing termenv output.
func NewWithOutput(out *termenv.Output) *Renderer {
	return &Renderer{out: out}
}

// Resolution renders the classification and candidate commits of a query.
func (r *Renderer) Resolution(res *domain.Resolution) error {
	var b strings.Builder
	writeResolution(&b, res)
	if len(res.Commits) == 0 {
		b.WriteString("\n" + r.muted("No commits found for this reference.") + "\n")
	}
	return r.write(b.String())
}

// Report renders a resolution followed by the per-channel table.
func (r *Renderer) Report(rep *domain.Report) error {
	var b strings.Builder
	writeResolution(&b, &rep.Resolution)
	b.WriteString("\n")
	if len(rep.Commits) == 0 {
		b.WriteString(r.muted("No commits found for this reference.") + "\n")
		return r.write(b.String())
	}
	r.writeChannels(&b, rep.Channels)
	return r.write(b.String())
}

// CommitReport renders the per-channel table for a single commit.
func (r *Renderer) CommitReport(rep *domain.CommitReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "commit   %s\n\n", rep.Commit)
	r.writeChannels(&b, rep.Channels)
	return r.write(b.String())
}

func (r *Renderer) write(s string) error {
	_, err := r.out.WriteString(s)
	return err
}

func writeResolution(b *strings.Builder, res *domain.Resolution) {
	fmt.Fprintf(b, "query    %s\n", res.Query)
	fmt.Fprintf(b, "type     %s\n", res.Kind)
	if s := res.Subject; s != nil {
		fmt.Fprintf(b, "subject  #%d %s [%s]\n", s.Number, s.Title, s.State)
	}
	commits := "none"
	if len(res.Commits) > 0 {
		commits = strings.Join(shortSHAs(res.Commits), ", ")
	}
	fmt.Fprintf(b, "commits  %s\n", commits)
}

func (r *Renderer) writeChannels(b *strings.Builder, channels []domain.ChannelStatus) {
	rows := make([][]string, 0, len(channels))
	for _, c := range channels {
		rows = append(rows, []string{
			c.Channel,
			orDash(c.LatestVersion),
			includedIcon(c.Included),
			derefOrDash(c.FirstVersion),
			derefOrDash(c.FirstDate),
			c.ReleasesAgoLabel(),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	b.WriteString(r.muted(formatRow(headers, widths)) + "\n")
	for i, row := range rows {
		line := formatRow(row, widths)
		if channels[i].Included {
			b.WriteString(r.colored(line, style.Green) + "\n")
			continue
		}
		b.WriteString(line + "\n")
	}
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(columnGap)
		}
		b.WriteString(cell)
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
	}
	return b.String()
}

func (r *Renderer) muted(s string) string {
	return r.colored(s, style.Slate)
}

func (r *Renderer) colored(s string, c lipgloss.Color) string {
	return r.out.String(s).Foreground(termenv.RGBColor(string(c))).String()
}

func includedIcon(included bool) string {
	if included {
		return style.Check
	}
	return style.Cross
}

func orDash(s string) string {
	if s == "" {
		return domain.NoReleasesAgo
	}
	return s
}

func derefOrDash(s *string) string {
	if s == nil {
		return domain.NoReleasesAgo
	}
	return orDash(*s)
}

func shortSHAs(shas []string) []string {
	out := make([]string, len(shas))
	for i, sha := range shas {
		if len(sha) > 10 {
			sha = sha[:10]
		}
		out[i] = sha
	}
	return out
}
