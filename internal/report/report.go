// Package report renders scan and explanation results to the console.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/envdoctor/envdoctor/internal/detect"
	"github.com/envdoctor/envdoctor/internal/gitexplain"
	"github.com/envdoctor/envdoctor/internal/scan"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnBoxStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

func glyph(status detect.Status) string {
	switch status {
	case detect.StatusPass:
		return passStyle.Render("✓")
	case detect.StatusWarn:
		return warnStyle.Render("!")
	case detect.StatusFail:
		return failStyle.Render("✗")
	default:
		return dimStyle.Render("-")
	}
}

// RenderScan writes the full setup report.
func RenderScan(w io.Writer, rep scan.Report) {
	fmt.Fprintln(w, headerStyle.Render("Environment"))
	for _, tool := range rep.Tools {
		if tool.Present {
			fmt.Fprintf(w, "  %s %-10s %s\n", passStyle.Render("✓"), tool.Name, dimStyle.Render(tool.Version))
		} else {
			fmt.Fprintf(w, "  %s %-10s %s\n", dimStyle.Render("-"), tool.Name, dimStyle.Render("not found"))
		}
	}
	fmt.Fprintln(w)

	if len(rep.Projects) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No known project type detected in "+rep.Dir))
		return
	}

	for _, project := range rep.Projects {
		fmt.Fprintln(w, sectionStyle.Render(project.Type+" project"))
		renderFacts(w, project.Facts)
		for _, res := range project.Results {
			fmt.Fprintf(w, "  %s %s: %s\n", glyph(res.Result.Status), res.Name, res.Result.Message)
			if res.Result.Fix != "" {
				fmt.Fprintf(w, "      %s\n", dimStyle.Render("fix: "+res.Result.Fix))
			}
		}
		fmt.Fprintln(w)
	}

	if n := rep.Findings(); n > 0 {
		fmt.Fprintf(w, "%d finding(s); suggested fixes are shown above and are never executed.\n", n)
	} else {
		fmt.Fprintln(w, passStyle.Render("Everything looks ready."))
	}
}

func renderFacts(w io.Writer, facts map[string]string) {
	keys := make([]string, 0, len(facts))
	for k := range facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\n", dimStyle.Render(k+": "+facts[k]))
	}
}

// RenderExplanation writes a matched git condition in plain language with
// its suggested (unexecuted) fix commands.
func RenderExplanation(w io.Writer, ex *gitexplain.Explanation) {
	fmt.Fprintln(w, headerStyle.Render(ex.Title))
	fmt.Fprintln(w)
	fmt.Fprintln(w, ex.Explanation)
	fmt.Fprintln(w)
	fmt.Fprintln(w, dimStyle.Render("Why: "+ex.Reason))
	if ex.Details != "" {
		fmt.Fprintln(w, dimStyle.Render(ex.Details))
	}
	if len(ex.Fixes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render("Suggested fixes (not executed):"))
		for _, fix := range ex.Fixes {
			fmt.Fprintf(w, "  $ %s\n", fix)
		}
	}
	if ex.Warning != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, warnBoxStyle.Render("Warning: ")+ex.Warning)
	}
}

// RenderHealthy writes the no-condition-matched message.
func RenderHealthy(w io.Writer) {
	fmt.Fprintln(w, passStyle.Render("No known error condition detected."))
}
