package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
	"tokencost/internal/domain"
)

type renderOptions struct {
	format     string
	precision  int
	showTokens bool
	styled     bool // render markdown for a terminal
	width      int
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

func formatCost(cost float64, precision int) string {
	return fmt.Sprintf("$%.*f", precision, cost)
}

func renderEstimate(w io.Writer, est domain.Estimate, opts renderOptions) error {
	switch opts.format {
	case "json":
		if !opts.showTokens {
			est.Tokens = nil
		}
		return writeJSON(w, est)
	case "markdown":
		return writeMarkdown(w, estimateMarkdown(est, opts), opts)
	default:
		fmt.Fprintf(w, "Token Count: %d\n", est.TokenCount)
		fmt.Fprintf(w, "Total Cost:  %s\n", formatCost(est.TotalCost, opts.precision))
		if opts.showTokens {
			fmt.Fprintf(w, "\nFiltered Tokens (Line-by-Line):\n")
			for _, tok := range est.Tokens {
				fmt.Fprintln(w, tok)
			}
		}
		return nil
	}
}

func renderReport(w io.Writer, report domain.Report, root string, opts renderOptions) error {
	switch opts.format {
	case "json":
		if !opts.showTokens {
			for i := range report.Estimates {
				report.Estimates[i].Tokens = nil
			}
		}
		return writeJSON(w, report)
	case "markdown":
		return writeMarkdown(w, reportMarkdown(report, root, opts), opts)
	default:
		for _, est := range report.Estimates {
			fmt.Fprintf(w, "  %-40s %8d  %s\n", displayPath(root, est.Source), est.TokenCount, formatCost(est.TotalCost, opts.precision))
		}
		fmt.Fprintf(w, "\nFiles:       %d\n", len(report.Estimates))
		fmt.Fprintf(w, "Token Count: %d\n", report.TotalTokens)
		fmt.Fprintf(w, "Total Cost:  %s\n", formatCost(report.TotalCost, opts.precision))
		if len(report.Errors) > 0 {
			fmt.Fprintf(w, "\nWarnings:\n")
			for _, e := range report.Errors {
				fmt.Fprintf(w, "  - %s\n", e)
			}
		}
		return nil
	}
}

func estimateMarkdown(est domain.Estimate, opts renderOptions) string {
	var b strings.Builder
	b.WriteString("# Results\n\n")
	fmt.Fprintf(&b, "- **Token Count:** %d\n", est.TokenCount)
	fmt.Fprintf(&b, "- **Total Cost:** %s\n", formatCost(est.TotalCost, opts.precision))
	if opts.showTokens && len(est.Tokens) > 0 {
		fence := codeFence(est.Tokens)
		b.WriteString("\n## Filtered Tokens (Line-by-Line)\n\n" + fence + "\n")
		b.WriteString(strings.Join(est.Tokens, "\n"))
		b.WriteString("\n" + fence + "\n")
	}
	return b.String()
}

func reportMarkdown(report domain.Report, root string, opts renderOptions) string {
	var b strings.Builder
	b.WriteString("# Results\n\n")
	b.WriteString("| File | Tokens | Cost |\n|---|---:|---:|\n")
	for _, est := range report.Estimates {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", displayPath(root, est.Source), est.TokenCount, formatCost(est.TotalCost, opts.precision))
	}
	fmt.Fprintf(&b, "| **Total** | **%d** | **%s** |\n", report.TotalTokens, formatCost(report.TotalCost, opts.precision))
	if len(report.Errors) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, e := range report.Errors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	return b.String()
}

// codeFence returns a backtick fence longer than any backtick run in lines.
func codeFence(lines []string) string {
	longest := 0
	for _, line := range lines {
		run := 0
		for _, r := range line {
			if r == '`' {
				run++
				longest = max(longest, run)
			} else {
				run = 0
			}
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

// writeMarkdown styles md for the terminal, or writes it raw when the
// output is not a terminal or styling fails.
func writeMarkdown(w io.Writer, md string, opts renderOptions) error {
	if opts.styled {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(opts.width),
		)
		if err == nil {
			if out, err := renderer.Render(md); err == nil {
				_, err = io.WriteString(w, out)
				return err
			}
		}
	}
	_, err := io.WriteString(w, md)
	return err
}

func writeJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}
