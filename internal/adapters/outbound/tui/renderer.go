package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/embercheck/embercheck/internal/domain"
)

// ── warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	criticalStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	highStyle     = lipgloss.NewStyle().Foreground(warning).Bold(true)
	mediumStyle   = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	advisoryStyle = lipgloss.NewStyle().Foreground(info).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a scan report for terminal output.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("embercheck")
	subtitle := dimStyle.Render("Ember best-practice scan")
	counts := fmt.Sprintf("%d findings in %d files", report.Summary.Total(), report.FilesAnalyzed)
	countStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(summaryColor(report.Summary)).
		Render(counts)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + countStyled))
	b.WriteString("\n\n")

	// ── Findings ──
	if len(report.Findings) > 0 {
		b.WriteString("  ")
		b.WriteString(titleStyle.Render("Findings"))
		b.WriteString("  ")
		if report.Summary.Critical > 0 {
			b.WriteString(criticalStyle.Render(fmt.Sprintf("%d critical", report.Summary.Critical)))
			b.WriteString("  ")
		}
		if report.Summary.High > 0 {
			b.WriteString(highStyle.Render(fmt.Sprintf("%d high", report.Summary.High)))
			b.WriteString("  ")
		}
		if report.Summary.Medium > 0 {
			b.WriteString(mediumStyle.Render(fmt.Sprintf("%d medium", report.Summary.Medium)))
		}
		b.WriteString("\n\n")

		for _, f := range report.Findings {
			renderFinding(&b, f)
		}
	} else {
		b.WriteString("  " + passStyle.Render("No findings.") + "\n")
	}

	// ── Skipped files ──
	if len(report.Skipped) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + separatorLine + "\n\n")
		b.WriteString("  " + titleStyle.Render("Not analyzed") + "\n\n")
		for _, s := range report.Skipped {
			fmt.Fprintf(&b, "    %s %s\n",
				dimStyle.Render(s.Path),
				faintStyle.Render("("+s.Reason+")"),
			)
		}
	}

	if report.CommitHash != "" {
		hash := report.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		b.WriteString("\n  " + faintStyle.Render("commit "+hash) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	location := fmt.Sprintf("%s:%d", f.File, f.StartLine)
	fmt.Fprintf(b, "    %s %s\n", impactTag(f.Impact), fileStyle.Render(location))
	fmt.Fprintf(b, "         %s %s\n", dimStyle.Render(f.Message), faintStyle.Render("["+f.RuleID+"]"))
}

func impactTag(impact domain.Impact) string {
	switch impact {
	case domain.ImpactCritical:
		return criticalStyle.Render("crit ")
	case domain.ImpactHigh:
		return highStyle.Render("high ")
	default:
		return mediumStyle.Render("med  ")
	}
}

func summaryColor(s domain.Summary) lipgloss.Color {
	switch {
	case s.Critical > 0:
		return danger
	case s.High > 0:
		return warning
	case s.Medium > 0:
		return info
	default:
		return success
	}
}

// RenderRules formats the rule listing, grouped by category in corpus order.
func RenderRules(corpus *domain.Corpus) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Rules") + "  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d total, %d enforced", corpus.Len(), len(corpus.Enforced()))))
	b.WriteString("\n\n")

	for _, category := range domain.ValidCategories {
		rules := corpus.ByCategory(category)
		if len(rules) == 0 {
			continue
		}
		b.WriteString("  " + titleStyle.Render(category) + "\n")
		for _, r := range rules {
			mode := ""
			if r.Advisory() {
				mode = "  " + advisoryStyle.Render("advisory")
			}
			fmt.Fprintf(&b, "    %s %s%s\n", impactTag(r.Impact), r.ID, mode)
			fmt.Fprintf(&b, "         %s\n", dimStyle.Render(r.Title))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderRule formats one rule with its snippets and rationale.
func RenderRule(r domain.Rule) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(r.ID) + "  " + impactTag(r.Impact) + "\n")
	b.WriteString("  " + dimStyle.Render(r.Title) + "\n\n")

	if r.Advisory() {
		b.WriteString("  " + advisoryStyle.Render("advisory: no structural pattern, surfaced as documentation only") + "\n\n")
	}

	b.WriteString("  " + criticalStyle.Render("incorrect") + "\n")
	writeSnippet(&b, r.Incorrect)
	b.WriteString("  " + passStyle.Render("correct") + "\n")
	writeSnippet(&b, r.Correct)

	if r.Rationale != "" {
		b.WriteString("  " + dimStyle.Render(strings.TrimSpace(r.Rationale)) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func writeSnippet(b *strings.Builder, snippet string) {
	for _, line := range strings.Split(strings.TrimRight(snippet, "\n"), "\n") {
		b.WriteString("    " + faintStyle.Render(line) + "\n")
	}
	b.WriteString("\n")
}

// RenderHistory formats prior scan entries.
func RenderHistory(entries []domain.ScanEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No scan history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Scan History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		style := passStyle
		if e.Critical > 0 {
			style = criticalStyle
		} else if e.Findings > 0 {
			style = highStyle
		}

		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		fmt.Fprintf(&b, "  %s  %s  %s\n",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			style.Render(fmt.Sprintf("%d findings (%d critical)", e.Findings, e.Critical)),
		)
	}

	return b.String()
}
