package wizard

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felix3322/potplayer-translate-installer/internal/lang"
	"github.com/felix3322/potplayer-translate-installer/internal/prompt"
)

const (
	colorLabel   = lipgloss.Color("245")
	colorValue   = lipgloss.Color("252")
	colorBorder  = lipgloss.Color("63")
	colorSuccess = lipgloss.Color("42")
	colorWarning = lipgloss.Color("214")
	colorFailure = lipgloss.Color("196")
)

// maskKey hides all but the last four characters of an API key.
func maskKey(apiKey string) string {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "-"
	}
	if len(apiKey) <= 4 {
		return strings.Repeat("*", len(apiKey))
	}
	return strings.Repeat("*", 8) + apiKey[len(apiKey)-4:]
}

type summaryRow struct {
	label string
	value string
}

// renderSummary lists the choices about to be installed.
func renderSummary(s lang.Strings, c *Choices) string {
	model, apiBase, err := c.Endpoint()
	if err != nil {
		model, apiBase = c.Model, c.APIBase
	}
	variants := make([]string, 0, len(c.Variants))
	for _, v := range c.Variants {
		variants = append(variants, s.Get(v+"_short"))
	}

	rows := []summaryRow{
		{s.Get(lang.KeyInstallDirTitle), c.Dir},
		{s.Get(lang.KeyVariantsTitle), strings.Join(variants, ", ")},
		{s.Get(lang.KeyConfigModel), model},
		{s.Get(lang.KeyConfigAPI), apiBase},
		{s.Get(lang.KeyConfigKey), maskKey(c.APIKey)},
		{s.Get(lang.KeyDelayLabel), strconv.Itoa(c.DelayMS)},
		{s.Get(lang.KeyRetryTitle), s.Get(retryLabelKeys[c.Retry])},
	}
	if c.WantsContext() {
		rows = append(rows,
			summaryRow{s.Get(lang.KeyContextLengthLabel), strconv.Itoa(c.ContextBudget)},
			summaryRow{s.Get(lang.KeyContextTruncLabel), s.Get(truncationLabelKeys[c.Truncation])},
			summaryRow{s.Get(lang.KeyContextCacheLabel), s.Get(cacheLabelKeys[c.Cache])},
		)
	}
	rows = append(rows, summaryRow{s.Get(lang.KeyDebugTitle), strconv.FormatBool(c.Debug)})

	labelStyle := lipgloss.NewStyle().Foreground(colorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(colorValue).Bold(true)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, labelStyle.Render(row.label+": ")+valueStyle.Render(row.value))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderFinished renders the closing banner of a run within width columns.
func renderFinished(s lang.Strings, status prompt.Status, reason string, width int) string {
	var body string
	var color lipgloss.Color
	switch status {
	case prompt.StatusSuccess:
		body, color = s.Get(lang.KeyInstallationComplete), colorSuccess
	case prompt.StatusCancelled:
		body, color = s.Get(lang.KeyInstallationCancelled), colorWarning
	default:
		body, color = s.Format(lang.KeyInstallationFailed, reason), colorFailure
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(s.Get(lang.KeyFinishTitle))
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(color).
		Padding(0, 1).
		MaxWidth(width).
		Render(title + "\n" + body)
}
