// Package reports renders bonus statements sent to therapists by email.
package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"physionomie/internal/domain/stats"
	"physionomie/internal/domain/therapist"
)

var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Statement is one therapist's bonus statement for a given day.
type Statement struct {
	Subject  string
	Markdown string
	HTML     string
}

// BuildStatement renders the statement for the given date from the day's and
// lifetime figures.
// PRE: date is an ISO date string
// POST: Markdown and HTML carry the same content; HTML is safe to email
func BuildStatement(tp therapist.Therapist, date string, daily stats.DailyStats, lifetime stats.LifetimeStats) (Statement, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "## Bonusabrechnung %s\n\n", date)
	fmt.Fprintf(&b, "Hallo %s,\n\n", tp.Name)
	fmt.Fprintf(&b, "hier ist deine Übersicht für den %s:\n\n", date)
	fmt.Fprintf(&b, "- Behandlungen: **%d**\n", daily.Count)
	fmt.Fprintf(&b, "- Behandlungszeit: **%d:%02d h**\n", daily.Hours, daily.Minutes)
	fmt.Fprintf(&b, "- Tagesbonus: **%.2f €**\n\n", daily.BonusTotal)

	fmt.Fprintf(&b, "### Gesamt\n\n")
	fmt.Fprintf(&b, "- Bonus gesamt: **%.2f €**\n", lifetime.TotalBonus)
	fmt.Fprintf(&b, "- Stunden gesamt: **%d h**\n", lifetime.TotalHours)
	fmt.Fprintf(&b, "- Behandlungen gesamt: **%d**\n", lifetime.ActivityCount)

	remaining := stats.RemainingToTarget(lifetime.TotalBonus, tp.BonusTarget)
	if remaining > 0 {
		fmt.Fprintf(&b, "\nBis zum Monatsziel von %.2f € fehlen noch %.2f €.\n", tp.BonusTarget, remaining)
	} else {
		fmt.Fprintf(&b, "\nMonatsziel von %.2f € erreicht!\n", tp.BonusTarget)
	}

	md := b.String()
	var html bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &html); err != nil {
		return Statement{}, fmt.Errorf("render statement: %w", err)
	}

	return Statement{
		Subject:  fmt.Sprintf("Bonusabrechnung %s", date),
		Markdown: md,
		HTML:     html.String(),
	}, nil
}
