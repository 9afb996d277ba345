package console

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"plantagotchi/internal/app/stateview"
	"plantagotchi/internal/domain/plant"
	"plantagotchi/internal/domain/species"

	"github.com/charmbracelet/lipgloss"
)

const DefaultBarWidth = 20

var (
	title   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	label   = lipgloss.NewStyle().Width(12)
	good    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warn    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	bad     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panel   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("2")).Padding(0, 1)
	cueLine = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("6"))
)

type Renderer struct {
	BarWidth int
}

// Bar draws value against full as a gauge followed by the rounded value.
func (r Renderer) Bar(value, full float64) string {
	width := r.BarWidth
	if width <= 0 {
		width = DefaultBarWidth
	}
	ratio := 0.0
	if full > 0 {
		ratio = math.Min(math.Max(value/full, 0), 1)
	}
	filled := int(math.Round(ratio * float64(width)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := good
	switch {
	case ratio < 0.25:
		style = bad
	case ratio < 0.5:
		style = warn
	}
	return style.Render(bar) + fmt.Sprintf(" %3.0f", value)
}

func (r Renderer) Snapshot(snap plant.Snapshot, cues []string) string {
	var b strings.Builder
	b.WriteString(title.Render(fmt.Sprintf("%s  day %d/%d  %s (%d/%d)",
		strings.ToUpper(snap.SpeciesID), snap.Day, snap.MaxDays, species.StageName(snap.Stage), snap.StageIndex+1, snap.StageCount)))
	b.WriteString("\n")

	rows := []struct {
		name  string
		value float64
		full  float64
	}{
		{"Health", snap.Health, 100},
		{"Water", snap.WaterLevel, 100},
		{"Light", snap.LightLevel, 100},
		{"Temp °C", snap.Temperature, 40},
		{"Immunity", snap.Immunity, 100},
	}
	for _, row := range rows {
		b.WriteString(label.Render(row.name))
		b.WriteString(r.Bar(row.value, row.full))
		b.WriteString("\n")
	}

	b.WriteString(label.Render("Treatments"))
	b.WriteString(inventory(snap.Inventory))
	b.WriteString("\n\n")

	b.WriteString(moodStyle(snap).Render(stateview.Reason(snap)))
	b.WriteString("\n")
	b.WriteString(dim.Render(stateview.Hint(snap)))
	if len(cues) > 0 {
		b.WriteString("\n")
		b.WriteString(cueLine.Render("♪ " + strings.Join(cues, " ")))
	}
	return panel.Render(b.String())
}

// Ignored explains why an action did nothing.
func (r Renderer) Ignored(reason plant.IgnoreReason) string {
	var msg string
	switch reason {
	case plant.IgnoredNone:
		return ""
	case plant.IgnoredDead:
		msg = "The plant is dead. Reset to try again."
	case plant.IgnoredSessionOver:
		msg = "The season is over."
	case plant.IgnoredNoActiveProblem:
		msg = "Nothing to treat yet."
	case plant.IgnoredTreatmentUnavailable:
		msg = "You are out of that treatment."
	case plant.IgnoredUnknownTreatment:
		msg = "That is not a treatment."
	case plant.IgnoredUnknownSpecies:
		msg = "No such species."
	default:
		msg = string(reason)
	}
	return warn.Render(msg)
}

func (r Renderer) Info(msg string) string {
	return dim.Render(msg)
}

func inventory(inv map[plant.TreatmentKind]int) string {
	if len(inv) == 0 {
		return "none"
	}
	kinds := make([]string, 0, len(inv))
	for k := range inv {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s x%d", k, inv[plant.TreatmentKind(k)]))
	}
	return strings.Join(parts, ", ")
}

func moodStyle(snap plant.Snapshot) lipgloss.Style {
	switch {
	case snap.Outcome == plant.OutcomeDead:
		return bad
	case snap.Category == plant.CategoryNormal && snap.ActiveProblem == nil:
		return good
	default:
		return warn
	}
}
