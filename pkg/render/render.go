// Package render turns the compatibility matrix and relationship
// summaries into the text digest handed to notifiers. Pure formatting,
// no data transformation.
package render

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"horobot/pkg/notify"
	"horobot/pkg/zodiac"
)

// Tables renders the matrix as text tables, columns split into two
// halves so each part stays readable in a chat message. A matrix with
// no columns renders as no tables.
func Tables(m *zodiac.Matrix) []string {
	columns := m.Columns()
	if len(columns) == 0 {
		return nil
	}

	split := len(columns) / 2
	if split == 0 {
		split = len(columns)
	}

	var parts []string
	for _, group := range [][]string{columns[:split], columns[split:]} {
		if len(group) == 0 {
			continue
		}
		parts = append(parts, renderPart(m, group))
	}
	return parts
}

func renderPart(m *zodiac.Matrix, columns []string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleDefault)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false

	header := table.Row{"Percent"}
	for _, c := range columns {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for _, band := range zodiac.AllBands() {
		row := table.Row{band.Label()}
		for _, c := range columns {
			row = append(row, m.Cell(band, c))
		}
		t.AppendRow(row)
	}

	return t.Render()
}

// CombinedSummary joins the friend and enemy blocks under their
// headings, separated by a blank line.
func CombinedSummary(friends, enemies string) string {
	return fmt.Sprintf("Kamarádi:\n%s\n\nNepřátelé:\n%s", friends, enemies)
}

// BuildDigest runs extraction at the two extreme bands and assembles
// the daily digest for the given matrix.
func BuildDigest(m *zodiac.Matrix, reg zodiac.Registry, date time.Time) *notify.Digest {
	friends := zodiac.Summary(m, reg, 100, zodiac.Friend)
	enemies := zodiac.Summary(m, reg, -100, zodiac.Enemy)

	return &notify.Digest{
		Date:    date,
		Summary: CombinedSummary(friends, enemies),
		Tables:  Tables(m),
	}
}
