package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"

	"github.com/donaldgifford/tradein-valuator/internal/catalog"
	"github.com/donaldgifford/tradein-valuator/internal/engine"
)

// table wraps tablewriter with error tracking.
type table struct {
	*tablewriter.Table
	err error
}

func newTable(w io.Writer, header ...any) *table {
	t := &table{Table: tablewriter.NewWriter(w)}
	t.Header(header...)
	return t
}

func (t *table) row(cells ...any) {
	if t.err != nil {
		return
	}
	t.err = t.Append(cells...)
}

func (t *table) finish() error {
	if t.err != nil {
		return t.err
	}
	return t.Render()
}

func printValuation(w io.Writer, res *engine.Result) error {
	v := res.Quote.Valuation
	if v == nil {
		return fmt.Errorf("result %s has no graded valuation", res.ID)
	}

	t := newTable(w, "Field", "Value")
	t.row("ID", res.ID)
	t.row("Model", res.Model)
	t.row("Gate", string(v.Gate))
	t.row("Grade", string(v.Grade))
	t.row("V_A / V_B / V_C", fmt.Sprintf("%.0f / %.0f / %.0f", v.VA, v.VB, v.VC))
	t.row("V_tope", money(v.VTope))
	t.row("Battery", money(v.Deductions.Battery))
	t.row("Screen", money(v.Deductions.Screen))
	t.row("Housing", money(v.Deductions.Housing))
	t.row("Functional", fmt.Sprintf("%.0f%%", v.Deductions.FunctionalPct*100))
	floor := money(v.Floor)
	if v.FloorApplied {
		floor += " (applied)"
	}
	t.row("Floor", floor)
	t.row("Offer", money(v.Offer))
	return t.finish()
}

func printSimple(w io.Writer, res *engine.Result) error {
	t := newTable(w, "Field", "Value")
	t.row("ID", res.ID)
	if res.Model != "" {
		t.row("Model", res.Model)
	}
	t.row("Condition", string(res.Quote.Condition))
	t.row("Offer", money(res.Quote.Offer))
	return t.finish()
}

func printBatchTable(w io.Writer, results []engine.Result) error {
	t := newTable(w, "ID", "Model", "Kind", "Gate", "Grade", "Offer", "Error")
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			t.row(r.ID, r.Model, "-", "-", "-", "-", truncate(r.Error, 60))
			continue
		}

		gate, grade := "-", string(r.Quote.Condition)
		if v := r.Quote.Valuation; v != nil {
			gate, grade = string(v.Gate), string(v.Grade)
		}
		t.row(r.ID, r.Model, string(r.Quote.Kind), gate, grade, money(r.Quote.Offer), "")
	}
	return t.finish()
}

func printModelsTable(w io.Writer, models []catalog.Model) error {
	t := newTable(w, "ID", "Name", "A+", "Pct A/B/C", "Floor", "Repairs (bat/scr/hou)")
	for i := range models {
		m := &models[i]
		floor := "bands"
		if m.Params.FloorValue != nil {
			floor = money(*m.Params.FloorValue)
		}
		t.row(
			m.ID,
			m.Name,
			money(m.Params.CeilingAPlus),
			fmt.Sprintf("%.2f/%.2f/%.2f", m.Params.PctA, m.Params.PctB, m.Params.PctC),
			floor,
			fmt.Sprintf("%.0f/%.0f/%.0f",
				m.Params.RepairCostBattery,
				m.Params.RepairCostScreen,
				m.Params.RepairCostHousing,
			),
		)
	}
	return t.finish()
}

func printFloor(w io.Writer, v *floorView) error {
	upper := "open"
	if v.UpperBound > 0 {
		upper = fmt.Sprintf("< %.0f", v.UpperBound)
	}

	t := newTable(w, "Ceiling", "Band", "Pct", "Minimum", "Floor")
	t.row(money(v.Ceiling), upper, fmt.Sprintf("%.0f%%", v.Pct*100), money(v.Minimum), money(v.Floor))
	return t.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// truncate shortens s to maxLen runes, never splitting a multi-byte character.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}
