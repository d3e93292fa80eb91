package vizglue

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"

	"github.com/threedepict/tomo/fstream"
)

// ExportTable writes a single-sheet xlsx workbook to w: headers as the
// first row, then one row per entry of rows. Grounded on the teacher's
// own xlsx.File/Sheet/Row/Cell usage in emissions/slca/bea/ces (which
// only reads workbooks; writing follows the same object model in
// reverse).
func ExportTable(w io.Writer, sheet string, headers []string, rows [][]string) error {
	f := xlsx.NewFile()
	sh, err := f.AddSheet(sheet)
	if err != nil {
		return fmt.Errorf("vizglue.ExportTable: %w", err)
	}
	head := sh.AddRow()
	for _, h := range headers {
		head.AddCell().SetString(h)
	}
	for _, r := range rows {
		row := sh.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("vizglue.ExportTable: %w", err)
	}
	return nil
}

// ExportProxigram writes a proxigram's distance/composition profile
// (spec §4.6) as an xlsx workbook: one row per shell, distance plus
// each series value.
func ExportProxigram(w io.Writer, p *fstream.Plot1D) error {
	headers := []string{"distance_nm", p.YLabel}
	hasY2 := len(p.Y2) == len(p.X)
	if hasY2 {
		headers = append(headers, "atom_count")
	}
	rows := make([][]string, len(p.X))
	for i := range p.X {
		row := []string{f64s(p.X[i]), f64s(valueAt(p.Y, i))}
		if hasY2 {
			row = append(row, f64s(p.Y2[i]))
		}
		rows[i] = row
	}
	return ExportTable(w, "proxigram", headers, rows)
}

// ExportRangeTable writes a Range stream's ion/range definitions (spec
// §4.2) as a two-sheet xlsx workbook.
func ExportRangeTable(w io.Writer, r *fstream.Range) error {
	f := xlsx.NewFile()

	ionSheet, err := f.AddSheet("ions")
	if err != nil {
		return fmt.Errorf("vizglue.ExportRangeTable: %w", err)
	}
	ionHead := ionSheet.AddRow()
	for _, h := range []string{"name", "r", "g", "b", "enabled"} {
		ionHead.AddCell().SetString(h)
	}
	for i, ion := range r.File.Ions() {
		row := ionSheet.AddRow()
		row.AddCell().SetString(ion.Name)
		row.AddCell().SetFloat(ion.Colour.R)
		row.AddCell().SetFloat(ion.Colour.G)
		row.AddCell().SetFloat(ion.Colour.B)
		row.AddCell().SetBool(i < len(r.IonEnabled) && r.IonEnabled[i])
	}

	rangeSheet, err := f.AddSheet("ranges")
	if err != nil {
		return fmt.Errorf("vizglue.ExportRangeTable: %w", err)
	}
	rangeHead := rangeSheet.AddRow()
	for _, h := range []string{"lo", "hi", "ion_index", "enabled"} {
		rangeHead.AddCell().SetString(h)
	}
	for i, rg := range r.File.Ranges() {
		row := rangeSheet.AddRow()
		row.AddCell().SetFloat(rg.Lo)
		row.AddCell().SetFloat(rg.Hi)
		row.AddCell().SetInt(rg.IonIdx)
		row.AddCell().SetBool(i < len(r.RangeEnabled) && r.RangeEnabled[i])
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("vizglue.ExportRangeTable: %w", err)
	}
	return nil
}

func valueAt(y []float64, i int) float64 {
	if i < len(y) {
		return y[i]
	}
	return 0
}

func f64s(f float64) string {
	return fmt.Sprintf("%g", f)
}
