package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/san-kum/dhkin/internal/analysis"
	"github.com/san-kum/dhkin/internal/kinematics"
)

// RenderMatrix writes the 4x4 cells as a light-bordered table. Numeric
// cells are right-aligned.
func RenderMatrix(w io.Writer, title string, cells [4][4]string, numeric bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = !numeric
	if title != "" {
		t.SetTitle(title)
	}
	if numeric {
		configs := make([]table.ColumnConfig, 4)
		for i := range configs {
			configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignRight}
		}
		t.SetColumnConfigs(configs)
	}
	for _, row := range cells {
		r := make(table.Row, 4)
		for j, c := range row {
			r[j] = c
		}
		t.AppendRow(r)
	}
	t.Render()
}

// RenderPose writes position and orientation of a numeric transform.
func RenderPose(w io.Writer, p kinematics.Pose) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "x", "y", "z", "w"})
	t.AppendRow(table.Row{"position",
		fmt.Sprintf("%.6g", p.Position.X()), fmt.Sprintf("%.6g", p.Position.Y()), fmt.Sprintf("%.6g", p.Position.Z()), ""})
	t.AppendRow(table.Row{"quaternion",
		fmt.Sprintf("%.6g", p.Orientation.V.X()), fmt.Sprintf("%.6g", p.Orientation.V.Y()),
		fmt.Sprintf("%.6g", p.Orientation.V.Z()), fmt.Sprintf("%.6g", p.Orientation.W)})
	t.Render()
}

// RenderReport writes one row per check.
func RenderReport(w io.Writer, r *analysis.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Check", "Result", "Detail"})
	for _, c := range r.Checks {
		t.AppendRow(table.Row{c.Name, Mark(c.Passed), c.Detail})
	}
	if len(r.Symbols) > 0 {
		t.AppendFooter(table.Row{"symbols", "", strings.Join(r.Symbols, ", ")})
	}
	t.Render()
}
