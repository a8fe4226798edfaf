package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ncuwatch/taoyuanwx/internal/api"
)

var (
	headerColor   = color.New(color.FgCyan, color.Bold)
	districtColor = color.New(color.FgWhite)
	invalidColor  = color.New(color.FgHiBlack)
)

const cellWidth = 8

// Table writes the view as a colored terminal table. Cell backgrounds use
// the same palette as the map; a vertical bar marks each forecast day
// boundary.
func Table(w io.Writer, view *api.TableView) {
	title := view.Variable
	if view.SubKey != "" {
		title += " / " + view.SubKey
	}
	if view.Unit != "" {
		title += " (" + view.Unit + ")"
	}
	headerColor.Fprintln(w, title)

	fmt.Fprintf(w, "%-10s", "")
	for _, col := range view.Columns {
		fmt.Fprint(w, sep(col.NewDay))
		headerColor.Fprintf(w, "%*s", cellWidth, headerLabel(col))
	}
	fmt.Fprintln(w)

	for _, row := range view.Rows {
		districtColor.Fprintf(w, "%-10s", row.District)
		for i, cell := range row.Cells {
			fmt.Fprint(w, sep(view.Columns[i].NewDay))
			printCell(w, cell)
		}
		fmt.Fprintln(w)
	}
}

func sep(newDay bool) string {
	if newDay {
		return "|"
	}
	return " "
}

// headerLabel keeps the column header on one line. Period labels already
// carry the date in the separator, so the period alone is enough.
func headerLabel(col api.Column) string {
	if col.Period != "" {
		return col.Period
	}
	if i := strings.IndexByte(col.Label, ' '); i >= 0 {
		return col.Label[i+1:]
	}
	return col.Label
}

func printCell(w io.Writer, cell api.Cell) {
	if !cell.Valid {
		invalidColor.Fprintf(w, "%*s", cellWidth, cell.Text)
		return
	}

	r, g, b, ok := hexRGB(cell.Color)
	if !ok {
		fmt.Fprintf(w, "%*s", cellWidth, cell.Text)
		return
	}

	c := color.BgRGB(r, g, b)
	if luminance(r, g, b) > 140 {
		c = c.AddRGB(0, 0, 0)
	} else {
		c = c.AddRGB(255, 255, 255)
	}
	c.Fprintf(w, "%*s", cellWidth, cell.Text)
}

// hexRGB parses "#RRGGBB" with an optional trailing alpha byte, which is
// ignored since terminals have no translucency.
func hexRGB(s string) (r, g, b int, ok bool) {
	if len(s) != 7 && len(s) != 9 {
		return 0, 0, 0, false
	}
	if s[0] != '#' {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(s[1:7], "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

func luminance(r, g, b int) int {
	return (299*r + 587*g + 114*b) / 1000
}
