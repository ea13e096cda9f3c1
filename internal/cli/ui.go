package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/BlockPack/internal/engine"
	"github.com/piwi3910/BlockPack/internal/model"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconBest    = "★"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return styleCell
		})
}

// printSummary renders the per-bin table and the totals of a result.
func printSummary(w io.Writer, result model.PackResult) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Packing result (%s)", result.Mode)))

	t := newTable("Bin", "Size", "Blocks", "Used", "Efficiency")
	for _, bin := range result.Bins {
		t.Row(
			strconv.Itoa(bin.Index+1),
			fmt.Sprintf("%dx%d", bin.Width, bin.Height),
			strconv.Itoa(len(bin.Placements)),
			fmt.Sprintf("%d / %d", bin.UsedArea(), bin.TotalArea()),
			fmt.Sprintf("%.1f%%", bin.Efficiency()),
		)
	}
	fmt.Fprintln(w, t.Render())

	printKeyValue(w, "Bins", StyleNumber.Render(strconv.Itoa(result.BinCount())))
	printKeyValue(w, "Placed", StyleNumber.Render(strconv.Itoa(result.PlacedCount())))
	printKeyValue(w, "Efficiency", StyleNumber.Render(fmt.Sprintf("%.1f%%", result.TotalEfficiency())))
	printKeyValue(w, "Free area", StyleNumber.Render(strconv.Itoa(model.TotalOffcutArea(result.Offcuts))))
	if result.Mode == model.ModeGrowing && result.BinCount() == 1 {
		bw, bh := engine.BoxSize(result.Bins[0].Width, result.Bins[0].Height)
		printKeyValue(w, "Box size", StyleNumber.Render(fmt.Sprintf("%dx%d", bw, bh)))
	}

	if !result.Complete() {
		printWarning(w, "%d block(s) could not be placed", len(result.Unplaced))
		for _, b := range result.Unplaced {
			printDetail(w, "%s", b)
		}
	}
}

// printComparison renders one row per scenario and marks the best one.
func printComparison(w io.Writer, results []engine.ComparisonResult, best int) {
	t := newTable("", "Scenario", "Mode", "Sort", "Bins", "Placed", "Unplaced", "Efficiency")
	for i, r := range results {
		mark := ""
		if i == best {
			mark = iconBest
		}
		if r.Err != nil {
			t.Row(mark, r.Scenario.Name, string(r.Scenario.Settings.Mode), r.Scenario.Settings.SortKey,
				"-", "-", "-", styleIconError.Render(r.Err.Error()))
			continue
		}
		t.Row(
			mark,
			r.Scenario.Name,
			string(r.Scenario.Settings.Mode),
			r.Scenario.Settings.SortKey,
			strconv.Itoa(r.BinsUsed),
			strconv.Itoa(r.Placed),
			strconv.Itoa(r.UnplacedCount),
			fmt.Sprintf("%.1f%%", r.Efficiency),
		)
	}
	fmt.Fprintln(w, t.Render())
}
