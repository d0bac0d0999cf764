package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	Upcoming, DueToday, Overdue, Done             string
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymUpcoming, SymDueToday, SymOverdue          string
	SymDeadline                                   string
}

var current = themeFor("classic")

func SetTheme(name string) {
	current = themeFor(name)
	disableColor = disableColor || strings.EqualFold(name, "mono")
}

// Themes lists the accepted theme names.
func Themes() []string { return []string{"classic", "neon", "mono"} }

func themeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			Upcoming: "\033[92m", DueToday: "\033[93m", Overdue: "\033[91m", Done: dim + strike,
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymUpcoming: "⏳", SymDueToday: "🕒", SymOverdue: "❌",
			SymDeadline: "⚑",
		}
	case "mono":
		return Theme{
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymUpcoming: ">", SymDueToday: "!", SymOverdue: "!!",
			SymDeadline: "due",
		}
	default: // classic
		return Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Pending: fgYellow,
			Upcoming: fgGreen, DueToday: fgYellow, Overdue: fgRed, Done: dim,
			BoxUnchecked: "☐", BoxChecked: "☑",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymUpcoming: "⏳", SymDueToday: "🕒", SymOverdue: "❌",
			SymDeadline: "Deadline:",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
