package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/notify"
)

// Styles contains lipgloss styles for terminal output
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Label   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Border  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")), // Yellow
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")), // Cyan
	}
}

// Toast renders a notification line
func (s Styles) Toast(t notify.Toast) string {
	switch t.Level {
	case notify.LevelSuccess:
		return s.Success.Render("✓ " + t.Message)
	case notify.LevelWarning:
		return s.Warning.Render("! " + t.Message)
	case notify.LevelError:
		return s.Error.Render("✗ " + t.Message)
	default:
		return s.Info.Render("i " + t.Message)
	}
}

// Status colours a status value
func (s Styles) Status(status string) string {
	label := strings.ReplaceAll(status, "_", " ")
	switch status {
	case "accepted", "completed", "resolved":
		return s.Success.Render(label)
	case "pending", "open", "in_progress":
		return s.Warning.Render(label)
	case "rejected", "denied", "blocked", "escalated":
		return s.Error.Render(label)
	default:
		return s.Muted.Render(label)
	}
}

func (s Styles) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// printTable writes rows, or the empty message when there are none
func (rt *runtime) printTable(title string, headers []string, rows [][]string, empty string) {
	fmt.Fprintln(rt.out, rt.styles.Title.Render(title))
	if len(rows) == 0 {
		fmt.Fprintln(rt.out, rt.styles.Muted.Render(empty))
		return
	}
	fmt.Fprintln(rt.out, rt.styles.table(headers, rows))
}

// printPageFooter shows the position within a paginated list
func printPageFooter[T any](rt *runtime, page *models.Page[T]) {
	if page.Pages <= 1 {
		return
	}
	fmt.Fprintln(rt.out, rt.styles.Muted.Render(
		fmt.Sprintf("Page %d of %d (%d total)", page.Page, page.Pages, page.Total)))
}

// printFields writes label/value pairs in order
func printFields(w io.Writer, s Styles, pairs ...string) {
	width := 0
	for i := 0; i < len(pairs); i += 2 {
		width = max(width, len(pairs[i]))
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		label := s.Label.Render(fmt.Sprintf("%-*s", width+1, pairs[i]+":"))
		fmt.Fprintf(w, "%s %s\n", label, pairs[i+1])
	}
}

func formatDate(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("Jan 2, 2006")
}

func formatKZT(amount float64) string {
	return fmt.Sprintf("%.2f KZT", amount)
}

func orEmpty(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
