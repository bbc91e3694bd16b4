package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"stieregg/internal/domain/daterange"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bookedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Strikethrough(true)
	pastStyle    = lipgloss.NewStyle().Faint(true)
	endStyle     = lipgloss.NewStyle().Reverse(true).Bold(true)
	spanStyle    = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("231"))
	cursorStyle  = lipgloss.NewStyle().Underline(true).Bold(true)
	weekdayStyle = lipgloss.NewStyle().Faint(true).Bold(true)
)

func (m appModel) View() string {
	switch m.state {
	case stateLoadingApartments:
		return fmt.Sprintf("\n %s loading apartments...\n", m.spinner.View())
	case stateSelectApartment:
		return m.apartmentList.View()
	case stateLoadingAvailability:
		return fmt.Sprintf("\n %s fetching calendars for %s...\n", m.spinner.View(), m.apartment.Slug)
	case statePickDates:
		return m.viewCalendar()
	case stateComposingInquiry:
		return fmt.Sprintf("\n %s composing inquiry...\n", m.spinner.View())
	case stateShowInquiry:
		return m.viewInquiry()
	case stateError:
		return fmt.Sprintf("\n %s\n\n%s\n",
			errorStyle.Render("error: "+m.err.Error()),
			helpStyle.Render(" enter/esc: back"))
	}
	return ""
}

func (m appModel) viewCalendar() string {
	var b strings.Builder

	view := m.picker.ViewMonth()
	header := fmt.Sprintf("%s · %s %d", m.apartment.Name.EN, view.Month().String(), view.Year())
	b.WriteString(" " + titleStyle.Render(header) + "\n\n")
	b.WriteString(" " + weekdayStyle.Render("Su Mo Tu We Th Fr Sa") + "\n")

	// Grid starts on the Sunday of the month's first week.
	first := view
	start := first.AddDate(0, 0, -int(first.Weekday()))
	previewFrom, previewTo, hasPreview := m.picker.PreviewSpan()

	for week := 0; week < 6; week++ {
		cells := make([]string, 0, 7)
		for day := 0; day < 7; day++ {
			d := start.AddDate(0, 0, week*7+day)
			if d.Month() != view.Month() {
				cells = append(cells, "  ")
				continue
			}
			cells = append(cells, m.renderDay(d, previewFrom, previewTo, hasPreview))
		}
		b.WriteString(" " + strings.Join(cells, " ") + "\n")
	}

	sel := m.picker.Selection()
	b.WriteString("\n")
	switch {
	case sel.Complete():
		b.WriteString(fmt.Sprintf(" stay: %s → %s\n",
			daterange.FormatDate(sel.CheckIn), daterange.FormatDate(sel.CheckOut)))
	case !sel.CheckIn.IsZero():
		b.WriteString(fmt.Sprintf(" check-in: %s · pick a check-out\n", daterange.FormatDate(sel.CheckIn)))
	default:
		b.WriteString(" pick a check-in date\n")
	}

	nav := " arrows: move · enter: select · [/]: month"
	if !m.picker.CanPrevMonth() {
		nav += " (at first month)"
	}
	if !m.picker.CanNextMonth() {
		nav += " (at last month)"
	}
	b.WriteString(helpStyle.Render(nav+" · esc: back") + "\n")
	return b.String()
}

func (m appModel) renderDay(d, previewFrom, previewTo time.Time, hasPreview bool) string {
	label := fmt.Sprintf("%2d", d.Day())
	sel := m.picker.Selection()

	style := lipgloss.NewStyle()
	switch {
	case !sel.CheckIn.IsZero() && d.Equal(sel.CheckIn),
		!sel.CheckOut.IsZero() && d.Equal(sel.CheckOut):
		style = endStyle
	case m.picker.InSelectedSpan(d):
		style = spanStyle
	case hasPreview && !d.Before(previewFrom) && !d.After(previewTo):
		style = spanStyle
	case !m.picker.Selectable(d):
		if d.Before(daterange.Normalize(m.now())) {
			style = pastStyle
		} else {
			style = bookedStyle
		}
	}
	if d.Equal(m.cursor) {
		style = style.Inherit(cursorStyle).Underline(true).Bold(true)
	}
	return style.Render(label)
}

func (m appModel) viewInquiry() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Booking inquiry ready") + "\n\n")
	b.WriteString(fmt.Sprintf(" nights: %d (minimum %d)\n\n", m.inquiry.Nights, m.inquiry.MinNights))
	b.WriteString(" " + m.inquiry.Mailto + "\n\n")
	b.WriteString(helpStyle.Render(" open the link in your mail client · enter/esc: back") + "\n")
	return b.String()
}
