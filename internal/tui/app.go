// Package tui is the interactive terminal client for the availability
// service: browse apartments, walk the booking calendar with the two-click
// range selection, and end up with a prefilled inquiry mail link.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"stieregg/internal/domain/daterange"
	"stieregg/internal/picker"
)

type appState int

const (
	stateLoadingApartments appState = iota
	stateSelectApartment
	stateLoadingAvailability
	statePickDates
	stateComposingInquiry
	stateShowInquiry
	stateError
)

type appModel struct {
	client *Client

	state appState
	err   error

	width  int
	height int

	apartments    []ApartmentSummary
	apartmentList list.Model
	apartment     ApartmentSummary

	picker  *picker.Picker
	cursor  time.Time
	inquiry InquiryResult

	spinner spinner.Model
	now     func() time.Time
}

type apartmentsMsg struct {
	apartments []ApartmentSummary
	err        error
}

// availabilityMsg is tagged with the slug it was requested for so responses
// arriving after the user moved on to another apartment are dropped instead
// of applied.
type availabilityMsg struct {
	slug   string
	ranges []daterange.BookedRange
	err    error
}

type inquiryMsg struct {
	slug   string
	result InquiryResult
	err    error
}

type apartmentItem struct {
	apt ApartmentSummary
}

func (i apartmentItem) Title() string { return i.apt.Name.EN }
func (i apartmentItem) Description() string {
	return fmt.Sprintf("%s · sleeps %d", i.apt.Slug, i.apt.Capacity)
}
func (i apartmentItem) FilterValue() string { return strings.ToLower(i.apt.Name.EN) }

// New builds the TUI program model against the given API base URL.
func New(baseURL string) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Apartments"
	l.SetShowStatusBar(false)

	return appModel{
		client:        NewClient(baseURL),
		state:         stateLoadingApartments,
		apartmentList: l,
		spinner:       sp,
		now:           time.Now,
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchApartments())
}

func (m appModel) fetchApartments() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		apartments, err := m.client.Apartments(ctx)
		return apartmentsMsg{apartments: apartments, err: err}
	}
}

func (m appModel) fetchAvailability(slug string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		ranges, err := m.client.BookedRanges(ctx, slug)
		return availabilityMsg{slug: slug, ranges: ranges, err: err}
	}
}

func (m appModel) composeInquiry(slug string, sel picker.Selection) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		result, err := m.client.Inquiry(ctx, slug, sel.CheckIn, sel.CheckOut, 0)
		return inquiryMsg{slug: slug, result: result, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.apartmentList.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case apartmentsMsg:
		if msg.err != nil {
			m.state = stateError
			m.err = msg.err
			return m, nil
		}
		m.apartments = msg.apartments
		items := make([]list.Item, 0, len(msg.apartments))
		for _, apt := range msg.apartments {
			items = append(items, apartmentItem{apt: apt})
		}
		m.apartmentList.SetItems(items)
		m.state = stateSelectApartment
		return m, nil

	case availabilityMsg:
		// Stale-response guard: the user may have picked another
		// apartment while this fetch was in flight.
		if msg.slug != m.apartment.Slug || m.state != stateLoadingAvailability {
			return m, nil
		}
		if msg.err != nil {
			m.state = stateError
			m.err = msg.err
			return m, nil
		}
		m.picker = picker.New(msg.ranges, picker.WithClock(m.now))
		m.cursor = daterange.Normalize(m.now())
		m.picker.Hover(m.cursor)
		m.state = statePickDates
		return m, nil

	case inquiryMsg:
		if msg.slug != m.apartment.Slug || m.state != stateComposingInquiry {
			return m, nil
		}
		if msg.err != nil {
			m.state = stateError
			m.err = msg.err
			return m, nil
		}
		m.inquiry = msg.result
		m.state = stateShowInquiry
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case stateSelectApartment:
		switch msg.Type {
		case tea.KeyEnter:
			if item, ok := m.apartmentList.SelectedItem().(apartmentItem); ok {
				m.apartment = item.apt
				m.state = stateLoadingAvailability
				return m, tea.Batch(m.spinner.Tick, m.fetchAvailability(item.apt.Slug))
			}
		case tea.KeyEsc:
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.apartmentList, cmd = m.apartmentList.Update(msg)
		return m, cmd

	case statePickDates:
		return m.handlePickerKey(msg)

	case stateShowInquiry, stateError:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.state = stateSelectApartment
			m.err = nil
			return m, nil
		}
	}
	return m, nil
}

func (m appModel) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Dismissing the calendar with only a check-in drops it.
		m.picker.Close()
		m.state = stateSelectApartment
		return m, nil
	case "enter":
		if m.picker.Click(m.cursor) {
			m.state = stateComposingInquiry
			return m, tea.Batch(m.spinner.Tick, m.composeInquiry(m.apartment.Slug, m.picker.Selection()))
		}
		return m, nil
	case "left", "h":
		return m.moveCursor(-1), nil
	case "right", "l":
		return m.moveCursor(1), nil
	case "up", "k":
		return m.moveCursor(-7), nil
	case "down", "j":
		return m.moveCursor(7), nil
	case "pgup", "[":
		m.picker.PrevMonth()
		m.snapCursorToView()
		return m, nil
	case "pgdown", "]":
		m.picker.NextMonth()
		m.snapCursorToView()
		return m, nil
	}
	return m, nil
}

func (m appModel) moveCursor(days int) appModel {
	next := m.cursor.AddDate(0, 0, days)
	view := m.picker.ViewMonth()
	if monthIndex(next) < monthIndex(view) {
		if !m.picker.PrevMonth() {
			return m
		}
	} else if monthIndex(next) > monthIndex(view) {
		if !m.picker.NextMonth() {
			return m
		}
	}
	m.cursor = next
	m.picker.Hover(next)
	return m
}

func (m *appModel) snapCursorToView() {
	view := m.picker.ViewMonth()
	if monthIndex(m.cursor) != monthIndex(view) {
		m.cursor = view
		m.picker.Hover(view)
	}
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
