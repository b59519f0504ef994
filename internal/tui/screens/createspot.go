package screens

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parkspot/parkspot/internal/geo"
	"github.com/parkspot/parkspot/internal/models"
	"github.com/parkspot/parkspot/internal/tui/common"
)

// Create form messages
type (
	// SpotFormSubmittedMsg carries the completed request, image bytes
	// included, ready for the repository.
	SpotFormSubmittedMsg struct {
		Request models.CreateParkingSpotRequest
	}

	// SpotFormClosedMsg reports that the form was cancelled.
	SpotFormClosedMsg struct{}

	// imageErrorMsg reports a failed image read so the form can unlock.
	imageErrorMsg struct {
		err error
	}
)

// Form field indexes
const (
	fieldTitle = iota
	fieldDescription
	fieldPrice
	fieldImagePath
	fieldCount
)

// CreateSpotModel collects the details for a new spot. The position and the
// synthesized address come from the map pick and are not editable here.
type CreateSpotModel struct {
	inputs [fieldCount]textinput.Model
	focus  int

	coords  models.Coordinates
	address string

	submitting bool
	errText    string
	keys       common.FormKeyMap
}

// NewCreateSpotModel builds the form for a picked position.
func NewCreateSpotModel(coords models.Coordinates, address string) CreateSpotModel {
	m := CreateSpotModel{
		coords:  coords,
		address: address,
		keys:    common.DefaultFormKeyMap(),
	}

	labels := [fieldCount]struct {
		placeholder string
		limit       int
	}{
		{"Spot title", 60},
		{"Short description", 140},
		{"Price per hour (₺)", 8},
		{"Path to a photo (optional)", 200},
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = labels[i].placeholder
		in.CharLimit = labels[i].limit
		in.Width = 40
		m.inputs[i] = in
	}
	m.inputs[fieldTitle].Focus()

	return m
}

// Submitting reports whether a submit is in flight.
func (m CreateSpotModel) Submitting() bool { return m.submitting }

// Unlock clears the in-flight state after a failed create, keeping the
// entered values so the user can retry.
func (m CreateSpotModel) Unlock(errText string) CreateSpotModel {
	m.submitting = false
	m.errText = errText
	return m
}

// request assembles the payload from the current field values. The price is
// parsed separately so a malformed number can be reported.
func (m CreateSpotModel) request() (models.CreateParkingSpotRequest, error) {
	req := models.CreateParkingSpotRequest{
		Coordinates: m.coords,
		Title:       strings.TrimSpace(m.inputs[fieldTitle].Value()),
		Description: strings.TrimSpace(m.inputs[fieldDescription].Value()),
		Address:     m.address,
	}

	priceText := strings.TrimSpace(m.inputs[fieldPrice].Value())
	if priceText != "" {
		price, err := strconv.ParseFloat(priceText, 64)
		if err != nil || price < 0 {
			return req, fmt.Errorf("price must be a non-negative number")
		}
		req.PricePerHour = price
	}

	if !req.IsComplete() {
		return req, fmt.Errorf("title and description are required")
	}
	return req, nil
}

// Update handles form input.
func (m CreateSpotModel) Update(msg tea.Msg) (CreateSpotModel, tea.Cmd) {
	switch msg := msg.(type) {
	case imageErrorMsg:
		return m.Unlock(fmt.Sprintf("could not read the photo: %v", msg.err)), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Close):
			if m.submitting {
				return m, nil
			}
			return m, func() tea.Msg { return SpotFormClosedMsg{} }

		case key.Matches(msg, m.keys.Tab):
			return m.moveFocus(1), nil

		case key.Matches(msg, m.keys.ShiftTab):
			return m.moveFocus(-1), nil

		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}

		if m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m CreateSpotModel) moveFocus(delta int) CreateSpotModel {
	if m.submitting {
		return m
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
	return m
}

func (m CreateSpotModel) submit() (CreateSpotModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	req, err := m.request()
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}

	m.submitting = true
	m.errText = ""

	imagePath := strings.TrimSpace(m.inputs[fieldImagePath].Value())
	return m, func() tea.Msg {
		if imagePath != "" {
			data, err := os.ReadFile(imagePath)
			if err != nil {
				return imageErrorMsg{err: err}
			}
			req.Image = data
			req.ImageName = fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(imagePath))
		}
		return SpotFormSubmittedMsg{Request: req}
	}
}

// View renders the form.
func (m CreateSpotModel) View() string {
	var b strings.Builder
	b.WriteString(common.TitleStyle.Render("Create Parking Spot"))
	b.WriteByte('\n')

	b.WriteString(common.TextStyle.Render(m.address))
	b.WriteByte('\n')
	b.WriteString(common.MutedTextStyle.Render(m.coords.String() + " · " + geo.LocationCode(m.coords)))
	b.WriteString("\n\n")

	for i := range m.inputs {
		style := common.InputStyle
		if i == m.focus {
			style = common.FocusedInputStyle
		}
		b.WriteString(style.Render(m.inputs[i].View()))
		b.WriteByte('\n')
	}

	if m.errText != "" {
		b.WriteString(common.ErrorTextStyle.Render(m.errText))
		b.WriteByte('\n')
	}

	switch {
	case m.submitting:
		b.WriteString(common.DisabledButtonStyle.Render("Saving..."))
	default:
		if _, err := m.request(); err != nil {
			b.WriteString(common.DisabledButtonStyle.Render("Create"))
		} else {
			b.WriteString(common.ButtonStyle.Render("Create"))
		}
	}
	b.WriteByte('\n')
	b.WriteString(common.FormatHelp("tab", "next field"))
	b.WriteString("  ")
	b.WriteString(common.FormatHelp("enter", "create"))
	b.WriteString("  ")
	b.WriteString(common.FormatHelp("esc", "cancel"))

	return common.FocusedBoxStyle.Render(b.String())
}
