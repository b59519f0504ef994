package screens

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkspot/parkspot/internal/models"
)

func filledForm(t *testing.T) CreateSpotModel {
	t.Helper()
	m := NewCreateSpotModel(models.NewCoordinates(41.01, 28.98), "Parking spot at 41.0100, 28.9800")
	m.inputs[fieldTitle].SetValue("Covered Garage")
	m.inputs[fieldDescription].SetValue("Next to the bakery")
	m.inputs[fieldPrice].SetValue("25")
	return m
}

func TestCreateSpot_SubmitBuildsRequest(t *testing.T) {
	m := filledForm(t)

	m, cmd := m.submit()
	require.NotNil(t, cmd)
	require.True(t, m.Submitting())

	msg, ok := cmd().(SpotFormSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, "Covered Garage", msg.Request.Title)
	assert.Equal(t, 25.0, msg.Request.PricePerHour)
	assert.Equal(t, "Parking spot at 41.0100, 28.9800", msg.Request.Address)
	assert.Equal(t, models.NewCoordinates(41.01, 28.98), msg.Request.Coordinates)
	assert.Empty(t, msg.Request.Image)
}

func TestCreateSpot_IncompleteFormBlocked(t *testing.T) {
	m := NewCreateSpotModel(models.FallbackCoordinates, "somewhere")
	m.inputs[fieldTitle].SetValue("Title only")

	m, cmd := m.submit()
	assert.Nil(t, cmd)
	assert.False(t, m.Submitting())
	assert.Contains(t, m.errText, "required")
}

func TestCreateSpot_RejectsMalformedPrice(t *testing.T) {
	m := filledForm(t)
	m.inputs[fieldPrice].SetValue("cheap")

	m, cmd := m.submit()
	assert.Nil(t, cmd)
	assert.Contains(t, m.errText, "price")

	m.inputs[fieldPrice].SetValue("-5")
	m, cmd = m.submit()
	assert.Nil(t, cmd)
	assert.Contains(t, m.errText, "price")
}

func TestCreateSpot_EmptyPriceIsFree(t *testing.T) {
	m := filledForm(t)
	m.inputs[fieldPrice].SetValue("")

	_, cmd := m.submit()
	require.NotNil(t, cmd)

	msg := cmd().(SpotFormSubmittedMsg)
	assert.Zero(t, msg.Request.PricePerHour)
}

func TestCreateSpot_SubmitReadsImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spot.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0o600))

	m := filledForm(t)
	m.inputs[fieldImagePath].SetValue(path)

	_, cmd := m.submit()
	require.NotNil(t, cmd)

	msg, ok := cmd().(SpotFormSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, []byte("jpeg bytes"), msg.Request.Image)
	assert.Regexp(t, `^\d+-spot\.jpg$`, msg.Request.ImageName)
}

func TestCreateSpot_MissingImageUnlocksForm(t *testing.T) {
	m := filledForm(t)
	m.inputs[fieldImagePath].SetValue(filepath.Join(t.TempDir(), "missing.jpg"))

	m, cmd := m.submit()
	require.NotNil(t, cmd)
	require.True(t, m.Submitting())

	errMsg, ok := cmd().(imageErrorMsg)
	require.True(t, ok)

	m, _ = m.Update(errMsg)
	assert.False(t, m.Submitting())
	assert.Contains(t, m.errText, "photo")
	// The entered values survive the failure.
	assert.Equal(t, "Covered Garage", m.inputs[fieldTitle].Value())
}

func TestCreateSpot_InFlightSubmitIgnoresInput(t *testing.T) {
	m := filledForm(t)
	m, _ = m.submit()
	require.True(t, m.Submitting())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd, "cancel is blocked while saving")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Equal(t, "Covered Garage", m.inputs[fieldTitle].Value())
}

func TestCreateSpot_EscCloses(t *testing.T) {
	m := NewCreateSpotModel(models.FallbackCoordinates, "somewhere")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, SpotFormClosedMsg{}, cmd())
}

func TestCreateSpot_TabCyclesFocus(t *testing.T) {
	m := NewCreateSpotModel(models.FallbackCoordinates, "somewhere")
	assert.Equal(t, fieldTitle, m.focus)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldDescription, m.focus)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldImagePath, m.focus)
}
