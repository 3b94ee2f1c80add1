package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager/internal/modules/travel"
)

var fixtureDir = filepath.Join("..", "..", "fixtures")

func TestReadDocument_YAMLAndJSONAgree(t *testing.T) {
	var fromYAML travel.TravelPreferences
	require.NoError(t, readDocument(filepath.Join(fixtureDir, "preferences.yaml"), &fromYAML))
	assert.Equal(t, "Paris, France", fromYAML.Destination)
	assert.Equal(t, "2024-06-01", fromYAML.TravelDates.Arrival)
	assert.Equal(t, travel.PaceLotsOfRest, fromYAML.PersonalPreferences.TravelPace)
	assert.Equal(t, 2000.0, fromYAML.PersonalPreferences.Budget.Amount)
	require.NoError(t, fromYAML.Validate())

	b, err := json.Marshal(fromYAML)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	var fromJSON travel.TravelPreferences
	require.NoError(t, readDocument(path, &fromJSON))
	assert.Equal(t, fromYAML, fromJSON)
}

func TestNormalize_NonStringKeys(t *testing.T) {
	out, err := yamlToJSON([]byte("1: one\nnested:\n  - 2: two\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"1": "one", "nested": [{"2": "two"}]}`, string(out))
}

func TestReadBookings_BothShapes(t *testing.T) {
	wrapped, err := readBookings(filepath.Join(fixtureDir, "booking-response.json"))
	require.NoError(t, err)
	assert.Equal(t, "AF1234", wrapped.Bookings.Flights[0].FlightNumber)

	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hotels:\n  - name: Hotel Unique\n    price: 300\ntotalCost: 300\n"), 0o644))
	bare, err := readBookings(path)
	require.NoError(t, err)
	assert.Equal(t, "Hotel Unique", bare.Bookings.Hotels[0].Name)
	assert.Equal(t, 300.0, bare.Bookings.TotalCost)
}

func TestGenerateAndExportCommands(t *testing.T) {
	viper.Set("ai.provider", "fixture")
	viper.Set("ai.fixture_dir", fixtureDir)
	viper.Set("log.level", "error")
	t.Cleanup(viper.Reset)

	cmd := newGenerateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--prefs", filepath.Join(fixtureDir, "preferences.yaml")})
	require.NoError(t, cmd.Execute())

	var it travel.TravelItinerary
	require.NoError(t, json.Unmarshal(out.Bytes(), &it))
	assert.Len(t, it.Itinerary, 3)
	assert.Equal(t, "2024-06-03", it.Traveler.TravelDates.End)

	dir := t.TempDir()
	itPath := filepath.Join(dir, "it.json")
	require.NoError(t, os.WriteFile(itPath, out.Bytes(), 0o644))

	exp := newExportCmd()
	var printed bytes.Buffer
	exp.SetOut(&printed)
	exp.SetArgs([]string{"--itinerary", itPath, "--bookings", filepath.Join(fixtureDir, "booking-response.json"), "--out", dir})
	require.NoError(t, exp.Execute())

	pdf, err := os.ReadFile(filepath.Join(dir, "itinerary-paris-france-2024-06-01.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Contains(t, printed.String(), "itinerary-paris-france-2024-06-01.pdf")
}

func TestGenerateCommand_InvalidPreferences(t *testing.T) {
	viper.Set("ai.provider", "fixture")
	viper.Set("ai.fixture_dir", fixtureDir)
	viper.Set("log.level", "error")
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("destination: ''\n"), 0o644))
	cmd := newGenerateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--prefs", path})
	err := cmd.Execute()
	var verr *travel.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "destination", verr.Field)
}
