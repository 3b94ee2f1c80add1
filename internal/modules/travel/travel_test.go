// README: Model, validation and state machine tests (no generation service involved).
package travel

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTripDays(t *testing.T) {
	days, err := TripDays(TravelDates{Arrival: "2024-06-01", Departure: "2024-06-03"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2024-06-01", "2024-06-02", "2024-06-03"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d: expected %s, got %s", i, want[i], days[i])
		}
	}

	// same-day trip
	days, err = TripDays(TravelDates{Arrival: "2024-02-28", Departure: "2024-02-28"})
	if err != nil || len(days) != 1 {
		t.Fatalf("expected one day, got %v (err %v)", days, err)
	}

	// month and leap-year boundaries
	days, err = TripDays(TravelDates{Arrival: "2024-02-28", Departure: "2024-03-01"})
	if err != nil || len(days) != 3 || days[1] != "2024-02-29" {
		t.Fatalf("unexpected leap-year span %v (err %v)", days, err)
	}
}

func TestTripDays_Invalid(t *testing.T) {
	cases := []TravelDates{
		{Arrival: "2024-06-03", Departure: "2024-06-01"},
		{Arrival: "June 1", Departure: "2024-06-01"},
		{Arrival: "2024-06-01", Departure: ""},
		{Arrival: "2024-01-01", Departure: "2024-12-31"},
		{Arrival: "2024-06-01garbage", Departure: "2024-06-03"},
		{Arrival: "2024-06-01", Departure: "2024-06-03T10:00"},
	}
	for _, tc := range cases {
		_, err := TripDays(tc)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%+v: expected ValidationError, got %v", tc, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	valid := map[string]string{
		"2024-06-01":                "2024-06-01",
		" 2024-06-01 ":              "2024-06-01",
		"2024-06-01T10:00:00Z":      "2024-06-01",
		"2024-06-01T23:30:00-05:00": "2024-06-01",
	}
	for in, want := range valid {
		d, err := ParseDate(in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", in, err)
			continue
		}
		if got := d.Format(dateLayout); got != want {
			t.Errorf("%q: got %s, want %s", in, got, want)
		}
	}

	for _, in := range []string{"", "Day 1", "2024-06-01garbage", "2024-06-01T10:00", "2024-6-1", "2024-02-30"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("%q: expected an error", in)
		}
	}
}

func TestPreferencesValidate(t *testing.T) {
	base := parisPreferences()
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid preferences, got %v", err)
	}

	cases := []struct {
		name  string
		edit  func(*TravelPreferences)
		field string
	}{
		{"blank destination", func(p *TravelPreferences) { p.Destination = "  " }, "destination"},
		{"energy", func(p *TravelPreferences) { p.PersonalPreferences.EnergyLevel = "frantic" }, "personalPreferences.energyLevel"},
		{"pace", func(p *TravelPreferences) { p.PersonalPreferences.TravelPace = "" }, "personalPreferences.travelPace"},
		{"budget type", func(p *TravelPreferences) { p.PersonalPreferences.Budget.Type = "weekly" }, "personalPreferences.budget.type"},
		{"budget amount", func(p *TravelPreferences) { p.PersonalPreferences.Budget.Amount = -0.01 }, "personalPreferences.budget.amount"},
		{"dietary type", func(p *TravelPreferences) {
			p.PersonalPreferences.DietaryRestrictions = []DietaryRestriction{{Type: ""}}
		}, "personalPreferences.dietaryRestrictions[0].type"},
		{"comfort", func(p *TravelPreferences) { p.TransportationPreferences.ComfortVsCost = "speed" }, "transportationPreferences.comfortVsCost"},
		{"dates", func(p *TravelPreferences) { p.TravelDates.Departure = "2024-05-01" }, "travelDates"},
	}
	for _, tc := range cases {
		p := parisPreferences()
		tc.edit(&p)
		err := p.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
			continue
		}
		if verr.Field != tc.field {
			t.Errorf("%s: expected field %s, got %s", tc.name, tc.field, verr.Field)
		}
	}

	// optional sections may be left out entirely
	p := parisPreferences()
	p.HotelPreferences = HotelPreference{}
	p.FlightPreferences = FlightPreference{}
	p.TransportationPreferences = TransportationPreference{}
	if err := p.Validate(); err != nil {
		t.Errorf("expected optional sections to be optional, got %v", err)
	}
}

func TestTextAndAmountDecodeLooseJSON(t *testing.T) {
	var doc struct {
		A Text   `json:"a"`
		B Text   `json:"b"`
		C Text   `json:"c"`
		D Text   `json:"d"`
		E Amount `json:"e"`
		F Amount `json:"f"`
		G Amount `json:"g"`
	}
	in := `{"a": "free", "b": 12.5, "c": ["aisle", "window"], "d": null, "e": 1500, "f": "$1,250.50 USD", "g": "n/a"}`
	if err := json.Unmarshal([]byte(in), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.A != "free" || doc.B != "12.5" || doc.C != "aisle, window" || doc.D != "" {
		t.Errorf("unexpected text values %+v", doc)
	}
	if doc.E != 1500 || doc.F != 1250.5 || doc.G != 0 {
		t.Errorf("unexpected amounts %v %v %v", doc.E, doc.F, doc.G)
	}
}

func TestCloneIsDeep(t *testing.T) {
	it := parsedParis(t)
	c := it.Clone()
	c.Itinerary[0].Activities[0].Activity = "changed"
	c.PackingList[0] = "changed"
	c.Traveler.Preferences.Likes[0] = "changed"
	if it.Itinerary[0].Activities[0].Activity == "changed" || it.PackingList[0] == "changed" || it.Traveler.Preferences.Likes[0] == "changed" {
		t.Fatal("clone shares memory with the original")
	}
}

func TestNextState(t *testing.T) {
	cases := []struct {
		from State
		ev   Event
		want State
		ok   bool
	}{
		// happy path through the whole flow
		{StateIdle, EventGenerate, StateGenerating, true},
		{StateGenerating, EventSucceeded, StateItineraryReady, true},
		{StateItineraryReady, EventRevise, StateRevising, true},
		{StateRevising, EventSucceeded, StateItineraryReady, true},
		{StateItineraryReady, EventBook, StateBooking, true},
		{StateBooking, EventSucceeded, StateBookingConfirmed, true},
		// failures and manual retries
		{StateGenerating, EventFailed, StateGenerationFailed, true},
		{StateGenerationFailed, EventGenerate, StateGenerating, true},
		{StateRevising, EventFailed, StateRevisionFailed, true},
		{StateRevisionFailed, EventRevise, StateRevising, true},
		{StateBooking, EventFailed, StateBookingFailed, true},
		{StateBookingFailed, EventBook, StateBooking, true},
		// navigating away
		{StateBookingConfirmed, EventReset, StateIdle, true},
		{StateGenerating, EventReset, StateIdle, true},
		{"", EventGenerate, StateGenerating, true},
		// out of order
		{StateIdle, EventRevise, StateIdle, false},
		{StateIdle, EventBook, StateIdle, false},
		{StateGenerating, EventGenerate, StateGenerating, false},
		{StateBookingConfirmed, EventRevise, StateBookingConfirmed, false},
		{StateGenerationFailed, EventBook, StateGenerationFailed, false},
	}
	for _, tc := range cases {
		got, err := NextState(tc.from, tc.ev)
		if tc.ok && err != nil {
			t.Errorf("%s on %s: unexpected error %v", tc.from, tc.ev, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s on %s: expected ErrInvalidTransition, got %v", tc.from, tc.ev, err)
		}
		want := tc.want
		if got != want {
			t.Errorf("%s on %s: expected %s, got %s", tc.from, tc.ev, want, got)
		}
	}
}
