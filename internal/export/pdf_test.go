package export

import (
	"bytes"
	"errors"
	"testing"

	"voyager/internal/modules/travel"
)

func sampleItinerary() travel.TravelItinerary {
	return travel.TravelItinerary{
		Traveler: travel.Traveler{
			Destination: "São Paulo, Brazil",
			TravelDates: travel.TripDates{Start: "2024-06-01", End: "2024-06-02"},
		},
		Itinerary: []travel.DayPlan{
			{Date: "2024-06-01", Weather: "Sunny", Activities: []travel.Activity{
				{Time: "09:00", Activity: "Café da manhã", Location: "Vila Madalena", Cost: "$12", Transportation: "Walk"},
			}},
			{Date: "2024-06-02", Activities: []travel.Activity{{Time: "10:00", Activity: "MASP"}}},
		},
		PackingList: []string{"Light jacket", "Adapter"},
	}
}

func sampleBookings() travel.BookingResponse {
	points := 1500.0
	return travel.BookingResponse{Bookings: travel.BookingSimulation{
		Flights: []travel.FlightBooking{{
			Airline: "LATAM", FlightNumber: "LA8084", Class: "economy", Price: 640, LoyaltyPoints: &points,
			Departure: travel.FlightEndpoint{Airport: "LHR", Time: "2024-05-31T22:10:00Z"},
			Arrival:   travel.FlightEndpoint{Airport: "GRU", Time: "2024-06-01T06:30:00Z"},
		}},
		Hotels: []travel.HotelBooking{{
			Name: "Hotel Unique", Type: "boutique", CheckIn: "2024-06-01", CheckOut: "2024-06-02", RoomType: "Double", Price: 300,
		}},
		TotalCost:        940,
		EstimatedSavings: 45,
	}}
}

func TestRenderItineraryPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderItineraryPDF(&buf, sampleItinerary(), sampleBookings()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:8])
	}
	if buf.Len() < 1000 {
		t.Errorf("suspiciously small PDF (%d bytes)", buf.Len())
	}
}

func TestRenderItineraryPDF_WithoutBookings(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderItineraryPDF(&buf, sampleItinerary(), travel.BookingResponse{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
}

func TestRenderItineraryPDF_Empty(t *testing.T) {
	err := RenderItineraryPDF(&bytes.Buffer{}, travel.TravelItinerary{}, sampleBookings())
	if !errors.Is(err, ErrNothingToRender) {
		t.Fatalf("expected ErrNothingToRender, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		it   travel.TravelItinerary
		want string
	}{
		{sampleItinerary(), "itinerary-s-o-paulo-brazil-2024-06-01.pdf"},
		{travel.TravelItinerary{Traveler: travel.Traveler{Destination: "Paris", TravelDates: travel.TripDates{Start: "2024-06-01"}}}, "itinerary-paris-2024-06-01.pdf"},
		{travel.TravelItinerary{Traveler: travel.Traveler{Destination: "Kyoto"}, Itinerary: []travel.DayPlan{{Date: "2025-04-02"}}}, "itinerary-kyoto-2025-04-02.pdf"},
		{travel.TravelItinerary{}, "itinerary-trip.pdf"},
	}
	for _, tc := range cases {
		if got := Filename(tc.it); got != tc.want {
			t.Errorf("expected %s, got %s", tc.want, got)
		}
	}
}

func TestBookingReference(t *testing.T) {
	got := BookingReference(sampleItinerary(), sampleBookings())
	want := "VOYAGER|São Paulo, Brazil|2024-06-01|2024-06-02|LA8084|Hotel Unique|940.00"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
