// README: Prompt builders for itinerary generation, revision and booking simulation.
package travel

import (
	"encoding/json"
	"fmt"
	"strings"

	"voyager/internal/ai"
)

const (
	advisorPersona  = "You are a highly personalized AI Travel Advisor that creates detailed travel itineraries."
	bookingPersona  = "You are a travel booking simulation system that creates realistic booking scenarios."
	revisionPersona = "You are a travel itinerary modification system that adjusts plans based on user feedback."
)

const itinerarySchema = `{
  "traveler": {
    "destination": string,
    "travelDates": { "start": "YYYY-MM-DD", "end": "YYYY-MM-DD" },
    "preferences": {
      "likes": string[], "dislikes": string[], "dietaryRestrictions": string,
      "energyLevel": string, "travelPace": string, "budget": number,
      "hotelPreferences": { "type": string, "roomPreferences": string[] },
      "flightPreferences": { "class": string, "seatPreferences": string },
      "transportationPreferences": { "preferredMethods": string[], "comfortVsCost": string },
      "weatherSensitivity": string, "packingHelpNeeded": boolean
    }
  },
  "itinerary": [
    {
      "date": "YYYY-MM-DD",
      "weather": string,
      "activities": [
        { "time": string, "activity": string, "location": string, "cost": string, "transportation": string }
      ]
    }
  ],
  "packingList": string[],
  "budgetBreakdown": {
    "Hotel": string, "Dining": string, "Activities": string,
    "Transportation": string, "Miscellaneous": string, "Total Estimated Cost": string
  }
}`

const bookingSchema = `{
  "flights": [
    {
      "airline": string, "flightNumber": string,
      "departure": { "airport": string, "time": string },
      "arrival": { "airport": string, "time": string },
      "class": string, "price": number, "loyaltyPoints": number
    }
  ],
  "hotels": [
    {
      "name": string, "type": string, "checkIn": "YYYY-MM-DD", "checkOut": "YYYY-MM-DD",
      "roomType": string, "price": number, "loyaltyPoints": number
    }
  ],
  "totalCost": number,
  "estimatedSavings": number
}`

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func dietaryList(rs []DietaryRestriction) string {
	if len(rs) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		if r.Details != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", r.Type, r.Details))
		} else {
			parts = append(parts, r.Type)
		}
	}
	return strings.Join(parts, ", ")
}

func generationPrompt(p TravelPreferences, days []string) ai.Prompt {
	pp := p.PersonalPreferences
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed, personalized travel itinerary for a trip to %s.\n\n", p.Destination)
	fmt.Fprintf(&b, "Travel dates: %s to %s (%d days)\n\n", p.TravelDates.Arrival, p.TravelDates.Departure, len(days))

	b.WriteString("Personal preferences:\n")
	fmt.Fprintf(&b, "- Likes: %s\n", listOrNone(pp.Activities.Likes))
	fmt.Fprintf(&b, "- Dislikes: %s\n", listOrNone(pp.Activities.Dislikes))
	fmt.Fprintf(&b, "- Dietary restrictions: %s\n", dietaryList(pp.DietaryRestrictions))
	fmt.Fprintf(&b, "- Energy level: %s\n", pp.EnergyLevel)
	fmt.Fprintf(&b, "- Travel pace: %s\n", pp.TravelPace)
	fmt.Fprintf(&b, "- Budget: %g %s (%s)\n\n", pp.Budget.Amount, pp.Budget.Currency, pp.Budget.Type)

	b.WriteString("Hotel preferences:\n")
	fmt.Fprintf(&b, "- Type: %s\n", orNone(p.HotelPreferences.Type))
	fmt.Fprintf(&b, "- Loyalty programs: %s\n", listOrNone(p.HotelPreferences.LoyaltyPrograms))
	fmt.Fprintf(&b, "- Room preferences: %s\n\n", listOrNone(p.HotelPreferences.RoomPreferences))

	b.WriteString("Flight preferences:\n")
	fmt.Fprintf(&b, "- Class: %s\n", orNone(p.FlightPreferences.Class))
	fmt.Fprintf(&b, "- Airline memberships: %s\n", listOrNone(p.FlightPreferences.AirlineMemberships))
	fmt.Fprintf(&b, "- Seat preferences: %s\n\n", listOrNone(p.FlightPreferences.SeatPreferences))

	b.WriteString("Transportation preferences:\n")
	fmt.Fprintf(&b, "- Preferred methods: %s\n", listOrNone(p.TransportationPreferences.PreferredMethods))
	fmt.Fprintf(&b, "- Comfort vs cost: %s\n\n", orNone(string(p.TransportationPreferences.ComfortVsCost)))

	b.WriteString("Other information:\n")
	fmt.Fprintf(&b, "- Weather sensitivity: %s\n", orNone(p.OtherInfo.WeatherSensitivity))
	fmt.Fprintf(&b, "- Packing help needed: %s\n\n", yesNo(p.OtherInfo.PackingHelpNeeded))

	fmt.Fprintf(&b, "The \"itinerary\" array must contain exactly %d entries, one per date in order: %s.\n",
		len(days), strings.Join(days, ", "))
	b.WriteString("Include a weather forecast for each day, timed activities with locations, costs and transportation, ")
	b.WriteString("a packing list and a budget breakdown.\n\n")
	b.WriteString("Respond with a single JSON object of this shape:\n")
	b.WriteString(itinerarySchema)

	return ai.Prompt{Task: ai.TaskGenerateItinerary, System: advisorPersona, User: b.String()}
}

func describeModification(m Modification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d: %s", m.Day+1, strings.ReplaceAll(string(m.Type), "_", " "))
	d := m.Details
	for _, idx := range []struct {
		label string
		v     *int
	}{
		{"activity", d.ActivityIndex}, {"meal", d.MealIndex}, {"transportation", d.TransportationIndex},
	} {
		if idx.v != nil {
			fmt.Fprintf(&b, "; %s #%d", idx.label, *idx.v+1)
		}
	}
	for _, f := range []struct{ label, v string }{
		{"new time", d.NewTime}, {"new location", d.NewLocation}, {"new description", d.NewDescription},
		{"new restaurant", d.NewRestaurant}, {"new cuisine", d.NewCuisine}, {"new method", d.NewMethod},
		{"details", d.OtherDetails},
	} {
		if f.v != "" {
			fmt.Fprintf(&b, "; %s: %s", f.label, f.v)
		}
	}
	return b.String()
}

func revisionPrompt(it TravelItinerary, f ItineraryFeedback) (ai.Prompt, error) {
	current, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		return ai.Prompt{}, fmt.Errorf("encode itinerary: %w", err)
	}
	feedback, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return ai.Prompt{}, fmt.Errorf("encode feedback: %w", err)
	}

	var b strings.Builder
	b.WriteString("Modify the following travel itinerary based on the user's feedback.\n\n")
	b.WriteString("Current itinerary:\n")
	b.Write(current)
	b.WriteString("\n\nRequested changes:\n")
	for _, m := range f.Modifications {
		fmt.Fprintf(&b, "- %s\n", describeModification(m))
	}
	if f.GeneralFeedback != "" {
		fmt.Fprintf(&b, "- General feedback: %s\n", f.GeneralFeedback)
	}
	if a := f.BudgetAdjustment; a != nil {
		fmt.Fprintf(&b, "- Budget: %s by %g %s\n", a.Type, a.Amount, a.Currency)
	}
	if a := f.TimeAdjustment; a != nil {
		fmt.Fprintf(&b, "- Timing: move activities %g %s %s\n", a.Amount, a.Unit, a.Type)
	}
	b.WriteString("\nFeedback as submitted (day indices are 0-based):\n")
	b.Write(feedback)
	fmt.Fprintf(&b, "\n\nReturn the complete updated itinerary with the same %d days and dates, ", len(it.Itinerary))
	b.WriteString("keeping everything the feedback does not touch. ")
	b.WriteString("Respond with a single JSON object of this shape:\n")
	b.WriteString(itinerarySchema)

	return ai.Prompt{Task: ai.TaskReviseItinerary, System: revisionPersona, User: b.String()}, nil
}

func bookingPrompt(it TravelItinerary, prefs *TravelPreferences) ai.Prompt {
	echo := it.Traveler.Preferences
	flightClass, hotelType := echo.FlightPreferences.Class, echo.HotelPreferences.Type
	airlines, loyalty := "None", "None"
	if prefs != nil {
		if prefs.FlightPreferences.Class != "" {
			flightClass = prefs.FlightPreferences.Class
		}
		if prefs.HotelPreferences.Type != "" {
			hotelType = prefs.HotelPreferences.Type
		}
		airlines = listOrNone(prefs.FlightPreferences.AirlineMemberships)
		loyalty = listOrNone(prefs.HotelPreferences.LoyaltyPrograms)
	}

	var b strings.Builder
	b.WriteString("Simulate flight and hotel bookings for this travel itinerary.\n\n")
	fmt.Fprintf(&b, "Destination: %s\n", it.Traveler.Destination)
	fmt.Fprintf(&b, "Dates: %s to %s\n\n", it.Traveler.TravelDates.Start, it.Traveler.TravelDates.End)
	b.WriteString("Flight preferences:\n")
	fmt.Fprintf(&b, "- Class: %s\n", orNone(flightClass))
	fmt.Fprintf(&b, "- Airline memberships: %s\n\n", airlines)
	b.WriteString("Hotel preferences:\n")
	fmt.Fprintf(&b, "- Type: %s\n", orNone(hotelType))
	fmt.Fprintf(&b, "- Loyalty programs: %s\n\n", loyalty)
	b.WriteString("Include realistic airlines, flight numbers, airports, times and prices, loyalty points where ")
	b.WriteString("memberships apply, and the estimated savings from those memberships.\n")
	b.WriteString("Respond with a single JSON object of this shape:\n")
	b.WriteString(bookingSchema)

	return ai.Prompt{Task: ai.TaskSimulateBookings, System: bookingPersona, User: b.String()}
}
