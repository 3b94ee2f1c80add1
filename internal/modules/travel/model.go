// README: Travel domain model: preferences, itinerary, feedback and booking simulation.
package travel

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrGeneration covers an unreachable generation service, empty or unparsable replies and
	// replies that break the itinerary invariants.
	ErrGeneration = errors.New("itinerary generation failed")
)

// ValidationError describes a caller-supplied value that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

type EnergyLevel string

const (
	EnergyRelaxed  EnergyLevel = "relaxed"
	EnergyBalanced EnergyLevel = "balanced"
	EnergyBusy     EnergyLevel = "busy"
)

type TravelPace string

const (
	PaceLotsOfRest     TravelPace = "lots of rest"
	PacePackedSchedule TravelPace = "packed schedule"
)

type BudgetType string

const (
	BudgetTotal  BudgetType = "total"
	BudgetPerDay BudgetType = "per-day"
)

type ComfortVsCost string

const (
	PreferComfort ComfortVsCost = "comfort"
	PreferCost    ComfortVsCost = "cost"
)

type TravelDates struct {
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
}

type ActivityPreference struct {
	Likes    []string `json:"likes"`
	Dislikes []string `json:"dislikes"`
}

type DietaryRestriction struct {
	Type    string `json:"type"`
	Details string `json:"details,omitempty"`
}

type Budget struct {
	Type     BudgetType `json:"type"`
	Amount   float64    `json:"amount"`
	Currency string     `json:"currency"`
}

type PersonalPreferences struct {
	Activities          ActivityPreference   `json:"activities"`
	DietaryRestrictions []DietaryRestriction `json:"dietaryRestrictions"`
	EnergyLevel         EnergyLevel          `json:"energyLevel"`
	TravelPace          TravelPace           `json:"travelPace"`
	Budget              Budget               `json:"budget"`
}

type HotelPreference struct {
	Type            string   `json:"type"`
	LoyaltyPrograms []string `json:"loyaltyPrograms,omitempty"`
	RoomPreferences []string `json:"roomPreferences,omitempty"`
}

type FlightPreference struct {
	Class              string   `json:"class"`
	AirlineMemberships []string `json:"airlineMemberships,omitempty"`
	SeatPreferences    []string `json:"seatPreferences,omitempty"`
}

type TransportationPreference struct {
	PreferredMethods []string      `json:"preferredMethods"`
	ComfortVsCost    ComfortVsCost `json:"comfortVsCost"`
}

type OtherInfo struct {
	WeatherSensitivity string `json:"weatherSensitivity,omitempty"`
	PackingHelpNeeded  bool   `json:"packingHelpNeeded"`
}

// TravelPreferences is the full form submission. Services receive it by value.
type TravelPreferences struct {
	Destination               string                   `json:"destination"`
	TravelDates               TravelDates              `json:"travelDates"`
	PersonalPreferences       PersonalPreferences      `json:"personalPreferences"`
	HotelPreferences          HotelPreference          `json:"hotelPreferences"`
	FlightPreferences         FlightPreference         `json:"flightPreferences"`
	TransportationPreferences TransportationPreference `json:"transportationPreferences"`
	OtherInfo                 OtherInfo                `json:"otherInfo"`
}

// Text is a display string that tolerates numbers, lists and null in generated JSON.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case float64:
		*t = Text(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(x))
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			} else {
				parts = append(parts, strings.TrimSpace(string(mustJSON(item))))
			}
		}
		*t = Text(strings.Join(parts, ", "))
	default:
		*t = Text(mustJSON(x))
	}
	return nil
}

// Amount is a numeric figure that also accepts "1500" or "1500 USD" strings.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*a = Amount(x)
	case string:
		*a = Amount(leadingNumber(x))
	default:
		*a = 0
	}
	return nil
}

type TripDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type StayPreferences struct {
	Type            string   `json:"type"`
	RoomPreferences []string `json:"roomPreferences,omitempty"`
}

type SeatingPreferences struct {
	Class           string `json:"class"`
	SeatPreferences Text   `json:"seatPreferences,omitempty"`
}

// TravelerPreferences is the flattened echo of the preferences inside an itinerary.
type TravelerPreferences struct {
	Likes                     []string                 `json:"likes"`
	Dislikes                  []string                 `json:"dislikes"`
	DietaryRestrictions       Text                     `json:"dietaryRestrictions"`
	EnergyLevel               string                   `json:"energyLevel"`
	TravelPace                string                   `json:"travelPace"`
	Budget                    Amount                   `json:"budget"`
	HotelPreferences          StayPreferences          `json:"hotelPreferences"`
	FlightPreferences         SeatingPreferences       `json:"flightPreferences"`
	TransportationPreferences TransportationPreference `json:"transportationPreferences"`
	WeatherSensitivity        Text                     `json:"weatherSensitivity,omitempty"`
	PackingHelpNeeded         bool                     `json:"packingHelpNeeded"`
}

type Traveler struct {
	Destination string              `json:"destination"`
	TravelDates TripDates           `json:"travelDates"`
	Preferences TravelerPreferences `json:"preferences"`
}

type Activity struct {
	Time           Text `json:"time"`
	Activity       Text `json:"activity"`
	Location       Text `json:"location,omitempty"`
	Cost           Text `json:"cost"`
	Transportation Text `json:"transportation"`
}

type DayPlan struct {
	Date       string     `json:"date"`
	Weather    Text       `json:"weather"`
	Activities []Activity `json:"activities"`
}

// BudgetBreakdown keeps the fixed display keys of the generated plan.
type BudgetBreakdown struct {
	Hotel              Text `json:"Hotel"`
	Dining             Text `json:"Dining"`
	Activities         Text `json:"Activities"`
	Transportation     Text `json:"Transportation"`
	Miscellaneous      Text `json:"Miscellaneous"`
	TotalEstimatedCost Text `json:"Total Estimated Cost"`
}

type TravelItinerary struct {
	Traveler        Traveler        `json:"traveler"`
	Itinerary       []DayPlan       `json:"itinerary"`
	PackingList     []string        `json:"packingList"`
	BudgetBreakdown BudgetBreakdown `json:"budgetBreakdown"`
}

// Clone returns a deep copy so revisions never alias the caller's itinerary.
func (it TravelItinerary) Clone() TravelItinerary {
	out := it
	out.Traveler.Preferences.Likes = cloneStrings(it.Traveler.Preferences.Likes)
	out.Traveler.Preferences.Dislikes = cloneStrings(it.Traveler.Preferences.Dislikes)
	out.Traveler.Preferences.HotelPreferences.RoomPreferences = cloneStrings(it.Traveler.Preferences.HotelPreferences.RoomPreferences)
	out.Traveler.Preferences.TransportationPreferences.PreferredMethods = cloneStrings(it.Traveler.Preferences.TransportationPreferences.PreferredMethods)
	out.PackingList = cloneStrings(it.PackingList)
	if it.Itinerary != nil {
		out.Itinerary = make([]DayPlan, len(it.Itinerary))
		for i, day := range it.Itinerary {
			out.Itinerary[i] = day
			if day.Activities != nil {
				out.Itinerary[i].Activities = append([]Activity(nil), day.Activities...)
			}
		}
	}
	return out
}

type ModificationType string

const (
	ModAddActivity          ModificationType = "add_activity"
	ModRemoveActivity       ModificationType = "remove_activity"
	ModModifyActivity       ModificationType = "modify_activity"
	ModAddMeal              ModificationType = "add_meal"
	ModRemoveMeal           ModificationType = "remove_meal"
	ModModifyMeal           ModificationType = "modify_meal"
	ModChangeTransportation ModificationType = "change_transportation"
	ModAdjustTiming         ModificationType = "adjust_timing"
	ModChangeLocation       ModificationType = "change_location"
	ModOther                ModificationType = "other"
)

var modificationTypes = map[ModificationType]bool{
	ModAddActivity: true, ModRemoveActivity: true, ModModifyActivity: true,
	ModAddMeal: true, ModRemoveMeal: true, ModModifyMeal: true,
	ModChangeTransportation: true, ModAdjustTiming: true, ModChangeLocation: true, ModOther: true,
}

type ModificationDetails struct {
	ActivityIndex       *int   `json:"activityIndex,omitempty"`
	MealIndex           *int   `json:"mealIndex,omitempty"`
	TransportationIndex *int   `json:"transportationIndex,omitempty"`
	NewTime             string `json:"newTime,omitempty"`
	NewLocation         string `json:"newLocation,omitempty"`
	NewDescription      string `json:"newDescription,omitempty"`
	NewRestaurant       string `json:"newRestaurant,omitempty"`
	NewCuisine          string `json:"newCuisine,omitempty"`
	NewMethod           string `json:"newMethod,omitempty"`
	OtherDetails        string `json:"otherDetails,omitempty"`
}

// Modification targets one day-entry by its 0-based index.
type Modification struct {
	Type    ModificationType    `json:"type"`
	Day     int                 `json:"day"`
	Details ModificationDetails `json:"details"`
}

type BudgetAdjustment struct {
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type TimeAdjustment struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type ItineraryFeedback struct {
	Modifications    []Modification    `json:"modifications"`
	GeneralFeedback  string            `json:"generalFeedback,omitempty"`
	BudgetAdjustment *BudgetAdjustment `json:"budgetAdjustment,omitempty"`
	TimeAdjustment   *TimeAdjustment   `json:"timeAdjustment,omitempty"`
}

type FlightEndpoint struct {
	Airport string `json:"airport"`
	Time    string `json:"time"`
}

type FlightBooking struct {
	Airline       string         `json:"airline"`
	FlightNumber  string         `json:"flightNumber"`
	Departure     FlightEndpoint `json:"departure"`
	Arrival       FlightEndpoint `json:"arrival"`
	Class         string         `json:"class"`
	Price         float64        `json:"price"`
	LoyaltyPoints *float64       `json:"loyaltyPoints,omitempty"`
}

type HotelBooking struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	CheckIn       string   `json:"checkIn"`
	CheckOut      string   `json:"checkOut"`
	RoomType      string   `json:"roomType"`
	Price         float64  `json:"price"`
	LoyaltyPoints *float64 `json:"loyaltyPoints,omitempty"`
}

type BookingSimulation struct {
	Flights          []FlightBooking `json:"flights"`
	Hotels           []HotelBooking  `json:"hotels"`
	TotalCost        float64         `json:"totalCost"`
	EstimatedSavings float64         `json:"estimatedSavings"`
}

// BookingResponse is the wire shape of a confirmed simulation.
type BookingResponse struct {
	Bookings BookingSimulation `json:"bookings"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func leadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return 0
	}
	end := start
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || s[end] == ',') {
		end++
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(s[start:end], ",", ""), 64)
	if err != nil {
		return 0
	}
	return n
}
