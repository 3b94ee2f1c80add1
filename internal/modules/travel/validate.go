// README: Structural validation of preferences, feedback and generated documents.
package travel

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// maxTripDays bounds the prompt size; longer trips are rejected up front.
const maxTripDays = 60

// ParseDate accepts exactly YYYY-MM-DD or a full RFC 3339 timestamp.
// A timestamp keeps the calendar date written in its own offset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// TripDays returns every calendar date from arrival to departure, both inclusive.
func TripDays(dates TravelDates) ([]string, error) {
	arrival, err := ParseDate(dates.Arrival)
	if err != nil {
		return nil, invalid("travelDates.arrival", "must be a YYYY-MM-DD date")
	}
	departure, err := ParseDate(dates.Departure)
	if err != nil {
		return nil, invalid("travelDates.departure", "must be a YYYY-MM-DD date")
	}
	if departure.Before(arrival) {
		return nil, invalid("travelDates", "departure must not be before arrival")
	}
	span := int(departure.Sub(arrival).Hours()/24) + 1
	if span > maxTripDays {
		return nil, invalid("travelDates", "trips are limited to %d days", maxTripDays)
	}
	days := make([]string, 0, span)
	for d := arrival; !d.After(departure); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dateLayout))
	}
	return days, nil
}

// Validate checks the structural rules the form cannot be trusted to enforce.
func (p TravelPreferences) Validate() error {
	if strings.TrimSpace(p.Destination) == "" {
		return invalid("destination", "is required")
	}
	if _, err := TripDays(p.TravelDates); err != nil {
		return err
	}
	pp := p.PersonalPreferences
	switch pp.EnergyLevel {
	case EnergyRelaxed, EnergyBalanced, EnergyBusy:
	default:
		return invalid("personalPreferences.energyLevel", "must be one of relaxed, balanced, busy")
	}
	switch pp.TravelPace {
	case PaceLotsOfRest, PacePackedSchedule:
	default:
		return invalid("personalPreferences.travelPace", "must be one of lots of rest, packed schedule")
	}
	switch pp.Budget.Type {
	case BudgetTotal, BudgetPerDay:
	default:
		return invalid("personalPreferences.budget.type", "must be one of total, per-day")
	}
	if pp.Budget.Amount < 0 {
		return invalid("personalPreferences.budget.amount", "must not be negative")
	}
	for i, r := range pp.DietaryRestrictions {
		if strings.TrimSpace(r.Type) == "" {
			return invalid(fmt.Sprintf("personalPreferences.dietaryRestrictions[%d].type", i), "is required")
		}
	}
	switch p.TransportationPreferences.ComfortVsCost {
	case "", PreferComfort, PreferCost:
	default:
		return invalid("transportationPreferences.comfortVsCost", "must be one of comfort, cost")
	}
	return nil
}

// ValidateFor checks the feedback against the itinerary it revises.
func (f ItineraryFeedback) ValidateFor(it TravelItinerary) error {
	days := len(it.Itinerary)
	if days == 0 {
		return invalid("itinerary", "has no days to revise")
	}
	if len(f.Modifications) == 0 && strings.TrimSpace(f.GeneralFeedback) == "" &&
		f.BudgetAdjustment == nil && f.TimeAdjustment == nil {
		return invalid("feedback", "contains no changes")
	}
	for i, m := range f.Modifications {
		field := fmt.Sprintf("feedback.modifications[%d]", i)
		if !modificationTypes[m.Type] {
			return invalid(field+".type", "unknown modification type %q", string(m.Type))
		}
		if m.Day < 0 || m.Day >= days {
			return invalid(field+".day", "must reference one of the %d itinerary days", days)
		}
		activities := len(it.Itinerary[m.Day].Activities)
		for _, idx := range []struct {
			name string
			v    *int
		}{
			{"activityIndex", m.Details.ActivityIndex},
			{"mealIndex", m.Details.MealIndex},
			{"transportationIndex", m.Details.TransportationIndex},
		} {
			if idx.v == nil {
				continue
			}
			if *idx.v < 0 || *idx.v >= activities {
				return invalid(field+".details."+idx.name, "must reference one of the %d activities of that day", activities)
			}
		}
	}
	if b := f.BudgetAdjustment; b != nil {
		if b.Type != "increase" && b.Type != "decrease" {
			return invalid("feedback.budgetAdjustment.type", "must be increase or decrease")
		}
		if b.Amount < 0 {
			return invalid("feedback.budgetAdjustment.amount", "must not be negative")
		}
	}
	if t := f.TimeAdjustment; t != nil {
		if t.Type != "earlier" && t.Type != "later" {
			return invalid("feedback.timeAdjustment.type", "must be earlier or later")
		}
		if t.Unit != "minutes" && t.Unit != "hours" {
			return invalid("feedback.timeAdjustment.unit", "must be minutes or hours")
		}
		if t.Amount < 0 {
			return invalid("feedback.timeAdjustment.amount", "must not be negative")
		}
	}
	return nil
}

// checkItinerary enforces the shape and day-count rules on a generated itinerary.
// Day dates that parse must match the expected calendar; free-form dates are tolerated,
// as is any day whose expected date is unknown (empty).
func checkItinerary(it *TravelItinerary, expected []string) error {
	if len(it.Itinerary) == 0 {
		return fmt.Errorf("%w: itinerary has no days", ErrGeneration)
	}
	if len(it.Itinerary) != len(expected) {
		return fmt.Errorf("%w: itinerary has %d days, want %d", ErrGeneration, len(it.Itinerary), len(expected))
	}
	for i, day := range it.Itinerary {
		if expected[i] == "" {
			continue
		}
		d, err := ParseDate(day.Date)
		if err != nil {
			continue
		}
		if got := d.Format(dateLayout); got != expected[i] {
			return fmt.Errorf("%w: day %d is dated %s, want %s", ErrGeneration, i+1, got, expected[i])
		}
	}
	b := it.BudgetBreakdown
	for _, entry := range []struct {
		name string
		v    Text
	}{
		{"Hotel", b.Hotel}, {"Dining", b.Dining}, {"Activities", b.Activities},
		{"Transportation", b.Transportation}, {"Miscellaneous", b.Miscellaneous},
		{"Total Estimated Cost", b.TotalEstimatedCost},
	} {
		if strings.TrimSpace(string(entry.v)) == "" {
			return fmt.Errorf("%w: budget breakdown is missing %q", ErrGeneration, entry.name)
		}
	}
	return nil
}

// checkBookings enforces the booking shape and recomputes the total from component prices.
func checkBookings(b *BookingSimulation) error {
	if len(b.Flights) == 0 && len(b.Hotels) == 0 {
		return fmt.Errorf("%w: booking contains no flights or hotels", ErrGeneration)
	}
	var total float64
	for i, f := range b.Flights {
		if f.Price < 0 {
			return fmt.Errorf("%w: flight %d has a negative price", ErrGeneration, i+1)
		}
		total += f.Price
	}
	for i, h := range b.Hotels {
		if h.Price < 0 {
			return fmt.Errorf("%w: hotel %d has a negative price", ErrGeneration, i+1)
		}
		total += h.Price
	}
	if b.EstimatedSavings < 0 {
		b.EstimatedSavings = 0
	}
	b.TotalCost = total
	return nil
}
