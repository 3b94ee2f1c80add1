// README: Printable itinerary document (gofpdf) with a booking reference QR code.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"voyager/internal/modules/travel"
)

var ErrNothingToRender = errors.New("itinerary has no days to render")

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

// Filename derives the download name from destination and start date.
func Filename(it travel.TravelItinerary) string {
	start := it.Traveler.TravelDates.Start
	if start == "" && len(it.Itinerary) > 0 {
		start = it.Itinerary[0].Date
	}
	name := "itinerary-" + slug(it.Traveler.Destination)
	if s := slug(start); s != "trip" {
		name += "-" + s
	}
	return name + ".pdf"
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "trip"
	}
	return out
}

// BookingReference is the payload encoded in the QR code.
func BookingReference(it travel.TravelItinerary, b travel.BookingResponse) string {
	var flights []string
	for _, f := range b.Bookings.Flights {
		flights = append(flights, f.FlightNumber)
	}
	var hotels []string
	for _, h := range b.Bookings.Hotels {
		hotels = append(hotels, h.Name)
	}
	return fmt.Sprintf("VOYAGER|%s|%s|%s|%s|%s|%.2f",
		it.Traveler.Destination, it.Traveler.TravelDates.Start, it.Traveler.TravelDates.End,
		strings.Join(flights, ","), strings.Join(hotels, ","), b.Bookings.TotalCost)
}

func displayDate(s string) string {
	t, err := travel.ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("Monday, January 2, 2006")
}

func displayTime(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006 15:04")
		}
	}
	return s
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

type document struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (d *document) heading(text string) {
	d.pdf.Ln(4)
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.SetTextColor(30, 64, 175)
	d.pdf.CellFormat(0, 8, d.tr(text), "B", 1, "L", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Ln(2)
}

func (d *document) line(style string, size float64, text string) {
	d.pdf.SetFont("Helvetica", style, size)
	d.pdf.MultiCell(0, lineHeight, d.tr(text), "", "L", false)
}

// RenderItineraryPDF writes the A4 itinerary document for it and its confirmed bookings.
func RenderItineraryPDF(w io.Writer, it travel.TravelItinerary, bookings travel.BookingResponse) error {
	if len(it.Itinerary) == 0 {
		return ErrNothingToRender
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Travel Itinerary - "+it.Traveler.Destination, true)
	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.AddPage()

	qrPNG, err := qrcode.Encode(BookingReference(it, bookings), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode booking qr: %w", err)
	}
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("booking-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("booking-qr", 165, pageMargin, 30, 30, false, imageOpts, 0, "")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(140, 12, d.tr("Travel Itinerary"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(80, 80, 80)
	subtitle := fmt.Sprintf("%s • %s to %s", it.Traveler.Destination,
		displayDate(it.Traveler.TravelDates.Start), displayDate(it.Traveler.TravelDates.End))
	pdf.MultiCell(140, lineHeight, d.tr(subtitle), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(pageMargin + 34)

	if len(bookings.Bookings.Flights) > 0 {
		d.heading("Flight Details")
		for _, f := range bookings.Bookings.Flights {
			d.line("B", 11, fmt.Sprintf("%s %s (%s)", f.Airline, f.FlightNumber, f.Class))
			d.line("", 10, fmt.Sprintf("Departure: %s at %s", f.Departure.Airport, displayTime(f.Departure.Time)))
			d.line("", 10, fmt.Sprintf("Arrival: %s at %s", f.Arrival.Airport, displayTime(f.Arrival.Time)))
			price := "Price: " + money(f.Price)
			if f.LoyaltyPoints != nil && *f.LoyaltyPoints > 0 {
				price += fmt.Sprintf(" • %.0f loyalty points", *f.LoyaltyPoints)
			}
			d.line("", 10, price)
			pdf.Ln(2)
		}
	}

	if len(bookings.Bookings.Hotels) > 0 {
		d.heading("Hotel Details")
		for _, h := range bookings.Bookings.Hotels {
			d.line("B", 11, fmt.Sprintf("%s (%s)", h.Name, h.Type))
			d.line("", 10, fmt.Sprintf("Check-in: %s", displayDate(h.CheckIn)))
			d.line("", 10, fmt.Sprintf("Check-out: %s", displayDate(h.CheckOut)))
			d.line("", 10, fmt.Sprintf("Room: %s • Price: %s", h.RoomType, money(h.Price)))
			pdf.Ln(2)
		}
	}

	d.heading("Daily Itinerary")
	for i, day := range it.Itinerary {
		d.line("B", 12, fmt.Sprintf("Day %d - %s", i+1, displayDate(day.Date)))
		if day.Weather != "" {
			d.line("I", 10, "Weather: "+string(day.Weather))
		}
		for _, a := range day.Activities {
			text := fmt.Sprintf("%s  %s", a.Time, a.Activity)
			if a.Location != "" {
				text += " @ " + string(a.Location)
			}
			d.line("", 10, text)
			var extra []string
			if a.Cost != "" {
				extra = append(extra, "Cost: "+string(a.Cost))
			}
			if a.Transportation != "" {
				extra = append(extra, "Transport: "+string(a.Transportation))
			}
			if len(extra) > 0 {
				pdf.SetTextColor(100, 100, 100)
				d.line("", 9, "    "+strings.Join(extra, " • "))
				pdf.SetTextColor(0, 0, 0)
			}
		}
		pdf.Ln(3)
	}

	d.heading("Booking Summary")
	d.line("B", 11, "Total Cost: "+money(bookings.Bookings.TotalCost))
	if bookings.Bookings.EstimatedSavings > 0 {
		pdf.SetTextColor(22, 128, 61)
		d.line("", 11, "Estimated Savings: "+money(bookings.Bookings.EstimatedSavings))
		pdf.SetTextColor(0, 0, 0)
	}

	if len(it.PackingList) > 0 {
		d.heading("Packing List")
		for _, item := range it.PackingList {
			d.line("", 10, "• "+item)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render itinerary pdf: %w", err)
	}
	return pdf.Output(w)
}
