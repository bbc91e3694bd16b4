// Package booking composes booking-inquiry emails. There is no reservation
// workflow behind it: a successful "booking" on this site is a pre-filled
// mail to the owners.
package booking

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"stieregg/internal/domain/catalog"
	"stieregg/internal/domain/daterange"
)

// Inquiry carries a validated stay request on its way to the mail composer.
type Inquiry struct {
	Apartment catalog.Apartment
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	GuestName string
	Locale    string
}

var monthNames = map[string][]string{
	"de": {"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli",
		"August", "September", "Oktober", "November", "Dezember"},
	"en": {"January", "February", "March", "April", "May", "June", "July",
		"August", "September", "October", "November", "December"},
}

// FormatLongDate renders a date the way the site shows it: "2. Januar 2026"
// for German, "2 January 2026" otherwise.
func FormatLongDate(t time.Time, locale string) string {
	t = daterange.Normalize(t)
	names, ok := monthNames[locale]
	if !ok {
		names = monthNames["en"]
	}
	month := names[int(t.Month())-1]
	if locale == "de" {
		return fmt.Sprintf("%d. %s %d", t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
}

// MailtoLink builds the mailto URL for a booking inquiry: recipient, a
// localized subject, and a body naming the apartment, the formatted stay
// dates, guest count, the guest name (placeholder when unknown) and a link
// back to the apartment page.
func MailtoLink(inq Inquiry, recipient, baseURL string) string {
	locale := inq.Locale
	if locale != "de" {
		locale = "en"
	}
	name := inq.Apartment.Name.In(locale)

	subject := "Booking request: " + name
	if locale == "de" {
		subject = "Buchungsanfrage: " + name
	}

	labels := map[string][5]string{
		"de": {"Wohnung", "Anreise", "Abreise", "Gäste", "Name"},
		"en": {"Apartment", "Check-in", "Check-out", "Guests", "Name"},
	}[locale]

	lines := []string{
		fmt.Sprintf("%s: %s", labels[0], name),
		"",
		fmt.Sprintf("%s: %s", labels[1], FormatLongDate(inq.CheckIn, locale)),
		fmt.Sprintf("%s: %s", labels[2], FormatLongDate(inq.CheckOut, locale)),
	}
	if inq.Guests > 0 {
		lines = append(lines, fmt.Sprintf("%s: %d", labels[3], inq.Guests))
	}
	if inq.GuestName != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", labels[4], inq.GuestName))
	} else {
		lines = append(lines, fmt.Sprintf("%s: ____", labels[4]))
	}
	lines = append(lines, "", apartmentURL(baseURL, inq.Apartment.Slug))

	body := strings.Join(lines, "\n")
	return "mailto:" + recipient +
		"?subject=" + escape(subject) +
		"&body=" + escape(body)
}

// escape percent-encodes a mailto header value. QueryEscape alone would
// encode spaces as '+', which mail clients take literally.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func apartmentURL(baseURL, slug string) string {
	base := strings.TrimSuffix(baseURL, "/")
	return base + "/apartments/" + slug
}
