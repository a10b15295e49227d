// Package format renders money and dates for display.
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats a price with the store currency symbol and thousands
// separators, e.g. Money(2999) => "₹2,999.00".
func Money(amount float64) string {
	return printer.Sprintf("₹%.2f", amount)
}

// Percent formats a ratio as a whole percentage, e.g. Percent(0.1) => "10%".
func Percent(rate float64) string {
	return printer.Sprintf("%.0f%%", rate*100)
}

// Date formats a timestamp in a short, human-friendly form.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// DateTime includes the time of day, used on order tracking views.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}
