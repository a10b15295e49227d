package format

import (
	"testing"
	"time"
)

func TestMoney(t *testing.T) {
	cases := map[float64]string{
		2999:    "₹2,999.00",
		50:      "₹50.00",
		1234567: "₹1,234,567.00",
		0:       "₹0.00",
	}
	for amount, want := range cases {
		if got := Money(amount); got != want {
			t.Fatalf("Money(%v) = %q, want %q", amount, got, want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.10); got != "10%" {
		t.Fatalf("Percent(0.10) = %q", got)
	}
}

func TestDateZeroValue(t *testing.T) {
	if got := Date(time.Time{}); got != "" {
		t.Fatalf("zero time must render empty, got %q", got)
	}
	ts := time.Date(2025, 3, 9, 14, 30, 0, 0, time.UTC)
	if got := Date(ts); got != "Mar 9, 2025" {
		t.Fatalf("Date = %q", got)
	}
	if got := DateTime(ts); got != "Mar 9, 2025 14:30" {
		t.Fatalf("DateTime = %q", got)
	}
}
