package text

import (
	"testing"
	"time"

	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
)

func TestPrice(t *testing.T) {
	testcases := []struct {
		cents int
		round bool
		out   string
	}{
		{12000, true, "$120"},
		{12050, true, "$121"},
		{12050, false, "$120.50"},
		{123456700, true, "$1,234,567"},
		{0, true, "$0"},
	}
	for _, tc := range testcases {
		if actual := Price(tc.cents, tc.round); actual != tc.out {
			t.Fatalf("expected %d (round=%v) to render %s but got %s", tc.cents, tc.round, tc.out, actual)
		}
	}
}

func TestPlurals(t *testing.T) {
	if Guests(1) != "1 guest" || Guests(4) != "4 guests" {
		t.Fatalf("unexpected guest plurals %s %s", Guests(1), Guests(4))
	}
	if Nights(1) != "1 night" || Nights(3) != "3 nights" {
		t.Fatalf("unexpected night plurals %s %s", Nights(1), Nights(3))
	}
}

func TestTitle(t *testing.T) {
	if actual := Title("  Cozy cabin in the woods ", 10); actual != "Cozy cabi"+Ellipsis {
		t.Fatalf("unexpected truncation %q", actual)
	}
	if actual := Title("short", 10); actual != "short" {
		t.Fatalf("unexpected truncation %q", actual)
	}
}

func TestListingIcon(t *testing.T) {
	if ListingIcon(v1.House) == ListingIcon(v1.Apartment) {
		t.Fatal("houses and apartments should have distinct icons")
	}
}

func TestRelativeTime(t *testing.T) {
	if actual := RelativeTime(time.Now()); actual != "just now" {
		t.Fatalf("unexpected relative time %q", actual)
	}
	if actual := RelativeTime(time.Now().Add(-3 * time.Hour)); actual != "3 hours ago" {
		t.Fatalf("unexpected relative time %q", actual)
	}
}

func TestHolidays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := v1.ParseDate(s)
		if err != nil {
			t.Fatal(err)
		}
		return d
	}

	names := Holidays(day("2021-07-03"), day("2021-07-05"))
	if len(names) != 1 || names[0] != "Independence Day" {
		t.Fatalf("expected only Independence Day but got %v", names)
	}
	if names := Holidays(day("2021-06-01"), day("2021-06-03")); len(names) != 0 {
		t.Fatalf("expected no holidays but got %v", names)
	}
}

func TestPadRight(t *testing.T) {
	if PadRight("CVC", 6) != "CVC   " {
		t.Fatalf("unexpected padding %q", PadRight("CVC", 6))
	}
	if PadRight("Check In", 3) != "Check In" {
		t.Fatal("longer strings are left alone")
	}
}
