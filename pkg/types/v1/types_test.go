package v1

import (
	"errors"
	"strings"
	"testing"
)

func TestBookingTotal(t *testing.T) {
	testcases := []struct {
		in, out string
		price   int
		nights  int
		total   int
	}{
		{"2021-06-01", "2021-06-03", 100, 3, 300},
		{"2021-06-01", "2021-06-01", 100, 1, 100},
		{"2021-02-27", "2021-03-02", 5000, 4, 20000},
		{"2021-12-31", "2022-01-01", 250, 2, 500},
	}

	for _, tc := range testcases {
		in, err := ParseDate(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		out, err := ParseDate(tc.out)
		if err != nil {
			t.Fatal(err)
		}
		if n := Nights(in, out); n != tc.nights {
			t.Fatalf("expected %s..%s to be %d nights but got %d", tc.in, tc.out, tc.nights, n)
		}
		if total := BookingTotal(tc.price, in, out); total != tc.total {
			t.Fatalf("expected %s..%s at %d to total %d but got %d", tc.in, tc.out, tc.price, tc.total, total)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("06/01/2021"); err == nil {
		t.Fatal("expected an error for a non ISO date")
	}
}

func TestTotalPages(t *testing.T) {
	testcases := map[[2]int]int{
		{0, 8}:  0,
		{1, 8}:  1,
		{8, 8}:  1,
		{9, 8}:  2,
		{10, 4}: 3,
		{10, 0}: 0,
	}
	for input, expected := range testcases {
		if actual := TotalPages(input[0], input[1]); actual != expected {
			t.Fatalf("expected total=%d limit=%d to yield %d pages but got %d", input[0], input[1], expected, actual)
		}
	}
}

func TestFilterToggle(t *testing.T) {
	if PriceLowToHigh.Toggle() != PriceHighToLow || PriceHighToLow.Toggle() != PriceLowToHigh {
		t.Fatal("toggle should flip between the two sort orders")
	}
}

func validHostForm() HostForm {
	return HostForm{
		Type:        House,
		NumOfGuests: "4",
		Title:       "The iconic and luxurious Bel-Air mansion",
		Description: "Modern, clean, and iconic home of the Fresh Prince.",
		Address:     "251 North Bristol Avenue",
		City:        "Los Angeles",
		State:       "California",
		PostalCode:  "90210",
		Image:       "data:image/png;base64,AAAA",
		Price:       "120.50",
	}
}

func TestHostFormInput(t *testing.T) {
	input, err := validHostForm().Input()
	if err != nil {
		t.Fatal(err)
	}
	if input.Address != "251 North Bristol Avenue, Los Angeles, California, 90210" {
		t.Fatalf("unexpected address %q", input.Address)
	}
	if input.Price != 12050 {
		t.Fatalf("expected price in minor units 12050 but got %d", input.Price)
	}
	if input.NumOfGuests != 4 {
		t.Fatalf("expected 4 guests but got %d", input.NumOfGuests)
	}
	if input.Image != "data:image/png;base64,AAAA" {
		t.Fatalf("image payload was not attached: %q", input.Image)
	}
}

func TestHostFormValidation(t *testing.T) {
	testcases := map[string]func(f *HostForm){
		"Type":        func(f *HostForm) { f.Type = "CASTLE" },
		"NumOfGuests": func(f *HostForm) { f.NumOfGuests = "" },
		"Title":       func(f *HostForm) { f.Title = strings.Repeat("x", TitleCharacterLimit+1) },
		"Description": func(f *HostForm) { f.Description = strings.Repeat("x", DescriptionCharacterLimit+1) },
		"Address":     func(f *HostForm) { f.Address = "" },
		"City":        func(f *HostForm) { f.City = "" },
		"State":       func(f *HostForm) { f.State = "" },
		"PostalCode":  func(f *HostForm) { f.PostalCode = "" },
		"Image":       func(f *HostForm) { f.Image = "" },
		"Price":       func(f *HostForm) { f.Price = "cheap" },
	}

	for field, breakIt := range testcases {
		f := validHostForm()
		breakIt(&f)
		_, err := f.Input()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected a validation error but got %v", field, err)
		}
		if len(verr.Fields) != 1 || verr.Fields[0] != field {
			t.Fatalf("%s: expected only %s to fail but got %v", field, field, verr.Fields)
		}
	}
}

func TestHostFormRejectsNonPositiveGuests(t *testing.T) {
	f := validHostForm()
	f.NumOfGuests = "0"
	_, err := f.Input()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error but got %v", err)
	}
}
