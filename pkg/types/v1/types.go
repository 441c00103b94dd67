package v1

import (
	"fmt"
	"math"
	"time"
)

// DateFormat is how calendar dates travel to and from the API
const DateFormat = "2006-01-02"

// Viewer is the identity of the current session. DidRequest is false only
// until the first session bootstrap has resolved, successfully or not.
type Viewer struct {
	ID         string `json:"id"`
	Token      string `json:"token"`
	Avatar     string `json:"avatar"`
	HasWallet  bool   `json:"hasWallet"`
	DidRequest bool   `json:"didRequest"`
}

func (v Viewer) LoggedIn() bool { return v.ID != "" }

type ListingsFilter string

const (
	PriceLowToHigh ListingsFilter = "PRICE_LOW_TO_HIGH"
	PriceHighToLow ListingsFilter = "PRICE_HIGH_TO_LOW"
)

// Toggle flips between the two supported sort orders
func (f ListingsFilter) Toggle() ListingsFilter {
	if f == PriceHighToLow {
		return PriceLowToHigh
	}
	return PriceHighToLow
}

func (f ListingsFilter) String() string {
	switch f {
	case PriceHighToLow:
		return "Price: High to Low"
	default:
		return "Price: Low to High"
	}
}

type ListingType string

const (
	Apartment ListingType = "APARTMENT"
	House     ListingType = "HOUSE"
)

// ListingSummary is the card-sized view of a listing. Price is in minor
// currency units.
type ListingSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Address     string `json:"address"`
	Price       int    `json:"price"`
	NumOfGuests int    `json:"numOfGuests"`
}

// ListingsPage is one page of a listings search. Region echoes the location
// the server resolved the search to, and is empty when none was given.
type ListingsPage struct {
	Region string           `json:"region"`
	Total  int              `json:"total"`
	Result []ListingSummary `json:"result"`
}

// TotalPages derives the number of pages for a given page size
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	HasWallet bool   `json:"hasWallet"`
}

type Booking struct {
	ID       string          `json:"id"`
	Tenant   *UserSummary    `json:"tenant,omitempty"`
	Listing  *ListingSummary `json:"listing,omitempty"`
	CheckIn  string          `json:"checkIn"`
	CheckOut string          `json:"checkOut"`
}

type Bookings struct {
	Total  int       `json:"total"`
	Result []Booking `json:"result"`
}

type Listings struct {
	Total  int              `json:"total"`
	Result []ListingSummary `json:"result"`
}

// Listing is the full detail of a single listing
type Listing struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Image         string      `json:"image"`
	Host          UserSummary `json:"host"`
	Type          ListingType `json:"type"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	Bookings      *Bookings   `json:"bookings"`
	BookingsIndex string      `json:"bookingsIndex"`
	Price         int         `json:"price"`
	NumOfGuests   int         `json:"numOfGuests"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Contact   string    `json:"contact"`
	HasWallet bool      `json:"hasWallet"`
	Income    *int      `json:"income"`
	Bookings  *Bookings `json:"bookings"`
	Listings  Listings  `json:"listings"`
}

type CreateBookingInput struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// ByCheckIn orders bookings by arrival. Dates are YYYY-MM-DD so they sort as
// strings.
type ByCheckIn []Booking

func (p ByCheckIn) Len() int {
	return len(p)
}

func (p ByCheckIn) Less(i, j int) bool {
	return p[i].CheckIn < p[j].CheckIn
}

func (p ByCheckIn) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}

// ParseDate reads a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// Nights is the inclusive number of days booked between two dates
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours()/24) + 1
}

// BookingTotal is the nightly price multiplied by the inclusive nights booked
func BookingTotal(price int, checkIn, checkOut time.Time) int {
	return price * Nights(checkIn, checkOut)
}
