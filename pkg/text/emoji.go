package text

import (
	"math"
	"time"

	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/dustin/go-humanize"
	"github.com/enescakir/emoji"
)

const (
	Ellipsis = "…"
)

var (
	EmojiHouse     = emoji.House.String()
	EmojiApartment = emoji.OfficeBuilding.String()
	EmojiGuests    = emoji.BustsInSilhouette.String()
	EmojiPin       = emoji.RoundPushpin.String()
	EmojiKey       = emoji.Key.String()
	EmojiCard      = emoji.CreditCard.String()
	EmojiCalendar  = emoji.Calendar.String()
	EmojiStar      = emoji.Star.String()
	EmojiWarning   = emoji.Warning.String()
	EmojiCheck     = emoji.CheckMarkButton.String()
	EmojiSearch    = emoji.MagnifyingGlassTiltedLeft.String()
)

// ListingIcon picks the icon shown next to a listing of the given type
func ListingIcon(t v1.ListingType) string {
	switch t {
	case v1.Apartment:
		return EmojiApartment
	case v1.House:
		return EmojiHouse
	}
	return EmojiPin
}

// Return the time in a human-readable format relative to the current time.
func RelativeTime(then time.Time) string {
	now := time.Now()
	ago := now.Sub(then)
	if ago < time.Minute && ago > -time.Minute {
		return "just now"
	} else if ago < humanize.Week && ago > -humanize.Week {
		return humanize.CustomRelTime(then, now, "ago", "from now", magnitudes)
	}
	return then.Format("02 Jan 2006")
}

// Magnitudes for relative time.
var magnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "now", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: math.MaxInt64, Format: "a long while %s", DivBy: 1},
}
