package text

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var (
	calendar = cal.NewBusinessCalendar()
)

func init() {
	calendar.AddHoliday(
		us.NewYear,
		us.MemorialDay,
		us.IndependenceDay,
		us.Juneteenth,
		us.LaborDay,
		us.ThanksgivingDay,
		us.DayAfterThanksgivingDay,
		us.ChristmasDay,
	)
}

// Holidays names the holidays that fall on or are observed between checkIn
// and checkOut, inclusive, in the order they occur
func Holidays(checkIn, checkOut time.Time) []string {
	var names []string
	seen := map[string]bool{}
	for d := checkIn; !d.After(checkOut); d = d.AddDate(0, 0, 1) {
		actual, observed, holiday := calendar.IsHoliday(d)
		if (actual || observed) && holiday != nil && !seen[holiday.Name] {
			seen[holiday.Name] = true
			names = append(names, holiday.Name)
		}
	}
	return names
}
