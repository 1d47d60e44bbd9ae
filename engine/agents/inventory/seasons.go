package inventory

import (
	"time"

	localex "github.com/vyapaarai/insight-engine/engine/locale"
)

type Season string

const (
	SeasonWinter     Season = "winter"
	SeasonSummerPrep Season = "summer_prep"
	SeasonMonsoon    Season = "monsoon"
	SeasonFestive    Season = "festive"
)

// seasonFor maps a month to its demand season. November belongs to both
// winter and the festive window; winter wins here, the festival calendar
// covers the festive side.
func seasonFor(m time.Month) Season {
	switch m {
	case time.November, time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSummerPrep
	case time.June, time.July, time.August, time.September:
		return SeasonMonsoon
	default:
		return SeasonFestive
	}
}

// DemandEstimate is a fixed seasonal uplift for an item group.
type DemandEstimate struct {
	Item              string `json:"item"`
	PredictedIncrease string `json:"predicted_increase"`
}

var seasonalDemand = map[Season][]DemandEstimate{
	SeasonWinter: {
		{Item: "Warm Clothes", PredictedIncrease: "40%"},
		{Item: "Heaters", PredictedIncrease: "60%"},
		{Item: "Hot Beverages", PredictedIncrease: "35%"},
	},
	SeasonSummerPrep: {
		{Item: "Cold Drinks", PredictedIncrease: "50%"},
		{Item: "Fans/Coolers", PredictedIncrease: "45%"},
		{Item: "Summer Clothes", PredictedIncrease: "30%"},
	},
	SeasonMonsoon: {
		{Item: "Umbrellas", PredictedIncrease: "55%"},
		{Item: "Rain Gear", PredictedIncrease: "40%"},
	},
	SeasonFestive: {
		{Item: "Sweets", PredictedIncrease: "150%"},
		{Item: "Decorations", PredictedIncrease: "200%"},
		{Item: "Gifts", PredictedIncrease: "60%"},
	},
}

var seasonMessage = map[Season]localex.MessageID{
	SeasonWinter:     localex.MsgSeasonWinter,
	SeasonSummerPrep: localex.MsgSeasonSummer,
	SeasonMonsoon:    localex.MsgSeasonMonsoon,
	SeasonFestive:    localex.MsgSeasonFestive,
}

var seasonalAdvice = map[Season][]string{
	SeasonWinter: {
		"Stock up on warm clothing and blankets",
		"Increase inventory of hot beverages",
		"Prepare for winter medicine demand",
	},
	SeasonSummerPrep: {
		"Increase cold drinks and ice cream stock",
		"Stock cooling appliances",
		"Prepare summer clothing inventory",
	},
	SeasonMonsoon: {
		"Keep umbrellas and rain gear in stock",
		"Protect perishables from humidity",
		"Plan deliveries around heavy-rain days",
	},
	SeasonFestive: {
		"Maintain balanced inventory",
		"Monitor fast-moving items",
		"Plan for upcoming seasonal changes",
	},
}

// Festival is one entry of the static demand calendar.
type Festival struct {
	Name       string   `json:"name"`
	Month      time.Month `json:"month"`
	Categories []string `json:"high_demand"`
}

// Calendar order is intentional and not sorted by month; the scan preserves
// it, matching the historical behavior.
var festivalCalendar = []Festival{
	{Name: "Diwali", Month: time.November, Categories: []string{"sweets", "lights", "gifts"}},
	{Name: "Holi", Month: time.March, Categories: []string{"colors", "sweets", "snacks"}},
	{Name: "Dussehra", Month: time.October, Categories: []string{"sweets", "clothes", "decorations"}},
	{Name: "Eid", Month: time.April, Categories: []string{"sweets", "clothes", "meat"}},
	{Name: "Christmas", Month: time.December, Categories: []string{"cakes", "decorations", "gifts"}},
}

// upcomingFestivals is a forward-only scan within the calendar year: it
// keeps entries whose month is at or after the current month and returns
// the first two. It does not wrap into the next year near December.
func upcomingFestivals(current time.Month) []Festival {
	out := make([]Festival, 0, 2)
	for _, f := range festivalCalendar {
		if f.Month >= current {
			out = append(out, f)
			if len(out) == 2 {
				break
			}
		}
	}
	return out
}

var supplierSuggestions = []string{
	"Raj Traders - 9876543210 (low prices, good quality)",
	"Sharma Wholesale - 9765432109 (fast delivery, 2 days)",
	"Gupta Stores - 9654321098 (bulk order discounts)",
}
