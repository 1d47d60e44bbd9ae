package customer

import (
	"time"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	localex "github.com/vyapaarai/insight-engine/engine/locale"
)

// RewardTier is one row of the fixed redemption table.
type RewardTier struct {
	Points   int `json:"points"`
	Discount int `json:"discount_rupees"`
}

var rewardTiers = []RewardTier{
	{Points: 100, Discount: 10},
	{Points: 500, Discount: 60},
	{Points: 1000, Discount: 150},
}

// promotionsFor selects promotion messages deterministically by month: a
// seasonal lead message when the month has one, then the festival and
// loyalty messages. No randomization, so the same month always yields the
// same list.
func promotionsFor(month time.Month, loc contractx.Locale) []string {
	promos := make([]string, 0, 3)
	switch month {
	case time.November, time.December, time.January, time.February:
		promos = append(promos, localex.Resolve(localex.MsgPromoWinter, loc))
	case time.March, time.April, time.May:
		promos = append(promos, localex.Resolve(localex.MsgPromoSummer, loc))
	}
	promos = append(promos,
		localex.Resolve(localex.MsgPromoFestival, loc),
		localex.Resolve(localex.MsgPromoLoyalty, loc),
	)
	return promos
}

// campaignMessages are outreach drafts only; delivering them is someone
// else's job.
func campaignMessages(loc contractx.Locale) []string {
	return []string{
		localex.Resolve(localex.MsgCampaignMorning, loc),
		localex.Resolve(localex.MsgCampaignArrival, loc),
		localex.Resolve(localex.MsgCampaignReminder, loc),
	}
}
