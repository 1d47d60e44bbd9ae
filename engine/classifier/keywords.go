package classifier

import (
	"strings"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
)

// keywordRule maps per-locale word lists to one category. Rules are ordered;
// the first rule with a hit wins, so inventory words shadow finance words in
// mixed queries.
type keywordRule struct {
	Category contractx.IntentCategory
	Words    map[contractx.Locale][]string
}

var keywordRules = []keywordRule{
	{
		Category: contractx.IntentInventory,
		Words: map[contractx.Locale][]string{
			contractx.LocaleEnglish: {"stock", "inventory", "supplier", "vendor", "expiry", "expire", "forecast", "restock"},
			contractx.LocaleHindi:   {"स्टॉक", "भंडार", "सप्लायर", "विक्रेता", "एक्सपायरी", "समाप्त", "पूर्वानुमान", "भविष्यवाणी"},
		},
	},
	{
		Category: contractx.IntentFinance,
		Words: map[contractx.Locale][]string{
			contractx.LocaleEnglish: {"sales", "revenue", "profit", "margin", "expense", "cost", "cash", "tax", "gst"},
			contractx.LocaleHindi:   {"बिक्री", "आय", "लाभ", "मार्जिन", "खर्च", "लागत", "नकदी", "टैक्स", "जीएसटी"},
		},
	},
	{
		Category: contractx.IntentCustomer,
		Words: map[contractx.Locale][]string{
			contractx.LocaleEnglish: {"customer", "loyalty", "points", "promotion", "offer", "campaign", "whatsapp"},
			contractx.LocaleHindi:   {"ग्राहक", "खरीदार", "वफादारी", "पॉइंट्स", "प्रमोशन", "ऑफर", "संदेश"},
		},
	},
}

// classifyByKeywords is the rule-based fallback path. It scans the rules in
// order against the locale's word list and the English list (owners mix
// scripts freely); no hit means GENERAL with confidence 0.5.
func classifyByKeywords(text string, loc contractx.Locale) contractx.Intent {
	lowered := strings.ToLower(text)

	for _, rule := range keywordRules {
		for _, word := range keywordCandidates(rule, loc) {
			if strings.Contains(lowered, word) {
				return contractx.Intent{
					Category:   rule.Category,
					Confidence: keywordConfidence,
					Entities:   []string{word},
				}.Clamp()
			}
		}
	}

	return contractx.Intent{
		Category:   contractx.IntentGeneral,
		Confidence: fallbackConfidence,
	}
}

func keywordCandidates(rule keywordRule, loc contractx.Locale) []string {
	loc = loc.OrDefault()
	words := rule.Words[loc]
	if loc != contractx.LocaleEnglish {
		words = append(append([]string(nil), words...), rule.Words[contractx.LocaleEnglish]...)
	}
	return words
}
