package finance

import "strings"

// categoryRule is one row of the ordered expense-categorization table.
// Matching is a case-insensitive substring scan; the first rule with a hit
// wins, so "staff transport salary" lands on Staff Salary, not
// Transportation.
type categoryRule struct {
	Name     string
	Keywords []string
}

var expenseCategories = []categoryRule{
	{Name: "Rent", Keywords: []string{"rent", "किराया"}},
	{Name: "Utilities", Keywords: []string{"electricity", "बिजली", "water", "पानी"}},
	{Name: "Staff Salary", Keywords: []string{"salary", "वेतन", "staff", "कर्मचारी"}},
	{Name: "Inventory Purchase", Keywords: []string{"inventory", "stock", "स्टॉक", "माल"}},
	{Name: "Transportation", Keywords: []string{"transport", "delivery", "डिलीवरी"}},
	{Name: "Marketing", Keywords: []string{"marketing", "advertisement", "विज्ञापन"}},
	{Name: "Maintenance", Keywords: []string{"repair", "maintenance", "मरम्मत"}},
	{Name: "License/Fees", Keywords: []string{"license", "fee", "लाइसेंस", "फीस"}},
	{Name: "Insurance", Keywords: []string{"insurance", "बीमा"}},
	{Name: "Loan EMI", Keywords: []string{"loan", "emi", "लोन"}},
}

const otherCategory = "Other"

// CategorizeExpense maps a free-text description to an expense category.
func CategorizeExpense(description string) string {
	lowered := strings.ToLower(description)
	for _, rule := range expenseCategories {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowered, kw) {
				return rule.Name
			}
		}
	}
	return otherCategory
}

// DefaultGSTRate is the assumed slab when the owner has not configured one.
const DefaultGSTRate = 18.0

// GSTInclusive extracts the GST component from tax-inclusive revenue:
// revenue * rate / (100 + rate).
func GSTInclusive(revenue, rate float64) float64 {
	if revenue <= 0 || rate <= 0 {
		return 0
	}
	return revenue * rate / (100 + rate)
}
