package contract

import (
	"math"
	"time"
)

// Locale selects the language used for classification keywords and
// response text.
type Locale string

const (
	LocaleHindi   Locale = "hi"
	LocaleTelugu  Locale = "te"
	LocaleTamil   Locale = "ta"
	LocaleBengali Locale = "bn"
	LocaleGujarati Locale = "gu"
	LocaleMarathi Locale = "mr"
	LocaleKannada Locale = "kn"
	LocaleEnglish Locale = "en"
)

// SupportedLocales lists every locale the engine accepts, default first.
var SupportedLocales = []Locale{
	LocaleHindi, LocaleTelugu, LocaleTamil, LocaleBengali,
	LocaleGujarati, LocaleMarathi, LocaleKannada, LocaleEnglish,
}

func (l Locale) Supported() bool {
	for _, s := range SupportedLocales {
		if l == s {
			return true
		}
	}
	return false
}

// OrDefault returns the locale itself when supported, Hindi otherwise.
func (l Locale) OrDefault() Locale {
	if l.Supported() {
		return l
	}
	return LocaleHindi
}

type IntentCategory string

const (
	IntentInventory IntentCategory = "INVENTORY"
	IntentCustomer  IntentCategory = "CUSTOMER"
	IntentFinance   IntentCategory = "FINANCE"
	IntentGeneral   IntentCategory = "GENERAL"
)

// Intent is the classified meaning of a free-text query.
type Intent struct {
	Category   IntentCategory `json:"category"`
	Confidence float64        `json:"confidence"`
	Entities   []string       `json:"entities,omitempty"`
}

// Clamp forces the confidence into [0,1].
func (i Intent) Clamp() Intent {
	if math.IsNaN(i.Confidence) {
		i.Confidence = 0
	}
	i.Confidence = math.Max(0, math.Min(1, i.Confidence))
	return i
}

// QueryRequest is one inbound owner question.
type QueryRequest struct {
	OwnerID int64  `json:"owner_id"`
	Text    string `json:"text"`
	Locale  Locale `json:"locale"`
}

// QueryResponse is the structured outcome of a routed query. Success is
// false only for computation failures; absence of data is a successful,
// informational response.
type QueryResponse struct {
	Text      string         `json:"text"`
	AgentName string         `json:"agent"`
	Success   bool           `json:"success"`
	Data      map[string]any `json:"data,omitempty"`
}

type DomainFilter string

const (
	DomainAll       DomainFilter = "all"
	DomainInventory DomainFilter = "inventory"
	DomainCustomer  DomainFilter = "customer"
	DomainFinance   DomainFilter = "finance"
)

func (f DomainFilter) Includes(domain string) bool {
	return f == DomainAll || string(f) == domain
}

// InsightBundle is one agent's derived metrics plus recommendations.
// Bundles are ephemeral and never persisted.
type InsightBundle struct {
	Domain          string         `json:"domain"`
	Metrics         map[string]any `json:"metrics"`
	Recommendations []string       `json:"recommendations,omitempty"`
}

// InsightReport is the merged cross-domain result of an aggregation run.
// A domain that failed is present with Available=false so callers can
// distinguish "not requested" from "unavailable".
type InsightReport struct {
	Domains         map[string]DomainSection `json:"insights"`
	Summary         string                   `json:"summary,omitempty"`
	Recommendations []string                 `json:"recommendations,omitempty"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

type DomainSection struct {
	Available bool          `json:"available"`
	Bundle    InsightBundle `json:"bundle,omitempty"`
}

/* ------------------------------ Domain data ------------------------------ */

// BusinessOwner owns every other entity.
type BusinessOwner struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	BusinessType string `json:"business_type"`
	Locale       Locale `json:"locale"`
}

type InventoryItem struct {
	ID              int64      `json:"id"`
	OwnerID         int64      `json:"owner_id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	SKU             string     `json:"sku"`
	CurrentStock    int        `json:"current_stock"`
	MinStockLevel   int        `json:"min_stock_level"`
	MaxStockLevel   int        `json:"max_stock_level"`
	UnitPrice       float64    `json:"unit_price"`
	CostPrice       float64    `json:"cost_price"`
	SupplierName    string     `json:"supplier_name,omitempty"`
	SupplierContact string     `json:"supplier_contact,omitempty"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	Perishable      bool       `json:"is_perishable"`
}

type CustomerType string

const (
	CustomerRegular    CustomerType = "regular"
	CustomerPremium    CustomerType = "premium"
	CustomerOccasional CustomerType = "occasional"
)

// Customer carries the caller-assigned segment type. The stored type is
// authoritative; the engine never recomputes it from purchase history.
type Customer struct {
	ID               int64        `json:"id"`
	OwnerID          int64        `json:"owner_id"`
	Name             string       `json:"name"`
	Phone            string       `json:"phone"`
	Type             CustomerType `json:"customer_type"`
	TotalPurchases   float64      `json:"total_purchases"`
	LoyaltyPoints    int          `json:"loyalty_points"`
	LastPurchaseDate *time.Time   `json:"last_purchase_date,omitempty"`
	EngagementScore  float64      `json:"engagement_score"`
	CreatedAt        time.Time    `json:"created_at"`
}

type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionPurchase TransactionType = "purchase"
	TransactionExpense  TransactionType = "expense"
	TransactionRefund   TransactionType = "refund"
)

type LineItem struct {
	SKU       string  `json:"sku,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Transaction is append-only; rows are never mutated after creation.
type Transaction struct {
	ID            string          `json:"id"`
	OwnerID       int64           `json:"owner_id"`
	Type          TransactionType `json:"transaction_type"`
	Amount        float64         `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Description   string          `json:"description,omitempty"`
	ProfitMargin  *float64        `json:"profit_margin,omitempty"`
	CustomerID    *int64          `json:"customer_id,omitempty"`
	Items         []LineItem      `json:"items,omitempty"`
	OccurredAt    time.Time       `json:"transaction_date"`
}

// TransactionFilter narrows a transaction query. Zero values are ignored.
type TransactionFilter struct {
	Type TransactionType
	From time.Time
	To   time.Time
}

// LoyaltyPointsForAmount is the accrual rule: one point per ten rupees.
func LoyaltyPointsForAmount(amount float64) int {
	if amount <= 0 {
		return 0
	}
	return int(math.Floor(amount / 10))
}
