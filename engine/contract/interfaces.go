package contract

import "context"

// Agent is the fixed capability set every domain-analytics module exposes.
type Agent interface {
	Name() string
	ProcessQuery(ctx context.Context, req QueryRequest, intent Intent) (QueryResponse, error)
	GetInsights(ctx context.Context, ownerID int64) (InsightBundle, error)
}

// Classifier maps a free-text query to an intent. Implementations degrade
// internally (rule-based fallback) instead of returning an error.
type Classifier interface {
	Classify(ctx context.Context, text string, locale Locale) Intent
}

// Summarizer condenses a merged report into one localized paragraph.
type Summarizer interface {
	Summarize(ctx context.Context, report InsightReport, locale Locale) (string, error)
}

// Registry is the explicit composition over the fixed agent set. It replaces
// any process-wide mutable agent table; construct once, pass by reference.
type Registry interface {
	Inventory() Agent
	Customer() Agent
	Finance() Agent
}

// Store is the persistence contract consumed by the engine. Write methods
// guarantee all-or-nothing application.
type Store interface {
	Transactions(ctx context.Context, ownerID int64, filter TransactionFilter) ([]Transaction, error)
	Inventory(ctx context.Context, ownerID int64) ([]InventoryItem, error)
	Customers(ctx context.Context, ownerID int64) ([]Customer, error)

	// RecordSale appends the transaction and, when it references a customer,
	// applies total_purchases, loyalty_points and last_purchase_date as one
	// atomic unit with the transaction write.
	RecordSale(ctx context.Context, tx Transaction) (Transaction, error)

	// AdjustStock applies a guarded stock delta; a decrement that would take
	// current_stock below zero fails with ErrInsufficientStock and changes
	// nothing. Returns the resulting stock level.
	AdjustStock(ctx context.Context, ownerID int64, sku string, delta int) (int, error)
}

// Speech is the opaque speech capability.
type Speech interface {
	Transcribe(ctx context.Context, audio []byte, locale Locale) (string, error)
	Synthesize(ctx context.Context, text string, voice string) ([]byte, error)
}
