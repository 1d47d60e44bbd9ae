// Package store is the Postgres persistence layer behind the engine's Store
// contract. Reads are plain filtered selects; the two write paths carry the
// engine's atomicity rules: a sale and its customer update land together or
// not at all, and stock never goes negative.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
)

type Config struct {
	DSN          string `envconfig:"DSN" required:"true"`
	MaxOpenConns int    `envconfig:"MAX_OPEN_CONNS" default:"8"`
	MaxIdleConns int    `envconfig:"MAX_IDLE_CONNS" default:"4"`
}

// Open dials Postgres and wraps the pool in a bun handle.
func Open(cfg Config) (*bun.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres dsn is required")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

type Postgres struct {
	db  *bun.DB
	now func() time.Time
}

var _ contractx.Store = (*Postgres)(nil)

type Option func(*Postgres)

func WithClock(now func() time.Time) Option {
	return func(p *Postgres) {
		if now != nil {
			p.now = now
		}
	}
}

func NewPostgres(db *bun.DB, opts ...Option) (*Postgres, error) {
	if db == nil {
		return nil, errors.New("bun db is required")
	}
	p := &Postgres{db: db, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

/* --------------------------------- Rows ---------------------------------- */

type transactionRow struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID            string               `bun:"id,pk"`
	OwnerID       int64                `bun:"owner_id,notnull"`
	Type          string               `bun:"transaction_type,notnull"`
	Amount        float64              `bun:"amount,notnull"`
	PaymentMethod string               `bun:"payment_method"`
	Description   string               `bun:"description"`
	ProfitMargin  *float64             `bun:"profit_margin"`
	CustomerID    *int64               `bun:"customer_id"`
	Items         []contractx.LineItem `bun:"items,type:jsonb"`
	OccurredAt    time.Time            `bun:"transaction_date,notnull"`
}

func (r transactionRow) toDomain() contractx.Transaction {
	return contractx.Transaction{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		Type:          contractx.TransactionType(r.Type),
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Description:   r.Description,
		ProfitMargin:  r.ProfitMargin,
		CustomerID:    r.CustomerID,
		Items:         r.Items,
		OccurredAt:    r.OccurredAt,
	}
}

type inventoryRow struct {
	bun.BaseModel `bun:"table:inventory_items,alias:i"`

	ID              int64      `bun:"id,pk,autoincrement"`
	OwnerID         int64      `bun:"owner_id,notnull"`
	Name            string     `bun:"name,notnull"`
	Category        string     `bun:"category"`
	SKU             string     `bun:"sku,notnull"`
	CurrentStock    int        `bun:"current_stock,notnull"`
	MinStockLevel   int        `bun:"min_stock_level"`
	MaxStockLevel   int        `bun:"max_stock_level"`
	UnitPrice       float64    `bun:"unit_price"`
	CostPrice       float64    `bun:"cost_price"`
	SupplierName    string     `bun:"supplier_name"`
	SupplierContact string     `bun:"supplier_contact"`
	ExpiryDate      *time.Time `bun:"expiry_date"`
	Perishable      bool       `bun:"is_perishable"`
}

func (r inventoryRow) toDomain() contractx.InventoryItem {
	return contractx.InventoryItem{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		Name:            r.Name,
		Category:        r.Category,
		SKU:             r.SKU,
		CurrentStock:    r.CurrentStock,
		MinStockLevel:   r.MinStockLevel,
		MaxStockLevel:   r.MaxStockLevel,
		UnitPrice:       r.UnitPrice,
		CostPrice:       r.CostPrice,
		SupplierName:    r.SupplierName,
		SupplierContact: r.SupplierContact,
		ExpiryDate:      r.ExpiryDate,
		Perishable:      r.Perishable,
	}
}

type customerRow struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID               int64      `bun:"id,pk,autoincrement"`
	OwnerID          int64      `bun:"owner_id,notnull"`
	Name             string     `bun:"name,notnull"`
	Phone            string     `bun:"phone"`
	Type             string     `bun:"customer_type,notnull"`
	TotalPurchases   float64    `bun:"total_purchases"`
	LoyaltyPoints    int        `bun:"loyalty_points"`
	LastPurchaseDate *time.Time `bun:"last_purchase_date"`
	EngagementScore  float64    `bun:"engagement_score"`
	CreatedAt        time.Time  `bun:"created_at,notnull"`
}

func (r customerRow) toDomain() contractx.Customer {
	return contractx.Customer{
		ID:               r.ID,
		OwnerID:          r.OwnerID,
		Name:             r.Name,
		Phone:            r.Phone,
		Type:             contractx.CustomerType(r.Type),
		TotalPurchases:   r.TotalPurchases,
		LoyaltyPoints:    r.LoyaltyPoints,
		LastPurchaseDate: r.LastPurchaseDate,
		EngagementScore:  r.EngagementScore,
		CreatedAt:        r.CreatedAt,
	}
}

/* --------------------------------- Reads --------------------------------- */

func (p *Postgres) Transactions(ctx context.Context, ownerID int64, filter contractx.TransactionFilter) ([]contractx.Transaction, error) {
	var rows []transactionRow
	q := p.db.NewSelect().
		Model(&rows).
		Where("owner_id = ?", ownerID).
		Order("transaction_date DESC")
	if filter.Type != "" {
		q = q.Where("transaction_type = ?", string(filter.Type))
	}
	if !filter.From.IsZero() {
		q = q.Where("transaction_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("transaction_date < ?", filter.To)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}

	txs := make([]contractx.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, row.toDomain())
	}
	return txs, nil
}

func (p *Postgres) Inventory(ctx context.Context, ownerID int64) ([]contractx.InventoryItem, error) {
	var rows []inventoryRow
	err := p.db.NewSelect().
		Model(&rows).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select inventory: %w", err)
	}

	items := make([]contractx.InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

func (p *Postgres) Customers(ctx context.Context, ownerID int64) ([]contractx.Customer, error) {
	var rows []customerRow
	err := p.db.NewSelect().
		Model(&rows).
		Where("owner_id = ?", ownerID).
		Order("total_purchases DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}

	customers := make([]contractx.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, row.toDomain())
	}
	return customers, nil
}

/* -------------------------------- Writes --------------------------------- */

// RecordSale appends the sale and applies its side effects in one
// transaction: customer purchase totals, loyalty accrual and last-purchase
// date, plus a guarded stock decrement per line item. Any failed side effect
// rolls the whole sale back.
func (p *Postgres) RecordSale(ctx context.Context, tx contractx.Transaction) (contractx.Transaction, error) {
	if tx.OwnerID <= 0 {
		return contractx.Transaction{}, fmt.Errorf("%w: owner id must be positive", contractx.ErrValidation)
	}
	if tx.Amount <= 0 {
		return contractx.Transaction{}, fmt.Errorf("%w: sale amount must be positive", contractx.ErrValidation)
	}
	if tx.Type == "" {
		tx.Type = contractx.TransactionSale
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = p.now()
	}

	row := transactionRow{
		ID:            tx.ID,
		OwnerID:       tx.OwnerID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		PaymentMethod: tx.PaymentMethod,
		Description:   tx.Description,
		ProfitMargin:  tx.ProfitMargin,
		CustomerID:    tx.CustomerID,
		Items:         tx.Items,
		OccurredAt:    tx.OccurredAt,
	}

	err := p.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, dbtx bun.Tx) error {
		if _, err := dbtx.NewInsert().Model(&row).Exec(ctx); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		if tx.CustomerID != nil {
			if err := applyCustomerPurchase(ctx, dbtx, tx); err != nil {
				return err
			}
		}

		for _, item := range tx.Items {
			if item.SKU == "" || item.Quantity <= 0 {
				continue
			}
			if err := decrementStock(ctx, dbtx, tx.OwnerID, item.SKU, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return contractx.Transaction{}, err
	}
	return tx, nil
}

func applyCustomerPurchase(ctx context.Context, dbtx bun.Tx, tx contractx.Transaction) error {
	points := contractx.LoyaltyPointsForAmount(tx.Amount)
	res, err := dbtx.NewUpdate().
		Model((*customerRow)(nil)).
		Set("total_purchases = total_purchases + ?", tx.Amount).
		Set("loyalty_points = loyalty_points + ?", points).
		Set("last_purchase_date = ?", tx.OccurredAt).
		Where("id = ?", *tx.CustomerID).
		Where("owner_id = ?", tx.OwnerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update customer rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: customer %d", contractx.ErrCustomerNotFound, *tx.CustomerID)
	}
	return nil
}

// decrementStock is the guarded decrement: the WHERE clause refuses the
// update when stock would go negative, and zero rows affected means either
// a missing item or not enough stock.
func decrementStock(ctx context.Context, dbtx bun.Tx, ownerID int64, sku string, qty int) error {
	res, err := dbtx.NewUpdate().
		Model((*inventoryRow)(nil)).
		Set("current_stock = current_stock - ?", qty).
		Where("owner_id = ?", ownerID).
		Where("sku = ?", sku).
		Where("current_stock >= ?", qty).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("decrement stock %s: %w", sku, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock rows: %w", err)
	}
	if rows == 0 {
		exists, err := dbtx.NewSelect().
			Model((*inventoryRow)(nil)).
			Where("owner_id = ?", ownerID).
			Where("sku = ?", sku).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("check item %s: %w", sku, err)
		}
		if !exists {
			return fmt.Errorf("%w: sku %s", contractx.ErrItemNotFound, sku)
		}
		return fmt.Errorf("%w: sku %s needs %d", contractx.ErrInsufficientStock, sku, qty)
	}
	return nil
}

// AdjustStock applies a manual stock delta. Decrements carry the same
// non-negative guard as sale line items.
func (p *Postgres) AdjustStock(ctx context.Context, ownerID int64, sku string, delta int) (int, error) {
	if ownerID <= 0 {
		return 0, fmt.Errorf("%w: owner id must be positive", contractx.ErrValidation)
	}
	if sku == "" {
		return 0, fmt.Errorf("%w: sku is required", contractx.ErrValidation)
	}

	var stock int
	q := p.db.NewUpdate().
		Model((*inventoryRow)(nil)).
		Set("current_stock = current_stock + ?", delta).
		Where("owner_id = ?", ownerID).
		Where("sku = ?", sku).
		Returning("current_stock")
	if delta < 0 {
		q = q.Where("current_stock >= ?", -delta)
	}

	_, err := q.Exec(ctx, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		exists, err := p.db.NewSelect().
			Model((*inventoryRow)(nil)).
			Where("owner_id = ?", ownerID).
			Where("sku = ?", sku).
			Exists(ctx)
		if err != nil {
			return 0, fmt.Errorf("check item %s: %w", sku, err)
		}
		if !exists {
			return 0, fmt.Errorf("%w: sku %s", contractx.ErrItemNotFound, sku)
		}
		return 0, fmt.Errorf("%w: sku %s delta %d", contractx.ErrInsufficientStock, sku, delta)
	}
	if err != nil {
		return 0, fmt.Errorf("adjust stock %s: %w", sku, err)
	}
	return stock, nil
}
