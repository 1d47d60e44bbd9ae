// Package inventory implements the stock-monitoring analytics agent:
// low-stock and expiry alerts, seasonal demand forecasts and supplier
// suggestions over one owner's inventory.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	localex "github.com/vyapaarai/insight-engine/engine/locale"
)

const (
	agentName         = "inventory"
	expiryWindowDays  = 7
	highUrgencyFactor = 0.5
)

// StockAlert flags an item at or below its minimum level.
type StockAlert struct {
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"current_stock"`
	MinLevel     int    `json:"min_level"`
	Urgency      string `json:"urgency"`
}

// OutOfStockAlert is the distinct zero-stock category; it carries supplier
// contact so the owner can reorder without a second lookup.
type OutOfStockAlert struct {
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	SupplierName    string `json:"supplier_name,omitempty"`
	SupplierContact string `json:"supplier_contact,omitempty"`
}

type ExpiryAlert struct {
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	ExpiryDate    time.Time `json:"expiry_date"`
	DaysRemaining int       `json:"days_remaining"`
	Expired       bool      `json:"expired"`
	DaysOverdue   int       `json:"days_overdue,omitempty"`
}

type Agent struct {
	store contractx.Store
	now   func() time.Time
}

var _ contractx.Agent = (*Agent)(nil)

type Option func(*Agent)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		if now != nil {
			a.now = now
		}
	}
}

func New(store contractx.Store, opts ...Option) (*Agent, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	a := &Agent{store: store, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a, nil
}

func (a *Agent) Name() string {
	return agentName
}

type topic int

const (
	topicGeneral topic = iota
	topicStock
	topicForecast
	topicSupplier
	topicExpiry
)

func detectTopic(text string) topic {
	lowered := strings.ToLower(text)
	switch {
	case containsAny(lowered, "forecast", "predict", "भविष्यवाणी", "पूर्वानुमान"):
		return topicForecast
	case containsAny(lowered, "supplier", "सप्लायर", "vendor", "विक्रेता"):
		return topicSupplier
	case containsAny(lowered, "expiry", "एक्सपायरी", "expire", "समाप्त"):
		return topicExpiry
	case containsAny(lowered, "stock", "स्टॉक", "inventory", "भंडार"):
		return topicStock
	default:
		return topicGeneral
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func (a *Agent) ProcessQuery(ctx context.Context, req contractx.QueryRequest, _ contractx.Intent) (contractx.QueryResponse, error) {
	loc := req.Locale.OrDefault()
	switch detectTopic(req.Text) {
	case topicStock:
		return a.stockInquiry(ctx, req.OwnerID, loc)
	case topicForecast:
		return a.demandForecast(loc), nil
	case topicSupplier:
		return a.supplierSuggestion(loc), nil
	case topicExpiry:
		return a.expiryCheck(ctx, req.OwnerID, loc)
	default:
		return contractx.QueryResponse{
			Text:      localex.Resolve(localex.MsgInventoryHelp, loc),
			AgentName: agentName,
			Success:   true,
		}, nil
	}
}

func (a *Agent) stockInquiry(ctx context.Context, ownerID int64, loc contractx.Locale) (contractx.QueryResponse, error) {
	items, err := a.store.Inventory(ctx, ownerID)
	if err != nil {
		return contractx.QueryResponse{}, fmt.Errorf("%w: query inventory: %v", contractx.ErrComputation, err)
	}

	low := make([]contractx.InventoryItem, 0)
	for _, item := range items {
		if item.CurrentStock <= item.MinStockLevel {
			low = append(low, item)
		}
	}

	var sb strings.Builder
	sb.WriteString(localex.Format(localex.MsgStockStatus, loc, len(items), len(low)))
	if len(low) > 0 {
		sb.WriteString(localex.Resolve(localex.MsgStockOrderNow, loc))
		for i, item := range low {
			if i == 3 {
				break
			}
			sb.WriteString(localex.Format(localex.MsgStockOrderLine, loc, item.Name, item.CurrentStock))
		}
	}

	return contractx.QueryResponse{
		Text:      sb.String(),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"total_items":     len(items),
			"low_stock_count": len(low),
		},
	}, nil
}

func (a *Agent) demandForecast(loc contractx.Locale) contractx.QueryResponse {
	month := a.now().Month()
	festivals := upcomingFestivals(month)
	season := seasonFor(month)

	var sb strings.Builder
	sb.WriteString(localex.Resolve(localex.MsgForecastHeader, loc))
	for _, f := range festivals {
		sb.WriteString(localex.Format(localex.MsgForecastFestival, loc, f.Name, strings.Join(f.Categories, ", ")))
	}
	sb.WriteString("\n")
	sb.WriteString(localex.Resolve(seasonMessage[season], loc))

	return contractx.QueryResponse{
		Text:      sb.String(),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"upcoming_festivals": festivals,
			"season":             string(season),
			"seasonal_items":     seasonalDemand[season],
		},
	}
}

func (a *Agent) supplierSuggestion(loc contractx.Locale) contractx.QueryResponse {
	return contractx.QueryResponse{
		Text:      localex.Resolve(localex.MsgSupplierList, loc),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"suppliers": supplierSuggestions,
		},
	}
}

func (a *Agent) expiryCheck(ctx context.Context, ownerID int64, loc contractx.Locale) (contractx.QueryResponse, error) {
	items, err := a.store.Inventory(ctx, ownerID)
	if err != nil {
		return contractx.QueryResponse{}, fmt.Errorf("%w: query inventory: %v", contractx.ErrComputation, err)
	}

	alerts := a.expiryAlerts(items)
	if len(alerts) == 0 {
		return contractx.QueryResponse{
			Text:      localex.Resolve(localex.MsgExpiryNone, loc),
			AgentName: agentName,
			Success:   true,
		}, nil
	}

	var sb strings.Builder
	sb.WriteString(localex.Resolve(localex.MsgExpiryHeader, loc))
	for i, alert := range alerts {
		if i == 5 {
			break
		}
		if alert.Expired {
			sb.WriteString(localex.Format(localex.MsgExpiredLine, loc, alert.Name, alert.DaysOverdue))
		} else {
			sb.WriteString(localex.Format(localex.MsgExpiryLine, loc, alert.Name, alert.DaysRemaining))
		}
	}

	return contractx.QueryResponse{
		Text:      sb.String(),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"expiring_items": len(alerts),
		},
	}, nil
}

// GetInsights derives the full inventory picture: alert lists, seasonal
// demand estimates, the festival outlook and static supplier suggestions.
func (a *Agent) GetInsights(ctx context.Context, ownerID int64) (contractx.InsightBundle, error) {
	items, err := a.store.Inventory(ctx, ownerID)
	if err != nil {
		return contractx.InsightBundle{}, fmt.Errorf("%w: query inventory: %v", contractx.ErrComputation, err)
	}

	lowStock := make([]StockAlert, 0)
	outOfStock := make([]OutOfStockAlert, 0)
	for _, item := range items {
		if item.CurrentStock == 0 {
			outOfStock = append(outOfStock, OutOfStockAlert{
				Name:            item.Name,
				SKU:             item.SKU,
				SupplierName:    item.SupplierName,
				SupplierContact: item.SupplierContact,
			})
			continue
		}
		if alert, ok := stockAlertFor(item); ok {
			lowStock = append(lowStock, alert)
		}
	}

	expiry := a.expiryAlerts(items)
	month := a.now().Month()
	season := seasonFor(month)

	recommendations := make([]string, 0, 2)
	if len(lowStock) > 0 || len(outOfStock) > 0 {
		recommendations = append(recommendations, localex.Resolve(localex.MsgRecRestockLow, contractx.LocaleEnglish))
	}
	if len(expiry) > 0 {
		recommendations = append(recommendations, localex.Resolve(localex.MsgRecClearExpiring, contractx.LocaleEnglish))
	}

	return contractx.InsightBundle{
		Domain: agentName,
		Metrics: map[string]any{
			"total_items":              len(items),
			"low_stock_items":          lowStock,
			"out_of_stock_items":       outOfStock,
			"expiry_alerts":            expiry,
			"high_demand_predictions":  seasonalDemand[season],
			"upcoming_festivals":       upcomingFestivals(month),
			"seasonal_recommendations": seasonalAdvice[season],
			"supplier_recommendations": supplierSuggestions,
		},
		Recommendations: recommendations,
	}, nil
}

// stockAlertFor reports whether the item is at or below its minimum level.
// Urgency is "high" only below half the minimum.
func stockAlertFor(item contractx.InventoryItem) (StockAlert, bool) {
	if item.CurrentStock > item.MinStockLevel {
		return StockAlert{}, false
	}
	urgency := "medium"
	if float64(item.CurrentStock) < highUrgencyFactor*float64(item.MinStockLevel) {
		urgency = "high"
	}
	return StockAlert{
		Name:         item.Name,
		SKU:          item.SKU,
		CurrentStock: item.CurrentStock,
		MinLevel:     item.MinStockLevel,
		Urgency:      urgency,
	}, true
}

func (a *Agent) expiryAlerts(items []contractx.InventoryItem) []ExpiryAlert {
	now := a.now()
	horizon := now.Add(expiryWindowDays * 24 * time.Hour)

	alerts := make([]ExpiryAlert, 0)
	for _, item := range items {
		if item.ExpiryDate == nil || item.ExpiryDate.After(horizon) {
			continue
		}
		exp := *item.ExpiryDate
		alert := ExpiryAlert{
			Name:       item.Name,
			SKU:        item.SKU,
			ExpiryDate: exp,
		}
		if exp.Before(now) {
			alert.Expired = true
			alert.DaysOverdue = int(now.Sub(exp).Hours() / 24)
		} else {
			alert.DaysRemaining = int(exp.Sub(now).Hours() / 24)
		}
		alerts = append(alerts, alert)
	}
	return alerts
}
