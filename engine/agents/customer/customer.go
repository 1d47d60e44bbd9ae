// Package customer implements the engagement analytics agent: segmentation
// summaries, loyalty metrics, top-customer ranking and deterministic
// promotion drafts over one owner's customer base.
package customer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	localex "github.com/vyapaarai/insight-engine/engine/locale"
)

const (
	agentName        = "customer"
	activeWindowDays = 30
	activeRatioFloor = 0.3
	topCustomerCount = 5
)

type Agent struct {
	store contractx.Store
	now   func() time.Time
}

var _ contractx.Agent = (*Agent)(nil)

type Option func(*Agent)

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
	topicInquiry
	topicPromotion
	topicLoyalty
	topicCampaign
)

func detectTopic(text string) topic {
	lowered := strings.ToLower(text)
	switch {
	case containsAny(lowered, "promotion", "प्रमोशन", "offer", "ऑफर"):
		return topicPromotion
	case containsAny(lowered, "loyalty", "वफादारी", "points", "पॉइंट्स"):
		return topicLoyalty
	case containsAny(lowered, "whatsapp", "व्हाट्सऐप", "message", "संदेश", "campaign"):
		return topicCampaign
	case containsAny(lowered, "customer", "ग्राहक", "खरीदार"):
		return topicInquiry
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
	case topicInquiry:
		return a.customerInquiry(ctx, req.OwnerID, loc)
	case topicPromotion:
		return a.promotionSuggestion(loc), nil
	case topicLoyalty:
		return a.loyaltyStatus(ctx, req.OwnerID, loc)
	case topicCampaign:
		return a.campaignSuggestion(loc), nil
	default:
		return contractx.QueryResponse{
			Text:      localex.Resolve(localex.MsgCustomerHelp, loc),
			AgentName: agentName,
			Success:   true,
		}, nil
	}
}

func (a *Agent) customerInquiry(ctx context.Context, ownerID int64, loc contractx.Locale) (contractx.QueryResponse, error) {
	customers, err := a.store.Customers(ctx, ownerID)
	if err != nil {
		return contractx.QueryResponse{}, fmt.Errorf("%w: query customers: %v", contractx.ErrComputation, err)
	}

	if len(customers) == 0 {
		return contractx.QueryResponse{
			Text:      localex.Resolve(localex.MsgCustomerNone, loc),
			AgentName: agentName,
			Success:   true,
			Data:      map[string]any{"total_customers": 0},
		}, nil
	}

	segments := segmentCounts(customers)
	var sb strings.Builder
	sb.WriteString(localex.Format(localex.MsgCustomerSummary, loc,
		len(customers),
		segments[contractx.CustomerRegular],
		segments[contractx.CustomerPremium],
		segments[contractx.CustomerOccasional],
	))

	top := topCustomers(customers, 1)
	if len(top) > 0 {
		sb.WriteString(localex.Format(localex.MsgCustomerTopLine, loc, top[0].Name, top[0].TotalPurchases))
	}

	return contractx.QueryResponse{
		Text:      sb.String(),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"total_customers": len(customers),
		},
	}, nil
}

func (a *Agent) promotionSuggestion(loc contractx.Locale) contractx.QueryResponse {
	promos := promotionsFor(a.now().Month(), loc)

	var sb strings.Builder
	sb.WriteString(localex.Resolve(localex.MsgPromoHeader, loc))
	for i, promo := range promos {
		if i == 3 {
			break
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n\n", i+1, promo))
	}
	sb.WriteString(localex.Resolve(localex.MsgPromoChoose, loc))

	return contractx.QueryResponse{
		Text:      sb.String(),
		AgentName: agentName,
		Success:   true,
		Data:      map[string]any{"promotions": promos},
	}
}

func (a *Agent) loyaltyStatus(ctx context.Context, ownerID int64, loc contractx.Locale) (contractx.QueryResponse, error) {
	customers, err := a.store.Customers(ctx, ownerID)
	if err != nil {
		return contractx.QueryResponse{}, fmt.Errorf("%w: query customers: %v", contractx.ErrComputation, err)
	}

	totalPoints, activeMembers := loyaltyTotals(customers)

	return contractx.QueryResponse{
		Text:      localex.Format(localex.MsgLoyaltyStatus, loc, totalPoints, activeMembers),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"total_points":   totalPoints,
			"active_members": activeMembers,
			"reward_tiers":   rewardTiers,
		},
	}, nil
}

func (a *Agent) campaignSuggestion(loc contractx.Locale) contractx.QueryResponse {
	campaigns := campaignMessages(loc)

	var sb strings.Builder
	sb.WriteString(localex.Resolve(localex.MsgCampaignHeader, loc))
	for i, campaign := range campaigns {
		sb.WriteString(fmt.Sprintf("%d. %s\n\n", i+1, campaign))
	}

	return contractx.QueryResponse{
		Text:      sb.String(),
		AgentName: agentName,
		Success:   true,
		Data:      map[string]any{"campaigns": campaigns},
	}
}

// GetInsights summarizes segmentation, engagement, loyalty and the top
// customers. Segment counts always sum to the total because the stored type
// is authoritative and every customer carries one.
func (a *Agent) GetInsights(ctx context.Context, ownerID int64) (contractx.InsightBundle, error) {
	customers, err := a.store.Customers(ctx, ownerID)
	if err != nil {
		return contractx.InsightBundle{}, fmt.Errorf("%w: query customers: %v", contractx.ErrComputation, err)
	}

	segments := segmentCounts(customers)
	active := a.activeCount(customers)
	totalPoints, participants := loyaltyTotals(customers)

	avgEngagement := 0.0
	if len(customers) > 0 {
		total := 0.0
		for _, c := range customers {
			total += c.EngagementScore
		}
		avgEngagement = total / float64(len(customers))
	}

	top := make([]map[string]any, 0, topCustomerCount)
	for _, c := range topCustomers(customers, topCustomerCount) {
		entry := map[string]any{
			"name":            c.Name,
			"total_purchases": c.TotalPurchases,
			"loyalty_points":  c.LoyaltyPoints,
		}
		if c.LastPurchaseDate != nil {
			entry["last_purchase"] = c.LastPurchaseDate.Format(time.RFC3339)
		}
		top = append(top, entry)
	}

	return contractx.InsightBundle{
		Domain: agentName,
		Metrics: map[string]any{
			"total_customers": len(customers),
			"customer_segments": map[string]int{
				string(contractx.CustomerRegular):    segments[contractx.CustomerRegular],
				string(contractx.CustomerPremium):    segments[contractx.CustomerPremium],
				string(contractx.CustomerOccasional): segments[contractx.CustomerOccasional],
			},
			"engagement_metrics": map[string]any{
				"avg_engagement_score": avgEngagement,
				"active_customers":     active,
				"inactive_customers":   len(customers) - active,
			},
			"loyalty_program": map[string]any{
				"total_points_issued": totalPoints,
				"active_participants": participants,
				"reward_tiers":        rewardTiers,
			},
			"top_customers": top,
		},
		Recommendations: a.recommendations(len(customers), active),
	}, nil
}

// segmentCounts tallies the stored type field; it never recomputes type
// from purchase history.
func segmentCounts(customers []contractx.Customer) map[contractx.CustomerType]int {
	counts := map[contractx.CustomerType]int{
		contractx.CustomerRegular:    0,
		contractx.CustomerPremium:    0,
		contractx.CustomerOccasional: 0,
	}
	for _, c := range customers {
		counts[c.Type]++
	}
	return counts
}

func (a *Agent) activeCount(customers []contractx.Customer) int {
	threshold := a.now().AddDate(0, 0, -activeWindowDays)
	active := 0
	for _, c := range customers {
		if c.LastPurchaseDate != nil && !c.LastPurchaseDate.Before(threshold) {
			active++
		}
	}
	return active
}

func loyaltyTotals(customers []contractx.Customer) (totalPoints, activeMembers int) {
	for _, c := range customers {
		totalPoints += c.LoyaltyPoints
		if c.LoyaltyPoints > 0 {
			activeMembers++
		}
	}
	return totalPoints, activeMembers
}

// topCustomers ranks by total purchases descending; the sort is stable so
// ties keep their original iteration order.
func topCustomers(customers []contractx.Customer, n int) []contractx.Customer {
	ranked := append([]contractx.Customer(nil), customers...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalPurchases > ranked[j].TotalPurchases
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func (a *Agent) recommendations(total, active int) []string {
	en := contractx.LocaleEnglish
	recs := make([]string, 0, 3)
	switch {
	case total == 0:
		recs = append(recs, localex.Resolve(localex.MsgRecCollectData, en))
	case float64(active) < activeRatioFloor*float64(total):
		recs = append(recs, localex.Resolve(localex.MsgRecWinBack, en))
	}
	recs = append(recs, localex.Resolve(localex.MsgRecSeasonalPromo, en))
	return recs
}
