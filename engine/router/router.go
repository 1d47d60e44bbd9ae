// Package router dispatches a classified query to the owning agent and
// absorbs agent failures into localized apology responses. A routing call
// never returns an error to its caller; degraded answers beat dead air.
package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	localex "github.com/vyapaarai/insight-engine/engine/locale"
)

// apologyByCategory keeps the failure wording domain-specific so the owner
// knows which part of the assistant struggled.
var apologyByCategory = map[contractx.IntentCategory]localex.MessageID{
	contractx.IntentInventory: localex.MsgInventoryApology,
	contractx.IntentCustomer:  localex.MsgCustomerApology,
	contractx.IntentFinance:   localex.MsgFinanceApology,
}

type Router struct {
	registry contractx.Registry
}

func New(registry contractx.Registry) (*Router, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	return &Router{registry: registry}, nil
}

// Route resolves the intent category to an agent and runs its ProcessQuery.
// GENERAL short-circuits to the greeting; any agent error or panic becomes a
// Success=false apology in the request locale.
func (r *Router) Route(ctx context.Context, req contractx.QueryRequest, intent contractx.Intent) contractx.QueryResponse {
	loc := req.Locale.OrDefault()

	agent := r.agentFor(intent.Category)
	if agent == nil {
		return contractx.QueryResponse{
			Text:      localex.Resolve(localex.MsgGreeting, loc),
			AgentName: "general",
			Success:   true,
		}
	}

	resp, err := r.process(ctx, agent, req, intent)
	if err != nil {
		log.Error().
			Err(err).
			Str("agent", agent.Name()).
			Str("category", string(intent.Category)).
			Int64("owner_id", req.OwnerID).
			Msg("agent query failed")
		return contractx.QueryResponse{
			Text:      r.apology(intent.Category, loc),
			AgentName: agent.Name(),
			Success:   false,
		}
	}
	if resp.AgentName == "" {
		resp.AgentName = agent.Name()
	}
	return resp
}

func (r *Router) agentFor(category contractx.IntentCategory) contractx.Agent {
	switch category {
	case contractx.IntentInventory:
		return r.registry.Inventory()
	case contractx.IntentCustomer:
		return r.registry.Customer()
	case contractx.IntentFinance:
		return r.registry.Finance()
	default:
		return nil
	}
}

// process isolates agent panics so one misbehaving agent cannot take down
// the whole query path.
func (r *Router) process(ctx context.Context, agent contractx.Agent, req contractx.QueryRequest, intent contractx.Intent) (resp contractx.QueryResponse, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("agent %s panicked: %v", agent.Name(), rec)
		}
	}()
	return agent.ProcessQuery(ctx, req, intent)
}

func (r *Router) apology(category contractx.IntentCategory, loc contractx.Locale) string {
	if id, ok := apologyByCategory[category]; ok {
		return localex.Resolve(id, loc)
	}
	return localex.Resolve(localex.MsgGeneralApology, loc)
}
