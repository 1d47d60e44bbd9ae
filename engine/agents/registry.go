// Package agents assembles the fixed domain-agent set over one store.
package agents

import (
	customerx "github.com/vyapaarai/insight-engine/engine/agents/customer"
	financex "github.com/vyapaarai/insight-engine/engine/agents/finance"
	inventoryx "github.com/vyapaarai/insight-engine/engine/agents/inventory"
	contractx "github.com/vyapaarai/insight-engine/engine/contract"
)

type registryImpl struct {
	inventory contractx.Agent
	customer  contractx.Agent
	finance   contractx.Agent
}

func (r *registryImpl) Inventory() contractx.Agent {
	return r.inventory
}

func (r *registryImpl) Customer() contractx.Agent {
	return r.customer
}

func (r *registryImpl) Finance() contractx.Agent {
	return r.finance
}

func NewRegistry(store contractx.Store) (contractx.Registry, error) {
	inventory, err := inventoryx.New(store)
	if err != nil {
		return nil, err
	}
	customer, err := customerx.New(store)
	if err != nil {
		return nil, err
	}
	finance, err := financex.New(store)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		inventory: inventory,
		customer:  customer,
		finance:   finance,
	}, nil
}
