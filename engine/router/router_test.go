package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	localex "github.com/vyapaarai/insight-engine/engine/locale"
)

type fakeAgent struct {
	name  string
	resp  contractx.QueryResponse
	err   error
	panic bool
	calls int
}

func (f *fakeAgent) Name() string {
	return f.name
}

func (f *fakeAgent) ProcessQuery(ctx context.Context, req contractx.QueryRequest, intent contractx.Intent) (contractx.QueryResponse, error) {
	f.calls++
	if f.panic {
		panic("agent exploded")
	}
	if f.err != nil {
		return contractx.QueryResponse{}, f.err
	}
	return f.resp, nil
}

func (f *fakeAgent) GetInsights(ctx context.Context, ownerID int64) (contractx.InsightBundle, error) {
	return contractx.InsightBundle{Domain: f.name}, nil
}

type fakeRegistry struct {
	inventory contractx.Agent
	customer  contractx.Agent
	finance   contractx.Agent
}

func (f *fakeRegistry) Inventory() contractx.Agent { return f.inventory }
func (f *fakeRegistry) Customer() contractx.Agent  { return f.customer }
func (f *fakeRegistry) Finance() contractx.Agent   { return f.finance }

func newRouter(t *testing.T, registry contractx.Registry) *Router {
	t.Helper()
	r, err := New(registry)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestRouteDispatchesByCategory(t *testing.T) {
	t.Parallel()

	inventory := &fakeAgent{name: "inventory", resp: contractx.QueryResponse{Text: "stock ok", AgentName: "inventory", Success: true}}
	finance := &fakeAgent{name: "finance", resp: contractx.QueryResponse{Text: "sales ok", AgentName: "finance", Success: true}}
	r := newRouter(t, &fakeRegistry{inventory: inventory, customer: &fakeAgent{name: "customer"}, finance: finance})

	req := contractx.QueryRequest{OwnerID: 1, Text: "stock", Locale: contractx.LocaleEnglish}
	resp := r.Route(context.Background(), req, contractx.Intent{Category: contractx.IntentInventory})
	if resp.Text != "stock ok" || inventory.calls != 1 {
		t.Fatalf("inventory intent routed wrong: %+v calls=%d", resp, inventory.calls)
	}

	resp = r.Route(context.Background(), req, contractx.Intent{Category: contractx.IntentFinance})
	if resp.Text != "sales ok" || finance.calls != 1 {
		t.Fatalf("finance intent routed wrong: %+v", resp)
	}
}

func TestRouteGeneralGreets(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{name: "inventory"}
	r := newRouter(t, &fakeRegistry{inventory: agent, customer: agent, finance: agent})

	resp := r.Route(context.Background(), contractx.QueryRequest{OwnerID: 1, Locale: contractx.LocaleEnglish}, contractx.Intent{Category: contractx.IntentGeneral})
	if !resp.Success {
		t.Fatal("greeting marked unsuccessful")
	}
	if want := localex.Resolve(localex.MsgGreeting, contractx.LocaleEnglish); resp.Text != want {
		t.Fatalf("greeting = %q, want %q", resp.Text, want)
	}
	if agent.calls != 0 {
		t.Fatal("general intent reached an agent")
	}
}

func TestRouteAgentErrorBecomesApology(t *testing.T) {
	t.Parallel()

	failing := &fakeAgent{name: "finance", err: errors.New("db down")}
	r := newRouter(t, &fakeRegistry{inventory: &fakeAgent{name: "inventory"}, customer: &fakeAgent{name: "customer"}, finance: failing})

	resp := r.Route(context.Background(), contractx.QueryRequest{OwnerID: 1, Text: "sales", Locale: contractx.LocaleEnglish}, contractx.Intent{Category: contractx.IntentFinance})
	if resp.Success {
		t.Fatal("failed agent reported success")
	}
	if want := localex.Resolve(localex.MsgFinanceApology, contractx.LocaleEnglish); resp.Text != want {
		t.Fatalf("apology = %q, want %q", resp.Text, want)
	}
	if resp.AgentName != "finance" {
		t.Fatalf("agent name = %q", resp.AgentName)
	}
}

func TestRouteAgentPanicIsContained(t *testing.T) {
	t.Parallel()

	exploding := &fakeAgent{name: "customer", panic: true}
	r := newRouter(t, &fakeRegistry{inventory: &fakeAgent{name: "inventory"}, customer: exploding, finance: &fakeAgent{name: "finance"}})

	resp := r.Route(context.Background(), contractx.QueryRequest{OwnerID: 1, Text: "ग्राहक", Locale: contractx.LocaleHindi}, contractx.Intent{Category: contractx.IntentCustomer})
	if resp.Success {
		t.Fatal("panicking agent reported success")
	}
	if want := localex.Resolve(localex.MsgCustomerApology, contractx.LocaleHindi); resp.Text != want {
		t.Fatalf("apology = %q, want %q", resp.Text, want)
	}
}

func TestRouteLocalizesApology(t *testing.T) {
	t.Parallel()

	failing := &fakeAgent{name: "inventory", err: errors.New("down")}
	r := newRouter(t, &fakeRegistry{inventory: failing, customer: &fakeAgent{name: "customer"}, finance: &fakeAgent{name: "finance"}})

	hi := r.Route(context.Background(), contractx.QueryRequest{OwnerID: 1, Locale: contractx.LocaleHindi}, contractx.Intent{Category: contractx.IntentInventory})
	en := r.Route(context.Background(), contractx.QueryRequest{OwnerID: 1, Locale: contractx.LocaleEnglish}, contractx.Intent{Category: contractx.IntentInventory})
	if hi.Text == en.Text {
		t.Fatal("apology not localized")
	}
	if strings.TrimSpace(hi.Text) == "" {
		t.Fatal("hindi apology empty")
	}
}
