package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
)

// graphState carries one query through the pipeline.
type graphState struct {
	Request contractx.QueryRequest
	Intent  contractx.Intent
	Reply   contractx.QueryResponse
}

func (e *Engine) compileHandleQueryGraph(
	ctx context.Context,
) (compose.Runnable[contractx.QueryRequest, contractx.QueryResponse], error) {
	graph := compose.NewGraph[contractx.QueryRequest, contractx.QueryResponse]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, req contractx.QueryRequest) (*graphState, error) {
			return validateRequest(req)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("classify_intent",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			in.Intent = e.classifier.Classify(ctx, in.Request.Text, in.Request.Locale)
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode("route_to_agent",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			in.Reply = e.router.Route(ctx, in.Request, in.Intent)
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node route_to_agent: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (contractx.QueryResponse, error) {
			return in.Reply, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "classify_intent"},
		{"classify_intent", "route_to_agent"},
		{"route_to_agent", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("engine.handle_query"))
	if err != nil {
		return nil, fmt.Errorf("compile query graph: %w", err)
	}
	return runner, nil
}

func validateRequest(req contractx.QueryRequest) (*graphState, error) {
	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: owner id must be positive", contractx.ErrValidation)
	}
	req.Text = strings.TrimSpace(req.Text)
	req.Locale = req.Locale.OrDefault()
	return &graphState{Request: req}, nil
}
