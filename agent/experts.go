package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/rebalance"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation. The
// current rebalance report is part of its instructions so it can answer
// directly about the user's allocation.
func newFacilitator(report string, experts ...*Expert) *Expert {
	var lib Library
	for _, e := range experts {
		lib = append(lib, e)
	}
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: lib.Declarations()},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: fmt.Sprintf(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			The user is rebalancing a personal portfolio toward a target asset allocation.
			Below is the current rebalance report, comparing the current allocation with the target.
			Learn about the experts' skills from the Tools and ask them questions; they are
			at your service and keep context of your previous questions.

			Be concrete: cite tickers, categories and percentages from the report.
			Never invent trades; the tool only reports targets, it does not decide quantities.

			%s
		`, report)}}},
		},
		Library: lib,
	}
}

// NewAnalyst returns the expert that can search for market context.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		well aware of financial products and institutions and of the latest
		news about funds and companies. Ask the Analyst whenever you need
		recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find anything related to
			financial institutions, companies, markets, funds and ETFs. Leverage Google
			Search to ground your assertions, and relate the latest news to the user's request.
				`}}},
		},
	}
}

// NewAllocator returns the expert that reads the resolved allocation. Its
// tools answer from the resolution and the metadata, nothing else.
func NewAllocator(res *rebalance.Resolution, meta *rebalance.Metadata) *Expert {
	lib := Library{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "flat_allocation",
				Description: "Returns the resolved target allocation as JSON: per-ticker percentages, ordered targets and leaf groups.",
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				fresp := &genai.FunctionResponse{ID: id, Name: "flat_allocation"}
				raw, err := json.Marshal(res)
				if err != nil {
					fresp.Response = map[string]any{"error": err.Error()}
					return fresp
				}
				fresp.Response = map[string]any{"output": string(raw)}
				return fresp
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "scope",
				Description: "Returns the tickers whose metadata matches every given attribute value.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"filter_values": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeString},
							Description: "Attribute values to match, e.g. [\"equity\", \"US\"].",
						},
					},
					Required: []string{"filter_values"},
				},
			},
			Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
				fresp := &genai.FunctionResponse{ID: id, Name: "scope"}
				raw, _ := args["filter_values"].([]any)
				var filterValues []string
				for _, v := range raw {
					if s, ok := v.(string); ok {
						filterValues = append(filterValues, s)
					}
				}
				fresp.Response = map[string]any{"output": rebalance.Scope(filterValues, meta)}
				return fresp
			},
		},
	}

	return &Expert{
		Name: "Allocator",
		Description: `This is the Allocator. It has read access to the resolved target
		allocation: the per-ticker percentages, the policy targets and the leaf groups,
		and it can tell which tickers a list of attribute values selects.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: lib.Declarations()},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You answer questions about the user's resolved target allocation.
				Use the available tools, never guess numbers: flat_allocation gives the
				resolved percentages, scope tells which tickers a set of attribute values selects.
			`}}},
		},
		Library: lib,
	}
}
