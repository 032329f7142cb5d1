package openailm

import (
	"context"
	"fmt"
	"strings"

	"axle/pkg/api"
	"axle/pkg/llm"
	"axle/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client is a decision gateway backed by the official OpenAI Go SDK
// (Responses API, non-streaming).
type Client struct {
	client       *openai.Client
	provider     string
	model        string
	debugEnabled bool
	options      map[string]any
}

// NewClient creates a new OpenAI-backed decider.
func NewClient(provider string, apiKey string, model string, baseURL string, options map[string]any) (*Client, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)

	return &Client{
		client:   &client,
		provider: provider,
		model:    model,
		options:  options,
	}, nil
}

func (c *Client) Provider() string {
	return c.provider
}

func (c *Client) SetDebug(enabled bool) {
	c.debugEnabled = enabled
}

func (c *Client) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	// Transient: network-level issues
	if strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") {
		return true
	}

	// Transient: server-side temporary failures
	if strings.Contains(msg, "500 internal") ||
		strings.Contains(msg, "502 bad gateway") ||
		strings.Contains(msg, "503 service unavailable") ||
		strings.Contains(msg, "overloaded") {
		return true
	}

	// Everything else (400 Bad Request, 401 Unauthorized, etc.) is non-transient
	return false
}

// Decide implements llm.Decider.
func (c *Client) Decide(ctx context.Context, messages []api.Message, schemas []api.ToolSchema) (api.Message, error) {
	params := responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: c.convertMessages(messages),
		},
	}

	opts := []option.RequestOption{}
	if t, ok := c.options["temperature"].(float64); ok {
		opts = append(opts, option.WithJSONSet("temperature", t))
	}
	if maxTok, ok := c.options["max_tokens"].(float64); ok {
		opts = append(opts, option.WithJSONSet("max_output_tokens", int(maxTok)))
	}

	if tools := c.convertTools(schemas); len(tools) > 0 {
		params.Tools = tools
	}

	debugger := llm.NewExchangeDebugger(c.provider, c.debugEnabled)
	defer debugger.Close()
	debugger.WriteSection("request", params)

	resp, err := c.client.Responses.New(ctx, params, opts...)
	if err != nil {
		return api.Message{}, fmt.Errorf("openai response failed: %w", err)
	}
	debugger.WriteSection("response", resp)

	var text strings.Builder
	var requests []api.ToolRequest

	for _, item := range resp.Output {
		switch item.Type {
		case "message":
			for _, block := range item.Content {
				if block.Type == "output_text" {
					text.WriteString(block.Text)
				}
			}
		case "function_call":
			args := map[string]any{}
			if trimmed := strings.TrimSpace(item.Arguments); trimmed != "" {
				if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
					return api.Message{}, fmt.Errorf("openai tool arguments malformed: %w", err)
				}
			}
			id := item.CallID
			if id == "" {
				id = item.ID
			}
			if id == "" {
				id = utils.GenerateID()
			}
			requests = append(requests, api.ToolRequest{
				ID:        id,
				Name:      item.Name,
				Arguments: args,
			})
		}
	}

	return api.NewDecision(text.String(), requests...), nil
}

func (c *Client) convertMessages(messages []api.Message) []responses.ResponseInputItemUnionParam {
	items := make([]responses.ResponseInputItemUnionParam, 0, len(messages))

	for _, m := range messages {
		switch m.Role {
		case api.RoleSystem:
			items = append(items, responses.ResponseInputItemParamOfMessage(
				m.Content,
				responses.EasyInputMessageRoleSystem,
			))
		case api.RoleUser:
			items = append(items, responses.ResponseInputItemParamOfMessage(
				m.Content,
				responses.EasyInputMessageRoleUser,
			))
		case api.RoleAssistant:
			if m.Content != "" {
				items = append(items, responses.ResponseInputItemParamOfMessage(
					m.Content,
					responses.EasyInputMessageRoleAssistant,
				))
			}
			for _, req := range m.Requests {
				argsJSON, err := json.MarshalToString(req.Arguments)
				if err != nil {
					argsJSON = "{}"
				}
				items = append(items, responses.ResponseInputItemParamOfFunctionCall(
					argsJSON,
					req.ID,
					req.Name,
				))
			}
		case api.RoleTool:
			items = append(items, responses.ResponseInputItemParamOfFunctionCallOutput(
				m.RequestID,
				m.Content,
			))
		}
	}

	return items
}

func (c *Client) convertTools(schemas []api.ToolSchema) []responses.ToolUnionParam {
	var tools []responses.ToolUnionParam
	for _, s := range schemas {
		tools = append(tools, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        s.Name,
				Description: openai.String(s.Description),
				Parameters:  s.JSONSchema(),
			},
		})
	}
	return tools
}
