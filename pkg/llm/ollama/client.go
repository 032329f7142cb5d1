package ollama

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"axle/pkg/api"
	"axle/pkg/llm"
	"axle/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	oapi "github.com/ollama/ollama/api"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OllamaClient is a decision gateway backed by a local Ollama instance.
type OllamaClient struct {
	client       *oapi.Client
	model        string
	options      map[string]any
	debugEnabled bool
}

// NewOllamaClient creates an Ollama-backed decider.
func NewOllamaClient(model string, baseURL string, options map[string]any) (*OllamaClient, error) {
	// Custom transport so the local model, not the HTTP client, decides how
	// long a decide call may take.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 0,
	}
	httpClient := &http.Client{Transport: transport, Timeout: 0}

	var client *oapi.Client
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		client = oapi.NewClient(u, httpClient)
	} else {
		var err error
		client, err = oapi.ClientFromEnvironment()
		if err != nil {
			return nil, err
		}
	}

	return &OllamaClient{
		client:  client,
		model:   model,
		options: options,
	}, nil
}

func (o *OllamaClient) Provider() string {
	return "ollama"
}

func (o *OllamaClient) SetDebug(enabled bool) {
	o.debugEnabled = enabled
}

func (o *OllamaClient) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "server busy")
}

// Decide implements llm.Decider.
func (o *OllamaClient) Decide(ctx context.Context, messages []api.Message, schemas []api.ToolSchema) (api.Message, error) {
	// Convert tools through a JSON round-trip to sidestep SDK type churn.
	var tools []oapi.Tool
	if len(schemas) > 0 {
		raw, err := json.Marshal(llm.FunctionMaps(schemas))
		if err != nil {
			return api.Message{}, fmt.Errorf("failed to marshal tools: %w", err)
		}
		if err := json.Unmarshal(raw, &tools); err != nil {
			return api.Message{}, fmt.Errorf("failed to convert tools: %w", err)
		}
	}

	stream := false
	req := &oapi.ChatRequest{
		Model:    o.model,
		Messages: o.convertMessages(messages),
		Stream:   &stream,
		Tools:    tools,
		Options:  o.options,
	}

	debugger := llm.NewExchangeDebugger("ollama", o.debugEnabled)
	defer debugger.Close()
	debugger.WriteSection("request", req)

	var final oapi.ChatResponse
	err := o.client.Chat(ctx, req, func(resp oapi.ChatResponse) error {
		// Stream disabled: the callback fires once with the full response.
		final = resp
		return nil
	})
	if err != nil {
		return api.Message{}, fmt.Errorf("ollama chat failed: %w", err)
	}
	debugger.WriteSection("response", final)

	requests := make([]api.ToolRequest, 0, len(final.Message.ToolCalls))
	for _, tc := range final.Message.ToolCalls {
		// Ollama emits no call ids; generate correlation ids locally.
		requests = append(requests, api.ToolRequest{
			ID:        utils.GenerateID(),
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments.ToMap(),
		})
	}

	return api.NewDecision(final.Message.Content, requests...), nil
}

func (o *OllamaClient) convertMessages(messages []api.Message) []oapi.Message {
	out := make([]oapi.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case api.RoleSystem, api.RoleUser:
			out = append(out, oapi.Message{Role: m.Role, Content: m.Content})
		case api.RoleAssistant:
			msg := oapi.Message{Role: m.Role, Content: m.Content}
			for _, req := range m.Requests {
				args := oapi.NewToolCallFunctionArguments()
				for k, v := range req.Arguments {
					args.Set(k, v)
				}
				msg.ToolCalls = append(msg.ToolCalls, oapi.ToolCall{
					Function: oapi.ToolCallFunction{
						Name:      req.Name,
						Arguments: args,
					},
				})
			}
			out = append(out, msg)
		case api.RoleTool:
			out = append(out, oapi.Message{Role: "tool", Content: m.Content})
		}
	}
	return out
}
