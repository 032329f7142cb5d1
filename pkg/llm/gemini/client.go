package gemini

import (
	"context"
	"fmt"
	"strings"

	"axle/pkg/api"
	"axle/pkg/llm"
	"axle/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"google.golang.org/genai"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GeminiClient is a decision gateway backed by the Google Gemini API.
type GeminiClient struct {
	client       *genai.Client
	model        string
	debugEnabled bool
}

// NewGeminiClient creates a Gemini-backed decider with a single model and API key.
func NewGeminiClient(apiKey string, model string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Provider() string {
	return "gemini"
}

func (g *GeminiClient) SetDebug(enabled bool) {
	g.debugEnabled = enabled
}

func (g *GeminiClient) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "unavailable") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "internal error")
}

// Decide implements llm.Decider.
func (g *GeminiClient) Decide(ctx context.Context, messages []api.Message, schemas []api.ToolSchema) (api.Message, error) {
	contents, systemInstruction := g.convertMessages(messages)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
	}
	if tools := g.convertTools(schemas); tools != nil {
		cfg.Tools = tools
	}

	debugger := llm.NewExchangeDebugger("gemini", g.debugEnabled)
	defer debugger.Close()
	debugger.WriteSection("request", contents)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return api.Message{}, fmt.Errorf("gemini generate failed: %w", err)
	}
	debugger.WriteSection("response", resp)

	var requests []api.ToolRequest
	for _, fc := range resp.FunctionCalls() {
		id := fc.ID
		if id == "" {
			// Gemini rarely sets call ids; generate correlation ids locally.
			id = utils.GenerateID()
		}
		requests = append(requests, api.ToolRequest{
			ID:        id,
			Name:      fc.Name,
			Arguments: fc.Args,
		})
	}

	return api.NewDecision(resp.Text(), requests...), nil
}

func (g *GeminiClient) convertMessages(messages []api.Message) ([]*genai.Content, *genai.Content) {
	var contents []*genai.Content
	var systemInstruction *genai.Content

	for _, m := range messages {
		switch m.Role {
		case api.RoleSystem:
			systemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
		case api.RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case api.RoleAssistant:
			var parts []*genai.Part
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, req := range m.Requests {
				parts = append(parts, genai.NewPartFromFunctionCall(req.Name, req.Arguments))
			}
			if len(parts) > 0 {
				contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
			}
		case api.RoleTool:
			part := genai.NewPartFromFunctionResponse(m.ToolName, map[string]any{
				"result": m.Content,
			})
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser))
		}
	}

	return contents, systemInstruction
}

func (g *GeminiClient) convertTools(schemas []api.ToolSchema) []*genai.Tool {
	if len(schemas) == 0 {
		return nil
	}

	var fds []*genai.FunctionDeclaration
	for _, s := range schemas {
		fd := &genai.FunctionDeclaration{
			Name:        s.Name,
			Description: s.Description,
		}
		// JSON round-trip into the SDK's schema type.
		raw, err := json.Marshal(s.JSONSchema())
		if err == nil {
			var schema genai.Schema
			if err := json.Unmarshal(raw, &schema); err == nil {
				fd.Parameters = &schema
			}
		}
		fds = append(fds, fd)
	}

	return []*genai.Tool{{FunctionDeclarations: fds}}
}
