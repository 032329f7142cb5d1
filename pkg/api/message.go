package api

import (
	"time"

	"axle/pkg/utils"
)

//----------------------------------------------------------------
// Message - 對話紀錄的基本單位（append-only）
//----------------------------------------------------------------

// Message 表示對話紀錄中的一則訊息。
// Role 決定哪些欄位有效：
//   - RoleUser:      Content
//   - RoleAssistant: Content（可為空）+ Requests（零或多個工具調用請求）
//   - RoleTool:      Content + RequestID（對應某個 ToolRequest.ID）
type Message struct {
	ID        string        `json:"id"`
	Role      string        `json:"role"`
	Content   string        `json:"content,omitempty"`
	Requests  []ToolRequest `json:"requests,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	ToolName  string        `json:"tool_name,omitempty"`
	Timestamp int64         `json:"timestamp,omitempty"`
}

// ToolRequest 表示 assistant 決策中產生的一個工具調用請求。
// 建立後不可變更；ID 在所屬決策內唯一。
type ToolRequest struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// NewUserMessage 建立使用者訊息
func NewUserMessage(text string) Message {
	return Message{
		ID:        utils.GenerateID(),
		Role:      RoleUser,
		Content:   text,
		Timestamp: time.Now().Unix(),
	}
}

// NewDecision 建立 assistant 決策訊息，requests 可為空
func NewDecision(content string, requests ...ToolRequest) Message {
	return Message{
		ID:        utils.GenerateID(),
		Role:      RoleAssistant,
		Content:   content,
		Requests:  requests,
		Timestamp: time.Now().Unix(),
	}
}

// NewToolResult 建立工具結果訊息，requestID 關聯回原始請求
func NewToolResult(requestID, toolName, content string) Message {
	return Message{
		ID:        utils.GenerateID(),
		Role:      RoleTool,
		Content:   content,
		RequestID: requestID,
		ToolName:  toolName,
		Timestamp: time.Now().Unix(),
	}
}

// IsDecision reports whether the message is an assistant decision.
func (m Message) IsDecision() bool {
	return m.Role == RoleAssistant
}

// WantsTools reports whether the message is a decision that requests tool use.
func (m Message) WantsTools() bool {
	return m.Role == RoleAssistant && len(m.Requests) > 0
}
