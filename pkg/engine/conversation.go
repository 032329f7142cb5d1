package engine

import (
	"os"
	"sync"

	"axle/pkg/api"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Conversation 管理一段 append-only 的對話紀錄。
// 執行迴圈是唯一的寫入者；讀取端透過 Messages 取得副本。
type Conversation struct {
	messages []api.Message
	mu       sync.RWMutex
}

// NewConversation 建立對話紀錄，可選擇以既有訊息（例如前幾輪對話）播種。
func NewConversation(seed ...api.Message) *Conversation {
	c := &Conversation{
		messages: make([]api.Message, 0, len(seed)),
	}
	c.messages = append(c.messages, seed...)
	return c
}

// Add 追加一或多則訊息。紀錄只增不減。
func (c *Conversation) Add(msgs ...api.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, msgs...)
}

// Messages 取得目前對話紀錄的副本
func (c *Conversation) Messages() []api.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// 返回副本
	cp := make([]api.Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}

// Len 回傳目前訊息數量
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Last 回傳最後一則訊息；紀錄為空時 ok 為 false。
func (c *Conversation) Last() (api.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.messages) == 0 {
		return api.Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// EnsureSystemMessage 確保紀錄開頭有 system 訊息；已存在則更新內容。
func (c *Conversation) EnsureSystemMessage(prompt string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.messages) > 0 && c.messages[0].Role == api.RoleSystem {
		c.messages[0].Content = prompt
		return
	}

	sys := api.Message{Role: api.RoleSystem, Content: prompt}
	c.messages = append([]api.Message{sys}, c.messages...)
}

// Save persists the conversation to a JSON file.
func (c *Conversation) Save(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := json.MarshalIndent(c.messages, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load restores the conversation from a JSON file. A missing file leaves the
// conversation empty and is not an error.
func (c *Conversation) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var msgs []api.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = msgs
	return nil
}
