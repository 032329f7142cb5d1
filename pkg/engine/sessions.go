package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var filenameSafeRegex = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

// SessionManager manages multiple conversations isolated by session ID, with
// optional JSON persistence so multi-turn seeding survives restarts.
type SessionManager struct {
	conversations map[string]*Conversation
	storage       string
	mu            sync.RWMutex
}

// NewSessionManager initializes a SessionManager with a specific storage
// directory. Empty storage disables persistence.
func NewSessionManager(storage string) *SessionManager {
	if storage != "" {
		os.MkdirAll(storage, 0755)
	}
	return &SessionManager{
		conversations: make(map[string]*Conversation),
		storage:       storage,
	}
}

// Get retrieves an existing conversation for a session or creates/loads one.
func (sm *SessionManager) Get(sessionID string) (*Conversation, error) {
	sm.mu.RLock()
	c, ok := sm.conversations[sessionID]
	sm.mu.RUnlock()

	if ok {
		return c, nil
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	// Double check under lock
	if c, ok = sm.conversations[sessionID]; ok {
		return c, nil
	}

	c = NewConversation()
	if sm.storage != "" {
		if err := c.Load(sm.historyPath(sessionID)); err != nil {
			return nil, err
		}
	}

	sm.conversations[sessionID] = c
	return c, nil
}

// Save persists a specific session's conversation to disk.
func (sm *SessionManager) Save(sessionID string) error {
	sm.mu.RLock()
	c, ok := sm.conversations[sessionID]
	sm.mu.RUnlock()

	if !ok || sm.storage == "" {
		return nil
	}
	return c.Save(sm.historyPath(sessionID))
}

func (sm *SessionManager) historyPath(sessionID string) string {
	safeID := filenameSafeRegex.ReplaceAllString(sessionID, "_")
	return filepath.Join(sm.storage, fmt.Sprintf("history_%s.json", safeID))
}
