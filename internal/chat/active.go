package chat

import (
	"sync"
	"time"
)

// The active chat is process-wide so the sidebar, composer and row actions
// can attribute work to the open conversation. Navigation is the only writer.
var (
	activeMu   sync.RWMutex
	activeChat string
	touchedAt  = make(map[string]time.Time)
)

// SetActive replaces the active chat id. An empty id means no chat is open.
func SetActive(id string) {
	activeMu.Lock()
	defer activeMu.Unlock()
	activeChat = id
}

func Active() string {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeChat
}

// IsActive reports whether id is the open conversation.
func IsActive(id string) bool {
	return id != "" && Active() == id
}

// Touch records that chat id changed at t so lists can re-sort without
// refetching.
func Touch(id string, t time.Time) {
	if id == "" {
		return
	}
	activeMu.Lock()
	defer activeMu.Unlock()
	if prev, ok := touchedAt[id]; !ok || t.After(prev) {
		touchedAt[id] = t
	}
}

// TouchedAt returns the latest Touch for id.
func TouchedAt(id string) (time.Time, bool) {
	activeMu.RLock()
	defer activeMu.RUnlock()
	t, ok := touchedAt[id]
	return t, ok
}

// ResetActive clears the active chat and all touches.
func ResetActive() {
	activeMu.Lock()
	defer activeMu.Unlock()
	activeChat = ""
	touchedAt = make(map[string]time.Time)
}
