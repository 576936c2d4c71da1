package models

import (
	"sync"

	"github.com/xufanglin/rimmich/api/notifyhub"
	"github.com/xufanglin/rimmich/types"
)

var (
	notifyHubMu sync.RWMutex
	notifyHub   *notifyhub.Hub
)

// SetNotifyHub sets the hub status lines are broadcast to. nil disables broadcasting.
func SetNotifyHub(h *notifyhub.Hub) {
	notifyHubMu.Lock()
	defer notifyHubMu.Unlock()
	notifyHub = h
}

// GetNotifyHub returns the notify WebSocket hub, or nil if not set.
func GetNotifyHub() *notifyhub.Hub {
	notifyHubMu.RLock()
	defer notifyHubMu.RUnlock()
	return notifyHub
}

// Broadcast sends a status line of batchId to every connected client.
func Broadcast(kind, message, batchId string) {
	hub := GetNotifyHub()
	if hub == nil {
		return
	}
	hub.Broadcast(&types.Notification{
		Type:    kind,
		Message: message,
		Data:    map[string]any{"batchId": batchId},
	})
}
