// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Shell events (server -> client)
	EventTypeToast    EventType = "toast"
	EventTypeNavigate EventType = "navigate"

	// List screen events
	EventTypeListView    EventType = "list:view"
	EventTypeListUpdated EventType = "list:updated"
	EventTypeListSearch  EventType = "list:search"
	EventTypeListPage    EventType = "list:page"

	// Session events
	EventTypeSessionChanged EventType = "session:changed"
	EventTypeSessionExpired EventType = "session:expired"
	EventTypeCompanyChanged EventType = "company:changed"

	// Subscription events
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType              `json:"type"`
	Data      interface{}            `json:"data,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	ID        string                 `json:"id,omitempty"`
}

// Subscription channels that clients can subscribe to
type ChannelType string

const (
	ChannelShell   ChannelType = "shell"
	ChannelLists   ChannelType = "lists"
	ChannelSession ChannelType = "session"
)

// DefaultChannels are subscribed on connect.
var DefaultChannels = []ChannelType{ChannelShell, ChannelSession}

// SubscribeRequest sent by client to subscribe to specific channels
type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// UnsubscribeRequest sent by client to unsubscribe from channels
type UnsubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// ErrorData for error events
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Toast levels
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// ToastData is a transient notification shown by the shell
type ToastData struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NavigateData asks the shell to change route
type NavigateData struct {
	Path string `json:"path"`
}

// ListUpdatedData tells open screens of an entity to reload
type ListUpdatedData struct {
	Entity string `json:"entity"`
}

// ListSearchRequest sent by client when the search box changes
type ListSearchRequest struct {
	Entity string `json:"entity"`
	Term   string `json:"term"`
}

// ListPageRequest sent by client when paging
type ListPageRequest struct {
	Entity   string `json:"entity"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize,omitempty"`
}

// SessionEventData for session transitions
type SessionEventData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CompanyChangedData for company scope changes
type CompanyChangedData struct {
	CompanyID string `json:"companyId"`
}

// Helper to create messages
func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
		ID:        ulid.Make().String(),
	}
}

// Toast builds a toast message.
func Toast(level, message string) *WSMessage {
	return NewMessage(EventTypeToast, ToastData{Level: level, Message: message})
}

func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*WSMessage, error) {
	var msg WSMessage
	err := json.Unmarshal(data, &msg)
	return &msg, err
}

// Channel returns the channel an outgoing event is delivered on.
func (t EventType) Channel() ChannelType {
	switch t {
	case EventTypeListView, EventTypeListUpdated:
		return ChannelLists
	case EventTypeSessionChanged, EventTypeSessionExpired, EventTypeCompanyChanged:
		return ChannelSession
	default:
		return ChannelShell
	}
}
