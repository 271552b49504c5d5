// internal/websocket/handler/list.go
package handler

import (
	"context"
	"fmt"

	wstypes "msm-console/internal/domain/websocket"
	"msm-console/internal/listview"
	ws "msm-console/internal/websocket"
)

// ScreenResolver finds the list screen of a workspace.
type ScreenResolver interface {
	Screen(workspaceID, entity string) (listview.Screen, bool)
}

// ListHandler drives list screens from the push channel: search keystrokes
// and paging arrive here instead of as HTTP calls.
type ListHandler struct {
	screens ScreenResolver
}

func NewListHandler(screens ScreenResolver) *ListHandler {
	return &ListHandler{screens: screens}
}

// SupportedEvents returns events this handler supports
func (h *ListHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{
		wstypes.EventTypeListSearch,
		wstypes.EventTypeListPage,
	}
}

// HandleMessage processes list-related messages
func (h *ListHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	switch msg.Type {
	case wstypes.EventTypeListSearch:
		return h.handleSearch(client, msg)

	case wstypes.EventTypeListPage:
		return h.handlePage(ctx, client, msg)

	default:
		return fmt.Errorf("unsupported event type: %s", msg.Type)
	}
}

// handleSearch only records the term. The debounced refetch pushes the new
// view by itself once the input is quiet.
func (h *ListHandler) handleSearch(client *ws.Client, msg *wstypes.WSMessage) error {
	var req wstypes.ListSearchRequest
	if err := ws.DecodeData(msg.Data, &req); err != nil {
		client.SendError("invalid_request", "Invalid search request", err.Error())
		return err
	}

	screen, ok := h.screens.Screen(client.WorkspaceID(), req.Entity)
	if !ok {
		return fmt.Errorf("%w: %s", ws.ErrUnknownScreen, req.Entity)
	}

	screen.SetSearch(req.Term)
	return nil
}

// handlePage moves to another page and answers with the rendered view.
func (h *ListHandler) handlePage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	var req wstypes.ListPageRequest
	if err := ws.DecodeData(msg.Data, &req); err != nil {
		client.SendError("invalid_request", "Invalid page request", err.Error())
		return err
	}

	screen, ok := h.screens.Screen(client.WorkspaceID(), req.Entity)
	if !ok {
		return fmt.Errorf("%w: %s", ws.ErrUnknownScreen, req.Entity)
	}

	if req.PageSize > 0 {
		screen.SetPageSize(req.PageSize)
	}
	screen.SetPage(req.Page)

	view, err := screen.Render(ctx)
	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeListView, view))
	return err
}
