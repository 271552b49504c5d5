// internal/handlers/resource/resource_handler.go
package resource

import (
	"errors"
	"net/http"

	wstypes "msm-console/internal/domain/websocket"
	"msm-console/internal/handlers"
	"msm-console/internal/middleware"
	"msm-console/internal/pkg/paging"
	"msm-console/internal/pkg/response"
	rolesvc "msm-console/internal/service/role"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgRoleInUse = "Failed to delete role. Make sure the role is not assigned to any user."

// ViewRequest changes list screen state. Absent fields are left alone.
type ViewRequest struct {
	Search     *string             `json:"search"`
	Page       *int                `json:"page" binding:"omitempty,min=1"`
	PageSize   *int                `json:"pageSize" binding:"omitempty,min=1,max=100"`
	Sort       *string             `json:"sort"`
	ColumnSort *[]paging.SortField `json:"columnSort"`
	Columns    map[string]bool     `json:"columns"`
}

// ResourceHandler serves every entity list screen and its CRUD operations.
// The entity comes from the route.
type ResourceHandler struct {
	logger *zap.Logger
}

func NewResourceHandler(logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{logger: logger}
}

// ========== List screen ==========

// View renders the current page of the screen.
func (h *ResourceHandler) View(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)
	entity := c.Param("entity")

	screen, ok := ws.Screen(entity)
	if !ok {
		response.NotFound(c, "unknown screen: "+entity)
		return
	}

	view, err := screen.Render(c.Request.Context())
	if err != nil {
		h.fail(c, entity, "Failed to load "+entity, err, view)
		return
	}

	handlers.OK(c, ws, http.StatusOK, entity+" retrieved", view)
}

// UpdateView applies state changes and renders the screen. A search term is
// stored at once; its refetch arrives over the push channel after the quiet
// period.
func (h *ResourceHandler) UpdateView(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)
	entity := c.Param("entity")

	screen, ok := ws.Screen(entity)
	if !ok {
		response.NotFound(c, "unknown screen: "+entity)
		return
	}

	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if req.Search != nil {
		screen.SetSearch(*req.Search)
	}
	if req.Sort != nil {
		screen.SetSort(*req.Sort)
	}
	if req.ColumnSort != nil {
		screen.SetColumnSort(*req.ColumnSort)
	}
	if req.PageSize != nil {
		screen.SetPageSize(*req.PageSize)
	}
	if req.Page != nil {
		screen.SetPage(*req.Page)
	}
	for column, visible := range req.Columns {
		screen.SetColumnVisible(column, visible)
	}

	view, err := screen.Render(c.Request.Context())
	if err != nil {
		h.fail(c, entity, "Failed to load "+entity, err, view)
		return
	}

	handlers.OK(c, ws, http.StatusOK, entity+" retrieved", view)
}

// ========== CRUD ==========

func (h *ResourceHandler) Get(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)
	entity := c.Param("entity")

	ops, ok := ws.Resource(entity)
	if !ok {
		response.NotFound(c, "unknown resource: "+entity)
		return
	}

	item, err := ops.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, entity, "Failed to load record", err)
		return
	}

	handlers.OK(c, ws, http.StatusOK, "record retrieved", item)
}

func (h *ResourceHandler) Create(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)
	entity := c.Param("entity")

	ops, ok := ws.Resource(entity)
	if !ok {
		response.NotFound(c, "unknown resource: "+entity)
		return
	}

	item, err := ops.Create(c.Request.Context(), c.ShouldBindJSON)
	if err != nil {
		h.fail(c, entity, "Failed to create record", err)
		return
	}

	h.announce(c, entity, "Created successfully")
	handlers.OK(c, ws, http.StatusCreated, "Created successfully", item)
}

func (h *ResourceHandler) Update(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)
	entity := c.Param("entity")

	ops, ok := ws.Resource(entity)
	if !ok {
		response.NotFound(c, "unknown resource: "+entity)
		return
	}

	item, err := ops.Update(c.Request.Context(), c.Param("id"), c.ShouldBindJSON)
	if err != nil {
		h.fail(c, entity, "Failed to update record", err)
		return
	}

	h.announce(c, entity, "Updated successfully")
	handlers.OK(c, ws, http.StatusOK, "Updated successfully", item)
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)
	entity := c.Param("entity")

	ops, ok := ws.Resource(entity)
	if !ok {
		response.NotFound(c, "unknown resource: "+entity)
		return
	}

	if err := ops.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, rolesvc.ErrRoleInUse) {
			ws.Push(wstypes.Toast("error", msgRoleInUse))
			response.Error(c, http.StatusConflict, msgRoleInUse, err)
			return
		}
		h.fail(c, entity, "Failed to delete record", err)
		return
	}

	h.announce(c, entity, "Deleted successfully")
	handlers.OK(c, ws, http.StatusOK, "Deleted successfully", nil)
}

// announce tells the shell about a completed mutation.
func (h *ResourceHandler) announce(c *gin.Context, entity, message string) {
	ws := middleware.MustGetWorkspace(c)
	ws.Push(wstypes.Toast("success", message))
	ws.Push(wstypes.NewMessage(wstypes.EventTypeListUpdated, wstypes.ListUpdatedData{Entity: entity}))
}

func (h *ResourceHandler) fail(c *gin.Context, entity, message string, err error, data ...interface{}) {
	ws := middleware.MustGetWorkspace(c)
	h.logger.Warn("resource request failed",
		zap.String("workspace_id", ws.ID),
		zap.String("entity", entity),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	handlers.Fail(c, ws, message, err, data...)
}
