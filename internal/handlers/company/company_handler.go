// internal/handlers/company/company_handler.go
package company

import (
	"net/http"

	"msm-console/internal/handlers"
	"msm-console/internal/middleware"
	"msm-console/internal/pkg/paging"
	"msm-console/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// optionsPageSize bounds the company switcher list.
const optionsPageSize = 100

type SelectRequest struct {
	CompanyID string `json:"companyId"`
}

type ScopeResponse struct {
	CompanyID string `json:"companyId"`
}

type CompanyHandler struct {
	logger *zap.Logger
}

func NewCompanyHandler(logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{logger: logger}
}

// Get returns the active company id.
func (h *CompanyHandler) Get(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)
	handlers.OK(c, ws, http.StatusOK, "company scope", ScopeResponse{CompanyID: ws.Company.Selected()})
}

// Select changes the active company; an empty id clears it.
func (h *CompanyHandler) Select(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)

	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := ws.Company.Select(c.Request.Context(), req.CompanyID); err != nil {
		h.logger.Error("failed to select company",
			zap.String("workspace_id", ws.ID),
			zap.String("company_id", req.CompanyID),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "failed to select company", err)
		return
	}

	handlers.OK(c, ws, http.StatusOK, "company scope updated", ScopeResponse{CompanyID: req.CompanyID})
}

// Options lists the companies the switcher offers.
func (h *CompanyHandler) Options(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)

	res, err := ws.Companies.List(c.Request.Context(), paging.Query{Page: 1, PageSize: optionsPageSize})
	if err != nil {
		handlers.Fail(c, ws, "Failed to load companies", err)
		return
	}

	handlers.OK(c, ws, http.StatusOK, "companies retrieved", res.Items)
}
