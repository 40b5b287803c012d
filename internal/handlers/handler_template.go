package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/SscSPs/renovation_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// templateHandler handles HTTP requests for the template catalog.
type templateHandler struct {
	templateService portssvc.TemplateSvcFacade
}

func newTemplateHandler(ts portssvc.TemplateSvcFacade) *templateHandler {
	return &templateHandler{templateService: ts}
}

// registerTemplateRoutes registers the catalog routes and the invoice routes
// that instantiate or capture templates.
func registerTemplateRoutes(rg *gin.RouterGroup, invoice *gin.RouterGroup, templateService portssvc.TemplateSvcFacade) {
	h := newTemplateHandler(templateService)

	templates := rg.Group("/templates")
	{
		templates.GET("", h.listTemplates)
		templates.POST("", h.createTemplate)
		templates.GET("/:templateID", h.getTemplate)
		templates.PATCH("/:templateID", h.updateTemplate)
	}

	invoice.POST("/line-items/from-template", h.instantiateTemplate)
	invoice.POST("/line-items/:lineItemID/save-as-template", h.saveAsTemplate)
}

// listTemplates returns the whole catalog, or the search result when q or
// category is given. No match is an empty array.
func (h *templateHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchTemplatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var (
		templates []domain.Template
		err       error
	)
	if params.Query == "" && params.Category == "" {
		templates, err = h.templateService.ListTemplates(c.Request.Context())
	} else {
		templates, err = h.templateService.SearchTemplates(c.Request.Context(), params)
	}
	if err != nil {
		respondError(c, logger, err, "list templates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTemplateResponse(templates))
}

func (h *templateHandler) getTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("templateID")

	template, err := h.templateService.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		respondError(c, logger, err, "retrieve template")
		return
	}
	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

func (h *templateHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTemplateRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "create template")
		return
	}
	logger.Info("Template created", slog.String("template_id", template.TemplateID))
	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

func (h *templateHandler) updateTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("templateID")

	var req dto.UpdateTemplateRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), templateID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update template")
		return
	}
	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

func (h *templateHandler) instantiateTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.InstantiateTemplateRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	item, err := h.templateService.InstantiateTemplate(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		respondError(c, logger, err, "instantiate template")
		return
	}
	logger.Info("Template instantiated",
		slog.String("template_id", req.TemplateID),
		slog.String("line_item_id", item.LineItemID))
	c.JSON(http.StatusCreated, dto.ToLineItemResponse(item))
}

func (h *templateHandler) saveAsTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	lineItemID := c.Param("lineItemID")

	var req dto.SaveAsTemplateRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	template, err := h.templateService.SaveLineItemAsTemplate(c.Request.Context(), invoiceID, lineItemID, req, userID)
	if err != nil {
		respondError(c, logger, err, "save line item as template")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}
