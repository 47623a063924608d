package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/storefront-builder/internal/application/services"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/performance"
)

// OpenSessionRequest names the page to edit.
type OpenSessionRequest struct {
	PageID string `json:"pageId" binding:"required"`
}

// ReplaceFlatRequest carries the flat list after a drag and drop.
type ReplaceFlatRequest struct {
	Items []builder.FlatItem `json:"items" binding:"required"`
}

// UpdateStylesRequest is a style patch; null values remove keys.
type UpdateStylesRequest struct {
	Styles map[string]any `json:"styles" binding:"required"`
}

// EditorHandlers contains the editor session HTTP handlers
type EditorHandlers struct {
	editorService *services.EditorService
	perfTracker   *performance.Tracker
	logger        *logging.ChanneledLogger
}

// NewEditorHandlers creates editor handlers with injected dependencies
func NewEditorHandlers(editorService *services.EditorService, perfTracker *performance.Tracker, logger *logging.ChanneledLogger) *EditorHandlers {
	return &EditorHandlers{
		editorService: editorService,
		perfTracker:   perfTracker,
		logger:        logger,
	}
}

func (h *EditorHandlers) fail(c *gin.Context, marker *performance.Marker, operation string, err error) {
	marker.SetError(err)
	respondError(c, h.logger, logging.ChannelEditor, operation, err)
}

// OpenSession handles POST /api/v1/editor/sessions
func (h *EditorHandlers) OpenSession(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:open_session", "")
	defer marker.Complete()

	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.editorService.Open(c.Request.Context(), req.PageID)
	if err != nil {
		h.fail(c, marker, "open_session", err)
		return
	}
	marker.Scope = view.SessionID
	marker.AddMetadata("pageId", req.PageID)
	c.JSON(http.StatusCreated, view)
}

// GetSession handles GET /api/v1/editor/sessions/:sid
func (h *EditorHandlers) GetSession(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:get_session", c.Param("sid"))
	defer marker.Complete()

	view, err := h.editorService.Get(c.Param("sid"))
	if err != nil {
		h.fail(c, marker, "get_session", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetFlat handles GET /api/v1/editor/sessions/:sid/flat
func (h *EditorHandlers) GetFlat(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:get_flat", c.Param("sid"))
	defer marker.Complete()

	flat, err := h.editorService.Flat(c.Param("sid"))
	if err != nil {
		h.fail(c, marker, "get_flat", err)
		return
	}
	c.JSON(http.StatusOK, flat)
}

// ReplaceFlat handles PUT /api/v1/editor/sessions/:sid/flat
func (h *EditorHandlers) ReplaceFlat(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:replace_flat", c.Param("sid"))
	defer marker.Complete()

	var req ReplaceFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.editorService.ReplaceFlat(c.Param("sid"), req.Items)
	if err != nil {
		h.fail(c, marker, "replace_flat", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddComponent handles POST /api/v1/editor/sessions/:sid/components
func (h *EditorHandlers) AddComponent(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:add_component", c.Param("sid"))
	defer marker.Complete()

	var req services.AddComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	node, err := h.editorService.AddComponent(c.Param("sid"), req)
	if err != nil {
		h.fail(c, marker, "add_component", err)
		return
	}
	c.JSON(http.StatusCreated, node)
}

// RemoveComponent handles DELETE /api/v1/editor/sessions/:sid/components/:cid
func (h *EditorHandlers) RemoveComponent(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:remove_component", c.Param("sid"))
	defer marker.Complete()

	view, err := h.editorService.RemoveComponent(c.Param("sid"), c.Param("cid"))
	if err != nil {
		h.fail(c, marker, "remove_component", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateStyles handles PATCH /api/v1/editor/sessions/:sid/components/:cid/styles
func (h *EditorHandlers) UpdateStyles(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:update_styles", c.Param("sid"))
	defer marker.Complete()

	var req UpdateStylesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	node, err := h.editorService.UpdateStyles(c.Param("sid"), c.Param("cid"), req.Styles)
	if err != nil {
		h.fail(c, marker, "update_styles", err)
		return
	}
	c.JSON(http.StatusOK, node)
}

// Undo handles POST /api/v1/editor/sessions/:sid/undo
func (h *EditorHandlers) Undo(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:undo", c.Param("sid"))
	defer marker.Complete()

	view, err := h.editorService.Undo(c.Param("sid"))
	if err != nil {
		h.fail(c, marker, "undo", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Redo handles POST /api/v1/editor/sessions/:sid/redo
func (h *EditorHandlers) Redo(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:redo", c.Param("sid"))
	defer marker.Complete()

	view, err := h.editorService.Redo(c.Param("sid"))
	if err != nil {
		h.fail(c, marker, "redo", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Save handles POST /api/v1/editor/sessions/:sid/save
func (h *EditorHandlers) Save(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:save", c.Param("sid"))
	defer marker.Complete()

	view, err := h.editorService.Save(c.Request.Context(), c.Param("sid"))
	if err != nil {
		h.fail(c, marker, "save", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CloseSession handles DELETE /api/v1/editor/sessions/:sid
func (h *EditorHandlers) CloseSession(c *gin.Context) {
	marker := h.perfTracker.StartOperation("editor:close_session", c.Param("sid"))
	defer marker.Complete()

	if err := h.editorService.Close(c.Param("sid")); err != nil {
		h.fail(c, marker, "close_session", err)
		return
	}
	c.Status(http.StatusNoContent)
}
