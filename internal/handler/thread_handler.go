package handler

import (
	"context"
	"net/http"
	"strconv"

	"CampusConnect/internal/middleware"
	"CampusConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type ThreadHandler struct {
	svc *service.ThreadService
}

func NewThreadHandler(svc *service.ThreadService) *ThreadHandler {
	return &ThreadHandler{svc: svc}
}

type ThreadCreateReq struct {
	OrganizationID uint64 `json:"organization_id" binding:"required"`
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	ThreadType     string `json:"thread_type"`
}

func (h *ThreadHandler) Create(c *gin.Context) {
	var req ThreadCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req.OrganizationID, req.Title, req.Description, req.ThreadType)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": t.ID, "uuid": t.UUID, "slug": t.Slug})
}

func (h *ThreadHandler) ListByOrg(c *gin.Context) {
	orgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orgID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid organization id"})
		return
	}
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.svc.ListByOrg(c.Request.Context(), orgID, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ThreadHandler) Join(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || threadID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid thread id"})
		return
	}
	status, changed, err := h.svc.Join(c.Request.Context(), middleware.UserID(c), threadID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "changed": changed})
}

func (h *ThreadHandler) Leave(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || threadID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid thread id"})
		return
	}
	changed, err := h.svc.Leave(c.Request.Context(), middleware.UserID(c), threadID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

type ThreadTitleReq struct {
	Title string `json:"title" binding:"required"`
}

func (h *ThreadHandler) UpdateTitle(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || threadID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid thread id"})
		return
	}
	var req ThreadTitleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateTitle(c.Request.Context(), middleware.UserID(c), threadID, req.Title); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

type ToggleReq struct {
	On bool `json:"on"`
}

func (h *ThreadHandler) SetPinned(c *gin.Context) {
	h.toggle(c, h.svc.SetPinned)
}

func (h *ThreadHandler) SetLocked(c *gin.Context) {
	h.toggle(c, h.svc.SetLocked)
}

func (h *ThreadHandler) toggle(c *gin.Context, fn func(ctx context.Context, userID, threadID uint64, on bool) error) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || threadID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid thread id"})
		return
	}
	var req ToggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := fn(c.Request.Context(), middleware.UserID(c), threadID, req.On); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
