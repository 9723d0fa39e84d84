package handler

import (
	"net/http"
	"strconv"

	"CampusConnect/internal/middleware"
	"CampusConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type PostCreateReq struct {
	ThreadID   uint64 `json:"thread_id" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	PostType   string `json:"post_type"`
	Visibility string `json:"visibility"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req PostCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req.ThreadID,
		req.Title, req.Content, req.PostType, req.Visibility)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":   p.ID,
		"uuid": p.UUID,
		"slug": p.Slug,
	})
}

func (h *PostHandler) Detail(c *gin.Context) {
	p, err := h.svc.Detail(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type PostEditReq struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

func (h *PostHandler) Edit(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}
	var req PostEditReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.Edit(c.Request.Context(), middleware.UserID(c), postID, req.Title, req.Content); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *PostHandler) ToggleSave(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}
	saved, err := h.svc.ToggleSave(c.Request.Context(), middleware.UserID(c), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (h *PostHandler) SavedList(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.svc.SavedList(c.Request.Context(), middleware.UserID(c), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
