package handler

import (
	"net/http"
	"strconv"

	"CampusConnect/internal/middleware"
	"CampusConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type CommentCreateReq struct {
	PostID   uint64  `json:"post_id" binding:"required"`
	ParentID *uint64 `json:"parent_id"`
	Content  string  `json:"content" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req CommentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	cm, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req.PostID, req.ParentID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    cm.ID,
		"uuid":  cm.UUID,
		"level": cm.Level,
	})
}

func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.svc.ListByPost(c.Request.Context(), middleware.UserID(c), postID, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || commentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid comment id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), commentID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
