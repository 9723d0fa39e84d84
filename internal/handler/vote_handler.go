package handler

import (
	"net/http"
	"strconv"

	"CampusConnect/internal/middleware"
	"CampusConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

type VoteReq struct {
	Kind     string `json:"kind" binding:"required"`
	TargetID uint64 `json:"target_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

func (h *VoteHandler) Apply(c *gin.Context) {
	var req VoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	res, err := h.svc.Apply(c.Request.Context(), middleware.UserID(c), req.Kind, req.TargetID, req.Action)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Counters reads cached tallies; the viewer's own vote rides along when the
// request carries a valid token.
func (h *VoteHandler) Counters(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || targetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid target id"})
		return
	}
	kind := c.Param("kind")
	res, err := h.svc.Counters(c.Request.Context(), kind, targetID)
	if err != nil {
		fail(c, err)
		return
	}
	mine, err := h.svc.ViewerVote(c.Request.Context(), middleware.UserID(c), kind, targetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"upvotes":   res.Upvotes,
		"downvotes": res.Downvotes,
		"score":     res.Score,
		"my_vote":   mine,
	})
}
