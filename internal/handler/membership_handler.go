package handler

import (
	"net/http"
	"strconv"

	"CampusConnect/internal/middleware"
	"CampusConnect/internal/service"

	"github.com/gin-gonic/gin"
)

// MembershipHandler covers the staff-facing membership admin actions.
type MembershipHandler struct {
	svc *service.OrgService
}

func NewMembershipHandler(svc *service.OrgService) *MembershipHandler {
	return &MembershipHandler{svc: svc}
}

func (h *MembershipHandler) List(c *gin.Context) {
	orgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orgID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid organization id"})
		return
	}
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.svc.Members(c.Request.Context(), middleware.UserID(c), orgID, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *MembershipHandler) Approve(c *gin.Context) {
	membershipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || membershipID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid membership id"})
		return
	}
	if err := h.svc.Approve(c.Request.Context(), middleware.UserID(c), membershipID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "approved"})
}

func (h *MembershipHandler) Reject(c *gin.Context) {
	membershipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || membershipID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid membership id"})
		return
	}
	if err := h.svc.Reject(c.Request.Context(), middleware.UserID(c), membershipID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "rejected"})
}

type SetRoleReq struct {
	Role string `json:"role" binding:"required"`
}

func (h *MembershipHandler) SetRole(c *gin.Context) {
	membershipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || membershipID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid membership id"})
		return
	}
	var req SetRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.SetRole(c.Request.Context(), middleware.UserID(c), membershipID, req.Role); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "role updated"})
}
