package handler

import (
	"net/http"
	"strconv"

	"CampusConnect/internal/middleware"
	"CampusConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type OrgHandler struct {
	svc *service.OrgService
}

func NewOrgHandler(svc *service.OrgService) *OrgHandler {
	return &OrgHandler{svc: svc}
}

type OrgCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	OrgType     string `json:"org_type"`
}

func (h *OrgHandler) Create(c *gin.Context) {
	var req OrgCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	org, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.Description, req.OrgType)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":   org.ID,
		"uuid": org.UUID,
		"name": org.Name,
		"slug": org.Slug,
	})
}

func (h *OrgHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.svc.List(c.Request.Context(), c.Query("type"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *OrgHandler) Detail(c *gin.Context) {
	org, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *OrgHandler) Join(c *gin.Context) {
	orgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orgID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid organization id"})
		return
	}
	status, changed, err := h.svc.Join(c.Request.Context(), middleware.UserID(c), orgID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "changed": changed})
}

func (h *OrgHandler) Leave(c *gin.Context) {
	orgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orgID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid organization id"})
		return
	}
	changed, err := h.svc.Leave(c.Request.Context(), middleware.UserID(c), orgID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}
