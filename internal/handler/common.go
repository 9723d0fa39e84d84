package handler

import (
	"errors"
	"net/http"

	"CampusConnect/internal/repository/mysql"
	"CampusConnect/internal/service"

	"github.com/gin-gonic/gin"
)

// fail maps domain errors onto status codes; anything unrecognized is a
// client-visible 400 with the error text, matching the rest of the API.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mysql.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
	case errors.Is(err, service.ErrForbidden), errors.Is(err, mysql.ErrBannedMember):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, mysql.ErrNotPending), errors.Is(err, mysql.ErrSlugConflict), errors.Is(err, mysql.ErrNameTaken):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrLocked):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	}
}
