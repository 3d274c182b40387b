package controllers

import (
	"net/http"

	"Gin_excel_redis_asset_tool/app"

	"github.com/gin-gonic/gin"
)

type DecommissionController struct{ *Srv }

func NewDecommissionController(s *Srv) *DecommissionController {
	return &DecommissionController{Srv: s}
}

// Decommission retires a machine: its identity and lifetime counters are
// snapshotted into the retirement registry (protected).
func (dc *DecommissionController) Decommission(c *gin.Context) {
	var in struct {
		RemoveFromInventory bool `json:"removeFromInventory"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
			return
		}
	}
	d, err := dc.Repo.Decommission(c.Param("num"), in.RemoveFromInventory)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// ListDecommissioned returns the retirement registry.
func (dc *DecommissionController) ListDecommissioned(c *gin.Context) {
	items, err := dc.Repo.ListDecommissioned()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}
