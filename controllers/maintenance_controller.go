package controllers

import (
	"net/http"

	"Gin_excel_redis_asset_tool/app"
	"Gin_excel_redis_asset_tool/db"
	"Gin_excel_redis_asset_tool/models"

	"github.com/gin-gonic/gin"
)

type MaintenanceController struct{ *Srv }

func NewMaintenanceController(s *Srv) *MaintenanceController {
	return &MaintenanceController{Srv: s}
}

// RegisterMaintenance appends a dated maintenance record with the
// performed-task checklist.
func (mc *MaintenanceController) RegisterMaintenance(c *gin.Context) {
	var in struct {
		Technician  string           `json:"technician" binding:"required"`
		OwnerName   string           `json:"ownerName"`
		Description string           `json:"description"`
		Domain      string           `json:"domain"`
		Tasks       models.TaskFlags `json:"tasks"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	m, err := mc.Repo.RegisterMaintenance(c.Param("num"), in.Technician, in.Tasks, in.OwnerName, in.Description, in.Domain)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// RegisterRepair appends a repair record. A machine with an unfinished
// repair cannot take a new one; the caller must complete the open record
// through the finalize endpoint first.
func (mc *MaintenanceController) RegisterRepair(c *gin.Context) {
	var in struct {
		Technician   string `json:"technician" binding:"required"`
		Description  string `json:"description"`
		AwaitingPart bool   `json:"awaitingPart"`
		PartNote     string `json:"partNote"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	num := c.Param("num")
	pending, err := mc.Repo.FindPendingRepair(num)
	if err != nil {
		fail(c, err)
		return
	}
	if pending != nil {
		c.JSON(http.StatusConflict, app.H{
			"error": db.ErrRepairPending.Error(),
			"hint":  "finalize the open repair before registering a new one",
		})
		return
	}

	m, err := mc.Repo.RegisterRepair(num, in.Technician, in.Description, in.AwaitingPart, in.PartNote)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GetPendingRepair exposes the machine's open repair, if any.
func (mc *MaintenanceController) GetPendingRepair(c *gin.Context) {
	m, err := mc.Repo.FindPendingRepair(c.Param("num"))
	if err != nil {
		fail(c, err)
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, app.H{"error": db.ErrNoPendingRepair.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

// FinalizeRepair completes the open repair in place with the arrival of
// the part.
func (mc *MaintenanceController) FinalizeRepair(c *gin.Context) {
	var in struct {
		Technician  string `json:"technician" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	m, err := mc.Repo.FinalizePending(c.Param("num"), in.Technician, in.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// ListMaintenance returns the service log, ?propertyNumber= scopes it.
func (mc *MaintenanceController) ListMaintenance(c *gin.Context) {
	items, err := mc.Repo.ListMaintenance(c.Query("propertyNumber"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}
