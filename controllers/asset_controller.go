package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"Gin_excel_redis_asset_tool/app"
	"Gin_excel_redis_asset_tool/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssetController struct{ *Srv }

func NewAssetController(s *Srv) *AssetController { return &AssetController{Srv: s} }

// CreateAsset registers one machine (protected).
func (ic *AssetController) CreateAsset(c *gin.Context) {
	var in db.AssetCandidate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a, err := ic.Repo.AddAsset(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// ListAssets returns the inventory. ?status=available|loaned filters by
// the cached availability flag.
func (ic *AssetController) ListAssets(c *gin.Context) {
	assets, err := ic.Repo.ListAssets(c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": assets})
}

func (ic *AssetController) GetAsset(c *gin.Context) {
	a, err := ic.Repo.GetAsset(c.Param("num"))
	if err != nil {
		fail(c, err)
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, app.H{"error": "asset not found in inventory"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// GetSummary is the per-machine overview, answered from the decommission
// snapshot for retired machines.
func (ic *AssetController) GetSummary(c *gin.Context) {
	s, err := ic.Repo.Summary(c.Param("num"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (ic *AssetController) GetStats(c *gin.Context) {
	s, err := ic.Repo.Stats()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ImportBatch ingests a JSON candidate list, all-or-nothing (protected).
func (ic *AssetController) ImportBatch(c *gin.Context) {
	var in struct {
		Candidates []db.AssetCandidate `json:"candidates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	imported, err := ic.Repo.ImportBatch(in.Candidates)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"imported": len(imported), "items": imported})
}

// ImportBatchFile ingests an uploaded xlsx with the documented header
// row, through the same validator (protected).
func (ic *AssetController) ImportBatchFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing batch file"})
		return
	}

	// the adapter reads from disk, so stage the upload in a temp file
	tmp := filepath.Join(os.TempDir(), "import-"+uuid.NewString()+".xlsx")
	if err := c.SaveUploadedFile(fh, tmp); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "unreadable batch file"})
		return
	}
	defer os.Remove(tmp)

	t, err := db.LoadTable(tmp, db.ImportColumns)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "unreadable batch file"})
		return
	}
	cands := db.CandidatesFromTable(t)
	if len(cands) == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "no rows in batch file"})
		return
	}

	imported, err := ic.Repo.ImportBatch(cands)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"imported": len(imported)})
}
