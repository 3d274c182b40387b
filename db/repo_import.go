package db

import (
	"Gin_excel_redis_asset_tool/models"
)

// AssetCandidate is raw, unvalidated input for one new asset. Dates may
// arrive in any of the accepted free-form layouts.
type AssetCandidate struct {
	PropertyNumber string `json:"propertyNumber" binding:"required"`
	LaptopID       string `json:"laptopId" binding:"required"`
	ServiceTag     string `json:"serviceTag" binding:"required"`
	Model          string `json:"model"`
	Warranty       string `json:"warranty" binding:"required"`
	PurchaseDate   string `json:"purchaseDate" binding:"required"`
}

// ImportColumns is the header contract for uploaded batch files.
var ImportColumns = []string{
	models.ColPropertyNumber, models.ColLaptopID, models.ColServiceTag,
	models.ColModel, models.ColWarranty, models.ColPurchaseDate,
}

// CandidatesFromTable converts an uploaded batch table to candidates.
func CandidatesFromTable(t *Table) []AssetCandidate {
	out := make([]AssetCandidate, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		out = append(out, AssetCandidate{
			PropertyNumber: t.Get(i, models.ColPropertyNumber),
			LaptopID:       t.Get(i, models.ColLaptopID),
			ServiceTag:     t.Get(i, models.ColServiceTag),
			Model:          t.Get(i, models.ColModel),
			Warranty:       t.Get(i, models.ColWarranty),
			PurchaseDate:   t.Get(i, models.ColPurchaseDate),
		})
	}
	return out
}

// ValidateBatch runs the full validation pass without committing anything.
func (r *Repo) ValidateBatch(cands []AssetCandidate) ([]models.Asset, ValidationErrors, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, accepted, errs, err := r.validateAll(cands)
	return accepted, errs, err
}

// ImportBatch is the sole multi-row operation and is all-or-nothing: if
// any candidate fails validation the registry is untouched and every
// problem is reported together; a clean batch is persisted as one write.
func (r *Repo) ImportBatch(cands []AssetCandidate) ([]models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, accepted, errs, err := r.validateAll(cands)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if err := r.t.SaveInventory(inv); err != nil {
		return nil, err
	}
	return accepted, nil
}

// validateAll checks every candidate independently — one bad row never
// short-circuits the rest. Accepted rows are appended to the working copy
// of the inventory as it goes, so intra-batch duplicates are caught by the
// same checks as duplicates against the store. Row numbers in errors are
// spreadsheet rows: the header is row 1.
func (r *Repo) validateAll(cands []AssetCandidate) (*Table, []models.Asset, ValidationErrors, error) {
	inv, err := r.t.LoadInventory()
	if err != nil {
		return nil, nil, nil, err
	}
	dec, err := r.t.LoadDecommissioned()
	if err != nil {
		return nil, nil, nil, err
	}

	var accepted []models.Asset
	var errs ValidationErrors
	for i, c := range cands {
		a, msgs := validateCandidate(inv, dec, c)
		if len(msgs) > 0 {
			for _, m := range msgs {
				errs = append(errs, RowError{Row: i + 2, Msg: m})
			}
			continue
		}
		appendAsset(inv, a)
		accepted = append(accepted, a)
	}
	return inv, accepted, errs, nil
}
