package db

import (
	"regexp"
	"strings"
	"time"

	"Gin_excel_redis_asset_tool/models"
)

// Identifier formats are part of the external contract.
var (
	rePropertyNumber = regexp.MustCompile(`^R\d{8}$`)
	reLaptopID       = regexp.MustCompile(`^UIPRA-(EST|FAC)-L\d{3}$`)
	reServiceTag     = regexp.MustCompile(`^[A-Z0-9]{7}$`)
)

// AssetExists reports whether an active asset with that property number
// exists. Decommissioned assets are not active.
func (r *Repo) AssetExists(num string) (bool, error) {
	inv, err := r.t.LoadInventory()
	if err != nil {
		return false, err
	}
	return findAsset(inv, num) >= 0, nil
}

// GetAsset returns the active asset, or nil when absent.
func (r *Repo) GetAsset(num string) (*models.Asset, error) {
	inv, err := r.t.LoadInventory()
	if err != nil {
		return nil, err
	}
	i := findAsset(inv, num)
	if i < 0 {
		return nil, nil
	}
	a := rowToAsset(inv, i)
	return &a, nil
}

// ListAssets returns the active inventory. status filters to "available"
// or "loaned"; anything else returns everything.
func (r *Repo) ListAssets(status string) ([]models.Asset, error) {
	inv, err := r.t.LoadInventory()
	if err != nil {
		return nil, err
	}
	var out []models.Asset
	for i := 0; i < inv.Len(); i++ {
		a := rowToAsset(inv, i)
		switch status {
		case "available":
			if !a.Available {
				continue
			}
		case "loaned":
			if a.Available {
				continue
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// AddAsset validates and appends a new asset, available by default. All
// identifier and date problems are reported together.
func (r *Repo) AddAsset(c AssetCandidate) (*models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, err := r.t.LoadInventory()
	if err != nil {
		return nil, err
	}
	dec, err := r.t.LoadDecommissioned()
	if err != nil {
		return nil, err
	}

	a, msgs := validateCandidate(inv, dec, c)
	if len(msgs) > 0 {
		ve := make(ValidationErrors, len(msgs))
		for i, m := range msgs {
			ve[i] = RowError{Msg: m}
		}
		return nil, ve
	}

	appendAsset(inv, a)
	if err := r.t.SaveInventory(inv); err != nil {
		return nil, err
	}
	return &a, nil
}

// SetAvailability flips the cached availability flag. Idempotent; a no-op
// when the asset is absent.
func (r *Repo) SetAvailability(num string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, err := r.t.LoadInventory()
	if err != nil {
		return err
	}
	if !setAvailability(inv, num, available) {
		return nil
	}
	return r.t.SaveInventory(inv)
}

// InventoryStats are the clickable counters of the original tool.
type InventoryStats struct {
	Total          int `json:"total"`
	Available      int `json:"available"`
	OnLoan         int `json:"onLoan"`
	Decommissioned int `json:"decommissioned"`
}

func (r *Repo) Stats() (*InventoryStats, error) {
	inv, err := r.t.LoadInventory()
	if err != nil {
		return nil, err
	}
	dec, err := r.t.LoadDecommissioned()
	if err != nil {
		return nil, err
	}
	s := &InventoryStats{Total: inv.Len(), Decommissioned: dec.Len()}
	for i := 0; i < inv.Len(); i++ {
		if availableMarkSet(inv, i) {
			s.Available++
		} else {
			s.OnLoan++
		}
	}
	return s, nil
}

// AssetSummary is the per-machine overview: identity, current status and
// record counts across all registries. For a decommissioned asset the
// counts come from the retirement snapshot.
type AssetSummary struct {
	models.Asset
	Status           string `json:"status"` // available | on_loan | decommissioned
	MaintenanceCount int    `json:"maintenanceCount"`
	RepairCount      int    `json:"repairCount"`
	LoanCount        int    `json:"loanCount"`
	LastServicedAt   string `json:"lastServicedAt,omitempty"`
}

func (r *Repo) Summary(num string) (*AssetSummary, error) {
	dec, err := r.t.LoadDecommissioned()
	if err != nil {
		return nil, err
	}
	if i := findAsset(dec, num); i >= 0 {
		return &AssetSummary{
			Asset: models.Asset{
				PropertyNumber: dec.Get(i, models.ColPropertyNumber),
				LaptopID:       dec.Get(i, models.ColLaptopID),
				ServiceTag:     dec.Get(i, models.ColServiceTag),
				Model:          dec.Get(i, models.ColModel),
			},
			Status:           "decommissioned",
			MaintenanceCount: cellInt(dec, i, models.ColMaintenanceCount),
			RepairCount:      cellInt(dec, i, models.ColRepairCount),
			LoanCount:        cellInt(dec, i, models.ColLoanCount),
			LastServicedAt:   dec.Get(i, models.ColDecommissionedAt),
		}, nil
	}

	inv, err := r.t.LoadInventory()
	if err != nil {
		return nil, err
	}
	i := findAsset(inv, num)
	if i < 0 {
		return nil, ErrNotFound
	}

	mant, err := r.t.LoadMaintenance()
	if err != nil {
		return nil, err
	}
	loans, err := r.t.LoadLoans()
	if err != nil {
		return nil, err
	}

	s := &AssetSummary{Asset: rowToAsset(inv, i), Status: "on_loan"}
	if s.Asset.Available {
		s.Status = "available"
	}
	s.MaintenanceCount, s.RepairCount, s.LastServicedAt = countMaintenance(mant, num)
	for j := 0; j < loans.Len(); j++ {
		if sameKey(loans.Get(j, models.ColPropertyNumber), num) {
			s.LoanCount++
		}
	}
	return s, nil
}

// --- helpers shared with the batch importer ---

// validateCandidate normalizes and checks one candidate against the format
// rules, the active inventory and the decommission registry. It returns
// the normalized asset and every problem found.
func validateCandidate(inv, dec *Table, c AssetCandidate) (models.Asset, []string) {
	a := models.Asset{
		PropertyNumber: strings.ToUpper(strings.TrimSpace(c.PropertyNumber)),
		LaptopID:       strings.ToUpper(strings.TrimSpace(c.LaptopID)),
		ServiceTag:     strings.ToUpper(strings.TrimSpace(c.ServiceTag)),
		Model:          strings.TrimSpace(c.Model),
		Available:      true,
	}

	var msgs []string
	if !rePropertyNumber.MatchString(a.PropertyNumber) {
		msgs = append(msgs, "invalid property number (want R + 8 digits)")
	}
	if !reLaptopID.MatchString(a.LaptopID) {
		msgs = append(msgs, "invalid laptop id (want UIPRA-(EST|FAC)-L###)")
	}
	if !reServiceTag.MatchString(a.ServiceTag) {
		msgs = append(msgs, "invalid service tag (want 7 alphanumerics)")
	}

	warranty, err := ToISODate(c.Warranty)
	if err != nil {
		msgs = append(msgs, "invalid warranty date")
	} else {
		a.Warranty = warranty
		if warranty <= time.Now().Format("2006-01-02") {
			msgs = append(msgs, "warranty date must be in the future")
		}
	}
	purchase, err := ToISODate(c.PurchaseDate)
	if err != nil {
		msgs = append(msgs, "invalid purchase date")
	} else {
		a.PurchaseDate = purchase
	}

	for i := 0; i < inv.Len(); i++ {
		switch {
		case sameKey(inv.Get(i, models.ColPropertyNumber), a.PropertyNumber):
			msgs = append(msgs, "duplicate property number")
		case sameKey(inv.Get(i, models.ColLaptopID), a.LaptopID):
			msgs = append(msgs, "duplicate laptop id")
		case sameKey(inv.Get(i, models.ColServiceTag), a.ServiceTag):
			msgs = append(msgs, "duplicate service tag")
		}
	}
	if findAsset(dec, a.PropertyNumber) >= 0 {
		msgs = append(msgs, "property number appears in the decommission registry")
	}
	return a, msgs
}

func appendAsset(inv *Table, a models.Asset) {
	available := ""
	if a.Available {
		available = models.AvailableMark
	}
	inv.Append(map[string]string{
		models.ColPropertyNumber: a.PropertyNumber,
		models.ColLaptopID:       a.LaptopID,
		models.ColServiceTag:     a.ServiceTag,
		models.ColModel:          a.Model,
		models.ColAvailable:      available,
		models.ColWarranty:       a.Warranty,
		models.ColPurchaseDate:   a.PurchaseDate,
	})
}

func availableMarkSet(inv *Table, i int) bool {
	return strings.EqualFold(strings.TrimSpace(inv.Get(i, models.ColAvailable)), models.AvailableMark)
}

func rowToAsset(inv *Table, i int) models.Asset {
	return models.Asset{
		PropertyNumber: inv.Get(i, models.ColPropertyNumber),
		LaptopID:       inv.Get(i, models.ColLaptopID),
		ServiceTag:     inv.Get(i, models.ColServiceTag),
		Model:          inv.Get(i, models.ColModel),
		Available:      availableMarkSet(inv, i),
		Warranty:       inv.Get(i, models.ColWarranty),
		PurchaseDate:   inv.Get(i, models.ColPurchaseDate),
	}
}

// setAvailability mutates the loaded inventory table; the caller persists.
// Reports whether a row was changed.
func setAvailability(inv *Table, num string, available bool) bool {
	i := findAsset(inv, num)
	if i < 0 {
		return false
	}
	mark := ""
	if available {
		mark = models.AvailableMark
	}
	inv.Set(i, models.ColAvailable, mark)
	return true
}

// countMaintenance tallies maintenance and repair records for one asset
// and the date of the most recent dated record.
func countMaintenance(mant *Table, num string) (maintenance, repairs int, last string) {
	for i := 0; i < mant.Len(); i++ {
		if !sameKey(mant.Get(i, models.ColPropertyNumber), num) {
			continue
		}
		switch strings.TrimSpace(mant.Get(i, models.ColKind)) {
		case models.KindMaintenance:
			maintenance++
		case models.KindRepair:
			repairs++
		}
		if day := strings.TrimSpace(mant.Get(i, models.ColDay)); !isBlank(day) && day > last {
			last = day
		}
	}
	return maintenance, repairs, last
}
