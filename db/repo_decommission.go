package db

import (
	"strconv"

	"Gin_excel_redis_asset_tool/models"
)

// IsDecommissioned reports the terminal state of a property number.
func (r *Repo) IsDecommissioned(num string) (bool, error) {
	return r.isDecommissioned(num)
}

// ListDecommissioned returns the retirement registry.
func (r *Repo) ListDecommissioned() ([]models.Decommission, error) {
	dec, err := r.t.LoadDecommissioned()
	if err != nil {
		return nil, err
	}
	var out []models.Decommission
	for i := 0; i < dec.Len(); i++ {
		out = append(out, rowToDecommission(dec, i))
	}
	return out, nil
}

// Decommission retires an asset: it snapshots the maintenance, repair and
// loan counts (open and closed) into the decommission registry, then
// optionally removes the inventory row. The two writes commit
// independently — the decommission registry is authoritative, so an asset
// transiently present in both is already retired for every other
// operation.
func (r *Repo) Decommission(num string, removeFromInventory bool) (*models.Decommission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dec, err := r.t.LoadDecommissioned()
	if err != nil {
		return nil, err
	}
	if findAsset(dec, num) >= 0 {
		return nil, ErrAlreadyDecommissioned
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

	d := models.Decommission{
		PropertyNumber:   inv.Get(i, models.ColPropertyNumber),
		LaptopID:         inv.Get(i, models.ColLaptopID),
		ServiceTag:       inv.Get(i, models.ColServiceTag),
		Model:            inv.Get(i, models.ColModel),
		DecommissionedAt: nowStamp(),
	}
	d.MaintenanceCount, d.RepairCount, _ = countMaintenance(mant, num)
	for j := 0; j < loans.Len(); j++ {
		if sameKey(loans.Get(j, models.ColPropertyNumber), num) {
			d.LoanCount++
		}
	}

	dec.Append(map[string]string{
		models.ColPropertyNumber:   d.PropertyNumber,
		models.ColLaptopID:         d.LaptopID,
		models.ColServiceTag:       d.ServiceTag,
		models.ColModel:            d.Model,
		models.ColMaintenanceCount: strconv.Itoa(d.MaintenanceCount),
		models.ColRepairCount:      strconv.Itoa(d.RepairCount),
		models.ColLoanCount:        strconv.Itoa(d.LoanCount),
		models.ColDecommissionedAt: d.DecommissionedAt,
	})
	if err := r.t.SaveDecommissioned(dec); err != nil {
		return nil, err
	}

	if removeFromInventory {
		inv.Delete(i)
		if err := r.t.SaveInventory(inv); err != nil {
			return nil, err
		}
	}
	return &d, nil
}

func rowToDecommission(dec *Table, i int) models.Decommission {
	return models.Decommission{
		PropertyNumber:   dec.Get(i, models.ColPropertyNumber),
		LaptopID:         dec.Get(i, models.ColLaptopID),
		ServiceTag:       dec.Get(i, models.ColServiceTag),
		Model:            dec.Get(i, models.ColModel),
		MaintenanceCount: cellInt(dec, i, models.ColMaintenanceCount),
		RepairCount:      cellInt(dec, i, models.ColRepairCount),
		LoanCount:        cellInt(dec, i, models.ColLoanCount),
		DecommissionedAt: dec.Get(i, models.ColDecommissionedAt),
	}
}
