package db

import (
	"strings"

	"Gin_excel_redis_asset_tool/models"
)

// Known spellings of the optional "waiting on a part" flag column, after
// normKey folding. The engine never creates or renames this column; when
// absent, pending state is tracked purely via an empty day cell.
var pendingFlagAliases = map[string]bool{
	"esperandopieza": true,
	"pendientepieza": true,
	"pendiente":      true,
	"enespera":       true,
	"enesperapieza":  true,
	"piezapendiente": true,
	"piezaespera":    true,
}

// pendingFlagColumn reports the exact name of the pending-flag column if
// the loaded registry carries one.
func pendingFlagColumn(t *Table) (string, bool) {
	for _, c := range t.Cols {
		if pendingFlagAliases[normKey(c)] {
			return c, true
		}
	}
	return "", false
}

// findPendingIdx locates the asset's open repair: a Repair-kind row whose
// day is empty or whose pending flag is marked. With several matches the
// most recently appended wins (append order, not timestamps — pending
// rows have no date to compare).
func findPendingIdx(mant *Table, num string) int {
	flagCol, hasFlag := pendingFlagColumn(mant)
	idx := -1
	for i := 0; i < mant.Len(); i++ {
		if !sameKey(mant.Get(i, models.ColPropertyNumber), num) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(mant.Get(i, models.ColKind)), models.KindRepair) {
			continue
		}
		open := isBlank(mant.Get(i, models.ColDay))
		if !open && hasFlag {
			open = strings.EqualFold(strings.TrimSpace(mant.Get(i, flagCol)), models.PendingMark)
		}
		if open {
			idx = i
		}
	}
	return idx
}

// FindPendingRepair returns the asset's open repair record, or nil.
func (r *Repo) FindPendingRepair(num string) (*models.Maintenance, error) {
	mant, err := r.t.LoadMaintenance()
	if err != nil {
		return nil, err
	}
	i := findPendingIdx(mant, num)
	if i < 0 {
		return nil, nil
	}
	m := rowToMaintenance(mant, i)
	return &m, nil
}

// RegisterMaintenance appends a dated maintenance record with the
// performed-task marks.
func (r *Repo) RegisterMaintenance(num, technician string, tasks models.TaskFlags, owner, description, domain string) (*models.Maintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mant, err := r.maintenanceTableFor(num)
	if err != nil {
		return nil, err
	}

	vals := map[string]string{
		models.ColPropertyNumber: strings.ToUpper(strings.TrimSpace(num)),
		models.ColDay:            nowStamp(),
		models.ColTechnician:     strings.TrimSpace(technician),
		models.ColKind:           models.KindMaintenance,
		models.ColOwnerName:      strings.TrimSpace(owner),
		models.ColMaintDesc:      strings.TrimSpace(description),
		models.ColDomain:         strings.TrimSpace(domain),
	}
	for col, mark := range tasks.Marks() {
		vals[col] = mark
	}
	mant.Append(vals)
	if err := r.t.SaveMaintenance(mant); err != nil {
		return nil, err
	}
	m := rowToMaintenance(mant, mant.Len()-1)
	return &m, nil
}

// RegisterRepair appends a repair record. With awaitingPart the day stays
// empty (and the flag column, when present, is marked) so the record can
// later be completed in place via FinalizePending; the part note is kept
// inside the description. Callers must route to FinalizePending instead
// when an open repair already exists — checked at the API layer.
func (r *Repo) RegisterRepair(num, technician, description string, awaitingPart bool, partNote string) (*models.Maintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mant, err := r.maintenanceTableFor(num)
	if err != nil {
		return nil, err
	}

	desc := strings.TrimSpace(description)
	day := nowStamp()
	if awaitingPart {
		day = ""
		if note := strings.TrimSpace(partNote); note != "" {
			if desc != "" {
				desc += "\n"
			}
			desc += "Pieza en espera: " + note
		}
	}

	vals := map[string]string{
		models.ColPropertyNumber: strings.ToUpper(strings.TrimSpace(num)),
		models.ColDay:            day,
		models.ColTechnician:     strings.TrimSpace(technician),
		models.ColKind:           models.KindRepair,
		models.ColRepairDesc:     desc,
	}
	if flagCol, ok := pendingFlagColumn(mant); ok && awaitingPart {
		vals[flagCol] = models.PendingMark
	}
	mant.Append(vals)
	if err := r.t.SaveMaintenance(mant); err != nil {
		return nil, err
	}
	m := rowToMaintenance(mant, mant.Len()-1)
	return &m, nil
}

// FinalizePending completes the asset's open repair in place: the day is
// stamped, technician and description overwritten, and the pending flag
// cleared. This is the only in-place mutation of the maintenance log.
func (r *Repo) FinalizePending(num, technician, finalDescription string) (*models.Maintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mant, err := r.t.LoadMaintenance()
	if err != nil {
		return nil, err
	}
	i := findPendingIdx(mant, num)
	if i < 0 {
		return nil, ErrNoPendingRepair
	}

	mant.Set(i, models.ColDay, nowStamp())
	mant.Set(i, models.ColTechnician, strings.TrimSpace(technician))
	mant.Set(i, models.ColRepairDesc, strings.TrimSpace(finalDescription))
	if flagCol, ok := pendingFlagColumn(mant); ok {
		mant.Set(i, flagCol, "")
	}
	if err := r.t.SaveMaintenance(mant); err != nil {
		return nil, err
	}
	m := rowToMaintenance(mant, i)
	return &m, nil
}

// ListMaintenance returns the log, optionally for one asset.
func (r *Repo) ListMaintenance(num string) ([]models.Maintenance, error) {
	mant, err := r.t.LoadMaintenance()
	if err != nil {
		return nil, err
	}
	var out []models.Maintenance
	for i := 0; i < mant.Len(); i++ {
		if num != "" && !sameKey(mant.Get(i, models.ColPropertyNumber), num) {
			continue
		}
		out = append(out, rowToMaintenance(mant, i))
	}
	return out, nil
}

// maintenanceTableFor loads the log after the shared write preconditions:
// the asset must be active, not retired.
func (r *Repo) maintenanceTableFor(num string) (*Table, error) {
	retired, err := r.isDecommissioned(num)
	if err != nil {
		return nil, err
	}
	if retired {
		return nil, ErrDecommissioned
	}
	inv, err := r.t.LoadInventory()
	if err != nil {
		return nil, err
	}
	if findAsset(inv, num) < 0 {
		return nil, ErrNotFound
	}
	return r.t.LoadMaintenance()
}

func rowToMaintenance(mant *Table, i int) models.Maintenance {
	marked := func(col string) bool {
		return strings.EqualFold(strings.TrimSpace(mant.Get(i, col)), models.TaskMark)
	}
	day := mant.Get(i, models.ColDay)
	if isBlank(day) {
		day = ""
	}
	m := models.Maintenance{
		PropertyNumber:    mant.Get(i, models.ColPropertyNumber),
		Day:               day,
		Technician:        mant.Get(i, models.ColTechnician),
		Kind:              mant.Get(i, models.ColKind),
		RepairDescription: mant.Get(i, models.ColRepairDesc),
		OwnerName:         mant.Get(i, models.ColOwnerName),
		Description:       mant.Get(i, models.ColMaintDesc),
		Domain:            mant.Get(i, models.ColDomain),
		Tasks: models.TaskFlags{
			CheckUpdate:        marked("Check Update"),
			DellCommandUpdates: marked("Dell Command Updates"),
			BiosUpdate:         marked("Bios Update"),
			UpgradeWindows:     marked("Upgrade Windows 10 - 11"),
			Office2019:         marked("Office 2019 Installed"),
			PatchMyPC:          marked("PatchMyPC Installed"),
			DellSupportAssist:  marked("Dell Support Assist Installed"),
		},
		Row: i,
	}
	if strings.EqualFold(strings.TrimSpace(m.Kind), models.KindRepair) {
		pending := m.Day == ""
		if flagCol, ok := pendingFlagColumn(mant); ok && !pending {
			pending = strings.EqualFold(strings.TrimSpace(mant.Get(i, flagCol)), models.PendingMark)
		}
		m.Pending = pending
	}
	return m
}
