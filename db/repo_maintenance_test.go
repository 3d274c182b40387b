package db

import (
	"errors"
	"strings"
	"testing"

	"Gin_excel_redis_asset_tool/models"
)

func TestRegisterMaintenance(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)

	m, err := r.RegisterMaintenance(num, "jrivera", models.TaskFlags{
		CheckUpdate: true,
		BiosUpdate:  true,
	}, "Prof. Díaz", "annual service", "uipra.edu")
	if err != nil {
		t.Fatalf("RegisterMaintenance: %v", err)
	}
	if m.Kind != models.KindMaintenance {
		t.Errorf("kind = %q", m.Kind)
	}
	if m.Day == "" {
		t.Error("maintenance record should be dated")
	}
	if !m.Tasks.CheckUpdate || !m.Tasks.BiosUpdate || m.Tasks.PatchMyPC {
		t.Errorf("task flags not round-tripped: %+v", m.Tasks)
	}
	if m.Pending {
		t.Error("a maintenance record is never pending")
	}
}

func TestRegisterMaintenancePreconditions(t *testing.T) {
	r := newTestRepo(t)
	if _, err := r.RegisterMaintenance("R99999999", "t", models.TaskFlags{}, "", "", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	num := seedAsset(t, r, 4)
	if _, err := r.Decommission(num, true); err != nil {
		t.Fatalf("Decommission: %v", err)
	}
	if _, err := r.RegisterMaintenance(num, "t", models.TaskFlags{}, "", "", ""); !errors.Is(err, ErrDecommissioned) {
		t.Errorf("want ErrDecommissioned, got %v", err)
	}
}

func TestRepairImmediate(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)

	m, err := r.RegisterRepair(num, "jrivera", "replaced keyboard", false, "")
	if err != nil {
		t.Fatalf("RegisterRepair: %v", err)
	}
	if m.Kind != models.KindRepair || m.Day == "" || m.Pending {
		t.Fatalf("immediate repair should be dated and closed: %+v", m)
	}

	p, err := r.FindPendingRepair(num)
	if err != nil {
		t.Fatalf("FindPendingRepair: %v", err)
	}
	if p != nil {
		t.Fatalf("no repair should be pending: %+v", p)
	}
}

func TestRepairAwaitingPartAndFinalize(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)

	m, err := r.RegisterRepair(num, "jrivera", "battery swollen", true, "battery on order")
	if err != nil {
		t.Fatalf("RegisterRepair: %v", err)
	}
	if !m.Pending || m.Day != "" {
		t.Fatalf("awaiting-part repair should be open: %+v", m)
	}
	if !strings.Contains(m.RepairDescription, "Pieza en espera: battery on order") {
		t.Errorf("part note missing from description: %q", m.RepairDescription)
	}

	p, err := r.FindPendingRepair(num)
	if err != nil {
		t.Fatalf("FindPendingRepair: %v", err)
	}
	if p == nil || p.Row != m.Row {
		t.Fatalf("pending lookup: %+v", p)
	}

	done, err := r.FinalizePending(num, "jrivera", "replaced battery")
	if err != nil {
		t.Fatalf("FinalizePending: %v", err)
	}
	if done.Day == "" || done.Pending {
		t.Fatalf("finalized repair should be dated and closed: %+v", done)
	}
	if done.RepairDescription != "replaced battery" {
		t.Errorf("description = %q", done.RepairDescription)
	}
	if done.Row != m.Row {
		t.Error("finalize must complete the record in place, not append")
	}

	log, err := r.ListMaintenance(num)
	if err != nil {
		t.Fatalf("ListMaintenance: %v", err)
	}
	if len(log) != 1 {
		t.Fatalf("want 1 record after in-place finalize, got %d", len(log))
	}
}

func TestFinalizeWithoutPendingRepair(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)
	if _, err := r.FinalizePending(num, "t", "done"); !errors.Is(err, ErrNoPendingRepair) {
		t.Fatalf("want ErrNoPendingRepair, got %v", err)
	}
}

// With several open repair rows (only possible in a hand-edited registry)
// the newest appended one is treated as the open repair.
func TestPendingRepairTieBreak(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)

	mant, err := r.t.LoadMaintenance()
	if err != nil {
		t.Fatalf("LoadMaintenance: %v", err)
	}
	for _, desc := range []string{"older", "newer"} {
		mant.Append(map[string]string{
			models.ColPropertyNumber: num,
			models.ColKind:           models.KindRepair,
			models.ColRepairDesc:     desc,
		})
	}
	if err := r.t.SaveMaintenance(mant); err != nil {
		t.Fatalf("SaveMaintenance: %v", err)
	}

	p, err := r.FindPendingRepair(num)
	if err != nil {
		t.Fatalf("FindPendingRepair: %v", err)
	}
	if p == nil || p.RepairDescription != "newer" {
		t.Fatalf("tie-break should pick the newest appended row: %+v", p)
	}
}

// A registry carrying a recognized pending-flag column drives pending
// state through the flag, and the column survives rewrites.
func TestPendingFlagColumnDetection(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)

	cols := append(append([]string(nil), models.MaintenanceColumns...), "Esperando_Pieza")
	mant := &Table{Cols: cols}
	mant.Append(map[string]string{
		models.ColPropertyNumber: num,
		models.ColDay:            "2026-01-10 09:00:00",
		models.ColKind:           models.KindRepair,
		models.ColRepairDesc:     "waiting on a screen",
		"Esperando_Pieza":        models.PendingMark,
	})
	if err := r.t.SaveMaintenance(mant); err != nil {
		t.Fatalf("SaveMaintenance: %v", err)
	}

	// dated row, but the flag marks it open
	p, err := r.FindPendingRepair(num)
	if err != nil {
		t.Fatalf("FindPendingRepair: %v", err)
	}
	if p == nil || !p.Pending {
		t.Fatalf("flagged row should be pending: %+v", p)
	}

	if _, err := r.FinalizePending(num, "jrivera", "screen installed"); err != nil {
		t.Fatalf("FinalizePending: %v", err)
	}

	reloaded, err := r.t.LoadMaintenance()
	if err != nil {
		t.Fatalf("LoadMaintenance: %v", err)
	}
	if reloaded.Col("Esperando_Pieza") < 0 {
		t.Fatal("flag column lost on rewrite")
	}
	if got := reloaded.Get(0, "Esperando_Pieza"); got != "" {
		t.Fatalf("flag not cleared after finalize: %q", got)
	}
	if p, _ := r.FindPendingRepair(num); p != nil {
		t.Fatalf("still pending after finalize: %+v", p)
	}
}

// A new awaiting-part repair marks the flag column when the registry has
// one.
func TestRepairMarksPendingFlagColumn(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)

	cols := append(append([]string(nil), models.MaintenanceColumns...), "Esperando_Pieza")
	if err := r.t.SaveMaintenance(&Table{Cols: cols}); err != nil {
		t.Fatalf("SaveMaintenance: %v", err)
	}

	if _, err := r.RegisterRepair(num, "jrivera", "no boot", true, ""); err != nil {
		t.Fatalf("RegisterRepair: %v", err)
	}

	mant, err := r.t.LoadMaintenance()
	if err != nil {
		t.Fatalf("LoadMaintenance: %v", err)
	}
	if got := mant.Get(0, "Esperando_Pieza"); got != models.PendingMark {
		t.Fatalf("flag cell = %q, want %q", got, models.PendingMark)
	}
}

func TestListMaintenanceScoped(t *testing.T) {
	r := newTestRepo(t)
	a := seedAsset(t, r, 1)
	b := seedAsset(t, r, 2)
	if _, err := r.RegisterMaintenance(a, "t", models.TaskFlags{}, "", "", ""); err != nil {
		t.Fatalf("RegisterMaintenance: %v", err)
	}
	if _, err := r.RegisterRepair(b, "t", "fan", false, ""); err != nil {
		t.Fatalf("RegisterRepair: %v", err)
	}

	all, err := r.ListMaintenance("")
	if err != nil {
		t.Fatalf("ListMaintenance: %v", err)
	}
	scoped, err := r.ListMaintenance(b)
	if err != nil {
		t.Fatalf("ListMaintenance: %v", err)
	}
	if len(all) != 2 || len(scoped) != 1 {
		t.Fatalf("counts: all=%d scoped=%d", len(all), len(scoped))
	}
	if scoped[0].Kind != models.KindRepair {
		t.Errorf("scoped kind = %q", scoped[0].Kind)
	}
}
