package db

import (
	"errors"
	"testing"

	"Gin_excel_redis_asset_tool/models"
)

func TestAddAssetAndGet(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)

	a, err := r.GetAsset(num)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if a == nil {
		t.Fatal("asset not found after AddAsset")
	}
	if !a.Available {
		t.Error("new asset should be available")
	}
	if a.PurchaseDate != "2024-01-15" {
		t.Errorf("purchase date = %q, want ISO form", a.PurchaseDate)
	}

	missing, err := r.GetAsset("R99999999")
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if missing != nil {
		t.Error("GetAsset should return nil for an unknown number")
	}
}

func TestAddAssetNormalizesCase(t *testing.T) {
	r := newTestRepo(t)
	a, err := r.AddAsset(AssetCandidate{
		PropertyNumber: " r40022104 ",
		LaptopID:       "uipra-est-l001",
		ServiceTag:     "abc1234",
		Model:          "Latitude 5420",
		Warranty:       "2031-06-30",
		PurchaseDate:   "2024-01-15",
	})
	if err != nil {
		t.Fatalf("AddAsset: %v", err)
	}
	if a.PropertyNumber != "R40022104" || a.LaptopID != "UIPRA-EST-L001" || a.ServiceTag != "ABC1234" {
		t.Errorf("identifiers not uppercased: %+v", a)
	}
}

func TestAddAssetReportsAllProblems(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.AddAsset(AssetCandidate{
		PropertyNumber: "bogus",
		LaptopID:       "also-bogus",
		ServiceTag:     "nope",
		Warranty:       "not a date",
		PurchaseDate:   "also not",
	})
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationErrors, got %v", err)
	}
	if len(ve) != 5 {
		t.Fatalf("want 5 problems reported together, got %d: %v", len(ve), ve)
	}
	for _, e := range ve {
		if e.Row != 0 {
			t.Errorf("single input should report row 0, got %d", e.Row)
		}
	}
}

func TestAddAssetRejectsPastWarranty(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.AddAsset(AssetCandidate{
		PropertyNumber: "R40022104",
		LaptopID:       "UIPRA-EST-L001",
		ServiceTag:     "ABC1234",
		Warranty:       "2020-01-01",
		PurchaseDate:   "2019-01-01",
	})
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationErrors, got %v", err)
	}
}

func TestAddAssetRejectsDuplicates(t *testing.T) {
	r := newTestRepo(t)
	seedAsset(t, r, 4)

	// same service tag as seed 4, fresh other identifiers
	_, err := r.AddAsset(AssetCandidate{
		PropertyNumber: "R40022199",
		LaptopID:       "UIPRA-FAC-L099",
		ServiceTag:     "ab00004",
		Warranty:       "2031-06-30",
		PurchaseDate:   "2024-01-15",
	})
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationErrors, got %v", err)
	}
	if len(ve) != 1 || ve[0].Msg != "duplicate service tag" {
		t.Fatalf("unexpected problems: %v", ve)
	}
}

func TestAddAssetRejectsDecommissionedNumber(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)
	if _, err := r.Decommission(num, true); err != nil {
		t.Fatalf("Decommission: %v", err)
	}

	_, err := r.AddAsset(AssetCandidate{
		PropertyNumber: num,
		LaptopID:       "UIPRA-EST-L099",
		ServiceTag:     "ZZ99999",
		Warranty:       "2031-06-30",
		PurchaseDate:   "2024-01-15",
	})
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationErrors, got %v", err)
	}
}

func TestAssetExists(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)

	if got, err := r.AssetExists(num); err != nil || !got {
		t.Fatalf("AssetExists(%s) = %v, %v", num, got, err)
	}
	if got, err := r.AssetExists("R99999999"); err != nil || got {
		t.Fatalf("AssetExists(unknown) = %v, %v", got, err)
	}

	// retirement removes the asset from the active inventory
	if _, err := r.Decommission(num, true); err != nil {
		t.Fatalf("Decommission: %v", err)
	}
	if got, err := r.AssetExists(num); err != nil || got {
		t.Fatalf("AssetExists(retired) = %v, %v", got, err)
	}
}

func TestSetAvailability(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)

	if err := r.SetAvailability(num, false); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	a, err := r.GetAsset(num)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if a.Available {
		t.Error("flag should be cleared")
	}

	// idempotent
	if err := r.SetAvailability(num, false); err != nil {
		t.Fatalf("SetAvailability repeat: %v", err)
	}
	if err := r.SetAvailability(num, true); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	a, err = r.GetAsset(num)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if !a.Available {
		t.Error("flag should be restored")
	}

	// no-op for an unknown asset
	if err := r.SetAvailability("R99999999", true); err != nil {
		t.Fatalf("SetAvailability(unknown) = %v, want nil", err)
	}
}

func TestListAssetsStatusFilter(t *testing.T) {
	r := newTestRepo(t)
	a := seedAsset(t, r, 1)
	seedAsset(t, r, 2)
	if _, err := r.OpenLoan(a, Borrower{Name: "Ana"}); err != nil {
		t.Fatalf("OpenLoan: %v", err)
	}

	available, err := r.ListAssets("available")
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	loaned, err := r.ListAssets("loaned")
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	all, err := r.ListAssets("")
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(available) != 1 || len(loaned) != 1 || len(all) != 2 {
		t.Fatalf("filter counts: available=%d loaned=%d all=%d", len(available), len(loaned), len(all))
	}
	if loaned[0].PropertyNumber != a {
		t.Errorf("wrong asset reported on loan: %v", loaned[0])
	}
}

func TestStats(t *testing.T) {
	r := newTestRepo(t)
	a := seedAsset(t, r, 1)
	seedAsset(t, r, 2)
	b := seedAsset(t, r, 3)
	if _, err := r.OpenLoan(a, Borrower{Name: "Ana"}); err != nil {
		t.Fatalf("OpenLoan: %v", err)
	}
	if _, err := r.Decommission(b, true); err != nil {
		t.Fatalf("Decommission: %v", err)
	}

	s, err := r.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Total != 2 || s.Available != 1 || s.OnLoan != 1 || s.Decommissioned != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestSummaryActiveAsset(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)
	if _, err := r.RegisterMaintenance(num, "tech", models.TaskFlags{CheckUpdate: true}, "owner", "annual service", "uipra.edu"); err != nil {
		t.Fatalf("RegisterMaintenance: %v", err)
	}
	if _, err := r.OpenLoan(num, Borrower{Name: "Ana"}); err != nil {
		t.Fatalf("OpenLoan: %v", err)
	}

	s, err := r.Summary(num)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.Status != "on_loan" {
		t.Errorf("status = %q, want on_loan", s.Status)
	}
	if s.MaintenanceCount != 1 || s.RepairCount != 0 || s.LoanCount != 1 {
		t.Errorf("counts: %+v", s)
	}
	if s.LastServicedAt == "" {
		t.Error("LastServicedAt should be set after maintenance")
	}
}

func TestSummaryDecommissionedAsset(t *testing.T) {
	r := newTestRepo(t)
	num := seedAsset(t, r, 4)
	if _, err := r.OpenLoan(num, Borrower{Name: "Ana"}); err != nil {
		t.Fatalf("OpenLoan: %v", err)
	}
	if _, err := r.CloseLoan(num); err != nil {
		t.Fatalf("CloseLoan: %v", err)
	}
	if _, err := r.Decommission(num, true); err != nil {
		t.Fatalf("Decommission: %v", err)
	}

	s, err := r.Summary(num)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.Status != "decommissioned" {
		t.Errorf("status = %q, want decommissioned", s.Status)
	}
	if s.LoanCount != 1 {
		t.Errorf("loan count from snapshot = %d, want 1", s.LoanCount)
	}
}

func TestSummaryUnknownAsset(t *testing.T) {
	r := newTestRepo(t)
	if _, err := r.Summary("R99999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
