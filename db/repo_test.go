package db

import (
	"fmt"
	"testing"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	tables, err := OpenTables(t.TempDir())
	if err != nil {
		t.Fatalf("OpenTables: %v", err)
	}
	return NewRepo(tables)
}

// seedAsset registers a valid asset with the given property number suffix
// (two digits) so tests can create several distinct machines.
func seedAsset(t *testing.T, r *Repo, suffix int) string {
	t.Helper()
	num := fmt.Sprintf("R400221%02d", suffix)
	_, err := r.AddAsset(AssetCandidate{
		PropertyNumber: num,
		LaptopID:       fmt.Sprintf("UIPRA-EST-L0%02d", suffix),
		ServiceTag:     fmt.Sprintf("AB%05d", suffix),
		Model:          "Latitude 5420",
		Warranty:       "2031-06-30",
		PurchaseDate:   "2024-01-15",
	})
	if err != nil {
		t.Fatalf("seedAsset %s: %v", num, err)
	}
	return num
}
