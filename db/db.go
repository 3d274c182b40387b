package db

import (
	"fmt"
	"os"
	"path/filepath"

	"Gin_excel_redis_asset_tool/models"
)

// Tables resolves the four xlsx registries inside one data directory.
type Tables struct {
	dir string
}

// OpenTables prepares the data directory. The registry files themselves
// are created lazily on first save.
func OpenTables(dir string) (*Tables, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}
	return &Tables{dir: dir}, nil
}

func (t *Tables) path(name string) string { return filepath.Join(t.dir, name) }

func (t *Tables) LoadInventory() (*Table, error) {
	return LoadTable(t.path(models.InventoryFile), models.InventoryColumns)
}

func (t *Tables) SaveInventory(tab *Table) error {
	return SaveTable(t.path(models.InventoryFile), tab)
}

func (t *Tables) LoadLoans() (*Table, error) {
	return LoadTable(t.path(models.LoansFile), models.LoanColumns)
}

func (t *Tables) SaveLoans(tab *Table) error {
	return SaveTable(t.path(models.LoansFile), tab)
}

func (t *Tables) LoadMaintenance() (*Table, error) {
	return LoadTable(t.path(models.MaintenanceFile), models.MaintenanceColumns)
}

func (t *Tables) SaveMaintenance(tab *Table) error {
	return SaveTable(t.path(models.MaintenanceFile), tab)
}

func (t *Tables) LoadDecommissioned() (*Table, error) {
	return LoadTable(t.path(models.DecommissionedFile), models.DecommissionColumns)
}

func (t *Tables) SaveDecommissioned(tab *Table) error {
	return SaveTable(t.path(models.DecommissionedFile), tab)
}
