package db

import (
	"strconv"
	"sync"

	"Gin_excel_redis_asset_tool/models"
)

// Repo owns every read-modify-write cycle against the registries. The
// xlsx files have no transaction support, so the mutex enforces the
// single-writer discipline: overlapping cycles on the same table would
// silently lose the first writer's update.
type Repo struct {
	t  *Tables
	mu sync.Mutex
}

func NewRepo(t *Tables) *Repo { return &Repo{t: t} }

// findAsset returns the inventory row index for a property number, -1 if
// absent.
func findAsset(inv *Table, num string) int {
	for i := 0; i < inv.Len(); i++ {
		if sameKey(inv.Get(i, models.ColPropertyNumber), num) {
			return i
		}
	}
	return -1
}

// isDecommissioned answers the terminal-state check against the
// decommission registry, which is authoritative over inventory presence.
func (r *Repo) isDecommissioned(num string) (bool, error) {
	dec, err := r.t.LoadDecommissioned()
	if err != nil {
		return false, err
	}
	return findAsset(dec, num) >= 0, nil
}

func cellInt(t *Table, i int, col string) int {
	n, _ := strconv.Atoi(t.Get(i, col))
	return n
}
