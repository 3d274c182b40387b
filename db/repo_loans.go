package db

import (
	"strings"

	"Gin_excel_redis_asset_tool/models"
)

// Borrower identifies who takes an asset out.
type Borrower struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Phone      string `json:"phone"`
}

// OpenLoan appends an open loan record and marks the asset unavailable.
// Availability is a cached flag mirroring the loan log, so both writes
// belong to the same logical operation. The flag commits first: a failure
// between the two writes leaves the asset unavailable with no open
// record, never available with one, so the asset cannot be loaned twice.
func (r *Repo) OpenLoan(num string, b Borrower) (*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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
	i := findAsset(inv, num)
	if i < 0 {
		return nil, ErrNotFound
	}
	if !availableMarkSet(inv, i) {
		return nil, ErrAlreadyOnLoan
	}

	loans, err := r.t.LoadLoans()
	if err != nil {
		return nil, err
	}

	setAvailability(inv, num, false)
	if err := r.t.SaveInventory(inv); err != nil {
		return nil, err
	}

	l := models.Loan{
		PropertyNumber: inv.Get(i, models.ColPropertyNumber),
		BorrowerName:   strings.TrimSpace(b.Name),
		BorrowerID:     strings.TrimSpace(b.Identifier),
		BorrowerPhone:  strings.TrimSpace(b.Phone),
		LoanedAt:       nowStamp(),
	}
	loans.Append(map[string]string{
		models.ColPropertyNumber: l.PropertyNumber,
		models.ColBorrowerName:   l.BorrowerName,
		models.ColBorrowerID:     l.BorrowerID,
		models.ColBorrowerTel:    l.BorrowerPhone,
		models.ColLoanedAt:       l.LoanedAt,
		models.ColReturnedAt:     "",
	})
	if err := r.t.SaveLoans(loans); err != nil {
		return nil, err
	}
	return &l, nil
}

// CloseLoan stamps the return time on the asset's open loan and marks the
// asset available again. If more than one open record exists (a prior
// inconsistency), the most recently appended one is closed.
func (r *Repo) CloseLoan(num string) (*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loans, err := r.t.LoadLoans()
	if err != nil {
		return nil, err
	}
	open := -1
	for i := 0; i < loans.Len(); i++ {
		if sameKey(loans.Get(i, models.ColPropertyNumber), num) &&
			isBlank(loans.Get(i, models.ColReturnedAt)) {
			open = i
		}
	}
	if open < 0 {
		return nil, ErrNoOpenLoan
	}

	loans.Set(open, models.ColReturnedAt, nowStamp())
	if err := r.t.SaveLoans(loans); err != nil {
		return nil, err
	}

	inv, err := r.t.LoadInventory()
	if err != nil {
		return nil, err
	}
	if setAvailability(inv, num, true) {
		if err := r.t.SaveInventory(inv); err != nil {
			return nil, err
		}
	}
	l := rowToLoan(loans, open)
	return &l, nil
}

// ListLoans returns the loan log, optionally filtered by property number
// and status ("open" or "returned").
func (r *Repo) ListLoans(num, status string) ([]models.Loan, error) {
	loans, err := r.t.LoadLoans()
	if err != nil {
		return nil, err
	}
	var out []models.Loan
	for i := 0; i < loans.Len(); i++ {
		if num != "" && !sameKey(loans.Get(i, models.ColPropertyNumber), num) {
			continue
		}
		l := rowToLoan(loans, i)
		if status == "open" && !l.Open() {
			continue
		}
		if status == "returned" && l.Open() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func rowToLoan(loans *Table, i int) models.Loan {
	returned := loans.Get(i, models.ColReturnedAt)
	if isBlank(returned) {
		returned = ""
	}
	return models.Loan{
		PropertyNumber: loans.Get(i, models.ColPropertyNumber),
		BorrowerName:   loans.Get(i, models.ColBorrowerName),
		BorrowerID:     loans.Get(i, models.ColBorrowerID),
		BorrowerPhone:  loans.Get(i, models.ColBorrowerTel),
		LoanedAt:       loans.Get(i, models.ColLoanedAt),
		ReturnedAt:     returned,
	}
}
