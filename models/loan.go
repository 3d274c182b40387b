package models

const (
	LoansFile = "Registro_Prestamos_Laptop.xlsx"

	ColBorrowerName = "Nombre"
	ColBorrowerID   = "Identificador"
	ColBorrowerTel  = "Num_Tele"
	ColLoanedAt     = "Dia_Pres"
	ColReturnedAt   = "Dia_Entr"
)

var LoanColumns = []string{
	ColPropertyNumber, ColBorrowerName, ColBorrowerID, ColBorrowerTel,
	ColLoanedAt, ColReturnedAt,
}

// Loan is one row of the append-only loan log. An empty ReturnedAt means
// the loan is still open; at most one open loan may exist per asset.
type Loan struct {
	PropertyNumber string `json:"propertyNumber"`
	BorrowerName   string `json:"borrowerName"`
	BorrowerID     string `json:"borrowerId"`
	BorrowerPhone  string `json:"borrowerPhone"`
	LoanedAt       string `json:"loanedAt"`
	ReturnedAt     string `json:"returnedAt,omitempty"`
}

// Open reports whether the loan has not been returned yet.
func (l Loan) Open() bool { return l.ReturnedAt == "" }
