package models

const (
	DecommissionedFile = "Registro_Decomisados.xlsx"

	ColMaintenanceCount = "Num_Mantenimiento"
	ColRepairCount      = "Num_Reparaciones"
	ColLoanCount        = "Num_Prestamos"
	ColDecommissionedAt = "Fecha_Dec"
)

var DecommissionColumns = []string{
	ColPropertyNumber, ColLaptopID, ColServiceTag, ColModel,
	ColMaintenanceCount, ColRepairCount, ColLoanCount, ColDecommissionedAt,
}

// Decommission is the immutable retirement snapshot of an asset. A property
// number present here may never re-enter the inventory or receive new loan
// or maintenance records.
type Decommission struct {
	PropertyNumber   string `json:"propertyNumber"`
	LaptopID         string `json:"laptopId"`
	ServiceTag       string `json:"serviceTag"`
	Model            string `json:"model"`
	MaintenanceCount int    `json:"maintenanceCount"`
	RepairCount      int    `json:"repairCount"`
	LoanCount        int    `json:"loanCount"`
	DecommissionedAt string `json:"decommissionedAt"`
}
