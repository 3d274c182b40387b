package models

// Column headers and file names are a compatibility contract with the
// existing xlsx registries. Do not rename or reorder.
const (
	InventoryFile = "Registro Laptops.xlsx"

	ColPropertyNumber = "Num_Propiedad"
	ColLaptopID       = "ID_Laptop"
	ColServiceTag     = "Service_Tag"
	ColModel          = "Modelo"
	ColAvailable      = "Disponible"
	ColWarranty       = "Garantía"
	ColPurchaseDate   = "Fecha_Compra"

	// AvailableMark is the presence marker in the Disponible column.
	// Any other value (normally empty) means the asset is on loan.
	AvailableMark = "X"
)

var InventoryColumns = []string{
	ColPropertyNumber, ColLaptopID, ColServiceTag, ColModel,
	ColAvailable, ColWarranty, ColPurchaseDate,
}

// Asset is one machine in the active inventory, keyed by PropertyNumber.
type Asset struct {
	PropertyNumber string `json:"propertyNumber"`
	LaptopID       string `json:"laptopId"`
	ServiceTag     string `json:"serviceTag"`
	Model          string `json:"model"`
	Available      bool   `json:"available"`
	Warranty       string `json:"warranty"`     // YYYY-MM-DD
	PurchaseDate   string `json:"purchaseDate"` // YYYY-MM-DD
}
