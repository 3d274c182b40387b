package models

const (
	MaintenanceFile = "Registro_Mantenimiento_Reparacion_Laptop.xlsx"

	ColDay        = "Dia"
	ColTechnician = "tecnico"
	ColKind       = "Tipo"
	ColRepairDesc = "Desc_Reparacion"
	ColOwnerName  = "Nombre"
	ColMaintDesc  = "Descripcion"
	ColDomain     = "Dominio"

	KindMaintenance = "Mantenimiento"
	KindRepair      = "Reparación"

	// PendingMark is the truthy marker of the optional pending-flag column,
	// and TaskMark the marker of a performed maintenance task.
	PendingMark = "X"
	TaskMark    = "X"
)

// TaskColumns are the boolean maintenance-task columns, marked with an "X"
// when the task was performed.
var TaskColumns = []string{
	"Check Update",
	"Dell Command Updates",
	"Bios Update",
	"Upgrade Windows 10 - 11",
	"Office 2019 Installed",
	"PatchMyPC Installed",
	"Dell Support Assist Installed",
}

var MaintenanceColumns = []string{
	ColPropertyNumber, ColDay, ColTechnician, ColKind, ColRepairDesc,
	ColOwnerName, ColMaintDesc, ColDomain,
	"Check Update", "Dell Command Updates", "Bios Update",
	"Upgrade Windows 10 - 11", "Office 2019 Installed",
	"PatchMyPC Installed", "Dell Support Assist Installed",
}

// TaskFlags mirrors TaskColumns as JSON-friendly booleans.
type TaskFlags struct {
	CheckUpdate        bool `json:"checkUpdate"`
	DellCommandUpdates bool `json:"dellCommandUpdates"`
	BiosUpdate         bool `json:"biosUpdate"`
	UpgradeWindows     bool `json:"upgradeWindows"`
	Office2019         bool `json:"office2019"`
	PatchMyPC          bool `json:"patchMyPC"`
	DellSupportAssist  bool `json:"dellSupportAssist"`
}

// Marks returns the per-column cell values for the task flags.
func (f TaskFlags) Marks() map[string]string {
	mark := func(b bool) string {
		if b {
			return TaskMark
		}
		return ""
	}
	return map[string]string{
		"Check Update":                  mark(f.CheckUpdate),
		"Dell Command Updates":          mark(f.DellCommandUpdates),
		"Bios Update":                   mark(f.BiosUpdate),
		"Upgrade Windows 10 - 11":       mark(f.UpgradeWindows),
		"Office 2019 Installed":         mark(f.Office2019),
		"PatchMyPC Installed":           mark(f.PatchMyPC),
		"Dell Support Assist Installed": mark(f.DellSupportAssist),
	}
}

// Maintenance is one row of the maintenance/repair log. A Repair row with
// an empty Day (or a marked pending-flag column) is an open repair waiting
// on a part; at most one open repair may exist per asset.
type Maintenance struct {
	PropertyNumber    string    `json:"propertyNumber"`
	Day               string    `json:"day,omitempty"`
	Technician        string    `json:"technician"`
	Kind              string    `json:"kind"`
	RepairDescription string    `json:"repairDescription,omitempty"`
	OwnerName         string    `json:"ownerName,omitempty"`
	Description       string    `json:"description,omitempty"`
	Domain            string    `json:"domain,omitempty"`
	Tasks             TaskFlags `json:"tasks"`
	Pending           bool      `json:"pending"`

	// Row is the record's position in the log (append order).
	Row int `json:"row"`
}
