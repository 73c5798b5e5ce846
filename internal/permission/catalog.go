package permission

// Permission identifiers recognized by the console. Role permission sets are
// validated against this catalog at the settings boundary; the wildcard
// bypasses the catalog entirely so ids added later are still granted.
const (
	ViewSales      = "view_sales"
	CreateSales    = "create_sales"
	EditSales      = "edit_sales"
	DeleteSales    = "delete_sales"
	ViewPayroll    = "view_payroll"
	ProcessPayouts = "process_payouts"
	ManageStaff    = "manage_staff"
	ViewReports    = "view_reports"
	ManageSettings = "manage_settings"

	// Wildcard grants every permission, including ids added after the role
	// was created.
	Wildcard = "all"
)

type CatalogEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var Catalog = []CatalogEntry{
	{ID: ViewSales, Label: "View Sales Ledger"},
	{ID: CreateSales, Label: "Create New Sales"},
	{ID: EditSales, Label: "Edit/Modify Sales"},
	{ID: DeleteSales, Label: "Delete Sales Records"},
	{ID: ViewPayroll, Label: "View Payroll & Salaries"},
	{ID: ProcessPayouts, Label: "Process Payments (Pay Now)"},
	{ID: ManageStaff, Label: "Add/Remove Staff"},
	{ID: ViewReports, Label: "View Profit/Analytics"},
	{ID: ManageSettings, Label: "Change App Settings"},
}

// InCatalog reports whether id is a recognized permission or the wildcard.
func InCatalog(id string) bool {
	if id == Wildcard {
		return true
	}
	for _, entry := range Catalog {
		if entry.ID == id {
			return true
		}
	}
	return false
}
