package models

// Reserved and default categories
const (
	// TotalCategory labels the summary row appended to exported reports.
	// Records carrying it are never returned by a store load.
	TotalCategory = "TOTAL"

	// DefaultCategory replaces an empty category when a record is built.
	DefaultCategory = "Uncategorized"
)

// Column headers shared by every tabular backend and the exported report.
const (
	HeaderDate     = "Date/Time"
	HeaderCategory = "Category"
	HeaderAmount   = "Amount ($)"
	HeaderNotes    = "Notes"
)

// Headers returns the column headers in storage order.
func Headers() []string {
	return []string{HeaderDate, HeaderCategory, HeaderAmount, HeaderNotes}
}

// File permissions
const (
	PermissionDataFile  = 0644
	PermissionDirectory = 0750
)
