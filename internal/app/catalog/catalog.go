// internal/app/catalog/catalog.go

// Package catalog holds the fixed mapping of report table names to their
// expected column labels. The catalog is compile-time constant data: it is
// loaded once at process start and treated as read-only everywhere. Both the
// assignment surface and the bulk-upload surface accept only table names that
// appear here.
package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTable is returned when a table name is not a catalog key.
var ErrUnknownTable = errors.New("unknown report table")

// Entry is one catalog record: a table name and its ordered column labels.
type Entry struct {
	TableName string   `json:"table_name"`
	Columns   []string `json:"columns"`
}

// tables is the full catalog for the reference deployment (17 tables).
// Order of columns matters: it is the shape offices are told to submit.
var tables = map[string][]string{
	"Enrollment": {
		"Campus", "Program", "Year Level", "Male", "Female", "Total",
	},
	"Graduates": {
		"Campus", "Program", "Male", "Female", "Total",
	},
	"Dropouts": {
		"Campus", "Program", "Year Level", "Male", "Female", "Reason",
	},
	"Scholarships": {
		"Campus", "Scholarship Name", "Grantor", "Slots", "Amount",
	},
	"Faculty Profile": {
		"Campus", "Department", "Full Time", "Part Time", "With Doctorate", "With Masters",
	},
	"Staff Profile": {
		"Campus", "Unit", "Permanent", "Contractual", "Job Order",
	},
	"Payroll": {
		"Campus", "Unit", "Employee Count", "Gross Amount", "Deductions", "Net Amount",
	},
	"Utilities - Electricity": {
		"Campus", "Billing Month", "Consumption KWH", "Amount",
	},
	"Utilities - Water": {
		"Campus", "Billing Month", "Consumption CUM", "Amount",
	},
	"Utilities - Internet": {
		"Campus", "Provider", "Billing Month", "Bandwidth MBPS", "Amount",
	},
	"Library Holdings": {
		"Campus", "Collection", "Titles", "Volumes", "Acquisitions",
	},
	"Research Projects": {
		"Campus", "Title", "Lead", "Funding Source", "Budget", "Status",
	},
	"Extension Programs": {
		"Campus", "Program", "Partner", "Beneficiaries", "Status",
	},
	"Infrastructure Projects": {
		"Campus", "Project", "Contractor", "Cost", "Completion Percent",
	},
	"Procurement": {
		"Campus", "Item", "Quantity", "Unit Cost", "Total Cost", "Supplier",
	},
	"Vehicle Inventory": {
		"Campus", "Plate Number", "Type", "Acquisition Year", "Condition",
	},
	"Medical Services": {
		"Campus", "Service", "Patients Served", "Referrals",
	},
}

// Lookup returns the ordered column labels for a table name.
func Lookup(tableName string) ([]string, error) {
	cols, ok := tables[tableName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, tableName)
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return out, nil
}

// IsKnown reports whether tableName is a catalog key.
func IsKnown(tableName string) bool {
	_, ok := tables[tableName]
	return ok
}

// TableNames returns every catalog table name, sorted for stable listings.
func TableNames() []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns the full catalog, sorted by table name.
func Entries() []Entry {
	names := TableNames()
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		cols, _ := Lookup(name)
		out = append(out, Entry{TableName: name, Columns: cols})
	}
	return out
}
