package importer

import "github.com/frahmantamala/talento-plus/internal/employee"

// RowFailure is a data row that could not be staged. The rest of the batch
// still commits.
type RowFailure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ProvisionWarning is a committed employee whose login could not be created.
type ProvisionWarning struct {
	Row    int    `json:"row"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type ImportedEmployee struct {
	Row      int    `json:"row"`
	ID       int64  `json:"id"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Updated  bool   `json:"updated"`
}

// Result is the structured report of one import batch.
type Result struct {
	BatchID           string               `json:"batch_id"`
	Sheet             string               `json:"sheet,omitempty"`
	Employees         []*employee.Employee `json:"-"`
	Imported          []ImportedEmployee   `json:"imported"`
	Failures          []RowFailure         `json:"failures"`
	SkippedRows       []int                `json:"skipped_rows"`
	Warnings          []ProvisionWarning   `json:"warnings"`
	AccountsCreated   int                  `json:"accounts_created"`
	DimensionsCreated int                  `json:"dimensions_created"`
}

func newResult(batchID string) *Result {
	return &Result{
		BatchID:     batchID,
		Employees:   []*employee.Employee{},
		Imported:    []ImportedEmployee{},
		Failures:    []RowFailure{},
		SkippedRows: []int{},
		Warnings:    []ProvisionWarning{},
	}
}
