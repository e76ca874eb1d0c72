// Package domain contains the table listing result type.
package domain

// TableList mirrors the store's list response. TableNames is never nil so it
// serializes as [] rather than null.
type TableList struct {
	TableNames []string `json:"TableNames"`
}

// NewTableList builds a TableList from names.
func NewTableList(names []string) *TableList {
	if names == nil {
		names = []string{}
	}
	return &TableList{TableNames: names}
}
