package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/bucket/internal/importer/row"
)

var ErrUnknownProfile = errors.New("unknown import profile")

// Profile names the file format being imported.
type Profile string

const (
	ProfileIvy     Profile = "ivy"
	ProfileGeneric Profile = "generic"
)

// Parser turns decoded UTF-8 input into rows. Lines that cannot be parsed are
// reported as failures; an error means the file as a whole is unreadable.
type Parser interface {
	Parse(r io.Reader) ([]row.Row, []row.Failed, error)
}

// Result summarises one import.
type Result struct {
	RowsFound            int
	TransactionsImported int
	AccountsImported     int
	CategoriesImported   int
	FailedRows           []row.Failed
}
