// Package core implements the batch document generation pipeline: per-row
// filename and content templating, isolated per-row failure handling, report
// aggregation, archive assembly, and the in-memory download registry.
// This package has no HTTP dependencies and can be driven by any frontend.
package core

import (
	"context"
	"io"
	"time"
)

// RequiredColumns is the set of spreadsheet columns a batch run needs.
// Uploads missing any of these are rejected before row processing starts.
var RequiredColumns = []string{"emp_name", "city", "state", "joining_date", "address", "gender"}

// StatusSuccess is the report status for a fully generated row.
const StatusSuccess = "Success"

// DefaultPattern is the filename pattern used when the request omits one.
const DefaultPattern = "{emp_name} LCF NDA Form"

// ArchiveDownloadName is the filename offered when an archive is downloaded.
const ArchiveDownloadName = "NDA_Forms.zip"

// Row is one record of the input spreadsheet, keyed by lowercase column name.
// Rows are immutable once read and live for a single batch run.
type Row map[string]string

// Get returns the value for a column, or "" when absent.
func (r Row) Get(col string) string {
	return r[col]
}

// Sheet is an ordered set of rows parsed from an uploaded spreadsheet,
// together with the column names that were present.
type Sheet struct {
	Columns []string
	Rows    []Row
}

// ReportEntry is the per-row outcome recorded in the report table.
// Exactly one entry is created per row, in source order.
type ReportEntry struct {
	EmpName  string `json:"emp_name"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// OK reports whether the row completed both render and conversion.
func (e ReportEntry) OK() bool {
	return e.Status == StatusSuccess
}

// BatchResult summarizes one batch run. Success + Errors always equals Total.
type BatchResult struct {
	Total            int           `json:"total"`
	Success          int           `json:"success"`
	Errors           int           `json:"error"`
	TimeTaken        string        `json:"time"`
	Duration         time.Duration `json:"-"`
	ZipID            string        `json:"zip_id"`
	FilenameTemplate string        `json:"filename_template"`
}

// PreviewRow is one line of the pre-generation filename preview.
type PreviewRow struct {
	Index    int    `json:"index"`
	EmpName  string `json:"emp_name"`
	Filename string `json:"filename"`
}

// PreviewResponse is returned by the preview operation.
type PreviewResponse struct {
	Total            int          `json:"total"`
	PreviewCount     int          `json:"preview_count"`
	Rows             []PreviewRow `json:"preview_rows"`
	FilenameTemplate string       `json:"filename_template"`
}

// TableReader parses an uploaded spreadsheet into ordered rows with named
// columns. Implementations must preserve source row order.
type TableReader interface {
	Read(r io.Reader) (*Sheet, error)
}

// TableWriter serializes report entries into a spreadsheet byte stream.
type TableWriter interface {
	WriteReport(entries []ReportEntry) ([]byte, error)
}

// TemplateRenderer produces a document from a template file and a field
// context. A renderer error is terminal for that row only.
type TemplateRenderer interface {
	Render(templatePath string, fields map[string]string, outPath string) error
}

// FormatConverter converts a rendered document at srcPath into the
// distribution format at dstPath. Failures (missing external tool, corrupt
// input) are terminal for that row only.
type FormatConverter interface {
	Convert(ctx context.Context, srcPath, dstPath string) error
}
