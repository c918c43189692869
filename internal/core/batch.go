package core

// batch.go runs the per-row generation pipeline. Rows are processed strictly
// in source order with a fault boundary around each one: a failed or panicking
// row is recorded in the report and the batch continues. Outcomes are explicit
// result values, never control-flow exceptions.

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// Runner executes batch runs using the injected rendering and conversion
// capabilities.
type Runner struct {
	Renderer  TemplateRenderer
	Converter FormatConverter
	Logger    *slog.Logger
}

// RunInput carries everything one batch run needs.
type RunInput struct {
	Rows         []Row
	TemplatePath string
	Pattern      string

	// DocxDir and PdfDir are the per-run scratch partitions. Each row writes
	// its rendered document and converted copy here regardless of outcome.
	DocxDir string
	PdfDir  string
}

// Run processes all rows and returns the aggregate result plus one report
// entry per row, in source order. It never aborts on a single row's failure;
// Success + Errors always equals Total.
func (r *Runner) Run(ctx context.Context, in RunInput) (BatchResult, []ReportEntry) {
	start := time.Now()

	result := BatchResult{
		Total:            len(in.Rows),
		FilenameTemplate: in.Pattern,
	}
	entries := make([]ReportEntry, 0, len(in.Rows))

	// Two rows sanitizing to the same name would silently overwrite each
	// other in scratch; disambiguate with the ordinal.
	usedNames := make(map[string]bool, len(in.Rows))

	for i, row := range in.Rows {
		ordinal := i + 1

		baseName := RenderFilename(in.Pattern, row, ordinal)
		if usedNames[baseName] {
			baseName = fmt.Sprintf("%s-%d", baseName, ordinal)
		}
		usedNames[baseName] = true

		// Once the run deadline passes, remaining rows are recorded as
		// errors without invoking the renderer.
		var status string
		if err := ctx.Err(); err != nil {
			status = fmt.Sprintf("Error: %v", err)
		} else {
			status = r.processRow(ctx, row, ordinal, baseName, in)
		}

		entries = append(entries, ReportEntry{
			EmpName:  strings.TrimSpace(row.Get("emp_name")),
			Filename: baseName,
			Status:   status,
		})

		if status == StatusSuccess {
			result.Success++
		} else {
			result.Errors++
			if r.Logger != nil {
				r.Logger.Warn("row failed", "ordinal", ordinal, "emp_name", row.Get("emp_name"), "status", status)
			}
		}
	}

	result.Duration = time.Since(start)
	result.TimeTaken = FormatElapsed(result.Duration)
	return result, entries
}

// processRow renders and converts one row. Any failure, including a panic
// inside a capability implementation, is contained here and returned as an
// error status string so the batch can continue.
func (r *Runner) processRow(ctx context.Context, row Row, ordinal int, baseName string, in RunInput) (status string) {
	defer func() {
		if rec := recover(); rec != nil {
			status = fmt.Sprintf("Error: %v", rec)
		}
	}()

	fields := TemplateContext(row, ordinal)

	docxPath := filepath.Join(in.DocxDir, baseName+".docx")
	pdfPath := filepath.Join(in.PdfDir, baseName+".pdf")

	if err := r.Renderer.Render(in.TemplatePath, fields, docxPath); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	// Conversion failure leaves the rendered DOCX in scratch; it is still
	// packaged so the user can recover the partial output.
	if err := r.Converter.Convert(ctx, docxPath, pdfPath); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	return StatusSuccess
}

// FormatElapsed renders a wall-clock duration the way the result page shows
// it: seconds with two decimals under a minute, minutes and seconds above.
func FormatElapsed(d time.Duration) string {
	secs := d.Seconds()
	if secs < 60 {
		return fmt.Sprintf("%.2f sec", secs)
	}
	minutes := int(secs) / 60
	return fmt.Sprintf("%d min %.2f sec", minutes, secs-float64(minutes*60))
}
