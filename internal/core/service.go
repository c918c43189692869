package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lcftools/ndaforge/internal/config"
	"github.com/lcftools/ndaforge/internal/logging"
)

// Service wires the batch pipeline together: spreadsheet reading, per-row
// generation, archive assembly, and the download registry.
type Service struct {
	reader    TableReader
	writer    TableWriter
	renderer  TemplateRenderer
	converter FormatConverter

	registry   *DownloadRegistry
	limiter    *RunLimiter
	runTimeout time.Duration
}

// Dependencies carries the capability implementations the service consumes.
type Dependencies struct {
	Reader    TableReader
	Writer    TableWriter
	Renderer  TemplateRenderer
	Converter FormatConverter
}

// NewService creates a Service with the given capabilities and configuration.
func NewService(deps Dependencies, cfg *config.Config) *Service {
	return &Service{
		reader:     deps.Reader,
		writer:     deps.Writer,
		renderer:   deps.Renderer,
		converter:  deps.Converter,
		registry:   NewDownloadRegistry(cfg.Registry.TTL),
		limiter:    NewRunLimiter(cfg.Upload.MaxConcurrentRuns, cfg.Upload.MaxWaitTime),
		runTimeout: cfg.Upload.RunTimeout,
	}
}

// Registry exposes the download registry so the caller can run its sweeper.
func (s *Service) Registry() *DownloadRegistry {
	return s.registry
}

// Limiter exposes the run limiter for shutdown draining.
func (s *Service) Limiter() *RunLimiter {
	return s.limiter
}

// Preview parses the spreadsheet and computes the resolved filename for the
// first count rows. It creates no files and does not touch the registry.
func (s *Service) Preview(sheet io.Reader, pattern string, count int) (*PreviewResponse, error) {
	parsed, err := s.readValidated(sheet)
	if err != nil {
		return nil, err
	}

	rows := Preview(parsed.Rows, pattern, count)
	return &PreviewResponse{
		Total:            len(parsed.Rows),
		PreviewCount:     len(rows),
		Rows:             rows,
		FilenameTemplate: pattern,
	}, nil
}

// Generate runs the full batch: renders and converts every row into a per-run
// scratch area, packages the outputs and the report into a ZIP, and stores it
// in the registry. The scratch area is released on all exit paths.
//
// Input validation failures abort before any row processing with no partial
// state; per-row failures are recorded in the report and never abort the run.
func (s *Service) Generate(ctx context.Context, sheet io.Reader, template io.Reader, pattern string) (*BatchResult, []ReportEntry, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, nil, err
	}
	defer s.limiter.Release()

	parsed, err := s.readValidated(sheet)
	if err != nil {
		return nil, nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	scratch, err := os.MkdirTemp("", "ndaforge-run-*")
	if err != nil {
		return nil, nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	templatePath := filepath.Join(scratch, "template.docx")
	if err := saveStream(template, templatePath); err != nil {
		return nil, nil, fmt.Errorf("save template: %w", err)
	}

	docxDir := filepath.Join(scratch, "DOCX")
	pdfDir := filepath.Join(scratch, "PDF")
	for _, dir := range []string{docxDir, pdfDir} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	logger := logging.WithFields(ctx, "pattern", pattern)
	logger.Info("batch run starting", "rows", len(parsed.Rows))

	runner := &Runner{
		Renderer:  s.renderer,
		Converter: s.converter,
		Logger:    logger,
	}
	result, entries := runner.Run(runCtx, RunInput{
		Rows:         parsed.Rows,
		TemplatePath: templatePath,
		Pattern:      pattern,
		DocxDir:      docxDir,
		PdfDir:       pdfDir,
	})

	builder := &ArchiveBuilder{Writer: s.writer}
	archive, err := builder.Build(docxDir, pdfDir, entries)
	if err != nil {
		return nil, nil, fmt.Errorf("build archive: %w", err)
	}

	result.ZipID = s.registry.Store(archive)

	logger.Info("batch run complete",
		"total", result.Total,
		"success", result.Success,
		"errors", result.Errors,
		"time", result.TimeTaken,
		"zip_id", result.ZipID,
	)

	return &result, entries, nil
}

// OpenArchive returns the stored archive bytes for id, or ErrNotFound.
// Retrieval is idempotent; the entry stays available until it expires.
func (s *Service) OpenArchive(id string) ([]byte, error) {
	data, ok := s.registry.Retrieve(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return data, nil
}

// readValidated parses the spreadsheet and checks the required column set,
// reporting exactly which columns are missing.
func (s *Service) readValidated(r io.Reader) (*Sheet, error) {
	sheet, err := s.reader.Read(r)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}

	if err := ValidateColumns(sheet.Columns); err != nil {
		return nil, err
	}

	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("no data rows in spreadsheet")
	}

	return sheet, nil
}

// ValidateColumns checks that all required columns are present
// (case-insensitive) and returns an error naming exactly the missing ones.
func ValidateColumns(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[strings.ToLower(strings.TrimSpace(c))] = true
	}

	var missing []string
	for _, want := range RequiredColumns {
		if !present[want] {
			missing = append(missing, want)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// saveStream writes an uploaded stream to path.
func saveStream(r io.Reader, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return f.Close()
}
