package core

// archive.go assembles the downloadable ZIP. The archive is built entirely
// in memory: generated DOCX files under "DOCX/", converted PDFs under "PDF/",
// and the serialized report table at a fixed path.

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// ReportFilename is the fixed in-archive path of the report table.
const ReportFilename = "NDA_Report.xlsx"

// ArchiveBuilder packages a finished batch run into one compressed container.
type ArchiveBuilder struct {
	Writer TableWriter
}

// Build zips every file in docxDir and pdfDir, preserving base names under
// their partition directories, and appends the report table. The result is
// immutable once returned.
func (b *ArchiveBuilder) Build(docxDir, pdfDir string, entries []ReportEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := addDir(zw, docxDir, "DOCX"); err != nil {
		return nil, fmt.Errorf("archive DOCX: %w", err)
	}
	if err := addDir(zw, pdfDir, "PDF"); err != nil {
		return nil, fmt.Errorf("archive PDF: %w", err)
	}

	report, err := b.Writer.WriteReport(entries)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	w, err := zw.Create(ReportFilename)
	if err != nil {
		return nil, fmt.Errorf("create report entry: %w", err)
	}
	if _, err := w.Write(report); err != nil {
		return nil, fmt.Errorf("append report: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}

	return buf.Bytes(), nil
}

// addDir writes every regular file in dir under prefix/ inside the archive.
// Files are added in sorted name order for deterministic output.
func addDir(zw *zip.Writer, dir, prefix string) error {
	fileEntries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}

	names := make([]string, 0, len(fileEntries))
	for _, e := range fileEntries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if err := addFile(zw, filepath.Join(dir, name), prefix+"/"+name); err != nil {
			return err
		}
	}
	return nil
}

func addFile(zw *zip.Writer, path, zipPath string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w, err := zw.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", zipPath, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy %s: %w", zipPath, err)
	}
	return nil
}
