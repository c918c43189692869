package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// PDFConverter shells out to LibreOffice to turn a DOCX into a PDF. Each
// invocation gets its own user profile directory so concurrent conversions
// do not fight over the profile lock.
type PDFConverter struct {
	SofficePath string
	Timeout     time.Duration
}

func NewPDFConverter(sofficePath string, timeout time.Duration) *PDFConverter {
	return &PDFConverter{SofficePath: sofficePath, Timeout: timeout}
}

// Convert implements core.FormatConverter. The converter writes its output
// into dstPath's directory under the source base name, then renames it to
// dstPath if the two differ.
func (p *PDFConverter) Convert(ctx context.Context, srcPath, dstPath string) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	profile, err := os.MkdirTemp("", "soffice-profile-*")
	if err != nil {
		return fmt.Errorf("create converter profile: %w", err)
	}
	defer os.RemoveAll(profile)

	outDir := filepath.Dir(dstPath)
	cmd := exec.CommandContext(ctx, p.SofficePath,
		"-env:UserInstallation=file://"+profile,
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outDir,
		srcPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("convert %s: %w", filepath.Base(srcPath), ctx.Err())
		}
		return fmt.Errorf("convert %s: %w: %s", filepath.Base(srcPath), err, strings.TrimSpace(string(output)))
	}

	produced := filepath.Join(outDir, pdfName(srcPath))
	if produced != dstPath {
		if err := os.Rename(produced, dstPath); err != nil {
			return fmt.Errorf("place converted file: %w", err)
		}
	}

	if _, err := os.Stat(dstPath); err != nil {
		return fmt.Errorf("conversion produced no output for %s: %s", filepath.Base(srcPath), strings.TrimSpace(string(output)))
	}
	return nil
}

// pdfName mirrors how soffice names its output: source base name with the
// extension swapped for .pdf.
func pdfName(srcPath string) string {
	base := filepath.Base(srcPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}
