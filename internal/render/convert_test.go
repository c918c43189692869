package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPDFName(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"/tmp/run/DOCX/Jane Doe NDA.docx", "Jane Doe NDA.pdf"},
		{"plain.docx", "plain.pdf"},
		{"no-extension", "no-extension.pdf"},
		{"dotted.name.docx", "dotted.name.pdf"},
	}

	for _, tt := range tests {
		if got := pdfName(tt.src); got != tt.want {
			t.Errorf("pdfName(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestPDFConverter_MissingBinary(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.docx")
	if err := os.WriteFile(src, []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv := NewPDFConverter("/nonexistent/soffice-binary", time.Second)
	err := conv.Convert(context.Background(), src, filepath.Join(dir, "in.pdf"))
	if err == nil {
		t.Fatal("Convert() expected error when binary is missing")
	}
	if !strings.Contains(err.Error(), "in.docx") {
		t.Errorf("error should name the source file: %v", err)
	}
}

func TestPDFConverter_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.docx")
	if err := os.WriteFile(src, []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := NewPDFConverter("/nonexistent/soffice-binary", 0)
	err := conv.Convert(ctx, src, filepath.Join(dir, "in.pdf"))
	if err == nil {
		t.Fatal("Convert() expected error for canceled context")
	}
	if !strings.Contains(err.Error(), context.Canceled.Error()) {
		t.Errorf("error should reflect cancellation: %v", err)
	}
}
