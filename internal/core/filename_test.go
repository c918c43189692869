package core

import (
	"strings"
	"testing"
)

// ============================================================================
// RenderFilename Tests
// ============================================================================

func TestRenderFilename(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		row     Row
		ordinal int
		want    string
	}{
		{
			name:    "basic substitution",
			pattern: "{emp_name} LCF NDA Form",
			row:     Row{"emp_name": "Jane Doe"},
			ordinal: 1,
			want:    "Jane Doe LCF NDA Form",
		},
		{
			name:    "path separator in value becomes hyphen",
			pattern: "{emp_name} LCF NDA Form",
			row:     Row{"emp_name": "Jane/Doe"},
			ordinal: 3,
			want:    "Jane-Doe LCF NDA Form",
		},
		{
			name:    "all recognized keys",
			pattern: "{index}-{emp_name}-{city}-{state}-{joining_date}",
			row: Row{
				"emp_name":     "Anil",
				"city":         "Pune",
				"state":        "MH",
				"joining_date": "2024-03-15",
			},
			ordinal: 7,
			want:    "7-Anil-Pune-MH-15-03-2024",
		},
		{
			name:    "unknown key passes through",
			pattern: "{emp_name} {department}",
			row:     Row{"emp_name": "Ravi"},
			ordinal: 1,
			want:    "Ravi {department}",
		},
		{
			name:    "unclosed brace passes through",
			pattern: "{emp_name} {oops",
			row:     Row{"emp_name": "Ravi"},
			ordinal: 1,
			want:    "Ravi {oops",
		},
		{
			name:    "no placeholders",
			pattern: "NDA Form",
			row:     Row{},
			ordinal: 1,
			want:    "NDA Form",
		},
		{
			name:    "reserved characters stripped",
			pattern: "{emp_name}",
			row:     Row{"emp_name": `A:B*C?D"E<F>G|H`},
			ordinal: 1,
			want:    "ABCDEFGH",
		},
		{
			name:    "whitespace collapsed and trimmed",
			pattern: "  {emp_name}   NDA  ",
			row:     Row{"emp_name": "Jane"},
			ordinal: 1,
			want:    "Jane NDA",
		},
		{
			name:    "empty result falls back",
			pattern: "{emp_name}",
			row:     Row{"emp_name": "???"},
			ordinal: 1,
			want:    "file",
		},
		{
			name:    "date fallback to raw text",
			pattern: "{joining_date}",
			row:     Row{"joining_date": "someday soon"},
			ordinal: 1,
			want:    "someday soon",
		},
		{
			name:    "injected placeholder is not rescanned",
			pattern: "{city} NDA",
			row:     Row{"city": "{emp_name}", "emp_name": "Jane"},
			ordinal: 1,
			want:    "{emp_name} NDA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderFilename(tt.pattern, tt.row, tt.ordinal)
			if got != tt.want {
				t.Errorf("RenderFilename(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

// TestRenderFilename_Pure verifies the same inputs always produce the same name.
func TestRenderFilename_Pure(t *testing.T) {
	row := Row{"emp_name": "Jane/Doe", "city": "Pune", "joining_date": "2024-01-02"}
	pattern := "{emp_name} {city} {joining_date} {index}"

	first := RenderFilename(pattern, row, 3)
	for i := 0; i < 10; i++ {
		if got := RenderFilename(pattern, row, 3); got != first {
			t.Fatalf("RenderFilename not deterministic: %q then %q", first, got)
		}
	}
}

// TestRenderFilename_AlwaysSafe checks the sanitization invariants across
// adversarial inputs: output is never empty and never contains reserved
// or path-separator characters.
func TestRenderFilename_AlwaysSafe(t *testing.T) {
	patterns := []string{
		"",
		"///",
		`\\\`,
		`:*?"<>|`,
		"   ",
		"{emp_name}/{city}",
		"{emp_name}{emp_name}{emp_name}",
	}
	rows := []Row{
		{},
		{"emp_name": "../../etc/passwd"},
		{"emp_name": `C:\Windows\System32`, "city": "a|b"},
		{"emp_name": "\t\n "},
	}

	for _, pattern := range patterns {
		for _, row := range rows {
			got := RenderFilename(pattern, row, 1)
			if got == "" {
				t.Errorf("RenderFilename(%q, %v) returned empty name", pattern, row)
			}
			if strings.ContainsAny(got, `/\:*?"<>|`) {
				t.Errorf("RenderFilename(%q, %v) = %q contains reserved characters", pattern, row, got)
			}
		}
	}
}

// ============================================================================
// FormatDate Tests
// ============================================================================

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ISO date", "2024-03-15", "15-03-2024"},
		{"ISO datetime", "2024-03-15 09:30:00", "15-03-2024"},
		{"already formatted", "15-03-2024", "15-03-2024"},
		{"slash format", "15/03/2024", "15-03-2024"},
		{"month name", "Mar 15, 2024", "15-03-2024"},
		{"unparseable falls back to raw", "Q3 2024", "Q3 2024"},
		{"empty stays empty", "", ""},
		{"whitespace trimmed", "  2024-03-15  ", "15-03-2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.raw); got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Pronoun Tests
// ============================================================================

func TestPronoun(t *testing.T) {
	tests := []struct {
		gender string
		want   string
	}{
		{"male", "his"},
		{"Male", "his"},
		{"MALE", "his"},
		{"m", "his"},
		{"M", "his"},
		{" m ", "his"},
		{"female", "her"},
		{"f", "her"},
		{"", "her"},
		{"nonbinary", "her"},
		{"unknown", "her"},
	}

	for _, tt := range tests {
		t.Run("gender="+tt.gender, func(t *testing.T) {
			if got := Pronoun(tt.gender); got != tt.want {
				t.Errorf("Pronoun(%q) = %q, want %q", tt.gender, got, tt.want)
			}
		})
	}
}

func TestTemplateContext(t *testing.T) {
	row := Row{
		"emp_name":     " Jane Doe ",
		"city":         "Pune",
		"state":        "MH",
		"joining_date": "2024-03-15",
		"address":      " 12 Main St ",
		"gender":       "Male",
	}

	ctx := TemplateContext(row, 4)

	want := map[string]string{
		"emp_name":     "Jane Doe",
		"city":         "Pune",
		"state":        "MH",
		"joining_date": "15-03-2024",
		"index":        "4",
		"address":      "12 Main St",
		"his_or_her":   "his",
	}

	for k, v := range want {
		if ctx[k] != v {
			t.Errorf("TemplateContext[%q] = %q, want %q", k, ctx[k], v)
		}
	}
	if len(ctx) != len(want) {
		t.Errorf("TemplateContext has %d fields, want %d", len(ctx), len(want))
	}
}
