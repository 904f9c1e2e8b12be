package mdexport

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExportOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    ExportOptions
		wantErr error
	}{
		{
			name:    "html with options",
			opts:    ExportOptions{Format: FormatHTML, HTML: &HTMLExportOptions{}},
			wantErr: nil,
		},
		{
			name:    "html without options",
			opts:    ExportOptions{Format: FormatHTML},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "mime html rejected",
			opts:    ExportOptions{Format: FormatHTML, HTML: &HTMLExportOptions{UseMimeHTMLFormat: true}},
			wantErr: ErrMimeHTMLUnsupported,
		},
		{
			name:    "pdf not implemented",
			opts:    ExportOptions{Format: FormatPDF},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "unknown format",
			opts:    ExportOptions{Format: "docx"},
			wantErr: ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFileDocument(t *testing.T) {
	t.Parallel()

	t.Run("reads content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		if err := os.WriteFile(path, []byte("# hi"), 0o600); err != nil {
			t.Fatal(err)
		}

		doc := NewFileDocument(path)
		if doc.Path() != path {
			t.Errorf("Path() = %q", doc.Path())
		}
		text, err := doc.Read()
		if err != nil {
			t.Fatal(err)
		}
		if text != "# hi" {
			t.Errorf("Read() = %q", text)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		doc := NewFileDocument(filepath.Join(t.TempDir(), "no.md"))
		if _, err := doc.Read(); !errors.Is(err, ErrReadDocument) {
			t.Errorf("got %v, want ErrReadDocument", err)
		}
	})
}

func TestFileDocumentIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"note.md", true},
		{"note.markdown", true},
		{"note.mkd", true},
		{"note.mdown", true},
		{"NOTE.MD", true},
		{"note.txt", false},
		{"note.html", false},
		{"note", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := NewFileDocument(tt.path).IsMarkdown(); got != tt.want {
				t.Errorf("IsMarkdown(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"zero timeout", func() { WithTimeout(0) }},
		{"negative timeout", func() { WithTimeout(-time.Second) }},
		{"zero poll interval", func() { WithPollInterval(0) }},
		{"negative settle delay", func() { WithSettleDelay(-time.Millisecond) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestOptionsApply(t *testing.T) {
	t.Parallel()

	e := NewExporter(
		WithTimeout(5*time.Second),
		WithPollInterval(10*time.Millisecond),
		WithSettleDelay(0),
	)
	if e.cfg.timeout != 5*time.Second {
		t.Errorf("timeout = %v", e.cfg.timeout)
	}
	if e.cfg.pollInterval != 10*time.Millisecond {
		t.Errorf("pollInterval = %v", e.cfg.pollInterval)
	}
	if e.cfg.settleDelay != 0 {
		t.Errorf("settleDelay = %v", e.cfg.settleDelay)
	}
}
