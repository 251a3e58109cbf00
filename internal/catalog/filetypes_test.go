package catalog

import "testing"

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", FileTypePDF},
		{"notes.TXT", FileTypeTXT},
		{"readme.markdown", FileTypeMD},
		{"contract.docx", FileTypeDOCX},
		{"old-contract.doc", FileTypeDOCX},
		{"budget.xlsx", FileTypeXLSX},
		{"data.csv", FileTypeCSV},
		{"scan.jpeg", FileTypeJPG},
		{"diagram.webp", FileTypeWEBP},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := DetectFileType(tt.filename)
			if got != tt.want {
				t.Errorf("DetectFileType(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"invoice.pdf", true},
		{"photo.PNG", true},
		{"notes.md", true},
		{"sheet.xls", true},
		{"movie.mp4", false},
		{"binary.exe", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := IsAllowed(tt.filename); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}
