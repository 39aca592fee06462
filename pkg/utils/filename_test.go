package utils

import "testing"

func TestDisplayNameFromFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple pdf", "report.pdf", "report"},
		{"multiple dots keeps earlier ones", "q3.final.docx", "q3.final"},
		{"no extension", "README", "README"},
		{"path stripped", "uploads/2024/report.csv", "report"},
		{"dotfile unchanged", ".env", ".env"},
		{"trailing dot unchanged", "weird.", "weird."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayNameFromFilename(tt.in); got != tt.want {
				t.Errorf("DisplayNameFromFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMimeTypeForFilename(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOk bool
	}{
		{"report.pdf", "application/pdf", true},
		{"data.CSV", "text/csv", true},
		{"payload.json", "application/json", true},
		{"letter.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{"notes.txt", "text/plain", true},
		{"binary.exe", "", false},
		{"no-extension", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := MimeTypeForFilename(tt.in)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("MimeTypeForFilename(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}
