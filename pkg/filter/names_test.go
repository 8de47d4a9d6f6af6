package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterURI(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		want          string
		wantUnchanged bool
	}{
		{"already valid", "valid-name", "valid-name", true},
		{"spaces and punctuation", "Hello World!", "Hello-World", false},
		{"collapses dashes", "a--b", "a-b", false},
		{"space then dash", "a -b", "a-b", false},
		{"leading dash dropped", "-lead", "lead", false},
		{"leading underscore dropped", "_lead", "lead", false},
		{"repeated leading dashes", "--lead", "lead", false},
		{"deletes unicode", "caf\u00e9", "caf", false},
		{"empty", "", "", true},
		{"underscore kept inside", "a_b", "a_b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unchanged := FilterURI(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUnchanged, unchanged)
		})
	}
}

func TestFilterFilename(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		extension string
		want      string
		wantValid bool
	}{
		{"extension forced", "My Photo.JPG", "png", "my-photo.png", true},
		{"hidden file refused", ".hidden", "", "", false},
		{"empty refused", "", "", "", false},
		{"path stripped", "/tmp/upload/file.txt", "", "file.txt", true},
		{"backslash path stripped", `C:\tmp\file.txt`, "", "file.txt", true},
		{"extension appended", "notes", "md", "notes.md", true},
		{"dashes collapsed and trimmed", "--my  file--", "", "my-file", true},
		{"only dashes refused", "---", "", "", false},
		{"lowercased", "README.TXT", "", "readme.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := FilterFilename(tt.input, tt.extension)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantValid, valid)
		})
	}
}
