//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request ScanRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid with job description",
			request: ScanRequest{
				JobDescription: "We need a Go engineer.",
				ResumeText:     "Go engineer with 5 years of experience.",
				Language:       "en",
			},
			wantErr: false,
		},
		{
			name: "valid with job url",
			request: ScanRequest{
				JobURL:     "https://jobs.example.com/postings/123",
				ResumeText: "Go engineer with 5 years of experience.",
			},
			wantErr: false,
		},
		{
			name: "valid without language",
			request: ScanRequest{
				JobDescription: "We need a Go engineer.",
				ResumeText:     "Go engineer.",
			},
			wantErr: false,
		},
		{
			name: "missing resume text",
			request: ScanRequest{
				JobDescription: "We need a Go engineer.",
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "missing both job description and url",
			request: ScanRequest{
				ResumeText: "Go engineer.",
			},
			wantErr: true,
			errMsg:  "required_without",
		},
		{
			name: "both job description and url",
			request: ScanRequest{
				JobDescription: "We need a Go engineer.",
				JobURL:         "https://jobs.example.com/postings/123",
				ResumeText:     "Go engineer.",
			},
			wantErr: true,
			errMsg:  "excluded_with",
		},
		{
			name: "malformed job url",
			request: ScanRequest{
				JobURL:     "not-a-url",
				ResumeText: "Go engineer.",
			},
			wantErr: true,
			errMsg:  "url",
		},
		{
			name: "unsupported language",
			request: ScanRequest{
				JobDescription: "We need a Go engineer.",
				ResumeText:     "Go engineer.",
				Language:       "fr",
			},
			wantErr: true,
			errMsg:  "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidLanguage(t *testing.T) {
	assert.True(t, ValidLanguage("en"))
	assert.True(t, ValidLanguage("pt"))
	assert.True(t, ValidLanguage("es"))
	assert.False(t, ValidLanguage("fr"))
	assert.False(t, ValidLanguage(""))
	assert.False(t, ValidLanguage("EN"))
}
