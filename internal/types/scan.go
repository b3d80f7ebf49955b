package types

import "github.com/go-playground/validator/v10"

// Language selects the language the model writes the report and the
// optimized resume in.
type Language string

// Supported report languages.
const (
	LanguageEnglish    Language = "en"
	LanguagePortuguese Language = "pt"
	LanguageSpanish    Language = "es"
)

// DefaultLanguage is used when a request does not specify a language.
const DefaultLanguage = LanguageEnglish

// ValidLanguage reports whether code is one of the supported language codes.
func ValidLanguage(code string) bool {
	switch Language(code) {
	case LanguageEnglish, LanguagePortuguese, LanguageSpanish:
		return true
	}
	return false
}

// ScanRequest is the JSON body accepted by the scan endpoints. Exactly one of
// JobDescription or JobURL must be set.
type ScanRequest struct {
	JobDescription string `json:"job_description,omitempty" validate:"required_without=JobURL,excluded_with=JobURL"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
	ResumeText     string `json:"resume_text" validate:"required"`
	Language       string `json:"language,omitempty" validate:"omitempty,oneof=en pt es"`
}

// Validate validates the ScanRequest using the validator.
func (r *ScanRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
