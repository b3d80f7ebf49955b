package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/rodrigoplimafreire/ats-resume/internal/highlight"
	"github.com/rodrigoplimafreire/ats-resume/internal/ingestion"
	"github.com/rodrigoplimafreire/ats-resume/internal/scoring"
	"github.com/rodrigoplimafreire/ats-resume/internal/types"
)

// ScanResult is the complete outcome of one scan: the analysis report, both
// scores, and the highlighted resume views.
type ScanResult struct {
	ID         uuid.UUID           `json:"id"`
	CreatedAt  time.Time           `json:"createdAt"`
	Language   types.Language      `json:"language"`
	JobPosting *ingestion.Metadata `json:"jobPosting,omitempty"`

	Report          types.Report `json:"report"`
	OriginalResume  string       `json:"originalResume"`
	OptimizedResume string       `json:"optimizedResume"`

	OriginalScore  int           `json:"originalScore"`
	OptimizedScore int           `json:"optimizedScore"`
	OriginalColor  scoring.Color `json:"originalColor"`
	OptimizedColor scoring.Color `json:"optimizedColor"`

	OriginalView  []highlight.Segment `json:"originalView"`
	OptimizedView []highlight.Segment `json:"optimizedView"`
}

// Summary is the listing view of a stored scan.
type Summary struct {
	ID             uuid.UUID      `json:"id"`
	CreatedAt      time.Time      `json:"createdAt"`
	Language       types.Language `json:"language"`
	JobURL         string         `json:"jobUrl,omitempty"`
	OriginalScore  int            `json:"originalScore"`
	OptimizedScore int            `json:"optimizedScore"`
}

// Summary reduces the result to its listing view.
func (r *ScanResult) Summary() Summary {
	s := Summary{
		ID:             r.ID,
		CreatedAt:      r.CreatedAt,
		Language:       r.Language,
		OriginalScore:  r.OriginalScore,
		OptimizedScore: r.OptimizedScore,
	}
	if r.JobPosting != nil {
		s.JobURL = r.JobPosting.URL
	}
	return s
}
