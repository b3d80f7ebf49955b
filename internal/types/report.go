// Package types provides type definitions for the structured data exchanged
// with the analysis model and served to API clients.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Status classifies the outcome of a single report check. Tip sections use
// either pass/fail/info or pass/warning/info depending on the category.
type Status string

// Status values emitted by the analysis model.
const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusWarning Status = "warning"
	StatusInfo    Status = "info"
)

// SkillEntry records how often one skill appears in the job description and
// in the resume. A ResumeCount of -1 means the skill was not found in the
// resume at all, distinct from a true zero count.
type SkillEntry struct {
	Skill       string `json:"skill"`
	ResumeCount int    `json:"resumeCount"`
	JDCount     int    `json:"jdCount"`
}

// StatusTip is a single named check with its outcome and explanation.
type StatusTip struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// TipSection groups status tips with the issue count reported by the model.
// Issues is carried as given and never recomputed locally.
type TipSection struct {
	Issues int         `json:"issues"`
	Tips   []StatusTip `json:"tips"`
}

// SkillSection groups skill entries with the issue count reported by the model.
type SkillSection struct {
	Issues int          `json:"issues"`
	Skills []SkillEntry `json:"skills"`
}

// Report is the full structured analysis of one resume against one job
// description, as returned by the analysis model.
type Report struct {
	Searchability TipSection   `json:"searchability"`
	HardSkills    SkillSection `json:"hardSkills"`
	SoftSkills    SkillSection `json:"softSkills"`
	RecruiterTips TipSection   `json:"recruiterTips"`
}

// Keywords returns the union of hard- and soft-skill names in report order.
// This is the input the resume view feeds to the keyword highlighter.
func (r Report) Keywords() []string {
	keywords := make([]string, 0, len(r.HardSkills.Skills)+len(r.SoftSkills.Skills))
	for _, s := range r.HardSkills.Skills {
		keywords = append(keywords, s.Skill)
	}
	for _, s := range r.SoftSkills.Skills {
		keywords = append(keywords, s.Skill)
	}
	return keywords
}

// AnalysisResult pairs the report with the rewritten resume text. It is
// created once per successful model call and not mutated afterwards.
type AnalysisResult struct {
	Report          Report `json:"report"`
	OptimizedResume string `json:"optimizedResume"`
}
