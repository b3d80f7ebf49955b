package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformLinkedIn is the LinkedIn jobs board
	PlatformLinkedIn Platform = "linkedin"
	// PlatformIndeed is the Indeed jobs board
	PlatformIndeed Platform = "indeed"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	case strings.Contains(host, "linkedin.com"):
		return PlatformLinkedIn
	case strings.Contains(host, "indeed.com"):
		return PlatformIndeed
	default:
		return PlatformUnknown
	}
}

// PlatformContentSelectors returns content selectors tuned for a specific
// platform, most specific first.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		}
	case PlatformLever:
		return []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='jobDescription']",
			".gwt-HTML",
			".job-description",
		}
	case PlatformLinkedIn:
		return []string{
			".jobs-description__content",
			".description__text",
			".show-more-less-html__markup",
			"main",
		}
	case PlatformIndeed:
		return []string{
			"#jobDescriptionText",
			".jobsearch-JobComponent-description",
			"main",
		}
	default:
		return JobPostingSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific
// platform, on top of a set common to all job boards.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// Application forms
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		"[data-testid='application-form']",

		// EEO and legal boilerplate
		".voluntary-disclosure",
		".eeo-statement",
		".eeo-section",
		".legal-disclosure",
		".self-identification",

		// Social and share widgets
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and consent banners
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformGreenhouse:
		return append(common,
			".application--wrapper",
			".voluntary-self-id",
			"#usa_self_id_section",
			".post-apply",
		)
	case PlatformLever:
		return append(common,
			".apply-section",
			".lever-application-form",
			".posting-apply",
		)
	case PlatformWorkday:
		return append(common,
			"[data-automation-id='applyButton']",
			".application-section",
		)
	case PlatformLinkedIn:
		return append(common,
			".jobs-apply-button",
			".similar-jobs",
			".people-also-viewed",
		)
	case PlatformIndeed:
		return append(common,
			"#applyButtonLinkContainer",
			".jobsearch-SimilarJobs",
		)
	default:
		return common
	}
}
