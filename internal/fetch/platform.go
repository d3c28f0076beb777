package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board or ATS.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformIndeed     Platform = "indeed"
	PlatformGlassdoor  Platform = "glassdoor"
	PlatformGupy       Platform = "gupy"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	fragment string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"linkedin.com", PlatformLinkedIn},
	{"indeed.com", PlatformIndeed},
	{"glassdoor.com", PlatformGlassdoor},
	{"glassdoor.com.br", PlatformGlassdoor},
	{"gupy.io", PlatformGupy},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	for _, entry := range platformHosts {
		if strings.Contains(host, entry.fragment) {
			return entry.platform
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns description selectors tried before the
// generic heuristics for a recognized platform.
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
			".description__text",
			".show-more-less-html__markup",
			".jobs-description-content",
		}
	case PlatformIndeed:
		return []string{
			"#jobDescriptionText",
			".jobsearch-jobDescriptionText",
			".jobsearch-JobComponent-description",
		}
	case PlatformGlassdoor:
		return []string{
			".jobDescriptionContent",
			"[data-test='jobDescriptionContent']",
			".desc",
		}
	case PlatformGupy:
		return []string{
			"[data-testid='job-description']",
			".job-description",
			".description",
		}
	default:
		return nil
	}
}

// PlatformNoiseSelectors returns elements stripped before text extraction
// for a recognized platform, on top of the generic noise removal.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		".social-share",
		".share-buttons",
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
			".top-card-layout__cta-container",
			".similar-jobs",
		)
	case PlatformIndeed:
		return append(common,
			".jobsearch-IndeedApplyButton",
			".icl-Card",
		)
	default:
		return common
	}
}
