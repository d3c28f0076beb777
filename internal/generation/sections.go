package generation

import "strings"

// Section markers the model is instructed to emit, in order.
const (
	MarkerOptimizedCV       = "### OPTIMIZED CV ###"
	MarkerCoverLetter       = "### COVER LETTER ###"
	MarkerNetworkingMessage = "### NETWORKING MESSAGE ###"
	MarkerInterviewTips     = "### INTERVIEW TIPS ###"
)

// Materials holds the four generated career documents.
type Materials struct {
	OptimizedCV       string `json:"optimizedCv"`
	CoverLetter       string `json:"coverLetter"`
	NetworkingMessage string `json:"networkingMessage"`
	InterviewTips     string `json:"interviewTips"`
}

var orderedMarkers = []string{
	MarkerOptimizedCV,
	MarkerCoverLetter,
	MarkerNetworkingMessage,
	MarkerInterviewTips,
}

// ParseSections splits a model response into the four materials by marker.
// A missing marker yields a placeholder error string for that section
// instead of failing the whole response.
func ParseSections(response string) Materials {
	parsed := make(map[string]string, len(orderedMarkers))

	for i, marker := range orderedMarkers {
		start := strings.Index(response, marker)
		if start == -1 {
			parsed[marker] = "Erro: Seção " + marker + " não encontrada"
			continue
		}

		body := response[start+len(marker):]
		end := len(body)
		if i+1 < len(orderedMarkers) {
			if next := strings.Index(body, orderedMarkers[i+1]); next != -1 {
				end = next
			}
		}
		parsed[marker] = strings.TrimSpace(body[:end])
	}

	return Materials{
		OptimizedCV:       parsed[MarkerOptimizedCV],
		CoverLetter:       parsed[MarkerCoverLetter],
		NetworkingMessage: parsed[MarkerNetworkingMessage],
		InterviewTips:     parsed[MarkerInterviewTips],
	}
}
