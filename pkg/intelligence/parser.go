package intelligence

import (
	"strings"
)

// Section markers expected in the generated prose. The prompt asks for these
// headings, but the parser tolerates decoration around them (markdown
// prefixes, trailing colons, numbering).
var sectionMarkers = []string{
	"Strategic Summary",
	"Detailed Analysis",
	"Actionable Recommendations",
	"Financial Impact",
	"Implementation Approach",
	"Success Metrics",
	"Timeframe",
}

// Placeholder text for sections the service did not produce. A missing
// section never fails the parse.
const (
	defaultSummary         = "Strategic analysis completed. See full content for details."
	defaultAnalysis        = "Detailed analysis is available in the full content."
	defaultFinancialImpact = "Financial impact assessment pending further data collection."
	defaultImplementation  = "Implementation approach to be refined with the engagement team."
	defaultTimeframe       = "6-12 months"
)

// ParseResponse extracts the structured intelligence payload from generated
// prose. Sections are located by heading markers; list sections collect
// bulleted lines. The full prose is always preserved in FullContent.
func ParseResponse(analysisType, content string) *Intelligence {
	sections := splitSections(content)

	result := &Intelligence{
		Type:            NormalizeType(analysisType),
		Summary:         sectionOrDefault(sections, "Strategic Summary", defaultSummary),
		Analysis:        sectionOrDefault(sections, "Detailed Analysis", defaultAnalysis),
		Recommendations: bulletItems(sections["Actionable Recommendations"]),
		FinancialImpact: sectionOrDefault(sections, "Financial Impact", defaultFinancialImpact),
		Implementation:  sectionOrDefault(sections, "Implementation Approach", defaultImplementation),
		SuccessMetrics:  bulletItems(sections["Success Metrics"]),
		Confidence:      LiveConfidence,
		Actionable:      true,
		Priority:        "high",
		Timeframe:       sectionOrDefault(sections, "Timeframe", defaultTimeframe),
		FullContent:     content,
	}

	return result
}

// splitSections walks the prose line by line and groups content under the
// last seen heading marker.
func splitSections(content string) map[string]string {
	sections := make(map[string]string)
	var current string
	var buf strings.Builder

	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(buf.String())
		}
		buf.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		if marker, ok := matchMarker(line); ok {
			flush()
			current = marker
			// Inline content after "Heading: text" belongs to the section.
			if idx := strings.Index(line, ":"); idx >= 0 && idx < len(line)-1 {
				rest := strings.TrimSpace(line[idx+1:])
				if rest != "" {
					buf.WriteString(rest)
					buf.WriteString("\n")
				}
			}
			continue
		}
		if current != "" {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	flush()

	return sections
}

// matchMarker reports whether the line is one of the known section headings.
// Headings may carry markdown decoration ("## ", "**", numbering) or a
// trailing colon. Bullet lines never match: a recommendation that happens to
// start with a marker phrase stays a sub-item of its enclosing list.
func matchMarker(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") {
		return "", false
	}
	trimmed = strings.TrimLeft(trimmed, "#*1234567890. ")
	trimmed = strings.TrimRight(trimmed, "*")

	lower := strings.ToLower(trimmed)
	for _, marker := range sectionMarkers {
		if strings.HasPrefix(lower, strings.ToLower(marker)) {
			return marker, true
		}
	}
	return "", false
}

func sectionOrDefault(sections map[string]string, marker, fallback string) string {
	if text, ok := sections[marker]; ok && text != "" {
		return text
	}
	return fallback
}

// bulletItems extracts lines starting with "-" or "•" as list entries.
// A missing or bullet-free section yields an empty list, never nil.
func bulletItems(text string) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") {
			item := strings.TrimSpace(strings.TrimLeft(trimmed, "-• "))
			if item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
