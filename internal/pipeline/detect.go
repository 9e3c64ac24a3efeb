package pipeline

import "strings"

type DetectResult struct {
	IsTechpack bool
	Score      float64
	Reason     string
}

var detectKeywords = []string{
	"tech pack", "techpack", "spec", "construction", "measurement",
	"grading", "collar", "cuff", "stitch", "trim",
}

// DetectTechpack scores whether a mailed document is a garment tech pack
// worth analyzing, from subject keywords, body content and attachment
// types. Purely rule based; no partial states.
func DetectTechpack(subject, text string, attachmentNames []string) DetectResult {
	subject = strings.ToLower(subject)
	text = strings.ToLower(text)

	score := 0.0
	for _, kw := range detectKeywords {
		if strings.Contains(subject, kw) {
			score += 0.2
		}
		if strings.Contains(text, kw) {
			score += 0.1
		}
	}

	numberHits := countNumberRuns(text)
	if numberHits >= 2 {
		score += 0.4
	} else if numberHits == 1 {
		score += 0.2
	}

	for _, name := range attachmentNames {
		ln := strings.ToLower(name)
		if strings.HasSuffix(ln, ".pdf") || strings.HasSuffix(ln, ".xlsx") || strings.HasSuffix(ln, ".xls") {
			score += 0.25
			break
		}
	}

	if score > 1 {
		score = 1
	}

	isTechpack := score >= 0.45
	reason := "rules_negative"
	if isTechpack {
		reason = "rules_positive"
	}

	return DetectResult{IsTechpack: isTechpack, Score: score, Reason: reason}
}

func countNumberRuns(text string) int {
	count := 0
	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			count++
			for i+1 < len(text) && text[i+1] >= '0' && text[i+1] <= '9' {
				i++
			}
		}
	}
	return count
}
