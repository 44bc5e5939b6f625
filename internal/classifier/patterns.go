package classifier

import "regexp"

// compilePatterns compiles each expression with case-insensitive matching.
func compilePatterns(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+expr))
	}
	return out
}

// weatherExprs match questions about current or upcoming weather.
var weatherExprs = []string{
	`\bweather\b`,
	`\bforecast\b`,
	`\btemperature\b`,
	`\brain\b`,
	`\bsnow\b`,
	`\bwind\b`,
	`\bhumidity\b`,
	`\bstorm\b`,
}

// documentExprs match questions about the user's uploaded documents.
var documentExprs = []string{
	`\bdocument\b`,
	`\bdocuments\b`,
	`\bpdf\b`,
	`\bpdfs\b`,
	`\bupload\b`,
	`\buploaded\b`,
	`\bpaperwork\b`,
	`\bfile i\b`,
	`\bfiles i\b`,
}

// reminderExprs match requests to store or review follow-up tasks.
var reminderExprs = []string{
	`\bremind\b`,
	`\breminder\b`,
	`\breminders\b`,
	`\btask\b`,
	`\btasks\b`,
	`\btodo\b`,
	`\bto-do\b`,
	`\bfollow up\b`,
	`\bfollow-up\b`,
}

// generalExprs match questions that need no property context. Expand as
// more real user prompts show up.
var generalExprs = []string{
	`\btime\b`,
	`\bdate\b`,
	`\bwho are you\b`,
	`\bhelp\b`,
	`\bjoke\b`,
	`\bdefine\b`,
	`\bmeaning of\b`,
	`\btranslate\b`,
	`\bcalculator\b`,
	`\bwhat is\b`,
}

var (
	weatherPatterns  = compilePatterns(weatherExprs)
	documentPatterns = compilePatterns(documentExprs)
	reminderPatterns = compilePatterns(reminderExprs)
	generalPatterns  = compilePatterns(append(append([]string{}, weatherExprs...), generalExprs...))
)

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
