package banks

import (
	"regexp"

	"github.com/ClaireRuysschaert/BudgetMate/internal/strutil"
)

// LabelRule extracts the counterparty span of a raw statement label.
// The full expression is startToken + "(.*)" + endToken; the start token
// carries exactly one capture group holding the operation keyword, so
// group 1 is the keyword and group 2 the raw label span.
type LabelRule struct {
	re *regexp.Regexp
}

// NewLabelRule compiles a rule from its start and end tokens. Panics on an
// invalid expression; rules are package-level declarations.
func NewLabelRule(startToken, endToken string) LabelRule {
	return LabelRule{re: regexp.MustCompile(startToken + `(.*)` + endToken)}
}

// Extract returns the cleaned text between the rule's tokens together with
// the operation keyword matched by the start token. Internal whitespace
// runs collapse to single spaces and the result is trimmed. ok is false
// when the rule does not match or the captured span is empty.
func (r LabelRule) Extract(label string) (cleaned, keyword string, ok bool) {
	m := r.re.FindStringSubmatch(label)
	if m == nil {
		return "", "", false
	}
	cleaned = strutil.CollapseSpaces(m[2])
	if cleaned == "" {
		return "", "", false
	}
	return cleaned, strutil.CollapseSpaces(m[1]), true
}

// ExtractFirst tries each rule in declared order and returns the first
// non-empty match.
func ExtractFirst(rules []LabelRule, label string) (cleaned, keyword string, ok bool) {
	for _, rule := range rules {
		if cleaned, keyword, ok = rule.Extract(label); ok {
			return cleaned, keyword, true
		}
	}
	return "", "", false
}
