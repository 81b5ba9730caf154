package services

import "github.com/ClaireRuysschaert/BudgetMate/internal/models"

// CategoryProposal is the input handed to a CategoryDecider when a label
// has no persisted mapping yet.
type CategoryProposal struct {
	Label       string
	Category    string
	SubCategory string
}

// CategoryDecider decides the category and sub-category for a newly seen
// label. Returning ok=false cancels the resolution: the line is persisted
// uncategorized and no mapping is memorized.
//
// The reference flow backs this with a console prompt; the HTTP boundary
// uses AcceptProposals and tests use scripted functions. The strategy must
// be synchronous so the pipeline has no unbounded suspension.
type CategoryDecider interface {
	DecideCategory(p CategoryProposal) (category, subCategory string, ok bool)
}

// CategoryDeciderFunc adapts a function to the CategoryDecider interface.
type CategoryDeciderFunc func(p CategoryProposal) (string, string, bool)

// DecideCategory implements CategoryDecider.
func (f CategoryDeciderFunc) DecideCategory(p CategoryProposal) (string, string, bool) {
	return f(p)
}

// AcceptProposals is a CategoryDecider that accepts every proposal as-is.
// This is the non-interactive wiring used by the HTTP upload boundary.
var AcceptProposals CategoryDecider = CategoryDeciderFunc(func(p CategoryProposal) (string, string, bool) {
	return p.Category, p.SubCategory, true
})

// ShareDecision is the outcome of one explicit sharing decision.
type ShareDecision string

const (
	ShareOnce      ShareDecision = "share_once"
	ShareForever   ShareDecision = "share_forever"
	DeclineOnce    ShareDecision = "decline_once"
	DeclineForever ShareDecision = "decline_forever"
)

// ShareOutcome is what a ShareDecider returns for one pending line. The
// optional NewCategory/NewSubCategory pair recategorizes the line before
// the sharing flag is applied (refining a catch-all bucket, for instance).
type ShareOutcome struct {
	Decision       ShareDecision
	NewCategory    string
	NewSubCategory string
}

// ShareDecider decides the sharing status of a line left pending by the
// rule lookup. An unrecognized Decision leaves the line unchanged and is
// reported, not fatal.
type ShareDecider interface {
	DecideShare(line *models.StatementLine) ShareOutcome
}

// LeavePending is a ShareDecider that defers every decision. Lines keep
// their pending status and can be decided later through the sharing
// endpoint. This is the non-interactive wiring used by the HTTP upload
// boundary.
var LeavePending ShareDecider = ShareDeciderFunc(func(*models.StatementLine) ShareOutcome {
	return ShareOutcome{}
})

// ShareDeciderFunc adapts a function to the ShareDecider interface.
type ShareDeciderFunc func(line *models.StatementLine) ShareOutcome

// DecideShare implements ShareDecider.
func (f ShareDeciderFunc) DecideShare(line *models.StatementLine) ShareOutcome {
	return f(line)
}
