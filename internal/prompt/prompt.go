// Package prompt implements the interactive console strategies used by the
// import command: the operator is asked to confirm categorization proposals
// and to settle sharing for each pending line.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
)

// catchAllCategory and catchAllSubCategory name the bucket that gets a
// refinement question before the sharing one.
const (
	catchAllCategory    = "Shopping et services"
	catchAllSubCategory = "autre"
)

// Console prompts on a terminal-like reader/writer pair. It implements both
// services.CategoryDecider and services.ShareDecider.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole creates a Console reading answers from in and writing prompts
// to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// readLine returns the next trimmed input line, or ok=false on EOF.
func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// DecideCategory asks the operator to accept or replace the proposed pair.
// Answering q (or closing the input) cancels: the line stays uncategorized.
func (c *Console) DecideCategory(p services.CategoryProposal) (string, string, bool) {
	fmt.Fprintf(c.out, "\nNew label: %s\n", p.Label)
	fmt.Fprintf(c.out, "Proposed category: %s / %s\n", p.Category, p.SubCategory)

	for {
		fmt.Fprint(c.out, "Accept? (y/n/q) ")
		answer, ok := c.readLine()
		if !ok {
			return "", "", false
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return p.Category, p.SubCategory, true
		case "q", "quit":
			return "", "", false
		case "n", "no":
			return c.askPair()
		}
		fmt.Fprintln(c.out, "Please answer y, n or q.")
	}
}

// askPair reads a replacement category and sub-category.
func (c *Console) askPair() (string, string, bool) {
	fmt.Fprint(c.out, "Category: ")
	category, ok := c.readLine()
	if !ok || category == "" {
		return "", "", false
	}
	fmt.Fprint(c.out, "Sub-category: ")
	subCategory, ok := c.readLine()
	if !ok {
		return "", "", false
	}
	return category, subCategory, true
}

// DecideShare asks whether a pending line is shared with the household.
// Lines sitting in the catch-all bucket first get a chance to be moved to a
// more precise pair.
func (c *Console) DecideShare(line *models.StatementLine) services.ShareOutcome {
	fmt.Fprintf(c.out, "\n%s  %s  %s\n",
		line.OperationDate.Format("02/01/2006"), line.Label, line.Amount.StringFixed(2))

	var outcome services.ShareOutcome
	if c.isCatchAll(line) {
		outcome.NewCategory, outcome.NewSubCategory = c.askRefinement()
	}

	for {
		fmt.Fprintln(c.out, "Share this line?")
		fmt.Fprintln(c.out, "  1) share once")
		fmt.Fprintln(c.out, "  2) share and remember")
		fmt.Fprintln(c.out, "  3) don't share once")
		fmt.Fprintln(c.out, "  4) never share")
		fmt.Fprint(c.out, "> ")

		answer, ok := c.readLine()
		if !ok {
			outcome.Decision = services.DeclineOnce
			return outcome
		}
		switch answer {
		case "1":
			outcome.Decision = services.ShareOnce
			return outcome
		case "2":
			outcome.Decision = services.ShareForever
			return outcome
		case "3":
			outcome.Decision = services.DeclineOnce
			return outcome
		case "4":
			outcome.Decision = services.DeclineForever
			return outcome
		}
		fmt.Fprintln(c.out, "Please answer 1, 2, 3 or 4.")
	}
}

func (c *Console) isCatchAll(line *models.StatementLine) bool {
	return line.Category != nil && line.SubCategory != nil &&
		strings.EqualFold(line.Category.Name, catchAllCategory) &&
		strings.EqualFold(line.SubCategory.Name, catchAllSubCategory)
}

// askRefinement offers to move a catch-all line to a precise pair. An empty
// answer keeps the current categorization.
func (c *Console) askRefinement() (string, string) {
	fmt.Fprint(c.out, "This line sits in the catch-all bucket. New category (empty to keep): ")
	category, ok := c.readLine()
	if !ok || category == "" {
		return "", ""
	}
	fmt.Fprint(c.out, "New sub-category: ")
	subCategory, _ := c.readLine()
	if subCategory == "" {
		return "", ""
	}
	return category, subCategory
}
