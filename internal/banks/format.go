// Package banks declares the statement file layout and label extraction
// rules of every supported bank. Each bank is plain data: column indices,
// a date layout, an amount convention, and an ordered list of label rules.
// Dispatch is a map lookup on the bank brand name.
package banks

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/strutil"
)

// Row is the normalized intermediate form of one statement file row.
type Row struct {
	Date            time.Time
	Label           string
	Amount          decimal.Decimal
	OperationType   models.OperationType
	CategoryHint    string
	SubCategoryHint string
	Comment         string
}

// AmountStyle selects how a format encodes amounts.
type AmountStyle int

const (
	// AmountSigned reads one signed amount column.
	AmountSigned AmountStyle = iota
	// AmountDebitCredit reads separate debit and credit columns: a populated
	// debit yields a negative amount, a populated credit a positive one.
	// Exactly one of the two is expected populated per row.
	AmountDebitCredit
)

// Row-level parse failures. These skip the row, never the file.
var (
	ErrShortRow        = errors.New("row has too few columns")
	ErrBadDate         = errors.New("unparseable operation date")
	ErrBadAmount       = errors.New("unparseable amount")
	ErrAmbiguousAmount = errors.New("exactly one of debit and credit must be populated")
	// ErrSalaryIncome marks rows dropped by the salary business rule:
	// incoming transfers labelled as salary are non-budgetable income and
	// are never persisted.
	ErrSalaryIncome = errors.New("salary income row dropped")
)

// ErrUnknownBrand reports a bank brand with no registered format.
var ErrUnknownBrand = errors.New("no statement format registered for bank brand")

// Format holds one bank family's hard-coded statement layout.
// Hint and comment columns are -1 when the bank's export has none.
type Format struct {
	Brand          string
	DateLayout     string
	Style          AmountStyle
	MinColumns     int
	DateCol        int
	LabelCol       int
	AmountCol      int // AmountSigned only
	DebitCol       int // AmountDebitCredit only
	CreditCol      int
	CategoryCol    int
	SubCategoryCol int
	CommentCol     int
	Rules          []LabelRule
}

// ParseRow turns one raw row of this format into a normalized Row.
// Returned errors are row-level: the caller skips the row and counts it.
func (f *Format) ParseRow(cols []string) (Row, error) {
	if len(cols) < f.MinColumns {
		return Row{}, ErrShortRow
	}

	date, err := time.Parse(f.DateLayout, strings.TrimSpace(cols[f.DateCol]))
	if err != nil {
		return Row{}, ErrBadDate
	}

	amount, err := f.parseRowAmount(cols)
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Date:          date,
		Label:         strutil.CollapseSpaces(cols[f.LabelCol]),
		Amount:        amount,
		OperationType: models.OperationTypeOther,
	}

	if len(f.Rules) > 0 {
		if cleaned, keyword, ok := ExtractFirst(f.Rules, cols[f.LabelCol]); ok {
			if keyword == incomingTransferKeyword && strings.Contains(cleaned, salaryToken) {
				return Row{}, ErrSalaryIncome
			}
			row.Label = cleaned
			row.OperationType = OperationTypeFor(keyword)
		}
	}

	row.CategoryHint = f.optionalCol(cols, f.CategoryCol)
	row.SubCategoryHint = f.optionalCol(cols, f.SubCategoryCol)
	row.Comment = f.optionalCol(cols, f.CommentCol)

	return row, nil
}

func (f *Format) parseRowAmount(cols []string) (decimal.Decimal, error) {
	if f.Style == AmountSigned {
		return ParseAmount(cols[f.AmountCol])
	}

	debit := strings.TrimSpace(cols[f.DebitCol])
	credit := strings.TrimSpace(cols[f.CreditCol])
	if (debit == "") == (credit == "") {
		return decimal.Zero, ErrAmbiguousAmount
	}

	if debit != "" {
		amount, err := ParseAmount(debit)
		if err != nil {
			return decimal.Zero, err
		}
		return amount.Abs().Neg(), nil
	}

	amount, err := ParseAmount(credit)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Abs(), nil
}

func (f *Format) optionalCol(cols []string, idx int) string {
	if idx < 0 || idx >= len(cols) {
		return ""
	}
	return strutil.CollapseSpaces(cols[idx])
}

var amountCleaner = strings.NewReplacer(
	" ", "",
	" ", "", // no-break space
	" ", "", // narrow no-break space, used by French exports as group separator
	"€", "",
	",", ".",
)

// ParseAmount parses a French-formatted amount string: comma decimal
// separator, optional space group separators, optional euro sign.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(amountCleaner.Replace(strings.TrimSpace(s)))
	if err != nil {
		return decimal.Zero, ErrBadAmount
	}
	return amount, nil
}

// Lookup returns the statement format registered for a bank brand name.
// The brand is resolved once per statement, not per row.
func Lookup(brand string) (*Format, error) {
	if f, ok := formats[strings.ToLower(strings.TrimSpace(brand))]; ok {
		return f, nil
	}
	return nil, ErrUnknownBrand
}

// operationTypes maps free-text bank tokens to canonical operation types.
// Both the long-form labels of manual exports and the leading keywords of
// the label rules appear here; anything unknown maps to Other.
var operationTypes = map[string]models.OperationType{
	"Carte bancaire":        models.OperationTypeCard,
	"CREDIT CARTE BANCAIRE": models.OperationTypeRefund,
	"Prelevement":           models.OperationTypeDirectDebit,
	"Cheque":                models.OperationTypeCheque,
	"Especes":               models.OperationTypeCash,
	"Remboursement":         models.OperationTypeRefund,
	"Interet":               models.OperationTypeInterest,
	"Virement":              models.OperationTypeTransfer,
	"Virement recu":         models.OperationTypeTransfer,
	"Virement sortant":      models.OperationTypeTransfer,
	"Frais bancaires":       models.OperationTypeBankFee,
	"Autre":                 models.OperationTypeOther,
	"ACHAT CB":              models.OperationTypeCard,
	"PRELEVEMENT DE":        models.OperationTypeDirectDebit,
	"VIREMENT DE":           models.OperationTypeTransfer,
	"VIREMENT POUR":         models.OperationTypeTransfer,
	"COTISATION":            models.OperationTypeBankFee,
}

// OperationTypeFor maps a raw bank token to its canonical operation type.
func OperationTypeFor(token string) models.OperationType {
	if t, ok := operationTypes[token]; ok {
		return t
	}
	return models.OperationTypeOther
}
