package banks

const (
	incomingTransferKeyword = "VIREMENT DE"
	salaryToken             = "SALAIRE"
)

// laBanquePostaleRules are tried in declared order; the first non-empty
// match wins.
var laBanquePostaleRules = []LabelRule{
	// ACHAT CB AMAZON FR 23.05.24
	NewLabelRule(`(ACHAT\sCB)\s*`, `\s(\d{2}\.\d{2}\.\d{2})`),
	// CREDIT CARTE BANCAIRE FNAC PARIS 12.03.24
	NewLabelRule(`(CREDIT\sCARTE\sBANCAIRE)\s*`, `\s(\d{2}\.\d{2}\.\d{2})`),
	// PRELEVEMENT DE EDF CLIENTS REF : 123456
	NewLabelRule(`(PRELEVEMENT\sDE)\s`, `\s(REF\s:)`),
	// VIREMENT DE M DUPONT REFERENCE : 789
	NewLabelRule(`(VIREMENT\sDE)\s`, `\s(REFERENCE\s:)`),
	// VIREMENT POUR MME MARTIN
	NewLabelRule(`(VIREMENT\sPOUR)\s`, `$`),
	// COTISATION FORMULE DE COMPTE
	NewLabelRule(`(COTISATION)\s`, `$`),
}

// laBanquePostale exports Date;Libellé;Montant with a single signed amount
// column. Labels carry the operation keyword and need rule extraction.
var laBanquePostale = &Format{
	Brand:          "La Banque Postale",
	DateLayout:     "02/01/2006",
	Style:          AmountSigned,
	MinColumns:     3,
	DateCol:        0,
	LabelCol:       1,
	AmountCol:      2,
	CategoryCol:    -1,
	SubCategoryCol: -1,
	CommentCol:     -1,
	Rules:          laBanquePostaleRules,
}

// creditAgricole exports Date;Libellé;Débit;Crédit and optionally carries
// curated category, sub-category and comment columns. Amounts follow the
// debit/credit convention.
var creditAgricole = &Format{
	Brand:          "Credit Agricole",
	DateLayout:     "02/01/2006",
	Style:          AmountDebitCredit,
	MinColumns:     4,
	DateCol:        0,
	LabelCol:       1,
	DebitCol:       2,
	CreditCol:      3,
	CategoryCol:    4,
	SubCategoryCol: 5,
	CommentCol:     6,
}

// formats is the dispatch table, keyed by lower-cased bank brand name.
var formats = map[string]*Format{
	"la banque postale": laBanquePostale,
	"credit agricole":   creditAgricole,
	"crédit agricole":   creditAgricole,
}
