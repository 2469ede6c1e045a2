package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// OFXParser parses OFX/QFX bank and credit card statements.
type OFXParser struct{}

// Format returns the parser name.
func (p *OFXParser) Format() string { return "ofx" }

// Parse reads every bank and credit card statement in the response.
func (p *OFXParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	resp, err := ofxgo.ParseResponse(r)
	if err != nil {
		return nil, fmt.Errorf("reading OFX: %w", err)
	}
	if len(resp.Bank) == 0 && len(resp.CreditCard) == 0 {
		return nil, errors.New("OFX file has no bank or credit card statements")
	}

	var txns []model.BankTransaction
	for _, msg := range append(resp.Bank, resp.CreditCard...) {
		var list *ofxgo.TransactionList
		switch stmt := msg.(type) {
		case *ofxgo.StatementResponse:
			list = stmt.BankTranList
		case *ofxgo.CCStatementResponse:
			list = stmt.BankTranList
		default:
			return nil, fmt.Errorf("unexpected OFX message %T", msg)
		}
		if list == nil {
			continue
		}
		for i, tr := range list.Transactions {
			txn, err := ofxTransaction(tr)
			if err != nil {
				return nil, fmt.Errorf("transaction %d: %w", i+1, err)
			}
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func ofxTransaction(tr ofxgo.Transaction) (model.BankTransaction, error) {
	amount, err := decimal.NewFromString(tr.TrnAmt.String())
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing amount %q: %w", tr.TrnAmt.String(), err)
	}

	posted := tr.DtPosted.Time
	date := time.Date(posted.Year(), posted.Month(), posted.Day(), 0, 0, 0, 0, time.UTC)

	desc := strings.TrimSpace(string(tr.Name))
	if memo := strings.TrimSpace(string(tr.Memo)); memo != "" {
		if desc == "" {
			desc = memo
		} else if !strings.Contains(desc, memo) {
			desc += " " + memo
		}
	}

	return model.BankTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   "ofx_" + string(tr.FiTID),
		Type:        tr.TrnType.String(),
	}, nil
}
