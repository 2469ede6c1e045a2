// Package export writes vouchers and statements in interchange formats.
package export

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/cleared-dev/tally/internal/model"
)

type envelope struct {
	XMLName xml.Name `xml:"ENVELOPE"`
	Header  header   `xml:"HEADER"`
	Body    body     `xml:"BODY"`
}

type header struct {
	TallyRequest string `xml:"TALLYREQUEST"`
}

type body struct {
	ImportData importData `xml:"IMPORTDATA"`
}

type importData struct {
	RequestDesc requestDesc `xml:"REQUESTDESC"`
	RequestData requestData `xml:"REQUESTDATA"`
}

type requestDesc struct {
	ReportName      string          `xml:"REPORTNAME"`
	StaticVariables staticVariables `xml:"STATICVARIABLES"`
}

type staticVariables struct {
	Company string `xml:"SVCURRENTCOMPANY,omitempty"`
}

type requestData struct {
	Messages []tallyMessage `xml:"TALLYMESSAGE"`
}

type tallyMessage struct {
	Voucher xmlVoucher `xml:"VOUCHER"`
}

type xmlVoucher struct {
	VchType          string           `xml:"VCHTYPE,attr"`
	Action           string           `xml:"ACTION,attr"`
	Date             string           `xml:"DATE"`
	VoucherTypeName  string           `xml:"VOUCHERTYPENAME"`
	VoucherNumber    string           `xml:"VOUCHERNUMBER"`
	Narration        string           `xml:"NARRATION,omitempty"`
	LedgerEntries    []ledgerEntry    `xml:"ALLLEDGERENTRIES.LIST"`
	InventoryEntries []inventoryEntry `xml:"ALLINVENTORYENTRIES.LIST,omitempty"`
}

type ledgerEntry struct {
	LedgerName       string `xml:"LEDGERNAME"`
	IsDeemedPositive string `xml:"ISDEEMEDPOSITIVE"`
	Amount           string `xml:"AMOUNT"`
}

type inventoryEntry struct {
	StockItemName    string `xml:"STOCKITEMNAME"`
	IsDeemedPositive string `xml:"ISDEEMEDPOSITIVE"`
	ActualQty        string `xml:"ACTUALQTY"`
	BilledQty        string `xml:"BILLEDQTY"`
	Amount           string `xml:"AMOUNT"`
}

// WriteTallyXML writes vouchers as a Tally "Import Data" envelope. In Tally
// XML a debit carries ISDEEMEDPOSITIVE=Yes and a negative AMOUNT.
func WriteTallyXML(w io.Writer, company string, vs []model.Voucher) error {
	env := envelope{
		Header: header{TallyRequest: "Import Data"},
		Body: body{ImportData: importData{
			RequestDesc: requestDesc{
				ReportName:      "Vouchers",
				StaticVariables: staticVariables{Company: company},
			},
		}},
	}

	msgs := make([]tallyMessage, 0, len(vs))
	for _, v := range vs {
		msgs = append(msgs, tallyMessage{Voucher: tallyVoucher(v)})
	}
	env.Body.ImportData.RequestData.Messages = msgs

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encoding tally xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding tally xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func tallyVoucher(v model.Voucher) xmlVoucher {
	amount := v.Amount.StringFixed(2)
	negAmount := v.Amount.Neg().StringFixed(2)

	xv := xmlVoucher{
		VchType:         string(v.Type),
		Action:          "Create",
		Date:            v.Date.Format("20060102"),
		VoucherTypeName: string(v.Type),
		VoucherNumber:   v.ID,
		Narration:       v.Narration,
		LedgerEntries: []ledgerEntry{
			{LedgerName: v.DebitLedger, IsDeemedPositive: "Yes", Amount: negAmount},
			{LedgerName: v.CreditLedger, IsDeemedPositive: "No", Amount: amount},
		},
	}

	if v.HasItem() {
		qty := v.Quantity.String()
		entry := inventoryEntry{
			StockItemName: v.Item,
			ActualQty:     qty,
			BilledQty:     qty,
		}
		// Inward stock is deemed positive like a debit.
		if v.Type == model.VoucherSales {
			entry.IsDeemedPositive = "No"
			entry.Amount = amount
		} else {
			entry.IsDeemedPositive = "Yes"
			entry.Amount = negAmount
		}
		xv.InventoryEntries = []inventoryEntry{entry}
	}
	return xv
}
