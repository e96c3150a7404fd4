package documents

import (
	"sort"

	"github.com/meridian-erp/meridian-erp/internal/currency"
)

// Balance is the settled state of one document.
type Balance struct {
	DocumentID  int64
	TotalAmount float64
	Paid        float64
	// Remaining may be negative on overpayment; callers render the sign
	// as-is instead of clamping.
	Remaining float64
}

// CalcBalance reduces a document's payments into paid and remaining amounts.
// Each payment is normalized with its own snapshotted rate.
func CalcBalance(doc Document, payments []Payment) Balance {
	var paid float64
	for _, p := range payments {
		paid += currency.Normalize(p.Amount, p.Rate)
	}
	return Balance{
		DocumentID:  doc.ID,
		TotalAmount: doc.TotalAmount,
		Paid:        paid,
		Remaining:   doc.TotalAmount - paid,
	}
}

// PartyBalance aggregates document balances per supplier or customer.
// Remainders are summed per document first so an overpaid document never
// hides an underpaid one.
type PartyBalance struct {
	PartyID   int64
	PartyName string
	Invoiced  float64
	Paid      float64
	Remaining float64
	Documents []Balance
}

// PartyBalances groups documents by party and sums their per-document
// remainders. Output is ordered by party name for stable rendering.
func PartyBalances(docs []Document, paymentsByDoc map[int64][]Payment) []PartyBalance {
	byParty := make(map[int64]*PartyBalance)
	for _, doc := range docs {
		bal := CalcBalance(doc, paymentsByDoc[doc.ID])
		pb, ok := byParty[doc.PartyID]
		if !ok {
			pb = &PartyBalance{PartyID: doc.PartyID, PartyName: doc.PartyName}
			byParty[doc.PartyID] = pb
		}
		pb.Invoiced += bal.TotalAmount
		pb.Paid += bal.Paid
		pb.Remaining += bal.Remaining
		pb.Documents = append(pb.Documents, bal)
	}

	out := make([]PartyBalance, 0, len(byParty))
	for _, pb := range byParty {
		out = append(out, *pb)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PartyName == out[j].PartyName {
			return out[i].PartyID < out[j].PartyID
		}
		return out[i].PartyName < out[j].PartyName
	})
	return out
}

// Outstanding filters party balances down to those still owing. Parties at
// zero or in credit are not receivables/payables and must not appear.
func Outstanding(balances []PartyBalance) []PartyBalance {
	out := make([]PartyBalance, 0, len(balances))
	for _, pb := range balances {
		if pb.Remaining > 0 {
			out = append(out, pb)
		}
	}
	return out
}

// Consistent reports whether the persisted total matches the sum of line
// totals and additional costs. A mismatch is surfaced, never repaired.
func Consistent(doc Document) bool {
	var sum float64
	for _, it := range doc.Items {
		sum += it.LineTotal
	}
	for _, c := range doc.Costs {
		sum += c.Amount
	}
	return sum == doc.TotalAmount
}
