package documents

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalcBalance(t *testing.T) {
	doc := Document{ID: 1, Kind: KindSale, TotalAmount: 10000}
	payments := []Payment{
		{DocumentID: 1, Amount: 50, Currency: "USD", Rate: 90},
	}

	bal := CalcBalance(doc, payments)
	require.Equal(t, 4500.0, bal.Paid)
	require.Equal(t, 5500.0, bal.Remaining)
}

func TestCalcBalanceNoPayments(t *testing.T) {
	bal := CalcBalance(Document{ID: 2, TotalAmount: 750}, nil)
	require.Equal(t, 0.0, bal.Paid)
	require.Equal(t, 750.0, bal.Remaining)
}

func TestCalcBalanceOrderIndependent(t *testing.T) {
	doc := Document{ID: 3, TotalAmount: 1000}
	a := []Payment{{Amount: 100, Rate: 1}, {Amount: 4, Rate: 50}, {Amount: 300, Rate: 1}}
	b := []Payment{a[2], a[0], a[1]}

	require.Equal(t, CalcBalance(doc, a), CalcBalance(doc, b))
}

func TestCalcBalanceOverpaymentGoesNegative(t *testing.T) {
	doc := Document{ID: 4, TotalAmount: 100}
	bal := CalcBalance(doc, []Payment{{Amount: 150, Rate: 1}})
	require.Equal(t, -50.0, bal.Remaining)
}

func TestPartyBalancesSumPerDocument(t *testing.T) {
	// One overpaid and one underpaid document for the same party must not
	// cancel silently; both remain inspectable while the rollup nets them.
	docs := []Document{
		{ID: 1, PartyID: 7, PartyName: "Karim Traders", TotalAmount: 1000},
		{ID: 2, PartyID: 7, PartyName: "Karim Traders", TotalAmount: 500},
	}
	payments := map[int64][]Payment{
		1: {{DocumentID: 1, Amount: 1200, Rate: 1}}, // overpaid by 200
		2: {{DocumentID: 2, Amount: 100, Rate: 1}},  // 400 open
	}

	balances := PartyBalances(docs, payments)
	require.Len(t, balances, 1)
	require.Equal(t, 200.0, balances[0].Remaining)
	require.Len(t, balances[0].Documents, 2)
	require.Equal(t, -200.0, balances[0].Documents[0].Remaining)
	require.Equal(t, 400.0, balances[0].Documents[1].Remaining)
}

func TestPartyBalancesOrderedByName(t *testing.T) {
	docs := []Document{
		{ID: 1, PartyID: 2, PartyName: "Zahir", TotalAmount: 10},
		{ID: 2, PartyID: 1, PartyName: "Ahmad", TotalAmount: 20},
	}
	balances := PartyBalances(docs, nil)
	require.Equal(t, "Ahmad", balances[0].PartyName)
	require.Equal(t, "Zahir", balances[1].PartyName)
}

func TestOutstandingDropsSettledAndCreditParties(t *testing.T) {
	balances := []PartyBalance{
		{PartyID: 1, Remaining: 500},
		{PartyID: 2, Remaining: 0},
		{PartyID: 3, Remaining: -120},
	}
	open := Outstanding(balances)
	require.Len(t, open, 1)
	require.Equal(t, int64(1), open[0].PartyID)
}

func TestConsistent(t *testing.T) {
	doc := Document{
		TotalAmount: 260,
		Items:       []Item{{Quantity: 2, PerPrice: 100, LineTotal: 200}},
		Costs:       []AdditionalCost{{Name: "freight", Amount: 60}},
	}
	require.True(t, Consistent(doc))

	doc.TotalAmount = 300
	require.False(t, Consistent(doc))
}
