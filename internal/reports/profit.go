package reports

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-erp/meridian-erp/internal/documents"
)

// ProfitReport compares revenue against cost for the window. Revenue and
// cost are document totals, not line sums, so additional costs on documents
// are never silently lost. Grouping is optional and exclusive: by product or
// by calendar month.
func (s *Service) ProfitReport(ctx context.Context, rng DateRange, opts Options) (*ReportData, error) {
	var (
		sales     documentSet
		purchases documentSet
		expenses  []Expense
		products  []Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.fetchDocumentSet(gctx, documents.KindSale, rng, 0)
		return err
	})
	g.Go(func() error {
		var err error
		purchases, err = s.fetchDocumentSet(gctx, documents.KindPurchase, rng, 0)
		return err
	})
	if opts.IncludeExpenses {
		g.Go(func() error {
			var err error
			expenses, err = s.repo.ListExpenses(gctx, rng)
			return err
		})
	}
	if opts.GroupBy == GroupProduct {
		g.Go(func() error {
			var err error
			products, err = s.repo.ListProducts(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var revenue, cost float64
	for _, d := range sales.docs {
		revenue += d.TotalAmount
	}
	for _, d := range purchases.docs {
		cost += d.TotalAmount
	}
	grossProfit := revenue - cost

	summary := map[string]Cell{
		"revenue":     Number(revenue),
		"cost":        Number(cost),
		"grossProfit": Number(grossProfit),
		"marginGross": Percent(margin(grossProfit, revenue)),
	}
	if opts.IncludeExpenses {
		var expenseTotal float64
		for _, e := range expenses {
			expenseTotal += e.Total()
		}
		netProfit := grossProfit - expenseTotal
		summary["expenses"] = Number(expenseTotal)
		summary["netProfit"] = Number(netProfit)
		summary["marginNet"] = Percent(margin(netProfit, revenue))
	}

	sections := []Section{
		{
			Kind:  SectionSummary,
			Label: "Profit",
			Items: summaryItems(summary, opts.IncludeExpenses),
		},
	}

	switch opts.GroupBy {
	case GroupProduct:
		sections = append(sections, profitByProduct(sales, purchases, products, revenue, cost))
	case GroupMonth:
		sections = append(sections, profitByMonth(sales.docs, purchases.docs))
	}

	return &ReportData{
		Title:    "Profit Report",
		Type:     TypeProfit,
		Range:    rng,
		Summary:  summary,
		Sections: sections,
	}, nil
}

// margin returns profit over revenue as a percentage, or nil when there is
// no revenue basis.
func margin(profit, revenue float64) *float64 {
	if revenue <= 0 {
		return nil
	}
	m := profit / revenue * 100
	return &m
}

func summaryItems(summary map[string]Cell, includeExpenses bool) []SummaryItem {
	items := []SummaryItem{
		{Label: "Revenue", Value: summary["revenue"]},
		{Label: "Cost", Value: summary["cost"]},
		{Label: "Gross Profit", Value: summary["grossProfit"]},
		{Label: "Gross Margin", Value: summary["marginGross"]},
	}
	if includeExpenses {
		items = append(items,
			SummaryItem{Label: "Expenses", Value: summary["expenses"]},
			SummaryItem{Label: "Net Profit", Value: summary["netProfit"]},
			SummaryItem{Label: "Net Margin", Value: summary["marginNet"]},
		)
	}
	return items
}

type profitGroup struct {
	key     string
	label   string
	revenue float64
	cost    float64
}

// profitByProduct splits revenue and cost across products by line totals.
// Document-level figures not attributable to any line (additional costs,
// rounding in persisted totals) land in a residual row so the section still
// sums to the ungrouped revenue and cost exactly.
func profitByProduct(sales, purchases documentSet, products []Product, revenue, cost float64) Section {
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	groups := make(map[int64]*profitGroup)
	group := func(productID int64) *profitGroup {
		pg, ok := groups[productID]
		if !ok {
			label := names[productID]
			if label == "" {
				label = printer.Sprintf("Product #%d", productID)
			}
			pg = &profitGroup{label: label}
			groups[productID] = pg
		}
		return pg
	}

	var lineRevenue, lineCost float64
	for _, doc := range sales.docs {
		for _, it := range sales.items[doc.ID] {
			group(it.ProductID).revenue += it.LineTotal
			lineRevenue += it.LineTotal
		}
	}
	for _, doc := range purchases.docs {
		for _, it := range purchases.items[doc.ID] {
			group(it.ProductID).cost += it.LineTotal
			lineCost += it.LineTotal
		}
	}

	ids := make([]int64, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := groups[ids[i]], groups[ids[j]]
		if a.label == b.label {
			return ids[i] < ids[j]
		}
		return a.label < b.label
	})

	ordered := make([]profitGroup, 0, len(ids)+1)
	for _, id := range ids {
		ordered = append(ordered, *groups[id])
	}
	if residualRevenue, residualCost := revenue-lineRevenue, cost-lineCost; residualRevenue != 0 || residualCost != 0 {
		ordered = append(ordered, profitGroup{
			label:   "Document-level costs",
			revenue: residualRevenue,
			cost:    residualCost,
		})
	}
	return groupSection("By Product", "Product", ordered)
}

// profitByMonth keys revenue and cost by the calendar month of each
// document's own date, not by the window boundaries.
func profitByMonth(sales, purchases []documents.Document) Section {
	groups := make(map[string]*profitGroup)
	group := func(key string) *profitGroup {
		pg, ok := groups[key]
		if !ok {
			pg = &profitGroup{key: key, label: key}
			groups[key] = pg
		}
		return pg
	}
	for _, d := range sales {
		group(d.Date.Format("2006-01")).revenue += d.TotalAmount
	}
	for _, d := range purchases {
		group(d.Date.Format("2006-01")).cost += d.TotalAmount
	}

	ordered := make([]profitGroup, 0, len(groups))
	for _, pg := range groups {
		ordered = append(ordered, *pg)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })
	return groupSection("By Month", "Month", ordered)
}

func groupSection(label, keyColumn string, groups []profitGroup) Section {
	rows := make([][]Cell, 0, len(groups))
	for _, pg := range groups {
		profit := pg.revenue - pg.cost
		rows = append(rows, []Cell{
			Text(pg.label),
			Number(pg.revenue),
			Number(pg.cost),
			Number(profit),
			Percent(margin(profit, pg.revenue)),
		})
	}
	return Section{
		Kind:    SectionTable,
		Label:   label,
		Columns: []string{keyColumn, "Revenue", "Cost", "Profit", "Margin"},
		Rows:    rows,
	}
}
