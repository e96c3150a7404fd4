package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/documents"
	"github.com/meridian-erp/meridian-erp/internal/stock"
)

// Repository provides PostgreSQL backed retrieval for report windows.
// Every method pulls the full window in a single query; child rows are keyed
// by parent id set so one report costs a fixed number of round trips.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func tableSet(kind documents.Kind) (docs, items, payments, party string) {
	if kind == documents.KindSale {
		return "sales", "sale_items", "sale_payments", "customers"
	}
	return "purchases", "purchase_items", "purchase_payments", "suppliers"
}

// ListDocuments returns documents dated inside the window, newest last.
// A zero From drops the lower bound; partyID 0 means all parties.
func (r *Repository) ListDocuments(ctx context.Context, kind documents.Kind, rng DateRange, partyID int64) ([]documents.Document, error) {
	docTable, _, _, partyTable := tableSet(kind)

	query := fmt.Sprintf(`
		SELECT d.id, d.party_id, p.name, d.date, d.total_amount, d.currency_id
		FROM %s d
		JOIN %s p ON p.id = d.party_id
		WHERE 1=1`, docTable, partyTable)

	args := []any{}
	argNum := 1

	if !rng.From.IsZero() {
		query += fmt.Sprintf(" AND d.date >= $%d", argNum)
		args = append(args, rng.From)
		argNum++
	}
	if !rng.To.IsZero() {
		query += fmt.Sprintf(" AND d.date <= $%d", argNum)
		args = append(args, rng.To)
		argNum++
	}
	if partyID > 0 {
		query += fmt.Sprintf(" AND d.party_id = $%d", argNum)
		args = append(args, partyID)
	}

	query += " ORDER BY d.date, d.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []documents.Document
	for rows.Next() {
		doc := documents.Document{Kind: kind}
		if err := rows.Scan(&doc.ID, &doc.PartyID, &doc.PartyName, &doc.Date, &doc.TotalAmount, &doc.CurrencyID); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// ListPaymentsByDocumentIDs fetches payments for a whole document set in one
// query, grouped by document id.
func (r *Repository) ListPaymentsByDocumentIDs(ctx context.Context, kind documents.Kind, ids []int64) (map[int64][]documents.Payment, error) {
	if len(ids) == 0 {
		return map[int64][]documents.Payment{}, nil
	}
	_, _, paymentTable, _ := tableSet(kind)

	query := fmt.Sprintf(`
		SELECT p.id, p.document_id, p.amount, c.code, p.rate, p.date
		FROM %s p
		JOIN currencies c ON c.id = p.currency_id
		WHERE p.document_id = ANY($1)
		ORDER BY p.document_id, p.id`, paymentTable)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]documents.Payment, len(ids))
	for rows.Next() {
		var p documents.Payment
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.Amount, &p.Currency, &p.Rate, &p.Date); err != nil {
			return nil, err
		}
		out[p.DocumentID] = append(out[p.DocumentID], p)
	}
	return out, rows.Err()
}

// ListItemsByDocumentIDs fetches line items for a whole document set in one
// query, grouped by document id.
func (r *Repository) ListItemsByDocumentIDs(ctx context.Context, kind documents.Kind, ids []int64) (map[int64][]documents.Item, error) {
	if len(ids) == 0 {
		return map[int64][]documents.Item{}, nil
	}
	_, itemTable, _, _ := tableSet(kind)

	query := fmt.Sprintf(`
		SELECT id, document_id, product_id, unit_id, quantity, per_price, line_total,
			cost_price, retail_price, expiry_date
		FROM %s
		WHERE document_id = ANY($1)
		ORDER BY document_id, id`, itemTable)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]documents.Item, len(ids))
	for rows.Next() {
		var it documents.Item
		var costPrice, retailPrice pgtype.Float8
		var expiry pgtype.Timestamptz

		err := rows.Scan(
			&it.ID, &it.DocumentID, &it.ProductID, &it.UnitID, &it.Quantity,
			&it.PerPrice, &it.LineTotal, &costPrice, &retailPrice, &expiry,
		)
		if err != nil {
			return nil, err
		}
		it.CostPrice = costPrice.Float64
		it.RetailPrice = retailPrice.Float64
		if expiry.Valid {
			it.ExpiryDate = &expiry.Time
		}
		out[it.DocumentID] = append(out[it.DocumentID], it)
	}
	return out, rows.Err()
}

// ListExpenses returns expenses dated inside the window.
func (r *Repository) ListExpenses(ctx context.Context, rng DateRange) ([]Expense, error) {
	query := `
		SELECT e.id, et.name, e.account_id, a.name, e.amount, c.code, e.rate, e.date
		FROM expenses e
		JOIN expense_types et ON et.id = e.expense_type_id
		LEFT JOIN accounts a ON a.id = e.account_id
		JOIN currencies c ON c.id = e.currency_id
		WHERE 1=1`

	args := []any{}
	argNum := 1
	if !rng.From.IsZero() {
		query += fmt.Sprintf(" AND e.date >= $%d", argNum)
		args = append(args, rng.From)
		argNum++
	}
	if !rng.To.IsZero() {
		query += fmt.Sprintf(" AND e.date <= $%d", argNum)
		args = append(args, rng.To)
	}
	query += " ORDER BY e.date, e.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		var accountID pgtype.Int8
		var accountName pgtype.Text

		if err := rows.Scan(&e.ID, &e.ExpenseType, &accountID, &accountName, &e.Amount, &e.Currency, &e.Rate, &e.Date); err != nil {
			return nil, err
		}
		e.AccountID = accountID.Int64
		e.AccountName = accountName.String
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// ListAccountTransactions returns account movements dated inside the window.
// accountID 0 means all accounts.
func (r *Repository) ListAccountTransactions(ctx context.Context, rng DateRange, accountID int64) ([]AccountTransaction, error) {
	query := `
		SELECT t.id, t.account_id, a.name, t.type, t.amount, c.code, t.rate, t.date
		FROM account_transactions t
		JOIN accounts a ON a.id = t.account_id
		JOIN currencies c ON c.id = t.currency_id
		WHERE 1=1`

	args := []any{}
	argNum := 1
	if !rng.From.IsZero() {
		query += fmt.Sprintf(" AND t.date >= $%d", argNum)
		args = append(args, rng.From)
		argNum++
	}
	if !rng.To.IsZero() {
		query += fmt.Sprintf(" AND t.date <= $%d", argNum)
		args = append(args, rng.To)
		argNum++
	}
	if accountID > 0 {
		query += fmt.Sprintf(" AND t.account_id = $%d", argNum)
		args = append(args, accountID)
	}
	query += " ORDER BY t.date, t.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []AccountTransaction
	for rows.Next() {
		var t AccountTransaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.AccountName, &t.Type, &t.Amount, &t.Currency, &t.Rate, &t.Date); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// ListProducts returns the full catalogue with category and unit names.
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	query := `
		SELECT p.id, p.name, COALESCE(cat.name, ''), COALESCE(u.name, '')
		FROM products p
		LEFT JOIN categories cat ON cat.id = p.category_id
		LEFT JOIN units u ON u.id = p.unit_id
		ORDER BY p.name, p.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryName, &p.UnitName); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListStockBatches returns every purchase lot with its live remaining
// quantity. Consumption is maintained by the inventory-writing side.
func (r *Repository) ListStockBatches(ctx context.Context) ([]stock.Batch, error) {
	query := `
		SELECT b.product_id, p.name, b.batch_number, b.purchase_date, b.expiry_date,
			COALESCE(u.name, ''), b.original_amount, b.remaining_quantity,
			b.per_price, b.cost_price, b.retail_price
		FROM stock_batches b
		JOIN products p ON p.id = b.product_id
		LEFT JOIN units u ON u.id = p.unit_id
		ORDER BY b.purchase_date, b.batch_number`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []stock.Batch
	for rows.Next() {
		var b stock.Batch
		var expiry pgtype.Timestamptz
		var retail pgtype.Float8

		err := rows.Scan(
			&b.ProductID, &b.ProductName, &b.BatchNumber, &b.PurchaseDate, &expiry,
			&b.UnitName, &b.OriginalQty, &b.RemainingQty, &b.PerPrice, &b.CostPrice, &retail,
		)
		if err != nil {
			return nil, err
		}
		if expiry.Valid {
			b.ExpiryDate = &expiry.Time
		}
		b.RetailPrice = retail.Float64
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
