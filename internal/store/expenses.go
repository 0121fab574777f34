package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const expenseColumns = "id, title, amount, category, note, spent_on, created_at"

// UncategorizedExpense is the category reported for expenses saved without one.
const UncategorizedExpense = "その他"

func scanExpense(scanner interface{ Scan(dest ...any) error }) (*Expense, error) {
	var (
		id         string
		title      string
		amount     float64
		category   sql.NullString
		note       sql.NullString
		spentOn    string
		createdRaw sql.NullString
	)

	if err := scanner.Scan(&id, &title, &amount, &category, &note, &spentOn, &createdRaw); err != nil {
		return nil, err
	}

	exp := &Expense{
		ID:       id,
		Title:    title,
		Amount:   amount,
		Category: category.String,
		Note:     note.String,
		SpentOn:  spentOn,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		exp.CreatedAt = created
	}
	return exp, nil
}

func validSpentOn(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().UTC().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "", fmt.Errorf("spent_on %q is not a YYYY-MM-DD date", value)
	}
	return value, nil
}

func validMonth(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01", value); err != nil {
		return "", fmt.Errorf("month %q is not a YYYY-MM month", value)
	}
	return value, nil
}

// CreateExpense records a purchase. A blank SpentOn defaults to today.
func (s *Store) CreateExpense(ctx context.Context, exp Expense) (*Expense, error) {
	title := strings.TrimSpace(exp.Title)
	if title == "" {
		return nil, errors.New("expense title is empty")
	}
	if exp.Amount <= 0 {
		return nil, errors.New("expense amount must be positive")
	}
	spentOn, err := validSpentOn(exp.SpentOn)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO expenses (id, title, amount, category, note, spent_on, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		title,
		exp.Amount,
		nullableString(strings.TrimSpace(exp.Category)),
		nullableString(strings.TrimSpace(exp.Note)),
		spentOn,
		time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	return s.GetExpense(ctx, id)
}

// GetExpense fetches an expense by identifier.
func (s *Store) GetExpense(ctx context.Context, id string) (*Expense, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	exp, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return exp, nil
}

// ListExpenses returns expenses newest first, optionally narrowed to one
// YYYY-MM month.
func (s *Store) ListExpenses(ctx context.Context, month string) ([]*Expense, error) {
	month, err := validMonth(month)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	var args []any
	if month != "" {
		query += ` WHERE spent_on LIKE ?`
		args = append(args, month+"-%")
	}
	query += ` ORDER BY spent_on DESC, created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, exp)
	}
	return expenses, rows.Err()
}

// DeleteExpense removes an expense by identifier.
func (s *Store) DeleteExpense(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// SummarizeExpenses aggregates one month's spending by category. Months with
// no expenses summarize to zero rather than an error.
func (s *Store) SummarizeExpenses(ctx context.Context, month string) (*ExpenseSummary, error) {
	month, err := validMonth(month)
	if err != nil {
		return nil, err
	}
	if month == "" {
		return nil, errors.New("month is required")
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT COALESCE(category, ''), COUNT(1), SUM(amount) FROM expenses WHERE spent_on LIKE ? GROUP BY category`,
		month+"-%",
	)
	if err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}
	defer rows.Close()

	summary := &ExpenseSummary{Month: month, ByCategory: make(map[string]float64)}
	for rows.Next() {
		var (
			category string
			count    int
			total    float64
		)
		if err := rows.Scan(&category, &count, &total); err != nil {
			return nil, err
		}
		if category == "" {
			category = UncategorizedExpense
		}
		summary.ByCategory[category] += total
		summary.Total += total
		summary.Count += count
	}
	return summary, rows.Err()
}
