package store

import (
	"context"
	"fmt"
	"time"
)

const sqlListFraudCases = `
SELECT id, customer_name, security_identifier,
	security_question_1, security_answer_1,
	security_question_2, security_answer_2,
	merchant, txn_time, category, source, amount, location, card_ending,
	status, outcome_note, resolved_at
FROM fraud_cases
ORDER BY id
`

// ListFraudCases retrieves all fraud cases.
func (s *Store) ListFraudCases(ctx context.Context) ([]FraudCase, error) {
	var cases []FraudCase
	err := s.db.SelectContext(ctx, &cases, sqlListFraudCases)
	if err != nil {
		s.logger.Error(ctx, "failed to list fraud cases", err)
		return nil, fmt.Errorf("failed to list fraud cases: %w", err)
	}
	return cases, nil
}

// CreateFraudCaseParams represents parameters for creating a fraud case
type CreateFraudCaseParams struct {
	CustomerName       string
	SecurityIdentifier string
	SecurityQuestion1  string
	SecurityAnswer1    string
	SecurityQuestion2  string
	SecurityAnswer2    string
	Merchant           string
	TxnTime            string
	Category           string
	Source             string
	Amount             float64
	Location           string
	CardEnding         string
}

const sqlCreateFraudCase = `
INSERT INTO fraud_cases (
	customer_name, security_identifier,
	security_question_1, security_answer_1,
	security_question_2, security_answer_2,
	merchant, txn_time, category, source, amount, location, card_ending
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateFraudCase inserts a new pending fraud case.
func (s *Store) CreateFraudCase(ctx context.Context, params CreateFraudCaseParams) (int64, error) {
	res, err := s.db.ExecContext(ctx, sqlCreateFraudCase,
		params.CustomerName,
		params.SecurityIdentifier,
		params.SecurityQuestion1,
		params.SecurityAnswer1,
		params.SecurityQuestion2,
		params.SecurityAnswer2,
		params.Merchant,
		params.TxnTime,
		params.Category,
		params.Source,
		params.Amount,
		params.Location,
		params.CardEnding,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to create fraud case", err)
		return 0, fmt.Errorf("failed to create fraud case: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted case id: %w", err)
	}
	return id, nil
}

// ResolveFraudCaseParams identifies one case and the decision recorded
// against it. Both the name and the security identifier must match so a
// colliding customer name cannot resolve a different record.
type ResolveFraudCaseParams struct {
	CustomerName       string
	SecurityIdentifier string
	Status             CaseStatus
	OutcomeNote        string
	ResolvedAt         time.Time
}

const sqlResolveFraudCase = `
UPDATE fraud_cases
SET status = ?, outcome_note = ?, resolved_at = ?
WHERE customer_name = ? AND security_identifier = ?
`

const sqlInsertFraudResult = `
INSERT INTO fraud_results (customer_name, security_identifier, status, outcome_note, resolved_at)
VALUES (?, ?, ?, ?, ?)
`

// ResolveFraudCase records a customer's decision against the matching
// case and writes the audit row, in one transaction.
func (s *Store) ResolveFraudCase(ctx context.Context, params ResolveFraudCaseParams) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin resolve transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, sqlResolveFraudCase,
		params.Status,
		params.OutcomeNote,
		params.ResolvedAt,
		params.CustomerName,
		params.SecurityIdentifier,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to resolve fraud case", err)
		return fmt.Errorf("failed to resolve fraud case: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	_, err = tx.ExecContext(ctx, sqlInsertFraudResult,
		params.CustomerName,
		params.SecurityIdentifier,
		params.Status,
		params.OutcomeNote,
		params.ResolvedAt,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to insert fraud result", err)
		return fmt.Errorf("failed to insert fraud result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resolve transaction: %w", err)
	}
	return nil
}
