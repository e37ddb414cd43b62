package store

import (
	"context"
	"fmt"
)

const sqlListFraudResults = `
SELECT id, customer_name, security_identifier, status, outcome_note, resolved_at
FROM fraud_results
ORDER BY resolved_at DESC, id DESC
`

// ListFraudResults retrieves all recorded case resolutions, newest first.
func (s *Store) ListFraudResults(ctx context.Context) ([]FraudResult, error) {
	var results []FraudResult
	err := s.db.SelectContext(ctx, &results, sqlListFraudResults)
	if err != nil {
		s.logger.Error(ctx, "failed to list fraud results", err)
		return nil, fmt.Errorf("failed to list fraud results: %w", err)
	}
	return results, nil
}
