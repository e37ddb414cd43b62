package store

import "context"

// CaseStorer is the store surface the verification workflow depends on.
// Tests inject an in-memory fake instead of touching SQLite.
type CaseStorer interface {
	ListFraudCases(ctx context.Context) ([]FraudCase, error)
	ResolveFraudCase(ctx context.Context, params ResolveFraudCaseParams) error
}
