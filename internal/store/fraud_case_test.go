package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndListFraudCases(t *testing.T) {
	t.Parallel()
	s := SetupTestDB(t)
	ctx := context.Background()

	id, err := s.CreateFraudCase(ctx, CreateFraudCaseParams{
		CustomerName:       "Jane Doe",
		SecurityIdentifier: "4471",
		SecurityQuestion1:  "What is your favorite color?",
		SecurityAnswer1:    "blue",
		SecurityQuestion2:  "What city were you born in?",
		SecurityAnswer2:    "portland",
		Merchant:           "TechWorld Electronics",
		TxnTime:            "today at 3:42 AM",
		Category:           "Electronics",
		Source:             "online purchase",
		Amount:             1249.99,
		Location:           "Kyiv, Ukraine",
		CardEnding:         "8832",
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	cases, err := s.ListFraudCases(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, "Jane Doe", c.CustomerName)
	assert.Equal(t, "4471", c.SecurityIdentifier)
	assert.Equal(t, CaseStatusPendingReview, c.Status)
	assert.Empty(t, c.OutcomeNote)
	assert.Nil(t, c.ResolvedAt)
}

func TestStore_ResolveFraudCase_RoundTrip(t *testing.T) {
	t.Parallel()
	s := SetupTestDB(t)
	ctx := context.Background()
	require.NoError(t, s.SeedDemoCases(ctx))

	resolvedAt := time.Now().UTC().Truncate(time.Second)
	err := s.ResolveFraudCase(ctx, ResolveFraudCaseParams{
		CustomerName:       "Jane Doe",
		SecurityIdentifier: "4471",
		Status:             CaseStatusConfirmedFraud,
		OutcomeNote:        "Customer denied the transaction during verification call",
		ResolvedAt:         resolvedAt,
	})
	require.NoError(t, err)

	// Reloading the collection must reflect the decision.
	cases, err := s.ListFraudCases(ctx)
	require.NoError(t, err)

	var resolved *FraudCase
	for i := range cases {
		if cases[i].CustomerName == "Jane Doe" {
			resolved = &cases[i]
		}
	}
	require.NotNil(t, resolved)
	assert.Equal(t, CaseStatusConfirmedFraud, resolved.Status)
	assert.NotEmpty(t, resolved.OutcomeNote)
	require.NotNil(t, resolved.ResolvedAt)

	results, err := s.ListFraudResults(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Jane Doe", results[0].CustomerName)
	assert.Equal(t, CaseStatusConfirmedFraud, results[0].Status)
	assert.NotEmpty(t, results[0].OutcomeNote)
}

func TestStore_ResolveFraudCase_RequiresBothKeys(t *testing.T) {
	t.Parallel()
	s := SetupTestDB(t)
	ctx := context.Background()
	require.NoError(t, s.SeedDemoCases(ctx))

	// Right name, wrong identifier: must not touch any record.
	err := s.ResolveFraudCase(ctx, ResolveFraudCaseParams{
		CustomerName:       "Jane Doe",
		SecurityIdentifier: "0000",
		Status:             CaseStatusConfirmedSafe,
		OutcomeNote:        "note",
		ResolvedAt:         time.Now(),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	cases, err := s.ListFraudCases(ctx)
	require.NoError(t, err)
	for _, c := range cases {
		assert.Equal(t, CaseStatusPendingReview, c.Status)
	}

	results, err := s.ListFraudResults(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_SeedDemoCases_Idempotent(t *testing.T) {
	t.Parallel()
	s := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.SeedDemoCases(ctx))
	require.NoError(t, s.SeedDemoCases(ctx))

	cases, err := s.ListFraudCases(ctx)
	require.NoError(t, err)
	assert.Len(t, cases, len(demoCases))
}
