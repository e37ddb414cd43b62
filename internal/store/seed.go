package store

import (
	"context"
	"fmt"
)

var demoCases = []CreateFraudCaseParams{
	{
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
	},
	{
		CustomerName:       "Marcus Webb",
		SecurityIdentifier: "9305",
		SecurityQuestion1:  "What was the name of your first pet?",
		SecurityAnswer1:    "biscuit",
		SecurityQuestion2:  "What is your mother's maiden name?",
		SecurityAnswer2:    "hale",
		Merchant:           "LuxTravel Bookings",
		TxnTime:            "yesterday at 11:17 PM",
		Category:           "Travel",
		Source:             "card-not-present",
		Amount:             3480.00,
		Location:           "Lagos, Nigeria",
		CardEnding:         "2210",
	},
}

// SeedDemoCases inserts the demo fixtures when the case table is empty,
// so a fresh checkout is callable without any setup.
func (s *Store) SeedDemoCases(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM fraud_cases"); err != nil {
		return fmt.Errorf("failed to count fraud cases: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, c := range demoCases {
		if _, err := s.CreateFraudCase(ctx, c); err != nil {
			return fmt.Errorf("failed to seed demo case for %s: %w", c.CustomerName, err)
		}
	}
	s.logger.Info(ctx, fmt.Sprintf("Seeded %d demo fraud cases", len(demoCases)))
	return nil
}
