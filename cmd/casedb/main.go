// Command casedb prints the contents of the fraud case store, for
// inspecting call outcomes during development.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"voicebot-server/internal/observability"
	"voicebot-server/internal/store"
)

func main() {
	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "fraud_cases.db"
	}

	st, err := store.New(path, observability.NewLogger())
	if err != nil {
		log.Fatalf("failed to open case store at %s: %s", path, err)
	}
	defer st.Close()

	ctx := context.Background()

	cases, err := st.ListFraudCases(ctx)
	if err != nil {
		log.Fatalf("failed to list cases: %s", err)
	}

	fmt.Printf("=== Fraud cases (%d) ===\n", len(cases))
	for _, fc := range cases {
		fmt.Printf("#%d %s (id %s)\n", fc.ID, fc.CustomerName, fc.SecurityIdentifier)
		fmt.Printf("    $%.2f at %s, %s, card ending %s\n", fc.Amount, fc.Merchant, fc.Location, fc.CardEnding)
		fmt.Printf("    status: %s", fc.Status)
		if fc.OutcomeNote != "" {
			fmt.Printf(" (%s)", fc.OutcomeNote)
		}
		if fc.ResolvedAt != nil {
			fmt.Printf(" resolved %s", fc.ResolvedAt.Format("2006-01-02 15:04:05 MST"))
		}
		fmt.Println()
	}

	results, err := st.ListFraudResults(ctx)
	if err != nil {
		log.Fatalf("failed to list results: %s", err)
	}

	fmt.Printf("\n=== Call results (%d) ===\n", len(results))
	for _, r := range results {
		fmt.Printf("#%d %s (id %s) -> %s at %s\n",
			r.ID, r.CustomerName, r.SecurityIdentifier, r.Status,
			r.ResolvedAt.Format("2006-01-02 15:04:05 MST"))
		if r.OutcomeNote != "" {
			fmt.Printf("    %s\n", r.OutcomeNote)
		}
	}
}
