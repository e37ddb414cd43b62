package store

import "time"

// CaseStatus is the review status of a fraud case.
type CaseStatus string

const (
	CaseStatusPendingReview  CaseStatus = "pending_review"
	CaseStatusConfirmedSafe  CaseStatus = "confirmed_safe"
	CaseStatusConfirmedFraud CaseStatus = "confirmed_fraud"
)

// FraudCase is one flagged transaction tied to one customer. The
// security identifier and question/answer pairs are the shared secrets
// used during call verification.
type FraudCase struct {
	ID                 int64      `db:"id"`
	CustomerName       string     `db:"customer_name"`
	SecurityIdentifier string     `db:"security_identifier"`
	SecurityQuestion1  string     `db:"security_question_1"`
	SecurityAnswer1    string     `db:"security_answer_1"`
	SecurityQuestion2  string     `db:"security_question_2"`
	SecurityAnswer2    string     `db:"security_answer_2"`
	Merchant           string     `db:"merchant"`
	TxnTime            string     `db:"txn_time"`
	Category           string     `db:"category"`
	Source             string     `db:"source"`
	Amount             float64    `db:"amount"`
	Location           string     `db:"location"`
	CardEnding         string     `db:"card_ending"`
	Status             CaseStatus `db:"status"`
	OutcomeNote        string     `db:"outcome_note"`
	ResolvedAt         *time.Time `db:"resolved_at"`
}

// FraudResult is the audit row written when a case is resolved.
type FraudResult struct {
	ID                 int64      `db:"id"`
	CustomerName       string     `db:"customer_name"`
	SecurityIdentifier string     `db:"security_identifier"`
	Status             CaseStatus `db:"status"`
	OutcomeNote        string     `db:"outcome_note"`
	ResolvedAt         time.Time  `db:"resolved_at"`
}
