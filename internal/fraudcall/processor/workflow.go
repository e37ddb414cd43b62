package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voicebot-server/internal/observability"
	"voicebot-server/internal/store"
)

// Stage is the caller's position in the verification conversation.
type Stage int

const (
	StageGreeting Stage = iota
	StageUsernameCollection
	StageVerification1
	StageVerification2
	StageTransactionReview
	StageDecision
	StageClosing
)

func (s Stage) String() string {
	switch s {
	case StageGreeting:
		return "greeting"
	case StageUsernameCollection:
		return "username_collection"
	case StageVerification1:
		return "verification1"
	case StageVerification2:
		return "verification2"
	case StageTransactionReview:
		return "transaction_review"
	case StageDecision:
		return "decision"
	case StageClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// CallSession is the per-call state. One session is owned by exactly
// one call and is never shared.
type CallSession struct {
	Case                *store.FraudCase
	Stage               Stage
	Verification1Passed bool
	Verification2Passed bool
	Ended               bool
}

// ResultCode classifies the outcome of a workflow step. Phrasing lives
// at the tool boundary; the workflow itself only reports codes.
type ResultCode int

const (
	CodeCaseFound ResultCode = iota
	CodeCaseNotFound
	CodeNoCaseBound
	CodeQuestionNext
	CodeVerificationFailed
	CodeTransactionRevealed
	CodeOutOfOrder
	CodePrerequisiteMissing
	CodeDecisionUnclear
	CodeConfirmedSafe
	CodeConfirmedFraud
	CodeCallEnded
)

// StepResult is the structured outcome of one workflow operation.
type StepResult struct {
	Code  ResultCode
	Stage Stage
	// Case is the bound case when the step exposes case data
	// (security question, transaction details, closing summary).
	Case *store.FraudCase
	// Question is the security question to ask next, for CodeQuestionNext.
	Question string
	// PersistErr is set when the decision could not be written to the
	// store; the in-memory decision still stands.
	PersistErr error
}

// Decision synonym sets. These are the literal sets the product signed
// off on; broader phrasing falls back to a yes/no prefix check.
var (
	affirmativeDecisions = map[string]bool{
		"yes": true, "y": true, "correct": true,
		"i made it": true, "that was me": true,
	}
	negativeDecisions = map[string]bool{
		"no": true, "n": true, "incorrect": true,
		"i did not make it": true, "that was not me": true,
		"fraud": true,
	}
)

// Workflow drives one fraud-verification call: look up the case, run
// the two identity checks, reveal the transaction, record the
// customer's decision, and persist it. All operations are synchronous
// and single-threaded within the call.
type Workflow struct {
	caseStore store.CaseStorer
	logger    *observability.Logger
	session   *CallSession
	cases     []store.FraudCase
	now       func() time.Time
}

// NewWorkflow loads the case collection and creates a fresh session.
// A load failure degrades to an empty collection (every lookup misses)
// rather than failing the call.
func NewWorkflow(ctx context.Context, caseStore store.CaseStorer, logger *observability.Logger) *Workflow {
	cases, err := caseStore.ListFraudCases(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load fraud cases, continuing with empty collection", err)
		cases = nil
	}
	return &Workflow{
		caseStore: caseStore,
		logger:    logger,
		session:   &CallSession{Stage: StageGreeting},
		cases:     cases,
		now:       time.Now,
	}
}

// Session exposes the call session for handlers and tests.
func (w *Workflow) Session() *CallSession {
	return w.session
}

// LookupCase matches the spoken name against the loaded cases,
// case-insensitively and exactly. A match binds the case and moves the
// call to the first verification step; a miss leaves the call
// collecting a name.
func (w *Workflow) LookupCase(ctx context.Context, name string) StepResult {
	// Closing is terminal; nothing rebinds after it.
	if w.session.Stage == StageClosing {
		return StepResult{Code: CodeOutOfOrder, Stage: w.session.Stage}
	}
	name = strings.TrimSpace(name)
	for i := range w.cases {
		if strings.EqualFold(w.cases[i].CustomerName, name) {
			// Binding a different case restarts verification from the
			// top; checks passed for one customer never carry over to
			// another.
			if w.session.Case != &w.cases[i] {
				w.session.Verification1Passed = false
				w.session.Verification2Passed = false
			}
			w.session.Case = &w.cases[i]
			w.session.Stage = StageVerification1
			w.logger.Info(ctx, fmt.Sprintf("Case found for caller, advancing to %s", w.session.Stage))
			return StepResult{Code: CodeCaseFound, Stage: w.session.Stage, Case: w.session.Case}
		}
	}
	// A miss during the greeting means we are now collecting the name.
	if w.session.Stage == StageGreeting {
		w.session.Stage = StageUsernameCollection
	}
	w.logger.Info(ctx, "No case matched the provided name")
	return StepResult{Code: CodeCaseNotFound, Stage: w.session.Stage}
}

// VerifyStep runs the identity check for the current stage. Each check
// allows exactly one attempt; a wrong answer ends the verification path
// for the rest of the call.
func (w *Workflow) VerifyStep(ctx context.Context, answer string) StepResult {
	s := w.session
	if s.Case == nil {
		return StepResult{Code: CodeNoCaseBound, Stage: s.Stage}
	}

	switch s.Stage {
	case StageVerification1:
		if strings.TrimSpace(answer) == s.Case.SecurityIdentifier {
			s.Verification1Passed = true
			s.Stage = StageVerification2
			return StepResult{
				Code:     CodeQuestionNext,
				Stage:    s.Stage,
				Case:     s.Case,
				Question: s.Case.SecurityQuestion1,
			}
		}
		s.Stage = StageClosing
		w.logger.Warn(ctx, "Security identifier mismatch, closing verification path")
		return StepResult{Code: CodeVerificationFailed, Stage: s.Stage}

	case StageVerification2:
		if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(s.Case.SecurityAnswer1)) {
			s.Verification2Passed = true
			s.Stage = StageTransactionReview
			return StepResult{Code: CodeTransactionRevealed, Stage: s.Stage, Case: s.Case}
		}
		s.Stage = StageClosing
		w.logger.Warn(ctx, "Security answer mismatch, closing verification path")
		return StepResult{Code: CodeVerificationFailed, Stage: s.Stage}

	default:
		return StepResult{Code: CodeOutOfOrder, Stage: s.Stage}
	}
}

// RecordDecision classifies the customer's yes/no answer and persists
// the resolution. It requires both verification checks to have passed.
func (w *Workflow) RecordDecision(ctx context.Context, decision string) StepResult {
	s := w.session
	if s.Case == nil || !s.Verification1Passed || !s.Verification2Passed {
		return StepResult{Code: CodePrerequisiteMissing, Stage: s.Stage}
	}
	// A case resolves exactly once.
	if s.Stage == StageClosing {
		return StepResult{Code: CodeOutOfOrder, Stage: s.Stage, Case: s.Case}
	}

	var status store.CaseStatus
	var note string
	switch classifyDecision(decision) {
	case decisionAffirmative:
		status = store.CaseStatusConfirmedSafe
		note = "Customer confirmed the transaction during verification call"
	case decisionNegative:
		status = store.CaseStatusConfirmedFraud
		note = "Customer denied the transaction during verification call"
	default:
		// The transaction is on the table but the answer was not a
		// usable yes or no; hold at the decision stage and re-prompt.
		s.Stage = StageDecision
		return StepResult{Code: CodeDecisionUnclear, Stage: s.Stage}
	}

	resolvedAt := w.now().UTC()
	s.Case.Status = status
	s.Case.OutcomeNote = note
	s.Case.ResolvedAt = &resolvedAt
	s.Stage = StageClosing

	result := StepResult{Stage: s.Stage, Case: s.Case}
	if status == store.CaseStatusConfirmedSafe {
		result.Code = CodeConfirmedSafe
	} else {
		result.Code = CodeConfirmedFraud
	}

	err := w.caseStore.ResolveFraudCase(ctx, store.ResolveFraudCaseParams{
		CustomerName:       s.Case.CustomerName,
		SecurityIdentifier: s.Case.SecurityIdentifier,
		Status:             status,
		OutcomeNote:        note,
		ResolvedAt:         resolvedAt,
	})
	if err != nil {
		// The call keeps its in-memory decision either way.
		w.logger.Error(ctx, "failed to persist case resolution", err)
		result.PersistErr = err
	}
	return result
}

// EndCall marks the session ended. Repeated calls re-derive the same
// closing from current state.
func (w *Workflow) EndCall(ctx context.Context) StepResult {
	w.session.Ended = true
	w.logger.Info(ctx, "Call ended")
	return StepResult{Code: CodeCallEnded, Stage: w.session.Stage, Case: w.session.Case}
}

// Verified reports whether both identity checks passed.
func (w *Workflow) Verified() bool {
	return w.session.Case != nil && w.session.Verification1Passed && w.session.Verification2Passed
}

type decisionClass int

const (
	decisionUnknown decisionClass = iota
	decisionAffirmative
	decisionNegative
)

func classifyDecision(decision string) decisionClass {
	norm := strings.ToLower(strings.TrimSpace(decision))
	switch {
	case affirmativeDecisions[norm]:
		return decisionAffirmative
	case negativeDecisions[norm]:
		return decisionNegative
	// Spoken answers rarely land exactly on the literal set; accept
	// obvious variants like "nope" or "yes it was me".
	case strings.HasPrefix(norm, "yes"):
		return decisionAffirmative
	case strings.HasPrefix(norm, "no"):
		return decisionNegative
	default:
		return decisionUnknown
	}
}
