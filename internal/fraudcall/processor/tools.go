package processor

import (
	"context"
	"fmt"

	"voicebot-server/internal/agenttools"
	"voicebot-server/internal/store"

	"google.golang.org/genai"
)

// Free-text phrasing for the conversational boundary. The workflow
// reports structured results; only this layer turns them into the
// strings the model speaks from.
const (
	msgAskSpelling    = "I couldn't find a case under that name. Could you confirm the spelling of your full name for me?"
	msgAskIdentifier  = "Thank you, I've located your case. To verify your identity, could you please tell me your security identifier?"
	msgNeedNameFirst  = "Before I can verify anything, I need your full name. Could you tell me your name as it appears on the account?"
	msgRefusal        = "I'm sorry, but that doesn't match our records, so I'm unable to continue with this call. For your security, please call the number on the back of your card. Thank you."
	msgOutOfOrder     = "Please provide the requested information so we can continue."
	msgNeedVerified   = "I can only record a decision once your identity has been fully verified."
	msgAskClearYesNo  = "Just so I record this correctly: did you make this transaction? Please answer yes or no."
	msgSafeRecorded   = "Thank you for confirming. I've marked this transaction as authorized and your card remains active. No further action is needed."
	msgFraudRecorded  = "Thank you. I've marked this transaction as fraudulent. Your card has been blocked, a replacement is on its way, and the charge will be reversed."
	msgPersistDegrade = " Please note our records system is responding slowly right now; your decision is recorded for this call and will be synced shortly."
	msgClosingSafe    = "Thanks again for verifying that transaction with us. Your card stays active. Have a great day!"
	msgClosingFraud   = "Thanks for your time. Your card is blocked and the fraudulent charge is being reversed. A replacement card is on the way. Take care!"
	msgClosingGeneric = "Thank you for calling. If you'd like to review your account, please call the number on the back of your card. Goodbye!"
)

func formatTransaction(r StepResult) string {
	c := r.Case
	return fmt.Sprintf(
		"That's correct, you're verified. Here is the flagged transaction: a charge of $%.2f at %s, %s, made %s via %s, from %s, on your card ending in %s. Did you make this transaction? Please answer yes or no.",
		c.Amount, c.Merchant, c.Category, c.TxnTime, c.Source, c.Location, c.CardEnding,
	)
}

func formatStep(r StepResult) string {
	switch r.Code {
	case CodeCaseFound:
		return msgAskIdentifier
	case CodeCaseNotFound:
		return msgAskSpelling
	case CodeNoCaseBound:
		return msgNeedNameFirst
	case CodeQuestionNext:
		return "That matches our records. One more security check: " + r.Question
	case CodeVerificationFailed:
		return msgRefusal
	case CodeTransactionRevealed:
		return formatTransaction(r)
	case CodePrerequisiteMissing:
		return msgNeedVerified
	case CodeDecisionUnclear:
		return msgAskClearYesNo
	case CodeConfirmedSafe:
		if r.PersistErr != nil {
			return msgSafeRecorded + msgPersistDegrade
		}
		return msgSafeRecorded
	case CodeConfirmedFraud:
		if r.PersistErr != nil {
			return msgFraudRecorded + msgPersistDegrade
		}
		return msgFraudRecorded
	default:
		return msgOutOfOrder
	}
}

func (w *Workflow) formatClosing() string {
	if !w.Verified() {
		return msgClosingGeneric
	}
	switch w.session.Case.Status {
	case store.CaseStatusConfirmedFraud:
		return msgClosingFraud
	case store.CaseStatusConfirmedSafe:
		return msgClosingSafe
	default:
		return msgClosingGeneric
	}
}

// Toolset exposes the workflow operations as voice-agent tools. Every
// tool returns a plain string under every input; nothing escapes to the
// orchestrator as an error.
func (w *Workflow) Toolset() *agenttools.Toolset {
	ts := agenttools.NewToolset()

	ts.Add(agenttools.Tool{
		Name:        "lookup_case",
		Description: "Look up the caller's fraud case by their full name. Call this once the caller has stated their name.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {Type: genai.TypeString, Description: "The caller's full name"},
			},
			Required: []string{"name"},
		},
		Handler: func(ctx context.Context, args map[string]any) string {
			return formatStep(w.LookupCase(ctx, agenttools.StringArg(args, "name")))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "verify_identity",
		Description: "Check the caller's answer for the current verification step (security identifier first, then the security question).",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"answer": {Type: genai.TypeString, Description: "The caller's answer, exactly as spoken"},
			},
			Required: []string{"answer"},
		},
		Handler: func(ctx context.Context, args map[string]any) string {
			return formatStep(w.VerifyStep(ctx, agenttools.StringArg(args, "answer")))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "record_decision",
		Description: "Record whether the caller recognizes the flagged transaction. Call this with the caller's yes/no answer after the transaction details were read out.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"decision": {Type: genai.TypeString, Description: "The caller's answer about the transaction"},
			},
			Required: []string{"decision"},
		},
		Handler: func(ctx context.Context, args map[string]any) string {
			return formatStep(w.RecordDecision(ctx, agenttools.StringArg(args, "decision")))
		},
	})

	ts.Add(agenttools.Tool{
		Name:        "end_call",
		Description: "End the call with an appropriate closing message. Call this when the conversation is complete.",
		Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		Handler: func(ctx context.Context, args map[string]any) string {
			w.EndCall(ctx)
			return w.formatClosing()
		},
	})

	return ts
}
