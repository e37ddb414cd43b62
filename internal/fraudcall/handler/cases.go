package handler

import (
	"net/http"
	"time"
	"voicebot-server/internal/apierrors"
	"voicebot-server/internal/store"

	"github.com/gin-gonic/gin"
)

// caseView is the API shape of a fraud case. The verification secrets
// (identifier, questions, answers) never leave the server through this
// endpoint.
type caseView struct {
	ID           int64   `json:"id"`
	CustomerName string  `json:"customer_name"`
	Merchant     string  `json:"merchant"`
	TxnTime      string  `json:"txn_time"`
	Category     string  `json:"category"`
	Source       string  `json:"source"`
	Amount       float64 `json:"amount"`
	Location     string  `json:"location"`
	CardEnding   string  `json:"card_ending"`
	Status       string  `json:"status"`
	OutcomeNote  string  `json:"outcome_note,omitempty"`
	ResolvedAt   string  `json:"resolved_at,omitempty"`
}

type resultView struct {
	ID                 int64  `json:"id"`
	CustomerName       string `json:"customer_name"`
	SecurityIdentifier string `json:"security_identifier"`
	Status             string `json:"status"`
	OutcomeNote        string `json:"outcome_note"`
	ResolvedAt         string `json:"resolved_at"`
}

type createCaseRequest struct {
	CustomerName       string  `json:"customer_name" binding:"required"`
	SecurityIdentifier string  `json:"security_identifier" binding:"required"`
	SecurityQuestion1  string  `json:"security_question_1" binding:"required"`
	SecurityAnswer1    string  `json:"security_answer_1" binding:"required"`
	SecurityQuestion2  string  `json:"security_question_2"`
	SecurityAnswer2    string  `json:"security_answer_2"`
	Merchant           string  `json:"merchant" binding:"required"`
	TxnTime            string  `json:"txn_time" binding:"required"`
	Category           string  `json:"category"`
	Source             string  `json:"source"`
	Amount             float64 `json:"amount" binding:"required,gt=0"`
	Location           string  `json:"location"`
	CardEnding         string  `json:"card_ending" binding:"required"`
}

// HandleListCases returns all fraud cases, resolved and pending.
func (h *Handler) HandleListCases(c *gin.Context) {
	cases, err := h.store.ListFraudCases(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	views := make([]caseView, 0, len(cases))
	for _, fc := range cases {
		views = append(views, toCaseView(fc))
	}
	c.JSON(http.StatusOK, gin.H{"cases": views})
}

// HandleListResults returns the resolution audit trail, newest first.
func (h *Handler) HandleListResults(c *gin.Context) {
	results, err := h.store.ListFraudResults(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	views := make([]resultView, 0, len(results))
	for _, r := range results {
		views = append(views, resultView{
			ID:                 r.ID,
			CustomerName:       r.CustomerName,
			SecurityIdentifier: r.SecurityIdentifier,
			Status:             string(r.Status),
			OutcomeNote:        r.OutcomeNote,
			ResolvedAt:         r.ResolvedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": views})
}

// HandleCreateCase inserts a new pending case for the agent to verify.
func (h *Handler) HandleCreateCase(c *gin.Context) {
	var req createCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	id, err := h.store.CreateFraudCase(c.Request.Context(), store.CreateFraudCaseParams{
		CustomerName:       req.CustomerName,
		SecurityIdentifier: req.SecurityIdentifier,
		SecurityQuestion1:  req.SecurityQuestion1,
		SecurityAnswer1:    req.SecurityAnswer1,
		SecurityQuestion2:  req.SecurityQuestion2,
		SecurityAnswer2:    req.SecurityAnswer2,
		Merchant:           req.Merchant,
		TxnTime:            req.TxnTime,
		Category:           req.Category,
		Source:             req.Source,
		Amount:             req.Amount,
		Location:           req.Location,
		CardEnding:         req.CardEnding,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func toCaseView(fc store.FraudCase) caseView {
	v := caseView{
		ID:           fc.ID,
		CustomerName: fc.CustomerName,
		Merchant:     fc.Merchant,
		TxnTime:      fc.TxnTime,
		Category:     fc.Category,
		Source:       fc.Source,
		Amount:       fc.Amount,
		Location:     fc.Location,
		CardEnding:   fc.CardEnding,
		Status:       string(fc.Status),
		OutcomeNote:  fc.OutcomeNote,
	}
	if fc.ResolvedAt != nil {
		v.ResolvedAt = fc.ResolvedAt.UTC().Format(time.RFC3339)
	}
	return v
}
