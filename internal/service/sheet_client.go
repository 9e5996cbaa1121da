package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"preorder/internal/model"
)

// SubmissionSink persists a finished submission outside this service.
// Delivery is fire-once: a failure is surfaced to the caller as-is and any
// retry is the caller's concern.
type SubmissionSink interface {
	Deliver(submission *model.Submission) error
}

// SheetClient appends submissions to a spreadsheet backend over its HTTP
// API. Column mapping from field identifiers to named columns happens on
// the sheet side.
type SheetClient struct {
	baseURL    string
	token      string
	sheetID    string
	httpClient *http.Client
}

// NewSheetClient creates a new spreadsheet sink client
func NewSheetClient(baseURL, token, sheetID string) *SheetClient {
	if token == "" {
		log.Println("Warning: SHEET_API_TOKEN not set")
	}

	return &SheetClient{
		baseURL: baseURL,
		token:   token,
		sheetID: sheetID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// appendRequest is the sheet API's append payload: the total plus per-field
// values, field order unspecified.
type appendRequest struct {
	SubmissionID string          `json:"submissionId"`
	FormID       string          `json:"formId"`
	Total        int             `json:"total"`
	Fields       model.AnswerSet `json:"fields"`
	SubmittedAt  time.Time       `json:"submittedAt"`
}

// Deliver appends one submission row. No retry here: the submit call is
// fire-once and errors propagate to the respondent.
func (c *SheetClient) Deliver(submission *model.Submission) error {
	payload, err := json.Marshal(appendRequest{
		SubmissionID: submission.ID,
		FormID:       submission.FormID,
		Total:        submission.Total,
		Fields:       submission.Fields,
		SubmittedAt:  submission.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	url := fmt.Sprintf("%s/sheets/%s/rows", c.baseURL, c.sheetID)
	log.Printf("[Sheet Client] POST /sheets/%s/rows (submission %s)", c.sheetID, submission.ID)

	req, err := http.NewRequest("POST", url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheet append failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheet API error %d: %s", resp.StatusCode, string(body))
	}

	log.Printf("[Sheet Client] Appended submission %s", submission.ID)
	return nil
}
