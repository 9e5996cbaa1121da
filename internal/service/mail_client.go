package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"preorder/internal/model"
	"preorder/internal/pricing"
)

// Mailer sends the confirmation email after a successful submission
type Mailer interface {
	SendConfirmation(to string, submission *model.Submission, formTitle string) error
}

// MailClient talks to a transactional mail API
type MailClient struct {
	baseURL    string
	token      string
	from       string
	httpClient *http.Client
}

// NewMailClient creates a new mail client
func NewMailClient(baseURL, token, from string) *MailClient {
	if token == "" {
		log.Println("Warning: MAIL_API_TOKEN not set")
	}

	return &MailClient{
		baseURL: baseURL,
		token:   token,
		from:    from,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// SendConfirmation sends a plain-text order summary. Like the sheet sink,
// this is fire-once; a failure is surfaced, not retried.
func (c *MailClient) SendConfirmation(to string, submission *model.Submission, formTitle string) error {
	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      to,
		Subject: fmt.Sprintf("訂單確認 - %s", formTitle),
		Text:    confirmationBody(submission, formTitle),
	})
	if err != nil {
		return fmt.Errorf("failed to encode mail: %w", err)
	}

	log.Printf("[Mail Client] POST /messages (submission %s)", submission.ID)

	req, err := http.NewRequest("POST", c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail API error %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// confirmationBody renders the plain-text order summary, one line per
// answered field.
func confirmationBody(submission *model.Submission, formTitle string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "感謝您的訂購！\n\n表單：%s\n訂單編號:%s\n\n", formTitle, submission.ID)

	for fieldID, value := range submission.Fields {
		qid, ok := pricing.ParseFieldID(fieldID)
		if !ok {
			continue
		}
		entries := value.Strings()
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", qid, strings.Join(entries, "、"))
	}

	fmt.Fprintf(&b, "\n訂單金額：$%d\n", submission.Total)
	fmt.Fprintf(&b, "送出時間：%s\n", submission.SubmittedAt.Format("2006-01-02 15:04"))
	return b.String()
}
