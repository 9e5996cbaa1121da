package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"preorder/internal/model"
)

// FormsClient wraps the third-party forms provider API. The provider is the
// sole source of form schemas; we fetch, never mutate.
type FormsClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
}

// NewFormsClient creates a new forms provider client
func NewFormsClient(baseURL, token string) *FormsClient {
	if token == "" {
		log.Println("Warning: FORMS_API_TOKEN not set")
	}

	return &FormsClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 5,
	}
}

// providerForm is the provider's form payload
type providerForm struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Items []providerItem `json:"items"`
}

// providerItem is one entry in the provider's item list
type providerItem struct {
	Type      string             `json:"type"` // "question", "group", "page_break"
	Title     string             `json:"title,omitempty"`
	Question  *providerQuestion  `json:"question,omitempty"`
	Questions []providerQuestion `json:"questions,omitempty"`
}

// providerQuestion is a question as the provider serializes it
type providerQuestion struct {
	ID      string   `json:"id"`
	Title   string   `json:"title,omitempty"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Rows    []string `json:"rows,omitempty"`
}

// doRequest performs an HTTP request with retry and backoff on rate limiting
func (c *FormsClient) doRequest(method, path string, body io.Reader) ([]byte, error) {
	url := c.baseURL + path
	log.Printf("[Forms Client] %s %s", method, path)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[Forms Client] Retry attempt %d/%d for %s %s", attempt, c.maxRetries, method, path)
		}

		req, err := http.NewRequest(method, url, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[Forms Client] ERROR: HTTP request failed (attempt %d): %v", attempt+1, err)
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == 429 {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			log.Printf("[Forms Client] RATE LIMITED: Retry %d/%d in %v", attempt+1, c.maxRetries, backoff)
			time.Sleep(backoff)
			lastErr = fmt.Errorf("rate limited")
			continue
		}

		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("forms API error %d: %s", resp.StatusCode, string(respBody))
		}

		return respBody, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// FetchForm retrieves a form's full schema from the provider
func (c *FormsClient) FetchForm(formID string) (*model.FormSchema, error) {
	respBody, err := c.doRequest("GET", "/forms/"+formID, nil)
	if err != nil {
		return nil, err
	}

	var pf providerForm
	if err := json.Unmarshal(respBody, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse form response: %w", err)
	}

	return mapProviderForm(&pf), nil
}

// mapProviderForm converts the provider payload into our schema model
func mapProviderForm(pf *providerForm) *model.FormSchema {
	schema := &model.FormSchema{
		ID:    pf.ID,
		Title: pf.Title,
		Items: make([]model.Item, 0, len(pf.Items)),
	}

	for _, pi := range pf.Items {
		switch pi.Type {
		case "page_break":
			schema.Items = append(schema.Items, model.Item{Kind: model.ItemPageBreak})
		case "group":
			item := model.Item{Kind: model.ItemGroup, Title: pi.Title}
			for _, pq := range pi.Questions {
				item.Questions = append(item.Questions, mapProviderQuestion(pq))
			}
			schema.Items = append(schema.Items, item)
		case "question":
			if pi.Question == nil {
				continue
			}
			q := mapProviderQuestion(*pi.Question)
			title := pi.Title
			if title == "" {
				title = q.Title
			}
			schema.Items = append(schema.Items, model.Item{
				Kind:     model.ItemQuestion,
				Title:    title,
				Question: &q,
			})
		}
	}
	return schema
}

func mapProviderQuestion(pq providerQuestion) model.Question {
	kind := model.QuestionText
	switch pq.Type {
	case "single_choice", "radio":
		kind = model.QuestionSingleChoice
	case "multi_choice", "checkbox":
		kind = model.QuestionMultiChoice
	case "dropdown":
		kind = model.QuestionDropdown
	case "scale":
		kind = model.QuestionScale
	case "date":
		kind = model.QuestionDate
	case "time":
		kind = model.QuestionTime
	case "file_upload":
		kind = model.QuestionFileUpload
	}

	return model.Question{
		ID:      pq.ID,
		Title:   pq.Title,
		Kind:    kind,
		Options: pq.Options,
		Rows:    pq.Rows,
	}
}
