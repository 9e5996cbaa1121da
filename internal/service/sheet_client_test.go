package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preorder/internal/model"
)

func testSubmission() *model.Submission {
	return &model.Submission{
		ID:        "sub-1",
		FormID:    "f1",
		SessionID: "sess-1",
		Total:     1380,
		Fields: model.AnswerSet{
			"question_100": model.NewValue("經典項鍊 $1000"),
			"question_200": model.NewValue("細版 $380"),
			"question_900": model.NewListValue([]string{"小卡"}),
		},
		SubmittedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSheetClient_Deliver(t *testing.T) {
	var got appendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sheets/sheet-9/rows", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewSheetClient(srv.URL, "tok", "sheet-9")
	require.NoError(t, client.Deliver(testSubmission()))

	assert.Equal(t, "sub-1", got.SubmissionID)
	assert.Equal(t, 1380, got.Total)
	assert.Equal(t, model.NewListValue([]string{"小卡"}), got.Fields["question_900"])
}

func TestSheetClient_Deliver_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"sheet is locked"}`))
	}))
	defer srv.Close()

	client := NewSheetClient(srv.URL, "tok", "sheet-9")
	err := client.Deliver(testSubmission())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet is locked")
}

func TestConfirmationBody(t *testing.T) {
	body := confirmationBody(testSubmission(), "週年慶預購單")

	assert.Contains(t, body, "週年慶預購單")
	assert.Contains(t, body, "sub-1")
	assert.Contains(t, body, "$1380")
	assert.Contains(t, body, "經典項鍊 $1000")
	// Multi-select entries joined on one line
	assert.Contains(t, body, "小卡")
}
