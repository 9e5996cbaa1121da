package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preorder/internal/model"
)

func TestFetchForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/f1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"id": "f1",
			"title": "預購單",
			"items": [
				{"type": "question", "title": "項鍊 $1000", "question": {"id": "1", "type": "single_choice", "options": ["項鍊 $1000"]}},
				{"type": "page_break"},
				{"type": "group", "title": "耳環 $250", "questions": [
					{"id": "2", "type": "checkbox", "options": ["金", "銀"]},
					{"id": "3", "type": "checkbox", "options": ["大", "小"]}
				]},
				{"type": "question", "title": "寄送日期", "question": {"id": "4", "type": "date"}}
			]
		}`))
	}))
	defer srv.Close()

	client := NewFormsClient(srv.URL, "test-token")
	schema, err := client.FetchForm("f1")
	require.NoError(t, err)

	assert.Equal(t, "f1", schema.ID)
	assert.Equal(t, "預購單", schema.Title)
	require.Len(t, schema.Items, 4)

	assert.Equal(t, model.ItemQuestion, schema.Items[0].Kind)
	assert.Equal(t, model.QuestionSingleChoice, schema.Items[0].Question.Kind)
	assert.Equal(t, "項鍊 $1000", schema.Items[0].Title)

	assert.Equal(t, model.ItemPageBreak, schema.Items[1].Kind)

	assert.Equal(t, model.ItemGroup, schema.Items[2].Kind)
	require.Len(t, schema.Items[2].Questions, 2)
	assert.Equal(t, model.QuestionMultiChoice, schema.Items[2].Questions[0].Kind)
	assert.Equal(t, "2", schema.Items[2].PrimaryQuestionID())

	assert.Equal(t, model.QuestionDate, schema.Items[3].Question.Kind)
}

func TestFetchForm_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no such form"}`))
	}))
	defer srv.Close()

	client := NewFormsClient(srv.URL, "test-token")
	_, err := client.FetchForm("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestMapProviderQuestion_UnknownTypeFallsBackToText(t *testing.T) {
	q := mapProviderQuestion(providerQuestion{ID: "9", Type: "hologram"})
	assert.Equal(t, model.QuestionText, q.Kind)
}
