package api

import (
	"context"
	"net/http"
)

// Enhancement types understood by the backend's text service.
const (
	EnhanceImprove      = "improve"
	EnhanceGrammar      = "grammar"
	EnhanceProfessional = "professional"
)

// TaskContext gives the enhancement service optional context about the
// task the text belongs to.
type TaskContext struct {
	Title        string `json:"title,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	Priority     string `json:"priority,omitempty"`
}

// EnhanceText sends text through the backend's AI enhancement service
// and returns the rewritten text.
func (c *Client) EnhanceText(ctx context.Context, text, kind string, taskCtx *TaskContext) (string, error) {
	body := struct {
		Text        string       `json:"text"`
		Type        string       `json:"type"`
		TaskContext *TaskContext `json:"task_context,omitempty"`
	}{Text: text, Type: kind, TaskContext: taskCtx}

	var resp struct {
		EnhancedText string `json:"enhanced_text"`
	}
	if err := c.send(ctx, http.MethodPost, "/api/ai/enhance-text", body, &resp); err != nil {
		return "", err
	}
	return resp.EnhancedText, nil
}
