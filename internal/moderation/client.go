package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Type selects the system prompt used for a check.
type Type string

const (
	TypeReview Type = "review"
	TypeImage  Type = "image_only"
	TypeAvatar Type = "avatar"
)

// Request carries the content to check. Exactly one of ReviewText or
// ImageBase64 is expected depending on Type.
type Request struct {
	ReviewText  string
	ImageBase64 string
	Type        Type
}

// Result is the moderation verdict.
type Result struct {
	Safe   bool   `json:"safe"`
	Reason string `json:"reason"`
}

// Checker is the contract consumed by review/image services.
type Checker interface {
	Check(ctx context.Context, req Request) Result
}

// Client calls an LLM chat-completion endpoint (Gemini generateContent) with a
// fixed system prompt per moderation type.
//
// Policy: FAIL OPEN. Any transport, HTTP or parse error returns safe=true so
// a degraded moderation service never blocks user submissions.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		apiKey:  os.Getenv("MODERATION_API_KEY"),
		model:   os.Getenv("MODERATION_MODEL"),
		baseURL: "https://generativelanguage.googleapis.com",
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWith is used by tests to point at a stub server.
func NewClientWith(apiKey, model, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Check(ctx context.Context, req Request) Result {
	if c.apiKey == "" || c.model == "" {
		// Moderation not configured: fail open.
		return Result{Safe: true}
	}

	verdict, err := c.call(ctx, req)
	if err != nil {
		log.Println("moderation check failed open:", err)
		return Result{Safe: true}
	}
	return verdict
}

func (c *Client) call(ctx context.Context, req Request) (Result, error) {
	parts := []map[string]any{
		{"text": promptFor(req.Type)},
	}
	if req.ReviewText != "" {
		parts = append(parts, map[string]any{"text": "CONTENT:\n" + req.ReviewText})
	}
	if req.ImageBase64 != "" {
		parts = append(parts, map[string]any{
			"inline_data": map[string]string{
				"mime_type": "image/jpeg",
				"data":      req.ImageBase64,
			},
		})
	}

	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": parts},
		},
		"generationConfig": map[string]any{
			"temperature":     0.0,
			"maxOutputTokens": 256,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	url := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL,
		c.model,
		c.apiKey,
	)

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("moderation api status %d", resp.StatusCode)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return Result{}, fmt.Errorf("empty moderation response")
	}

	output := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if !json.Valid([]byte(output)) {
		return Result{}, fmt.Errorf("moderation returned non-json output")
	}

	var verdict Result
	if err := json.Unmarshal([]byte(output), &verdict); err != nil {
		return Result{}, err
	}
	return verdict, nil
}
