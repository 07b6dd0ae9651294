// Package expense is the client for the project-management API that owns
// expense records. Its job, besides the HTTP plumbing, is normalization: the
// API stores costs under different field names per category, and this adapter
// resolves them so pricing never has to know which field means cost.
package expense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"tovyalla_billing/internal/domain/entities"
	"tovyalla_billing/internal/usecase/interfaces"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

var ErrMissingExpenseAPIBaseURL = errors.New("missing EXPENSE_API_BASE_URL")

// Client fetches and normalizes a project's expenses.
//
// Env vars:
//   - EXPENSE_API_BASE_URL (required)
//   - EXPENSE_API_TOKEN (optional bearer token)

type Client struct {
	baseURL string
	token   string
	http    *retryablehttp.Client
}

var _ interfaces.IExpenseSource = (*Client)(nil)

func NewClientFromEnv() (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("EXPENSE_API_BASE_URL")), "/")
	if baseURL == "" {
		return nil, ErrMissingExpenseAPIBaseURL
	}
	return NewClient(baseURL, os.Getenv("EXPENSE_API_TOKEN")), nil
}

func NewClient(baseURL, token string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 3

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
		http:    retryClient,
	}
}

func (c *Client) FetchProjectExpenses(ctx context.Context, projectID string) (entities.ProjectExpenses, error) {
	url := fmt.Sprintf("%s/projects/%s/expenses", c.baseURL, projectID)
	log.Printf("[expense][client] fetch start project_id=%s", projectID)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return entities.ProjectExpenses{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[expense][client] fetch failed project_id=%s err=%v", projectID, err)
		return entities.ProjectExpenses{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entities.ProjectExpenses{}, err
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[expense][client] fetch failed project_id=%s status=%d", projectID, resp.StatusCode)
		return entities.ProjectExpenses{}, fmt.Errorf("expense api returned status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return entities.ProjectExpenses{}, errors.New("expense api returned invalid json")
	}

	out := parseProjectExpenses(body)
	log.Printf("[expense][client] fetch success project_id=%s fees=%d equipment=%d materials=%d additional=%d",
		projectID, len(out.Expenses.SubcontractorFees), len(out.Expenses.Equipment), len(out.Expenses.Materials), len(out.Expenses.Additional))
	return out, nil
}

// parseProjectExpenses normalizes the loosely shaped expense JSON. Coalescing
// is null-aware: a field that is present but zero counts as zero, only a
// missing, null or non-numeric field falls through to the next candidate.
func parseProjectExpenses(body []byte) entities.ProjectExpenses {
	root := gjson.ParseBytes(body)

	var out entities.ProjectExpenses

	root.Get("subcontractorFees").ForEach(func(_, fee gjson.Result) bool {
		out.Expenses.SubcontractorFees = append(out.Expenses.SubcontractorFees, entities.SubcontractorFee{
			ID:   fee.Get("id").String(),
			Name: coalesceString(fee, "job_description", "name"),
			Cost: coalesceNumber(fee, "expected_value", "flat_fee"),
		})
		return true
	})
	out.Expenses.Equipment = parseCostLines(root.Get("equipment"), "expected_price", "actual_price")
	out.Expenses.Materials = parseCostLines(root.Get("materials"), "expected_price", "actual_price")
	out.Expenses.Additional = parseCostLines(root.Get("additionalExpenses"), "expected_value", "amount")

	if project := root.Get("project"); project.Exists() {
		out.Project = json.RawMessage(project.Raw)
	}
	return out
}

func parseCostLines(arr gjson.Result, fields ...string) []entities.CostLine {
	var lines []entities.CostLine
	arr.ForEach(func(_, line gjson.Result) bool {
		lines = append(lines, entities.CostLine{
			ID:   line.Get("id").String(),
			Cost: coalesceNumber(line, fields...),
		})
		return true
	})
	return lines
}

func coalesceNumber(v gjson.Result, fields ...string) float64 {
	for _, f := range fields {
		field := v.Get(f)
		if !field.Exists() || field.Type == gjson.Null {
			continue
		}
		switch field.Type {
		case gjson.Number:
			return field.Float()
		case gjson.String:
			// Some records store numbers as strings.
			if n := gjson.Parse(field.String()); n.Type == gjson.Number {
				return n.Float()
			}
		}
	}
	return 0
}

func coalesceString(v gjson.Result, fields ...string) string {
	for _, f := range fields {
		if s := strings.TrimSpace(v.Get(f).String()); s != "" {
			return s
		}
	}
	return "Work"
}
