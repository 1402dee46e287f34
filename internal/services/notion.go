// Notion API implementation of [NotionAPI]
//
// Page and property shapes based on https://developers.notion.com/reference
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

const (
	defaultNotionBaseURL = "https://api.notion.com/v1"
	notionVersion        = "2022-06-28"
)

// Notion's documented limit is an average of three requests per second.
const notionRequestsPerSecond = 3

// Page represents a Notion page in the task database.
type Page struct {
	ID         string         `json:"id"`
	Archived   bool           `json:"archived"`
	Properties PageProperties `json:"properties"`
}

// PageProperties carries the property groups of a task page.
//
// Every group is a pointer: nil means "leave untouched" on update and "not
// present" on read. The property names match the database schema columns.
type PageProperties struct {
	TaskName    *TitleProperty    `json:"Task Name,omitempty"`
	Description *RichTextProperty `json:"Description,omitempty"`
	Priority    *SelectProperty   `json:"Priority,omitempty"`
	Project     *SelectProperty   `json:"Project,omitempty"`
	DueDate     *DateProperty     `json:"Due Date,omitempty"`
	Time        *RichTextProperty `json:"Time,omitempty"`
	TaskID      *RichTextProperty `json:"Task ID,omitempty"`
	Completed   *CheckboxProperty `json:"Completed,omitempty"`
}

// TitleProperty is a Notion title property group.
type TitleProperty struct {
	Title []RichText `json:"title"`
}

// Text returns the first title fragment, or "" when the property is absent
// or empty.
func (p *TitleProperty) Text() string {
	if p == nil || len(p.Title) == 0 {
		return ""
	}
	return p.Title[0].Text.Content
}

// RichTextProperty is a Notion rich_text property group.
type RichTextProperty struct {
	RichText []RichText `json:"rich_text"`
}

// Text returns the first rich text fragment, or "" when the property is
// absent or empty.
func (p *RichTextProperty) Text() string {
	if p == nil || len(p.RichText) == 0 {
		return ""
	}
	return p.RichText[0].Text.Content
}

// RichText is a single text fragment within a title or rich_text group.
type RichText struct {
	Text TextContent `json:"text"`
}

// TextContent holds the literal text of a [RichText] fragment.
type TextContent struct {
	Content string `json:"content"`
}

// SelectProperty is a Notion select property group. A nil Select clears the
// value on write and means "unset" on read.
type SelectProperty struct {
	Select *SelectOption `json:"select"`
}

// Name returns the selected option name, or "" when unset.
func (p *SelectProperty) Name() string {
	if p == nil || p.Select == nil {
		return ""
	}
	return p.Select.Name
}

// SelectOption is a single select choice.
type SelectOption struct {
	Name string `json:"name"`
}

// DateProperty is a Notion date property group. A nil Date clears the value
// on write and means "unset" on read.
type DateProperty struct {
	Date *DateValue `json:"date"`
}

// Start returns the start date literal, or "" when unset.
func (p *DateProperty) Start() string {
	if p == nil || p.Date == nil {
		return ""
	}
	return p.Date.Start
}

// DateValue holds a date range; only Start is used by the task schema.
type DateValue struct {
	Start string `json:"start"`
}

// CheckboxProperty is a Notion checkbox property group.
type CheckboxProperty struct {
	Checkbox bool `json:"checkbox"`
}

// Value returns the checkbox state, false when the property is absent.
func (p *CheckboxProperty) Value() bool {
	if p == nil {
		return false
	}
	return p.Checkbox
}

// NewTitle builds a title group with a single fragment.
func NewTitle(content string) *TitleProperty {
	return &TitleProperty{Title: []RichText{{Text: TextContent{Content: content}}}}
}

// NewRichText builds a rich_text group with a single fragment.
func NewRichText(content string) *RichTextProperty {
	return &RichTextProperty{RichText: []RichText{{Text: TextContent{Content: content}}}}
}

// NewSelect builds a select group; the empty name yields a cleared select.
func NewSelect(name string) *SelectProperty {
	if name == "" {
		return &SelectProperty{}
	}
	return &SelectProperty{Select: &SelectOption{Name: name}}
}

// NewDate builds a date group; the empty start yields a cleared date.
func NewDate(start string) *DateProperty {
	if start == "" {
		return &DateProperty{}
	}
	return &DateProperty{Date: &DateValue{Start: start}}
}

// NewCheckbox builds a checkbox group.
func NewCheckbox(checked bool) *CheckboxProperty {
	return &CheckboxProperty{Checkbox: checked}
}

// NotionClient implements [NotionAPI] against the Notion REST API for a
// single task database.
type NotionClient struct {
	apiKey     string
	databaseID string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewNotionClient creates a Notion client scoped to the given database.
// baseURL defaults to the production API endpoint when empty.
func NewNotionClient(apiKey, databaseID, baseURL string, client *http.Client) *NotionClient {
	if baseURL == "" {
		baseURL = defaultNotionBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &NotionClient{
		apiKey:     apiKey,
		databaseID: databaseID,
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(notionRequestsPerSecond), notionRequestsPerSecond),
	}
}

func (n *NotionClient) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, n.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Notion-Version", notionVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("notion API error (status %d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("notion API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

type createPageRequest struct {
	Parent     pageParent      `json:"parent"`
	Properties *PageProperties `json:"properties"`
}

type updatePageRequest struct {
	Properties *PageProperties `json:"properties,omitempty"`
	Archived   *bool           `json:"archived,omitempty"`
}

type queryRequest struct {
	Filter      *queryFilter `json:"filter,omitempty"`
	StartCursor string       `json:"start_cursor,omitempty"`
}

type queryFilter struct {
	Property string          `json:"property"`
	RichText *equalityFilter `json:"rich_text,omitempty"`
}

type equalityFilter struct {
	Equals string `json:"equals"`
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// CreatePage creates a page in the task database. Implements [NotionAPI].
//
// Calls POST /pages.
func (n *NotionClient) CreatePage(ctx context.Context, props *PageProperties) (*Page, error) {
	body := createPageRequest{
		Parent:     pageParent{DatabaseID: n.databaseID},
		Properties: props,
	}

	var page Page
	if err := n.doRequest(ctx, http.MethodPost, "/pages", body, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// UpdatePage overwrites the supplied property groups. Implements [NotionAPI].
//
// Calls PATCH /pages/{id}; nil groups in props are omitted from the request
// body and stay untouched on the page.
func (n *NotionClient) UpdatePage(ctx context.Context, pageID string, props *PageProperties) (*Page, error) {
	body := updatePageRequest{Properties: props}

	var page Page
	if err := n.doRequest(ctx, http.MethodPatch, "/pages/"+pageID, body, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// ArchivePage archives a page. Implements [NotionAPI].
//
// Calls PATCH /pages/{id} with archived=true.
func (n *NotionClient) ArchivePage(ctx context.Context, pageID string) error {
	archived := true
	body := updatePageRequest{Archived: &archived}
	return n.doRequest(ctx, http.MethodPatch, "/pages/"+pageID, body, nil)
}

// Query returns every page in the database. Implements [NotionAPI].
//
// Calls POST /databases/{id}/query without a filter, following the cursor
// until has_more is false.
func (n *NotionClient) Query(ctx context.Context) ([]Page, error) {
	return n.query(ctx, nil)
}

// FindByTaskID locates the page mirroring a Todoist task. Implements [NotionAPI].
//
// Calls POST /databases/{id}/query with an exact-equality rich_text filter
// on the "Task ID" property. Returns (nil, nil) when no page matches.
func (n *NotionClient) FindByTaskID(ctx context.Context, todoistID string) (*Page, error) {
	filter := &queryFilter{
		Property: "Task ID",
		RichText: &equalityFilter{Equals: todoistID},
	}

	pages, err := n.query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, nil
	}

	return &pages[0], nil
}

func (n *NotionClient) query(ctx context.Context, filter *queryFilter) ([]Page, error) {
	endpoint := "/databases/" + n.databaseID + "/query"

	var pages []Page
	cursor := ""
	for {
		body := queryRequest{Filter: filter, StartCursor: cursor}

		var resp queryResponse
		if err := n.doRequest(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
			return nil, err
		}

		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return pages, nil
}
