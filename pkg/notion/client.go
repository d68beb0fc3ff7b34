// Package notion is a small client for the parts of the Notion API used as
// the external task store: creating task pages and querying open tasks.
package notion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/config"
)

// Property names of the task database
const (
	PropName        = "Name"
	PropDescription = "Description"
	PropAssignee    = "Assignee"
	PropPriority    = "Priority"
	PropStatus      = "Status"
	PropDueDate     = "Due Date"
	PropMeetingDate = "Meeting Date"
	PropSource      = "Source"
)

// maxRichText is Notion's limit for a single rich text segment
const maxRichText = 2000

const unassigned = "Unassigned"

// Client creates and queries task pages in a Notion database
type Client struct {
	client     *resty.Client
	databaseID string
}

// NewClient creates a Notion client from config
func NewClient(cfg *config.NotionConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.notion.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(base).
		SetAuthToken(cfg.APIKey).
		SetTimeout(timeout).
		SetHeader("Notion-Version", cfg.Version).
		SetHeader("Content-Type", "application/json")

	return &Client{client: client, databaseID: cfg.DatabaseID}
}

// DatabaseID returns the default task database
func (c *Client) DatabaseID() string {
	return c.databaseID
}

// apiError is Notion's error envelope
type apiError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type page struct {
	ID         string              `json:"id"`
	URL        string              `json:"url"`
	Properties map[string]property `json:"properties"`
}

type queryResponse struct {
	Results    []page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type property struct {
	Type     string     `json:"type"`
	Title    []richText `json:"title,omitempty"`
	RichText []richText `json:"rich_text,omitempty"`
	Select   *option    `json:"select,omitempty"`
	Date     *dateValue `json:"date,omitempty"`
	People   []person   `json:"people,omitempty"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type option struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

type person struct {
	Name   string `json:"name"`
	Person *struct {
		Email string `json:"email"`
	} `json:"person,omitempty"`
}

// CreateTask creates one task page in databaseID. An empty databaseID uses
// the configured database.
func (c *Client) CreateTask(ctx context.Context, databaseID string, f entities.TaskFields) (entities.CreatedTask, error) {
	if databaseID == "" {
		databaseID = c.databaseID
	}
	if databaseID == "" {
		return entities.CreatedTask{}, &entities.StoreError{Op: "create page", Err: entities.ErrNoTaskDatabase}
	}

	payload := map[string]interface{}{
		"parent":     map[string]string{"database_id": databaseID},
		"properties": pageProperties(f),
	}

	var created page
	var apiErr apiError
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&created).
		SetError(&apiErr).
		Post("/v1/pages")
	if err != nil {
		return entities.CreatedTask{}, &entities.StoreError{Op: "create page", Err: err}
	}
	if resp.IsError() {
		return entities.CreatedTask{}, toError("create page", resp, apiErr)
	}

	return entities.CreatedTask{ID: created.ID, URL: created.URL}, nil
}

// QueryOpenTasks returns every task in the configured database whose status
// is not Done, following pagination.
func (c *Client) QueryOpenTasks(ctx context.Context) ([]entities.StoreTask, error) {
	if c.databaseID == "" {
		return nil, &entities.StoreError{Op: "query database", Err: entities.ErrNoTaskDatabase}
	}

	tasks := make([]entities.StoreTask, 0)
	var cursor *string
	for {
		body := map[string]interface{}{
			"filter": map[string]interface{}{
				"property": PropStatus,
				"select":   map[string]string{"does_not_equal": string(entities.TaskStatusDone)},
			},
			"page_size": 100,
		}
		if cursor != nil {
			body["start_cursor"] = *cursor
		}

		var qr queryResponse
		var apiErr apiError
		resp, err := c.client.R().
			SetContext(ctx).
			SetBody(body).
			SetResult(&qr).
			SetError(&apiErr).
			Post(fmt.Sprintf("/v1/databases/%s/query", c.databaseID))
		if err != nil {
			return nil, &entities.StoreError{Op: "query database", Err: err}
		}
		if resp.IsError() {
			return nil, toError("query database", resp, apiErr)
		}

		for _, p := range qr.Results {
			tasks = append(tasks, toStoreTask(p))
		}

		if !qr.HasMore || qr.NextCursor == nil {
			break
		}
		cursor = qr.NextCursor
	}
	return tasks, nil
}

func pageProperties(f entities.TaskFields) map[string]interface{} {
	props := map[string]interface{}{
		PropName: map[string]interface{}{
			"title": textValue(f.Name),
		},
		PropDescription: map[string]interface{}{
			"rich_text": textValue(clip(f.Description, maxRichText)),
		},
		PropPriority: map[string]interface{}{
			"select": map[string]string{"name": string(f.Priority)},
		},
		PropStatus: map[string]interface{}{
			"select": map[string]string{"name": string(f.Status)},
		},
	}
	if f.Source != "" {
		props[PropSource] = map[string]interface{}{"rich_text": textValue(f.Source)}
	}
	if f.Assignee != nil && *f.Assignee != "" {
		props[PropAssignee] = map[string]interface{}{"rich_text": textValue(*f.Assignee)}
	}
	if f.DueDate != nil {
		props[PropDueDate] = map[string]interface{}{"date": map[string]string{"start": *f.DueDate}}
	}
	if f.MeetingDate != nil {
		props[PropMeetingDate] = map[string]interface{}{"date": map[string]string{"start": *f.MeetingDate}}
	}
	return props
}

func textValue(s string) []map[string]interface{} {
	return []map[string]interface{}{
		{"text": map[string]string{"content": s}},
	}
}

func toStoreTask(p page) entities.StoreTask {
	t := entities.StoreTask{
		ID:           p.ID,
		URL:          p.URL,
		Title:        plainText(p.Properties[PropName].Title),
		AssigneeName: unassigned,
	}

	if s := p.Properties[PropStatus].Select; s != nil {
		t.Status = entities.TaskStatus(s.Name)
	}
	if s := p.Properties[PropPriority].Select; s != nil {
		t.Priority = s.Name
	}
	if d := p.Properties[PropDueDate].Date; d != nil && d.Start != "" {
		start := d.Start
		// Date-time values carry a time part; only the calendar date matters.
		if len(start) > 10 {
			start = start[:10]
		}
		t.DueDate = &start
	}

	assignee := p.Properties[PropAssignee]
	switch assignee.Type {
	case "people":
		if len(assignee.People) > 0 {
			who := assignee.People[0]
			if who.Name != "" {
				t.AssigneeName = who.Name
			}
			if who.Person != nil && who.Person.Email != "" {
				email := who.Person.Email
				t.AssigneeEmail = &email
			}
		}
	case "rich_text":
		if name := plainText(assignee.RichText); name != "" {
			t.AssigneeName = name
		}
	}
	return t
}

func plainText(parts []richText) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.PlainText)
	}
	return strings.TrimSpace(b.String())
}

func toError(op string, resp *resty.Response, apiErr apiError) error {
	msg := apiErr.Message
	if msg == "" {
		msg = strings.TrimSpace(resp.String())
	}
	if apiErr.Code == "validation_error" {
		return &entities.StoreError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Code:       apiErr.Code,
			Message:    msg,
			Err:        &entities.ValidationError{Message: msg},
		}
	}
	return &entities.StoreError{
		Op:         op,
		StatusCode: resp.StatusCode(),
		Code:       apiErr.Code,
		Message:    msg,
		Err:        errors.New(msg),
	}
}

// clip truncates s to at most n runes
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
