// Package remote reads boards and their tasks from the read-only JSON source.
// It performs no retries; callers decide what to do with a failure.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"taskboard/internal/model"
)

const DefaultBoardsURL = "https://raw.githubusercontent.com/devchallenges-io/curriculum/refs/heads/main/4-frontend-libaries/challenges/group_1/data/task-manager/list.json"

// DefaultMaxBody bounds how much of a payload is read.
const DefaultMaxBody = 8 << 20

type Client struct {
	HTTP      *http.Client
	BoardsURL string
	Log       *log.Logger
	// MaxBody caps a response body; a larger payload is a DecodeError.
	// Zero means DefaultMaxBody.
	MaxBody int64
}

func NewClient(boardsURL string) *Client {
	if strings.TrimSpace(boardsURL) == "" {
		boardsURL = DefaultBoardsURL
	}
	return &Client{
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		BoardsURL: boardsURL,
		Log:       log.StandardLogger(),
	}
}

type wireBoard struct {
	ID    json.RawMessage `json:"id"`
	Name  string          `json:"name"`
	Emoji string          `json:"emoji"`
	Link  string          `json:"link"`
}

type wireTask struct {
	ID         json.RawMessage `json:"id"`
	Title      string          `json:"title"`
	Status     string          `json:"status"`
	Tags       []string        `json:"tags"`
	Background *string         `json:"background"`
}

type wireBoardData struct {
	Tasks *[]wireTask `json:"tasks"`
}

// FetchBoardList returns the remote board descriptors with canonical ids.
func (c *Client) FetchBoardList(ctx context.Context) ([]model.Board, error) {
	var wire []wireBoard
	if err := c.getJSON(ctx, c.BoardsURL, &wire); err != nil {
		return nil, err
	}
	out := make([]model.Board, 0, len(wire))
	for i, wb := range wire {
		id, err := model.CanonicalID(wb.ID)
		if err != nil {
			return nil, &DecodeError{URL: c.BoardsURL, Err: fmt.Errorf("board %d: %w", i, err)}
		}
		out = append(out, model.Board{ID: id, Name: wb.Name, Emoji: wb.Emoji, Link: strings.TrimSpace(wb.Link)})
	}
	return out, nil
}

// FetchBoardTasks returns the tasks behind b.Link. A board without a link has
// no remote tasks.
func (c *Client) FetchBoardTasks(ctx context.Context, b model.Board) ([]model.Task, error) {
	link := strings.TrimSpace(b.Link)
	if link == "" {
		return []model.Task{}, nil
	}
	var wire wireBoardData
	if err := c.getJSON(ctx, link, &wire); err != nil {
		return nil, err
	}
	if wire.Tasks == nil {
		return nil, &DecodeError{URL: link, Err: fmt.Errorf("missing tasks")}
	}
	out := make([]model.Task, 0, len(*wire.Tasks))
	for i, wt := range *wire.Tasks {
		t, err := wt.task()
		if err != nil {
			return nil, &DecodeError{URL: link, Err: fmt.Errorf("task %d: %w", i, err)}
		}
		out = append(out, t)
	}
	return out, nil
}

func (wt wireTask) task() (model.Task, error) {
	id, err := model.CanonicalID(wt.ID)
	if err != nil {
		return model.Task{}, err
	}
	// Unknown statuses land in backlog, the same column views file them under.
	status := model.Status(strings.TrimSpace(wt.Status))
	if !status.Valid() {
		status = model.StatusBacklog
	}
	tags := model.NormalizeTags(wt.Tags)
	var bg *string
	if wt.Background != nil && strings.TrimSpace(*wt.Background) != "" {
		v := *wt.Background
		bg = &v
	}
	return model.Task{ID: id, Title: wt.Title, Status: status, Tags: tags, Background: bg}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	limit := c.MaxBody
	if limit <= 0 {
		limit = DefaultMaxBody
	}

	logger := c.Log
	if logger == nil {
		logger = log.StandardLogger()
	}
	logger.WithFields(log.Fields{
		"url":         url,
		"status_code": resp.StatusCode,
		"elapsed":     time.Since(start).String(),
	}).Debug("remote fetch")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, limit))
		return &NetworkError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return &NetworkError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	if int64(len(body)) > limit {
		return &DecodeError{URL: url, Err: fmt.Errorf("payload exceeds %d bytes", limit)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{URL: url, Err: err}
	}
	return nil
}
