// Package client talks to a running quest journal over HTTP.
package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"questjournal/internal/apperr"
	"questjournal/internal/models"
)

type Client struct {
	baseURL string
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

type questCreated struct {
	Status string `json:"Quest Status"`
	ID     int64  `json:"quest_ID"`
}

type entryCreated struct {
	Status string `json:"Journal Entry Status"`
	ID     int64  `json:"entry_ID"`
}

func (c *Client) CreateQuest(in models.QuestCreate) (int64, error) {
	var out questCreated
	if err := c.do(fiber.MethodPost, "/quests/", in, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) ListQuests() ([]models.Quest, error) {
	var out []models.Quest
	return out, c.do(fiber.MethodGet, "/quests/", nil, &out)
}

func (c *Client) GetQuest(id int64) (models.Quest, error) {
	var out models.Quest
	return out, c.do(fiber.MethodGet, fmt.Sprintf("/quests/%d", id), nil, &out)
}

func (c *Client) UpdateQuest(id int64, u models.QuestUpdate) error {
	return c.do(fiber.MethodPatch, fmt.Sprintf("/quests/%d", id), u, nil)
}

func (c *Client) DeleteQuest(id int64) error {
	return c.do(fiber.MethodDelete, fmt.Sprintf("/quests/%d", id), nil, nil)
}

func (c *Client) CampaignQuests(campaignID int64) ([]models.Quest, error) {
	var out []models.Quest
	return out, c.do(fiber.MethodGet, fmt.Sprintf("/quests/progress/%d", campaignID), nil, &out)
}

func (c *Client) CreateEntry(in models.EntryCreate) (int64, error) {
	var out entryCreated
	if err := c.do(fiber.MethodPost, "/journal/entries/", in, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) ListEntries() ([]models.Entry, error) {
	var out []models.Entry
	return out, c.do(fiber.MethodGet, "/journal/entries/", nil, &out)
}

func (c *Client) GetEntry(id int64) (models.Entry, error) {
	var out models.Entry
	return out, c.do(fiber.MethodGet, fmt.Sprintf("/journal/%d", id), nil, &out)
}

func (c *Client) UpdateEntry(id int64, u models.EntryUpdate) error {
	return c.do(fiber.MethodPatch, fmt.Sprintf("/journal/entries/%d", id), u, nil)
}

func (c *Client) DeleteEntry(id int64) error {
	return c.do(fiber.MethodDelete, fmt.Sprintf("/journal/entries/%d", id), nil, nil)
}

func (c *Client) CharacterJournal(characterID int64) ([]models.Entry, error) {
	var out []models.Entry
	return out, c.do(fiber.MethodGet, fmt.Sprintf("/journal/entries/%d", characterID), nil, &out)
}

func (c *Client) CampaignJournal(campaignID int64) ([]models.Entry, error) {
	var out []models.Entry
	return out, c.do(fiber.MethodGet, fmt.Sprintf("/campaign/journal/%d", campaignID), nil, &out)
}

// do sends one request. Non-2xx responses come back as *apperr.Error carrying
// the server's detail message.
func (c *Client) do(method, path string, body, out any) error {
	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			fiber.ReleaseAgent(a)
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		a.Body(data).ContentType(fiber.MIMEApplicationJSON)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	code, respBody, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errs[0])
	}
	if code < 200 || code > 299 {
		return statusError(code, respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func statusError(code int, body []byte) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		msg = payload.Detail
	}
	switch code {
	case fiber.StatusNotFound:
		return apperr.NewNotFound(msg)
	case fiber.StatusUnprocessableEntity, fiber.StatusBadRequest:
		return apperr.NewInvalidArgument(msg)
	default:
		return apperr.New(apperr.CodeInternal, fmt.Sprintf("status %d: %s", code, msg))
	}
}
