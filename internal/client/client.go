// Package client is a typed HTTP client for the folder notes API.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"foldernotes/internal/domain/models"
	"foldernotes/internal/domain/services"
	"foldernotes/internal/httputil"
)

// DefaultBaseURL is used when NOTES_API_URL is not set
const DefaultBaseURL = "http://localhost:8080"

type Client struct {
	http *resty.Client
}

// New constructs a Client for baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Health is the body of GET /health
type Health struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, c.http.R().SetResult(&out), "GET", "/health"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Folders

func (c *Client) ListFolders(ctx context.Context) ([]models.Folder, error) {
	var out []models.Folder
	if err := c.do(ctx, c.http.R().SetResult(&out), "GET", "/folders"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	var out models.Folder
	req := c.http.R().SetBody(&services.CreateFolderRequest{Name: name}).SetResult(&out)
	if err := c.do(ctx, req, "POST", "/folders"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFolder returns the folder together with its notes
func (c *Client) GetFolder(ctx context.Context, folderID string) (*models.FolderWithNotes, error) {
	var out models.FolderWithNotes
	req := c.http.R().SetPathParam("folderId", folderID).SetResult(&out)
	if err := c.do(ctx, req, "GET", "/folders/{folderId}"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateFolder(ctx context.Context, folderID, name string) (*models.Folder, error) {
	var out models.Folder
	req := c.http.R().
		SetPathParam("folderId", folderID).
		SetBody(&services.UpdateFolderRequest{Name: name}).
		SetResult(&out)
	if err := c.do(ctx, req, "PUT", "/folders/{folderId}"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFolder deletes a folder and every note in it
func (c *Client) DeleteFolder(ctx context.Context, folderID string) (string, error) {
	var out httputil.MessageResponse
	req := c.http.R().SetPathParam("folderId", folderID).SetResult(&out)
	if err := c.do(ctx, req, "DELETE", "/folders/{folderId}"); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Notes

func (c *Client) ListNotes(ctx context.Context, folderID string) ([]models.Note, error) {
	var out []models.Note
	req := c.http.R().SetPathParam("folderId", folderID).SetResult(&out)
	if err := c.do(ctx, req, "GET", "/notes/{folderId}"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateNote(ctx context.Context, folderID, title, content string) (*models.Note, error) {
	var out models.Note
	req := c.http.R().
		SetPathParam("folderId", folderID).
		SetBody(&services.CreateNoteRequest{Title: title, Content: &content}).
		SetResult(&out)
	if err := c.do(ctx, req, "POST", "/notes/{folderId}"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetNote(ctx context.Context, folderID, noteID string) (*models.Note, error) {
	var out models.Note
	req := c.http.R().
		SetPathParam("folderId", folderID).
		SetPathParam("noteId", noteID).
		SetResult(&out)
	if err := c.do(ctx, req, "GET", "/notes/{folderId}/{noteId}"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNote sends only the non-nil fields; the server keeps the rest
func (c *Client) UpdateNote(ctx context.Context, folderID, noteID string, title, content *string) (*models.Note, error) {
	var out models.Note
	req := c.http.R().
		SetPathParam("folderId", folderID).
		SetPathParam("noteId", noteID).
		SetBody(&services.UpdateNoteRequest{Title: title, Content: content}).
		SetResult(&out)
	if err := c.do(ctx, req, "PUT", "/notes/{folderId}/{noteId}"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNote(ctx context.Context, folderID, noteID string) (string, error) {
	var out httputil.MessageResponse
	req := c.http.R().
		SetPathParam("folderId", folderID).
		SetPathParam("noteId", noteID).
		SetResult(&out)
	if err := c.do(ctx, req, "DELETE", "/notes/{folderId}/{noteId}"); err != nil {
		return "", err
	}
	return out.Message, nil
}

// do executes req and turns non-2xx responses into *APIError
func (c *Client) do(ctx context.Context, req *resty.Request, method, path string) error {
	var apiErr httputil.ErrorResponse
	resp, err := req.SetContext(ctx).SetError(&apiErr).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}
