// Package api implements the remote JSON-over-HTTPS endpoints the client
// depends on: auth, comments and user files.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"cyberdl/internal/core"
	"cyberdl/internal/model"
)

const defaultTimeout = 15 * time.Second

// Client holds the shared HTTP transport for the three catalog endpoints.
// The per-endpoint ports are obtained through Auth, Comments and Files.
type Client struct {
	httpClient  *http.Client
	authURL     string
	commentsURL string
	filesURL    string
	logger      core.Logger
}

// NewClient creates a client for the given endpoint URLs.
func NewClient(authURL, commentsURL, filesURL string, logger core.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		authURL:     authURL,
		commentsURL: commentsURL,
		filesURL:    filesURL,
		logger:      logger,
	}
}

// Auth returns the auth endpoint port.
func (c *Client) Auth() core.AuthAPI { return &authAPI{c} }

// Comments returns the comments endpoint port.
func (c *Client) Comments() core.CommentsAPI { return &commentsAPI{c} }

// Files returns the user-files endpoint port.
func (c *Client) Files() core.FilesAPI { return &filesAPI{c} }

type authAPI struct{ c *Client }

var _ core.AuthAPI = (*authAPI)(nil)

type authRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login exchanges credentials for a session. A non-2xx response surfaces the
// server's message verbatim.
func (a *authAPI) Login(ctx context.Context, email, password string) (*model.Session, error) {
	var resp authResponse
	err := a.c.do(ctx, http.MethodPost, a.c.authURL, nil, authRequest{
		Action:   "login",
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &model.Session{Token: resp.Token, User: resp.User}, nil
}

// Register creates an account. The server rejects taken emails/usernames with
// a structured 400, which maps to a ValidationError.
func (a *authAPI) Register(ctx context.Context, username, email, password string) (*model.Session, error) {
	var resp authResponse
	err := a.c.do(ctx, http.MethodPost, a.c.authURL, nil, authRequest{
		Action:   "register",
		Email:    email,
		Password: password,
		Username: username,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &model.Session{Token: resp.Token, User: resp.User}, nil
}

type commentsAPI struct{ c *Client }

var _ core.CommentsAPI = (*commentsAPI)(nil)

type commentsResponse struct {
	Comments []model.Comment `json:"comments"`
}

// List returns all comments for a file in server order.
func (m *commentsAPI) List(ctx context.Context, fileID int64) ([]model.Comment, error) {
	url := m.c.commentsURL + "?file_id=" + strconv.FormatInt(fileID, 10)
	var resp commentsResponse
	if err := m.c.do(ctx, http.MethodGet, url, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

type createCommentRequest struct {
	FileID  int64  `json:"file_id"`
	Content string `json:"content"`
	Rating  int    `json:"rating,omitempty"`
}

// Create posts a new comment, authenticated by token.
func (m *commentsAPI) Create(ctx context.Context, token string, fileID int64, content string, rating int) error {
	headers := map[string]string{"X-Auth-Token": token}
	return m.c.do(ctx, http.MethodPost, m.c.commentsURL, headers, createCommentRequest{
		FileID:  fileID,
		Content: content,
		Rating:  rating,
	}, nil)
}

// Delete removes a comment, authenticated by token. Ownership is checked by
// the server.
func (m *commentsAPI) Delete(ctx context.Context, token string, commentID int64) error {
	url := m.c.commentsURL + "?id=" + strconv.FormatInt(commentID, 10)
	headers := map[string]string{"X-Auth-Token": token}
	return m.c.do(ctx, http.MethodDelete, url, headers, nil, nil)
}

type filesAPI struct{ c *Client }

var _ core.FilesAPI = (*filesAPI)(nil)

type filesResponse struct {
	Files []model.RemoteFileRecord `json:"files"`
}

// List is the unauthenticated fetch of all user-submitted listings.
func (f *filesAPI) List(ctx context.Context) ([]model.RemoteFileRecord, error) {
	var resp filesResponse
	if err := f.c.do(ctx, http.MethodGet, f.c.filesURL, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// Create publishes a new listing on behalf of userID.
func (f *filesAPI) Create(ctx context.Context, userID int64, sub model.FileSubmission) error {
	headers := map[string]string{"X-User-Id": strconv.FormatInt(userID, 10)}
	return f.c.do(ctx, http.MethodPost, f.c.filesURL, headers, sub, nil)
}

// errorResponse is the structured error body every endpoint uses.
type errorResponse struct {
	Error string `json:"error"`
}

// do runs one request. Transport failures and unstructured non-2xx responses
// become NetworkError; structured 401/403 become AuthError and other
// structured client errors become ValidationError, each carrying the server's
// message verbatim.
func (c *Client) do(ctx context.Context, method, url string, headers map[string]string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &core.NetworkError{Msg: "request failed", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &core.NetworkError{Msg: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("request rejected", "method", method, "url", url, "status", resp.StatusCode)
		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			switch resp.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return &core.AuthError{Msg: errResp.Error}
			default:
				return &core.ValidationError{Msg: errResp.Error}
			}
		}
		return &core.NetworkError{Msg: fmt.Sprintf("server returned %d", resp.StatusCode)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &core.NetworkError{Msg: "decoding response", Err: err}
		}
	}
	return nil
}
