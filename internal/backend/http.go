package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient — тонкая обёртка над REST API: авторизация, JSON, проверка статуса.
type HTTPClient struct {
	baseURL string
	token   string
	hc      *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		hc:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: backend returned status %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) StaffMembers(ctx context.Context) ([]Member, error) {
	var out []Member
	if err := c.do(ctx, http.MethodGet, "/api/staff/members", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ClubInvitations(ctx context.Context, clubID int64) ([]Invitation, error) {
	var out []Invitation
	path := fmt.Sprintf("/api/clubs/%d/invitations", clubID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateInvitation(ctx context.Context, clubID int64, req CreateInvitationRequest) (*Invitation, error) {
	var out Invitation
	path := fmt.Sprintf("/api/clubs/%d/invitations", clubID)
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteInvitation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/invitations/%d", id), nil, nil)
}

func (c *HTTPClient) ChangeRole(ctx context.Context, clubID, userID int64, role string) error {
	path := fmt.Sprintf("/api/clubs/%d/members/%d/role", clubID, userID)
	return c.do(ctx, http.MethodPatch, path, map[string]string{"role": role}, nil)
}

func (c *HTTPClient) RemoveMember(ctx context.Context, clubID, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/clubs/%d/members/%d", clubID, userID), nil, nil)
}

func (c *HTTPClient) ClubsWithRole(ctx context.Context) ([]ClubWithRole, error) {
	var out []ClubWithRole
	if err := c.do(ctx, http.MethodGet, "/api/clubs/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Sections(ctx context.Context) ([]Section, error) {
	var out []Section
	if err := c.do(ctx, http.MethodGet, "/api/sections", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateSection(ctx context.Context, req CreateSectionRequest) (*Section, error) {
	var out Section
	if err := c.do(ctx, http.MethodPost, "/api/sections", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateGroup(ctx context.Context, sectionID int64, req CreateGroupRequest) (*Group, error) {
	var out Group
	path := fmt.Sprintf("/api/sections/%d/groups", sectionID)
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GenerateLessons(ctx context.Context, groupID int64, req GenerateLessonsRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/groups/%d/lessons/generate", groupID), req, nil)
}

func (c *HTTPClient) CreateTariff(ctx context.Context, req CreateTariffRequest) error {
	return c.do(ctx, http.MethodPost, "/api/tariffs", req, nil)
}
