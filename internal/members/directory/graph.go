package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"lettergen/internal/members"
)

const (
	defaultBaseURL = "https://graph.microsoft.com/v1.0"
	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	pageSize       = 999
)

// Client reads group membership from Microsoft Graph.
type Client struct {
	http    *http.Client
	baseURL string
	groupID string
}

// Config carries the Azure AD application credentials and target group.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	GroupID      string
}

// New builds a Graph client authenticating with the client-credentials flow.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.TenantID) == "" || strings.TrimSpace(cfg.ClientID) == "" {
		return nil, fmt.Errorf("aad tenant and client id are required")
	}
	if strings.TrimSpace(cfg.GroupID) == "" {
		return nil, fmt.Errorf("aad group id is required")
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf(tokenURLFormat, url.PathEscape(cfg.TenantID)),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	httpClient := cc.Client(ctx)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		http:    httpClient,
		baseURL: defaultBaseURL,
		groupID: cfg.GroupID,
	}, nil
}

// NewWithHTTP builds a client around an existing HTTP client, used by tests
// and local tooling that bypass Azure AD.
func NewWithHTTP(httpClient *http.Client, baseURL, groupID string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		groupID: groupID,
	}
}

type membersPage struct {
	Value    []members.MemberRecord `json:"value"`
	NextLink string                 `json:"@odata.nextLink"`
}

// ActiveMembers returns the group's current member list, following
// pagination links until the snapshot is complete.
func (c *Client) ActiveMembers(ctx context.Context) ([]members.MemberRecord, error) {
	next := fmt.Sprintf("%s/groups/%s/members?$select=userPrincipalName,displayName&$top=%d",
		c.baseURL, url.PathEscape(c.groupID), pageSize)

	var out []members.MemberRecord
	for next != "" {
		page, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
		next = page.NextLink
	}
	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (membersPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return membersPage{}, fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return membersPage{}, fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return membersPage{}, fmt.Errorf("graph request status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page membersPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return membersPage{}, fmt.Errorf("decode graph response: %w", err)
	}
	return page, nil
}
