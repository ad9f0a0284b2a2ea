package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrGithubUserNotFound = errors.New("no github profile found")

// GithubService lists a user's public repositories from the GitHub API.
type GithubService struct {
	Token      string
	HTTPClient *http.Client
	Endpoint   string
}

func NewGithubService(token string) *GithubService {
	return &GithubService{
		Token:    strings.TrimSpace(token),
		Endpoint: "https://api.github.com",
		HTTPClient: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

// ListRepos fetches the 5 most recently created public repos for username.
// The upstream payload is relayed verbatim. A non-success upstream status
// means the GitHub user does not exist; transport errors propagate as-is.
func (s *GithubService) ListRepos(ctx context.Context, username string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", s.Endpoint, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if s.Token != "" {
		req.Header.Set("Authorization", "token "+s.Token)
	}

	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrGithubUserNotFound
	}

	var repos json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}
