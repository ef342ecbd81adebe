package github

import (
	"context"
	"fmt"
	"strings"
)

// GHRunner runs the gh CLI
type GHRunner interface {
	RunGH(ctx context.Context, args ...string) (string, error)
}

// ResolveToken returns configured when set, otherwise asks gh for its token
func ResolveToken(ctx context.Context, configured string, gh GHRunner) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if gh == nil {
		return "", fmt.Errorf("no GitHub token: set GITHUB_TOKEN")
	}

	output, err := gh.RunGH(ctx, "auth", "token")
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token: %w", err)
	}

	token := strings.TrimSpace(output)
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}
	return token, nil
}
