package github

import (
	"net/url"
	"strings"

	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
)

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// ParseGitHubRemoteURL parses a git remote URL and extracts hostname, owner, and repo.
// Examples:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@github.company.com/owner/repo
func ParseGitHubRemoteURL(remote, remoteURL string) (*RepoInfo, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(remoteURL), "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	var hostname, path string
	switch {
	case strings.Contains(trimmed, "://"):
		// https://hostname/owner/repo or ssh://git@hostname/owner/repo
		rest := trimmed[strings.Index(trimmed, "://")+3:]
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		hostAndPath := strings.SplitN(rest, "/", 2)
		if len(hostAndPath) != 2 {
			return nil, stacktrackerrors.NewRemoteConfigError(remote, remoteURL, "missing owner/repo path")
		}
		hostname, path = hostAndPath[0], hostAndPath[1]
	case strings.Contains(trimmed, "@") && strings.Contains(trimmed, ":"):
		// git@hostname:owner/repo
		rest := trimmed[strings.Index(trimmed, "@")+1:]
		hostAndPath := strings.SplitN(rest, ":", 2)
		hostname, path = hostAndPath[0], hostAndPath[1]
	default:
		return nil, stacktrackerrors.NewRemoteConfigError(remote, remoteURL, "not a GitHub remote URL")
	}

	// strip a port from the hostname
	hostname = strings.SplitN(hostname, ":", 2)[0]

	parts := strings.Split(path, "/")
	if len(parts) != 2 || hostname == "" || parts[0] == "" || parts[1] == "" {
		return nil, stacktrackerrors.NewRemoteConfigError(remote, remoteURL, "path must be owner/repo")
	}

	return &RepoInfo{
		Hostname: hostname,
		Owner:    parts[0],
		Repo:     parts[1],
	}, nil
}

// DefaultHost is the hostname of github.com remotes
const DefaultHost = "github.com"

// ParseRemoteForAPI parses remoteURL and requires it to point at github.com or
// at the host serving apiURL, so pull requests never land on a same-named
// repository of another host.
func ParseRemoteForAPI(remote, remoteURL, apiURL string) (*RepoInfo, error) {
	info, err := ParseGitHubRemoteURL(remote, remoteURL)
	if err != nil {
		return nil, err
	}

	host := strings.ToLower(info.Hostname)
	if host == DefaultHost {
		return info, nil
	}
	if api, err := url.Parse(apiURL); err == nil && api.Hostname() != "" && strings.EqualFold(api.Hostname(), host) {
		return info, nil
	}
	return nil, stacktrackerrors.NewRemoteConfigError(remote, remoteURL, "host "+info.Hostname+" is not a known GitHub host")
}
