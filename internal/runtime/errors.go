package runtime

import "errors"

var errNoGitHubClient = errors.New("no GitHub client configured")
