package output

import (
	"net/url"
	"strconv"
	"strings"

	"stacktrack.dev/stacktrack/internal/engine"
)

const shortSHALength = 7

// StackTreeRenderer renders the tracked tree from its root downwards
type StackTreeRenderer struct {
	currentBranch string
	root          string
	getChildren   func(branchName string) []string
	getNode       func(branchName string) (engine.Node, bool)
}

// NewStackTreeRenderer creates a renderer driven by lookup callbacks
func NewStackTreeRenderer(
	currentBranch string,
	root string,
	getChildren func(branchName string) []string,
	getNode func(branchName string) (engine.Node, bool),
) *StackTreeRenderer {
	return &StackTreeRenderer{
		currentBranch: currentBranch,
		root:          root,
		getChildren:   getChildren,
		getNode:       getNode,
	}
}

// RenderGraph renders every tracked branch, marking active as the current one
func RenderGraph(g *engine.Graph, active string) []string {
	root, ok := g.Root()
	if !ok {
		return nil
	}
	return NewStackTreeRenderer(active, root, g.Children, g.Node).Render()
}

// Render returns one line per branch
func (r *StackTreeRenderer) Render() []string {
	lines := []string{r.branchLine(r.root)}
	return r.appendChildren(lines, r.root, "")
}

func (r *StackTreeRenderer) appendChildren(lines []string, branchName, prefix string) []string {
	children := r.getChildren(branchName)
	for i, child := range children {
		connector, indent := "├── ", "│   "
		if i == len(children)-1 {
			connector, indent = "└── ", "    "
		}
		lines = append(lines, prefix+ColorDim(connector)+r.branchLine(child))
		lines = r.appendChildren(lines, child, prefix+ColorDim(indent))
	}
	return lines
}

func (r *StackTreeRenderer) branchLine(branchName string) string {
	isCurrent := branchName == r.currentBranch

	symbol := "◯"
	if isCurrent {
		symbol = "◉"
	}

	parts := []string{symbol, ColorBranchName(branchName, isCurrent)}
	if node, ok := r.getNode(branchName); ok {
		if node.SHA != "" {
			parts = append(parts, ColorSHA(ShortSHA(node.SHA)))
		}
		if node.PullURL != "" {
			parts = append(parts, formatPullRef(node.PullURL))
		}
	}
	return strings.Join(parts, " ")
}

// ShortSHA truncates a commit id for display
func ShortSHA(sha string) string {
	if len(sha) > shortSHALength {
		return sha[:shortSHALength]
	}
	return sha
}

// PullNumber extracts the pull request number from an API or web URL
func PullNumber(pullURL string) (int, bool) {
	u, err := url.Parse(pullURL)
	if err != nil {
		return 0, false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return 0, false
	}
	kind := segments[len(segments)-2]
	if kind != "pulls" && kind != "pull" {
		return 0, false
	}
	number, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil || number <= 0 {
		return 0, false
	}
	return number, true
}

func formatPullRef(pullURL string) string {
	if number, ok := PullNumber(pullURL); ok {
		return ColorPRNumber(number)
	}
	return ColorDim(pullURL)
}
