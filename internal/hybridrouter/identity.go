package hybridrouter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Identity workspace file names (§4.6). Conventions, not guarantees: all
// three are optional.
const (
	identityFileName    = "IDENTITY.md"
	personalityFileName = "PERSONALITY.md"
	userProfileFileName = "USER.md"
)

var boldLabelRe = regexp.MustCompile(`(?m)^\s*\*\*([^*:]+):\*\*\s*(.+?)\s*$`)

// identityFacts is the parsed content of the three optional workspace
// files, extracted once at wrapper construction.
type identityFacts struct {
	name        string
	fullName    string
	vibe        string
	directives  []string
	addressedAs string
}

// BuildIdentityPreamble reads up to three workspace files and composes the
// local-target system prompt preamble (§4.6). Missing files degrade
// gracefully; with no name at all the preamble falls back to a plain
// generic line.
func BuildIdentityPreamble(workspace string) string {
	facts := identityFacts{}

	if body, ok := readWorkspaceFile(workspace, identityFileName); ok {
		labels := extractBoldLabels(body)
		facts.name = labels["name"]
		facts.fullName = labels["full name"]
		facts.vibe = labels["vibe"]
	}

	if body, ok := readWorkspaceFile(workspace, personalityFileName); ok {
		facts.directives = extractDirectives(body, 4, 80)
	}

	if body, ok := readWorkspaceFile(workspace, userProfileFileName); ok {
		labels := extractBoldLabels(body)
		facts.addressedAs = firstNonEmpty(labels["what to call them"], labels["name"])
	}

	return facts.preamble()
}

func (f identityFacts) preamble() string {
	if f.name == "" {
		return "You are a helpful AI assistant."
	}

	full := f.fullName
	if full == "" {
		full = f.name
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s (%s), a helpful AI assistant.", f.name, full)

	user := f.addressedAs
	if user == "" {
		user = "the user"
	}
	sb.WriteString(fmt.Sprintf(" You are assisting %s.", user))

	if f.vibe != "" {
		sb.WriteString(fmt.Sprintf(" Your vibe: %s.", f.vibe))
	}
	for _, d := range f.directives {
		sb.WriteString(" " + strings.TrimRight(d, ".") + ".")
	}

	sb.WriteString(fmt.Sprintf(" Never say you are GPT, Claude, Gemini, Llama, or any other model. You are only %s.", f.name))

	return sb.String()
}

func readWorkspaceFile(workspace, name string) (string, bool) {
	if workspace == "" {
		return "", false
	}
	data, err := os.ReadFile(filepath.Join(workspace, name))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// extractBoldLabels parses `**Label:** value` lines into a lowercased-key
// map.
func extractBoldLabels(body string) map[string]string {
	out := map[string]string{}
	for _, m := range boldLabelRe.FindAllStringSubmatch(body, -1) {
		key := strings.ToLower(strings.TrimSpace(m[1]))
		out[key] = strings.TrimSpace(m[2])
	}
	return out
}

// extractDirectives returns up to max bolded-label values shorter than
// maxLen characters, in file order.
func extractDirectives(body string, max, maxLen int) []string {
	var out []string
	for _, m := range boldLabelRe.FindAllStringSubmatch(body, -1) {
		val := strings.TrimSpace(m[2])
		if val == "" || len(val) >= maxLen {
			continue
		}
		out = append(out, val)
		if len(out) == max {
			break
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
