package hybridrouter

// TOOL_BASE and TEXT_BASE are the fixed suffixes appended to the identity
// preamble for the local targets (§4.5).
const (
	toolBasePrompt = "You have access to a small set of tools. Use them when the user's request requires reading, writing, or running something on their machine. Otherwise respond directly."
	textBasePrompt = "Answer directly and concisely. You have no tools available for this turn."
)

// simplifiedTools is the exhaustive, hard-coded tool table offered to the
// local tool-calling target (§4.5). Order matches the spec table.
var simplifiedTools = []struct {
	name        string
	description string
	required    []string
	properties  map[string]any
}{
	{
		name:        "read",
		description: "Read a file.",
		required:    []string{"path"},
		properties:  map[string]any{"path": map[string]any{"type": "string"}},
	},
	{
		name:        "exec",
		description: "Run a shell command (ls, cat, git, date, echo, etc.).",
		required:    []string{"command"},
		properties:  map[string]any{"command": map[string]any{"type": "string"}},
	},
	{
		name:        "write",
		description: "Write content to a file.",
		required:    []string{"path", "content"},
		properties: map[string]any{
			"path":    map[string]any{"type": "string"},
			"content": map[string]any{"type": "string"},
		},
	},
	{
		name:        "edit",
		description: "Edit a file by replacing text.",
		required:    []string{"path", "oldText", "newText"},
		properties: map[string]any{
			"path":    map[string]any{"type": "string"},
			"oldText": map[string]any{"type": "string"},
			"newText": map[string]any{"type": "string"},
		},
	},
}

// AdaptContext reduces a context to what the target backend can reliably
// handle (§4.5). It never mutates the original context: cloud returns it
// unchanged, and local/local-text build fresh copies.
func AdaptContext(ctx *Context, target Target, identityPreamble string) *Context {
	if ctx == nil {
		ctx = &Context{}
	}

	switch target {
	case TargetCloud:
		return ctx

	case TargetLocalText:
		return &Context{
			Messages:     ctx.Messages,
			Tools:        nil,
			SystemPrompt: joinPreamble(identityPreamble, textBasePrompt),
		}

	case TargetLocal:
		return &Context{
			Messages:     ctx.Messages,
			Tools:        reduceTools(ctx.Tools),
			SystemPrompt: joinPreamble(identityPreamble, toolBasePrompt),
		}

	default:
		return ctx
	}
}

func joinPreamble(preamble, base string) string {
	if preamble == "" {
		return base
	}
	return preamble + " " + base
}

// reduceTools returns a new slice containing, in simplifiedTools order,
// a schema-replaced copy of every original tool whose name appears in the
// simplified table. Tools absent from the original context are never
// fabricated; the result is the intersection.
func reduceTools(original []ToolSchema) []ToolSchema {
	if len(original) == 0 {
		return nil
	}
	byName := make(map[string]ToolSchema, len(original))
	for _, t := range original {
		byName[t.Name] = t
	}

	var out []ToolSchema
	for _, st := range simplifiedTools {
		orig, ok := byName[st.name]
		if !ok {
			continue
		}
		schema := map[string]any{
			"type":       "object",
			"properties": st.properties,
			"required":   st.required,
		}
		out = append(out, ToolSchema{
			Name:        st.name,
			Description: st.description,
			Parameters:  schema,
			InputSchema: schema,
			Execute:     orig.Execute,
		})
	}
	return out
}
