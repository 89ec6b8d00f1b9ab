package hybridrouter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildIdentityPreamble_NoFiles(t *testing.T) {
	preamble := BuildIdentityPreamble(t.TempDir())
	assert.Equal(t, "You are a helpful AI assistant.", preamble)
}

func TestBuildIdentityPreamble_MissingWorkspace(t *testing.T) {
	preamble := BuildIdentityPreamble("")
	assert.Equal(t, "You are a helpful AI assistant.", preamble)
}

func TestBuildIdentityPreamble_FullProfile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, identityFileName, "**Name:** Flynn\n**Full Name:** Flynn Assistant\n**Vibe:** upbeat and direct\n")
	writeFile(t, dir, personalityFileName, "**Directive:** Be concise\n**Directive:** Always confirm destructive actions\n")
	writeFile(t, dir, userProfileFileName, "**What to call them:** Sam\n")

	preamble := BuildIdentityPreamble(dir)

	assert.Contains(t, preamble, "You are Flynn (Flynn Assistant)")
	assert.Contains(t, preamble, "You are assisting Sam.")
	assert.Contains(t, preamble, "Your vibe: upbeat and direct.")
	assert.Contains(t, preamble, "Be concise.")
	assert.Contains(t, preamble, "Always confirm destructive actions.")
	assert.Contains(t, preamble, "You are only Flynn.")
}

func TestBuildIdentityPreamble_FallsBackToName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, identityFileName, "**Name:** Nova\n")

	preamble := BuildIdentityPreamble(dir)
	assert.Contains(t, preamble, "You are Nova (Nova)")
	assert.Contains(t, preamble, "You are assisting the user.")
}

func TestBuildIdentityPreamble_DirectiveLengthAndCountLimits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, identityFileName, "**Name:** Flynn\n")
	longDirective := "This directive is intentionally far longer than eighty characters so it must be dropped entirely"
	writeFile(t, dir, personalityFileName,
		"**D1:** one\n**D2:** two\n**D3:** three\n**D4:** four\n**D5:** five\n**D6:** "+longDirective+"\n")

	preamble := BuildIdentityPreamble(dir)
	assert.NotContains(t, preamble, longDirective)
	assert.Contains(t, preamble, "one.")
	assert.Contains(t, preamble, "four.")
	assert.NotContains(t, preamble, "five.")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	if require != nil {
		t.Fatalf("write %s: %v", name, require)
	}
}
