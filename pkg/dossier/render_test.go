package dossier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderGroupsProfilesByDomain(t *testing.T) {
	data := []byte(`{
		"person": {"id": "42", "full_name": "Jane Doe", "status": "active"},
		"profiles": [
			{"url": "https://www.facebook.com/jane.doe", "username": "jane.doe"},
			{"url": "https://twitter.com/jdoe"},
			{"url": "https://m.facebook.com/jane.alt"},
			{"platform": "darkweb"}
		],
		"notes": [
			{"created_at": "2024-03-01", "body": "<p>Seen near the <b>harbor</b></p>"}
		],
		"activities": [
			{"occurred_at": "2024-03-02T10:00:00Z", "description": "Checked in"}
		]
	}`)

	out := Render(data)

	assert.Contains(t, out, "Person 42 — Jane Doe (active)")

	// Both facebook profiles land under one site heading, first-seen order.
	assert.Contains(t, out, "facebook.com\n")
	assert.Contains(t, out, "https://www.facebook.com/jane.doe (jane.doe)")
	assert.Contains(t, out, "https://m.facebook.com/jane.alt")
	assert.Less(t, strings.Index(out, "facebook.com"), strings.Index(out, "twitter.com"))

	// Profiles without a usable URL fall back to their platform name.
	assert.Contains(t, out, "darkweb")

	// HTML note bodies come out as plain text.
	assert.Contains(t, out, "[2024-03-01] Seen near the harbor")
	assert.NotContains(t, out, "<p>")

	assert.Contains(t, out, "[2024-03-02T10:00:00Z] Checked in")
}

func TestStripHTMLPassThrough(t *testing.T) {
	assert.Equal(t, "plain text", StripHTML("plain text"))
	assert.Equal(t, "a b c", StripHTML("<div>a<br>b <span>c</span></div>"))
}
