package dossier

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/caseops/casectl/pkg/records"
)

// Render formats a dossier payload for terminal display. Profiles are
// grouped by the registered domain of their URL; note bodies are flattened
// to plain text.
func Render(data []byte) string {
	root := gjson.ParseBytes(data)
	var b strings.Builder

	person := root.Get("person")
	name := firstNonEmpty(
		person.Get("full_name").String(),
		person.Get("name").String(),
		strings.TrimSpace(person.Get("first_name").String()+" "+person.Get("last_name").String()),
	)
	fmt.Fprintf(&b, "Person %s", person.Get("id").String())
	if name != "" {
		fmt.Fprintf(&b, " — %s", name)
	}
	if status := person.Get("status").String(); status != "" {
		fmt.Fprintf(&b, " (%s)", status)
	}
	b.WriteString("\n")

	if profiles := root.Get("profiles"); profiles.IsArray() {
		b.WriteString("\nProfiles:\n")
		sites, groups := groupProfiles(profiles)
		for _, site := range sites {
			fmt.Fprintf(&b, "  %s\n", site)
			for _, line := range groups[site] {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}

	if notes := root.Get("notes"); notes.IsArray() {
		b.WriteString("\nNotes:\n")
		notes.ForEach(func(_, n gjson.Result) bool {
			stamp := firstNonEmpty(n.Get("created_at").String(), n.Get("date").String())
			text := StripHTML(firstNonEmpty(n.Get("body").String(), n.Get("text").String(), n.Get("content").String()))
			if stamp != "" {
				fmt.Fprintf(&b, "  [%s] %s\n", stamp, text)
			} else {
				fmt.Fprintf(&b, "  %s\n", text)
			}
			return true
		})
	}

	if activities := root.Get("activities"); activities.IsArray() {
		b.WriteString("\nActivities:\n")
		activities.ForEach(func(_, a gjson.Result) bool {
			stamp := firstNonEmpty(a.Get("occurred_at").String(), a.Get("timestamp").String())
			desc := firstNonEmpty(a.Get("description").String(), a.Get("action").String(), a.Get("type").String())
			fmt.Fprintf(&b, "  [%s] %s\n", stamp, desc)
			return true
		})
	}

	return b.String()
}

// groupProfiles buckets profile lines under their registered domain,
// keeping first-seen site order.
func groupProfiles(profiles gjson.Result) ([]string, map[string][]string) {
	var sites []string
	groups := make(map[string][]string)
	profiles.ForEach(func(_, p gjson.Result) bool {
		u := firstNonEmpty(p.Get("url").String(), p.Get("profile_url").String())
		site, ok := records.RegisteredDomain(u)
		if !ok {
			site = firstNonEmpty(p.Get("platform").String(), "other")
		}
		line := u
		if username := p.Get("username").String(); username != "" {
			line = fmt.Sprintf("%s (%s)", u, username)
		}
		if _, seen := groups[site]; !seen {
			sites = append(sites, site)
		}
		groups[site] = append(groups[site], line)
		return true
	})
	return sites, groups
}

// StripHTML flattens HTML note bodies into plain text; non-HTML strings
// pass through untouched.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
