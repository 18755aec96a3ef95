package renderers

import (
	"regexp"
	"strings"
	"time"
)

var (
	bodyTagRe = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

// cleanHTML strips rich-text markup down to plain text. Asana notes arrive
// wrapped in a <body> element; anything fancier than simple tags is not
// expected.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	s = bodyTagRe.ReplaceAllString(s, "$1")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	).Replace(s)
	return strings.TrimSpace(s)
}

// formatDate renders an ISO timestamp or date as "January 2, 2006",
// falling back to def when empty or unparseable.
func formatDate(raw any, def string) string {
	s, _ := raw.(string)
	if s == "" {
		return def
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return def
}

// joinNames renders the name fields of a list of nested entities as a
// natural-language enumeration, or def when the list is empty.
func joinNames(entities []map[string]any, def string) string {
	var names []string
	for _, e := range entities {
		if name, _ := e["name"].(string); name != "" {
			names = append(names, name)
		} else {
			names = append(names, "Unknown")
		}
	}
	return joinList(names, def)
}

func joinList(names []string, def string) string {
	switch len(names) {
	case 0:
		return def
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return joinList(quoted, "")
}

// str returns fields[key] as a string, "" when absent or another type.
func str(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

// strOr returns fields[key] as a string, def when absent or empty.
func strOr(fields map[string]any, key, def string) string {
	if s := str(fields, key); s != "" {
		return s
	}
	return def
}

// obj returns fields[key] as a nested object, nil when absent or another
// type (including JSON null).
func obj(fields map[string]any, key string) map[string]any {
	m, _ := fields[key].(map[string]any)
	return m
}

// objName returns the name of the nested object at key, def when missing.
func objName(fields map[string]any, key, def string) string {
	if m := obj(fields, key); m != nil {
		if name, _ := m["name"].(string); name != "" {
			return name
		}
	}
	return def
}

// objs returns fields[key] as a list of nested objects.
func objs(fields map[string]any, key string) []map[string]any {
	raw, _ := fields[key].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// boolean returns fields[key] as a bool, false when absent.
func boolean(fields map[string]any, key string) bool {
	b, _ := fields[key].(bool)
	return b
}

// number returns fields[key] as a float64 plus whether it was present.
// JSON decoding produces float64 for all numerics.
func number(fields map[string]any, key string) (float64, bool) {
	n, ok := fields[key].(float64)
	return n, ok
}

// plural appends "s" when n is not one.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
