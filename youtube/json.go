package youtube

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// dig walks a decoded JSON value by map keys (string) and slice indexes
// (int), returning nil as soon as a step does not exist.
func dig(v any, keys ...any) any {
	cur := v
	for _, k := range keys {
		switch key := k.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[key]
		case int:
			a, ok := cur.([]any)
			if !ok || key < 0 || key >= len(a) {
				return nil
			}
			cur = a[key]
		}
	}
	return cur
}

func cleanText(v any) string {
	if v == nil {
		return ""
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "<nil>" {
		return ""
	}
	return s
}

// text flattens the formatted-string shapes the API uses: a plain string,
// {"simpleText": ...}, {"runs": [{"text": ...}, ...]} or {"content": ...}.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		if s, ok := t["simpleText"].(string); ok {
			return strings.TrimSpace(s)
		}
		if runs, ok := t["runs"].([]any); ok {
			var b strings.Builder
			for _, r := range runs {
				b.WriteString(cleanText(dig(r, "text")))
			}
			return strings.TrimSpace(b.String())
		}
		if s, ok := t["content"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// firstText returns the first non-empty text among candidates.
func firstText(candidates ...any) string {
	for _, c := range candidates {
		if s := text(c); s != "" {
			return s
		}
	}
	return ""
}

// sortedKeys orders object keys so a walk visits them deterministically.
// "header" goes first so section titles precede their contents.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i] == "header") != (keys[j] == "header") {
			return keys[i] == "header"
		}
		return keys[i] < keys[j]
	})
	return keys
}

// find returns the first value stored under key anywhere below node.
func find(node any, key string) any {
	switch n := node.(type) {
	case map[string]any:
		if v, ok := n[key]; ok {
			return v
		}
		for _, k := range sortedKeys(n) {
			if v := find(n[k], key); v != nil {
				return v
			}
		}
	case []any:
		for _, v := range n {
			if found := find(v, key); found != nil {
				return found
			}
		}
	}
	return nil
}

// continuationToken extracts the token from a continuationItemRenderer.
func continuationToken(m any) string {
	if t := cleanText(dig(m, "continuationEndpoint", "continuationCommand", "token")); t != "" {
		return t
	}
	return cleanText(dig(m, "button", "buttonRenderer", "command", "continuationCommand", "token"))
}

// parseCount reads counts such as "12", "1,204", "3.4K" or "2M".
func parseCount(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case nil:
		return 0
	}
	s := text(v)
	if s == "" {
		s = cleanText(v)
	}
	for _, f := range strings.Fields(strings.ToUpper(strings.ReplaceAll(s, ",", ""))) {
		if n, ok := parseAbbrev(f); ok {
			return n
		}
	}
	return 0
}

func parseAbbrev(s string) (int, bool) {
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		mult, s = 1e3, strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult, s = 1e6, strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "B"):
		mult, s = 1e9, strings.TrimSuffix(s, "B")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f * mult), true
}
