// Package clark handles the compact {uri}localName namespace notation
// (Clark notation) embedded in query strings.
package clark

import "strings"

// Rewrite replaces every {uri} occurrence in q with "prefix:", where
// the prefix is obtained from alloc. The URI is everything up to the
// first closing brace. An opening brace with no closing brace is not
// notation; the remainder of the string is passed through untouched.
func Rewrite(q string, alloc func(uri string) string) string {
	if !strings.ContainsRune(q, '{') {
		return q
	}

	var sb strings.Builder
	sb.Grow(len(q))
	for {
		open := strings.IndexByte(q, '{')
		if open < 0 {
			sb.WriteString(q)
			break
		}
		close := strings.IndexByte(q[open:], '}')
		if close < 0 {
			sb.WriteString(q)
			break
		}
		close += open

		sb.WriteString(q[:open])
		sb.WriteString(alloc(q[open+1 : close]))
		sb.WriteByte(':')
		q = q[close+1:]
	}
	return sb.String()
}

// URIs returns the distinct URIs referenced by q in first-seen order,
// without rewriting anything.
func URIs(q string) []string {
	var uris []string
	seen := make(map[string]struct{})
	Rewrite(q, func(uri string) string {
		if _, ok := seen[uri]; !ok {
			seen[uri] = struct{}{}
			uris = append(uris, uri)
		}
		return ""
	})
	return uris
}
