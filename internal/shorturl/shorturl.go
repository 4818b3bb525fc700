// Package shorturl minifies well-known GitHub URLs through the dolp.in
// redirector for chat-facing output.
package shorturl

import "strings"

const (
	pullPrefix   = "https://github.com/dolphin-emu/dolphin/pull/"
	commitPrefix = "https://github.com/dolphin-emu/dolphin/commit/"
)

// Shorten rewrites pull request and commit URLs to their dolp.in
// equivalents. The empty URL becomes the literal placeholder "<no url>";
// anything unrecognized passes through unchanged.
func Shorten(url string) string {
	switch {
	case url == "":
		return "<no url>"
	case strings.HasPrefix(url, pullPrefix):
		return "https://dolp.in/pr" + strings.TrimPrefix(url, pullPrefix)
	case strings.HasPrefix(url, commitPrefix):
		return "https://dolp.in/r" + strings.TrimPrefix(url, commitPrefix)
	}
	return url
}
