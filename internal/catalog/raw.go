package catalog

import "strings"

// RawContentURL rewrites a GitHub web URL to its raw-content equivalent so
// the link serves file bytes instead of the repository page.
//
// github.com/{owner}/{repo}/blob/{ref}/{path} becomes
// raw.githubusercontent.com/{owner}/{repo}/{ref}/{path}. URLs on other
// hosts are returned unchanged.
func RawContentURL(u string) string {
	if !strings.Contains(u, "github.com/") {
		return u
	}
	out := strings.Replace(u, "github.com/", "raw.githubusercontent.com/", 1)
	return strings.Replace(out, "/blob/", "/", 1)
}
