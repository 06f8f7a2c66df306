package navconfig

import (
	"sort"
	"strings"
)

// knownIcons are the social icon identifiers the documentation theme ships.
var knownIcons = map[string]struct{}{
	"azureDevOps":    {},
	"bitbucket":      {},
	"blueSky":        {},
	"codePen":        {},
	"codeberg":       {},
	"discord":        {},
	"discourse":      {},
	"email":          {},
	"facebook":       {},
	"farcaster":      {},
	"github":         {},
	"gitlab":         {},
	"gitter":         {},
	"hackerOne":      {},
	"instagram":      {},
	"linkedin":       {},
	"mastodon":       {},
	"matrix":         {},
	"microsoftTeams": {},
	"nostr":          {},
	"npm":            {},
	"openCollective": {},
	"patreon":        {},
	"pinterest":      {},
	"reddit":         {},
	"rss":            {},
	"signal":         {},
	"slack":          {},
	"sourcehut":      {},
	"stackOverflow":  {},
	"substack":       {},
	"telegram":       {},
	"threads":        {},
	"tiktok":         {},
	"twitch":         {},
	"twitter":        {},
	"x.com":          {},
	"youtube":        {},
	"zulip":          {},
}

// KnownIcon reports whether name is a built-in social icon.
func KnownIcon(name string) bool {
	_, ok := knownIcons[strings.TrimSpace(name)]
	return ok
}

// Icons returns the built-in icon identifiers sorted by name.
func Icons() []string {
	out := make([]string, 0, len(knownIcons))
	for name := range knownIcons {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func iconSet(extra []string) map[string]struct{} {
	out := make(map[string]struct{}, len(knownIcons)+len(extra))
	for name := range knownIcons {
		out[name] = struct{}{}
	}
	for _, name := range extra {
		name = strings.TrimSpace(name)
		if name != "" {
			out[name] = struct{}{}
		}
	}
	return out
}
