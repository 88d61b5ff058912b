package tagmap

import (
	"log/slog"

	"github.com/cloudflare/ahocorasick"
	"github.com/liserjrqlxue/DNA/pkg/util"
)

// tagOrigin records which tag contributed a pattern, directly or as its
// reverse complement.
type tagOrigin struct {
	source string
	rc     bool
}

// CheckTagCollisions reports every tag that occurs inside another tag of the
// same sublibrary, reverse complements included. Combinatorial demultiplexing
// cannot resolve such pools. Returns the collision count.
func (t *Transform) CheckTagCollisions() int {
	var collisions = 0
	for _, key := range t.SortedKeys() {
		var (
			seen = make(map[string]bool)
			tags []string
		)
		for _, record := range t.Sublibraries[key] {
			for _, tag := range []string{record.ForwardTag, record.ReverseTag} {
				if tag == "" || seen[tag] {
					continue
				}
				seen[tag] = true
				tags = append(tags, tag)
			}
		}

		// one dictionary entry per distinct pattern string, each carrying
		// every tag it derives from
		var (
			dict    []string
			origins = make(map[string][]tagOrigin)
		)
		for _, tag := range tags {
			for i, pattern := range []string{tag, util.ReverseComplement(tag)} {
				if _, ok := origins[pattern]; !ok {
					dict = append(dict, pattern)
				}
				origins[pattern] = append(origins[pattern], tagOrigin{source: tag, rc: i == 1})
			}
		}
		var matcher = ahocorasick.NewStringMatcher(dict)

		for _, tag := range tags {
			for _, hit := range matcher.Match([]byte(tag)) {
				var match = dict[hit]
				for _, origin := range origins[match] {
					// a tag and its reverse complement always match
					// themselves
					if origin.source == tag {
						continue
					}
					collisions++
					slog.Warn("tag collision", "sublibrary", key, "tag", tag, "contains", match, "source", origin.source, "rc", origin.rc)
				}
			}
		}
	}
	t.Stats["collisionNum"] = collisions
	return collisions
}
