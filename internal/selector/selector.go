// Package selector applies recursive/exact-match filtering over a bucket listing.
package selector

import (
	"strings"

	"github.com/infraops/gscp/gscptypes"
)

// Select filters a listing down to the objects a copy run should download,
// preserving listing order.
//
// Without recursive, only an object whose key equals the prefix exactly is
// kept; a prefix that does not name a concrete object yields an empty result
// even when deeper keys share the literal string.
//
// With recursive, every object whose key starts with the prefix as a raw
// string is kept, so prefix "a" matches both "a/1.txt" and "a2/2.txt". The
// sibling leakage is deliberate, long-standing behavior; pathBoundary opts
// into matching whole path segments instead.
func Select(objects []gscptypes.RemoteObject, prefix string, recursive, pathBoundary bool) []gscptypes.RemoteObject {
	var selected []gscptypes.RemoteObject
	for _, obj := range objects {
		if matches(obj.Key, prefix, recursive, pathBoundary) {
			selected = append(selected, obj)
		}
	}
	return selected
}

func matches(key, prefix string, recursive, pathBoundary bool) bool {
	if !recursive {
		return key == prefix
	}
	if pathBoundary {
		return matchesBoundary(key, prefix)
	}
	return strings.HasPrefix(key, prefix)
}

// matchesBoundary keeps the key naming the prefix itself plus everything
// under it as a directory-like subtree.
func matchesBoundary(key, prefix string) bool {
	if prefix == "" || key == prefix {
		return true
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(key, prefix)
}
