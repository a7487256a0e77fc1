package main

import (
	"strings"
)

// matchesTags applies the tag criteria of a filter to one entry.
func matchesTags(videoTags, filterTags []string, mode string) bool {
	if len(filterTags) == 0 {
		return true
	}

	has := func(tag string) bool {
		for _, t := range videoTags {
			if strings.EqualFold(t, tag) {
				return true
			}
		}
		return false
	}

	if mode == "all" {
		// Must carry ALL tags (AND logic)
		for _, tag := range filterTags {
			if !has(tag) {
				return false
			}
		}
		return true
	}

	// Default: ANY tag matches (OR logic)
	for _, tag := range filterTags {
		if has(tag) {
			return true
		}
	}
	return false
}

// FilterVideos applies non-semantic criteria to a collection, preserving
// the incoming (most-recent-first) order.
func FilterVideos(videos []Video, filter VideoFilter) []Video {
	results := []Video{}

	for _, v := range videos {
		if filter.Category != "" && !strings.EqualFold(v.Category, filter.Category) {
			continue
		}
		if filter.DownloadableOnly && !v.IsDownloadable {
			continue
		}
		if !matchesTags(v.Tags, filter.Tags, filter.TagFilterMode) {
			continue
		}

		results = append(results, v)
		if filter.MaxResults > 0 && len(results) >= filter.MaxResults {
			break
		}
	}

	return results
}

// RelatedVideos returns every entry except the one with the given id,
// preserving most-recent-first order. Mirrors the watch page's related
// list: everything else in the catalog.
func RelatedVideos(videos []Video, id string) []Video {
	related := make([]Video, 0, len(videos))
	for _, v := range videos {
		if v.ID != id {
			related = append(related, v)
		}
	}
	return related
}
