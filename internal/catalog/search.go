package catalog

import "strings"

// SearchCities ranks cities against a free-text query (§4.2):
//  1. exact match on name or a synonym
//  2. administrative full-format match
//  3. district (rayon) match
//  4. subject/region match
//
// An empty query returns no results. Results are deduplicated by identity
// and, within a rank bucket, ordered by ascending identifier for
// determinism (SPEC_FULL.md).
func (c *Catalog) SearchCities(query string) []City {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	buckets := [4]map[string]City{
		0: {}, 1: {}, 2: {}, 3: {},
	}
	seen := make(map[string]bool)

	for _, id := range c.cityOrder {
		city := c.cities[id]
		if seen[id] {
			continue
		}
		if city.NormalizedName == q || containsSynonym(city.Synonyms, q) {
			buckets[0][id] = city
			seen[id] = true
			continue
		}
		if strings.ToLower(city.Admin.Names.Full) == q {
			buckets[1][id] = city
			seen[id] = true
			continue
		}
		if city.Admin.Rayon != "" && strings.ToLower(city.Admin.Rayon) == q {
			buckets[2][id] = city
			seen[id] = true
			continue
		}
		if strings.ToLower(city.Admin.Subject) == q {
			buckets[3][id] = city
			seen[id] = true
		}
	}

	var out []City
	for _, bucket := range buckets {
		out = append(out, sortedCities(bucket)...)
	}
	return out
}

func containsSynonym(synonyms []string, q string) bool {
	for _, s := range synonyms {
		if strings.ToLower(s) == q {
			return true
		}
	}
	return false
}

func sortedCities(bucket map[string]City) []City {
	ids := make([]string, 0, len(bucket))
	for id := range bucket {
		ids = append(ids, id)
	}
	// Simple insertion sort: bucket sizes are small (a handful of matches).
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	out := make([]City, 0, len(ids))
	for _, id := range ids {
		out = append(out, bucket[id])
	}
	return out
}
