package images

// Merge returns apiImages unchanged followed by every scraped image not already present.
// API images are structured data and always keep their position.
func Merge(apiImages, scrapedImages []string) []string {
	out := make([]string, 0, len(apiImages)+len(scrapedImages))
	out = append(out, apiImages...)

	seen := make(map[string]struct{}, cap(out))
	for _, u := range apiImages {
		seen[u] = struct{}{}
	}

	for _, u := range scrapedImages {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}

	return out
}
