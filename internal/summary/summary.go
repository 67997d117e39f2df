package summary

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ectool/lpscorer/internal/lpscore"
	"github.com/ectool/lpscorer/internal/models"
)

// Summary aggregates a set of stored score records
type Summary struct {
	TotalRecords int `json:"totalRecords" yaml:"totalRecords"`

	// Overall
	AverageOverall float64 `json:"averageOverall" yaml:"averageOverall"`
	MinOverall     float64 `json:"minOverall" yaml:"minOverall"`
	MaxOverall     float64 `json:"maxOverall" yaml:"maxOverall"`

	// Per rubric category, in rubric order followed by any others the model named
	Categories []CategoryStats `json:"categories" yaml:"categories"`

	// Images
	ImagesAnalyzed     int     `json:"imagesAnalyzed" yaml:"imagesAnalyzed"`
	AverageImageScore  float64 `json:"averageImageScore" yaml:"averageImageScore"`
	RecordsWithoutImgs int     `json:"recordsWithoutImages" yaml:"recordsWithoutImages"`

	// Metadata
	Providers   map[string]int `json:"providers" yaml:"providers"`
	GeneratedAt time.Time      `json:"generatedAt" yaml:"generatedAt"`
}

// CategoryStats contains statistics for a single rubric category
type CategoryStats struct {
	Category     string      `json:"category" yaml:"category"`
	Count        int         `json:"count" yaml:"count"`
	AverageScore float64     `json:"averageScore" yaml:"averageScore"`
	Distribution map[int]int `json:"distribution" yaml:"distribution"`
}

// Aggregate computes a Summary over records
func Aggregate(records []*models.ScoreRecord) *Summary {
	s := &Summary{
		TotalRecords: len(records),
		Categories:   []CategoryStats{},
		Providers:    map[string]int{},
		GeneratedAt:  time.Now().UTC(),
	}

	byCategory := map[string]*CategoryStats{}
	sums := map[string]int{}
	var overall []float64
	imageTotal := 0

	for _, r := range records {
		if r == nil {
			continue
		}
		s.Providers[r.Provider]++
		overall = append(overall, r.Score.OverallScore)

		for _, cs := range r.Score.Scores {
			stats, ok := byCategory[cs.Category]
			if !ok {
				stats = &CategoryStats{Category: cs.Category, Distribution: map[int]int{}}
				byCategory[cs.Category] = stats
			}
			stats.Count++
			stats.Distribution[cs.Score]++
			sums[cs.Category] += cs.Score
		}

		if len(r.Score.ImageAnalysis) == 0 {
			s.RecordsWithoutImgs++
		}
		for _, ia := range r.Score.ImageAnalysis {
			s.ImagesAnalyzed++
			imageTotal += ia.Score
		}
	}

	if len(overall) > 0 {
		s.AverageOverall = calculateAverage(overall)
		s.MinOverall, s.MaxOverall = overall[0], overall[0]
		for _, v := range overall[1:] {
			s.MinOverall = min(s.MinOverall, v)
			s.MaxOverall = max(s.MaxOverall, v)
		}
	}
	if s.ImagesAnalyzed > 0 {
		s.AverageImageScore = float64(imageTotal) / float64(s.ImagesAnalyzed)
	}

	for name, stats := range byCategory {
		stats.AverageScore = float64(sums[name]) / float64(stats.Count)
	}
	s.Categories = orderCategories(byCategory)

	return s
}

// orderCategories returns rubric categories first, then unknown names alphabetically
func orderCategories(byCategory map[string]*CategoryStats) []CategoryStats {
	out := make([]CategoryStats, 0, len(byCategory))
	known := map[string]bool{}
	for _, name := range lpscore.Categories {
		known[name] = true
		if stats, ok := byCategory[name]; ok {
			out = append(out, *stats)
		}
	}

	var extra []string
	for name := range byCategory {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, *byCategory[name])
	}
	return out
}

func calculateAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}

	return sum / float64(len(scores))
}

// Print writes a human-readable summary
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintln(w, "LP SCORE SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Generated: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Records: %d\n", s.TotalRecords)
	if s.TotalRecords == 0 {
		fmt.Fprintln(w, strings.Repeat("=", 70))
		return
	}

	providers := make([]string, 0, len(s.Providers))
	for p := range s.Providers {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	for _, p := range providers {
		fmt.Fprintf(w, "  %s: %d\n", p, s.Providers[p])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OVERALL")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Average: %.2f (min %.1f, max %.1f)\n", s.AverageOverall, s.MinOverall, s.MaxOverall)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CATEGORIES")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, c := range s.Categories {
		fmt.Fprintf(w, "%-28s %.2f  %s\n", c.Category, c.AverageScore, histogram(c.Distribution))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "IMAGES")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Analyzed: %d  Average score: %.2f  Records without images: %d\n",
		s.ImagesAnalyzed, s.AverageImageScore, s.RecordsWithoutImgs)
	fmt.Fprintln(w, strings.Repeat("=", 70))
}

// histogram renders counts for scores 1 through 5, e.g. "1:0 2:1 3:4 4:2 5:0"
func histogram(dist map[int]int) string {
	parts := make([]string, 0, lpscore.MaxScore)
	for v := lpscore.MinScore; v <= lpscore.MaxScore; v++ {
		parts = append(parts, fmt.Sprintf("%d:%d", v, dist[v]))
	}
	return strings.Join(parts, " ")
}
