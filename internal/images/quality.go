package images

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var sizePattern = regexp.MustCompile(`(\d+)x(\d+)`)

// size suffixes in priority order, first match wins
var sizeSuffixes = []struct {
	marker string
	points int
}{
	{"_ex", 100},
	{"_l", 80},
	{"_m", 60},
	{"_s", 40},
	{"_t", 20},
}

// QualityScore ranks an image URL by the size hints embedded in it.
// It is an ordering signal only; it says nothing about real pixel dimensions.
func QualityScore(imageURL string) int {
	score := 0

	for _, s := range sizeSuffixes {
		if strings.Contains(imageURL, s.marker) {
			score += s.points
			break
		}
	}

	if m := sizePattern.FindStringSubmatch(imageURL); m != nil {
		score += dimensionPoints(m[1], m[2])
	}

	if strings.Contains(imageURL, "main") {
		score += 50
	}
	if strings.Contains(imageURL, "01") || strings.Contains(imageURL, "_1") {
		score += 30
	}

	return score
}

// dimensionPoints is min(w*h/1000, 100), saturating when the product overflows
func dimensionPoints(w, h string) int {
	width, errW := strconv.ParseUint(w, 10, 64)
	height, errH := strconv.ParseUint(h, 10, 64)
	// only ErrRange is possible for digit strings, so a failed parse is a huge value
	if (errW == nil && width == 0) || (errH == nil && height == 0) {
		return 0
	}
	if errW != nil || errH != nil || height > math.MaxUint64/width {
		return 100
	}
	return int(min(width*height/1000, 100))
}
