package rakuten

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrSchemaViolation is matched by every *SchemaViolationError
var ErrSchemaViolation = errors.New("marketplace response violates schema")

// SchemaViolationError names the item and field that failed validation
type SchemaViolationError struct {
	Field      string
	Constraint string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("invalid search response at %s: %s", e.Field, e.Constraint)
}

// Is reports whether target is ErrSchemaViolation
func (e *SchemaViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

// Item is a search result in the shape served to clients
type Item struct {
	Name          string   `json:"name" yaml:"name"`
	URL           string   `json:"url" yaml:"url"`
	Price         int      `json:"price" yaml:"price"`
	ReviewCount   int      `json:"reviewCount" yaml:"reviewCount"`
	ReviewAverage *float64 `json:"reviewAverage,omitempty" yaml:"reviewAverage,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Catchcopy     string   `json:"catchcopy,omitempty" yaml:"catchcopy,omitempty"`
	Image         string   `json:"image,omitempty" yaml:"image,omitempty"`
	Images        []string `json:"images" yaml:"images"`
	Shop          string   `json:"shop" yaml:"shop"`
}

// SearchResult is the response of a search call
type SearchResult struct {
	Items []Item `json:"items" yaml:"items"`
	Total int    `json:"total" yaml:"total"`
}

// searchResponse mirrors the Ichiba item search payload (formatVersion 1).
// Pointers distinguish missing fields from zero values.
type searchResponse struct {
	Items []struct {
		Item *rawItem `json:"Item"`
	} `json:"Items"`
}

type rawItem struct {
	ItemName        *string    `json:"itemName"`
	ItemURL         *string    `json:"itemUrl"`
	ItemPrice       *float64   `json:"itemPrice"`
	ReviewCount     *float64   `json:"reviewCount"`
	ReviewAverage   *float64   `json:"reviewAverage"`
	ItemCaption     *string    `json:"itemCaption"`
	Catchcopy       *string    `json:"catchcopy"`
	MediumImageURLs []rawImage `json:"mediumImageUrls"`
	ShopName        *string    `json:"shopName"`
}

type rawImage struct {
	ImageURL *string `json:"imageUrl"`
}

func (r *searchResponse) validate() error {
	if r.Items == nil {
		return &SchemaViolationError{Field: "Items", Constraint: "is required"}
	}
	for i, entry := range r.Items {
		prefix := fmt.Sprintf("Items[%d].Item", i)
		if entry.Item == nil {
			return &SchemaViolationError{Field: prefix, Constraint: "is required"}
		}
		if err := entry.Item.validate(prefix); err != nil {
			return err
		}
	}
	return nil
}

func (it *rawItem) validate(prefix string) error {
	required := []struct {
		field string
		ok    bool
	}{
		{"itemName", it.ItemName != nil},
		{"itemUrl", it.ItemURL != nil},
		{"itemPrice", it.ItemPrice != nil},
		{"reviewCount", it.ReviewCount != nil},
		{"shopName", it.ShopName != nil},
	}
	for _, r := range required {
		if !r.ok {
			return &SchemaViolationError{Field: prefix + "." + r.field, Constraint: "is required"}
		}
	}
	if !isAbsoluteURL(*it.ItemURL) {
		return &SchemaViolationError{Field: prefix + ".itemUrl", Constraint: "must be an absolute URL"}
	}
	for j, img := range it.MediumImageURLs {
		field := fmt.Sprintf("%s.mediumImageUrls[%d].imageUrl", prefix, j)
		if img.ImageURL == nil {
			return &SchemaViolationError{Field: field, Constraint: "is required"}
		}
		if !isAbsoluteURL(*img.ImageURL) {
			return &SchemaViolationError{Field: field, Constraint: "must be an absolute URL"}
		}
	}
	return nil
}

// toItem assumes validate has passed
func (it *rawItem) toItem() Item {
	imgs := make([]string, 0, len(it.MediumImageURLs))
	for _, img := range it.MediumImageURLs {
		imgs = append(imgs, *img.ImageURL)
	}

	item := Item{
		Name:          *it.ItemName,
		URL:           *it.ItemURL,
		Price:         int(*it.ItemPrice),
		ReviewCount:   int(*it.ReviewCount),
		ReviewAverage: it.ReviewAverage,
		Images:        imgs,
		Shop:          *it.ShopName,
	}
	if it.ItemCaption != nil {
		item.Description = *it.ItemCaption
	}
	if it.Catchcopy != nil {
		item.Catchcopy = *it.Catchcopy
	}
	if len(imgs) > 0 {
		item.Image = imgs[0]
	}
	return item
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
