package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ectool/lpscorer/internal/lpscore"
	"github.com/ectool/lpscorer/internal/models"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Format is an export file format
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	Parquet Format = "parquet"
)

// ParseFormat accepts json, yaml/yml and parquet, case-insensitively. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "parquet":
		return Parquet, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// ContentType returns the HTTP content type for f
func (f Format) ContentType() string {
	switch f {
	case YAML:
		return "application/yaml"
	case Parquet:
		return "application/vnd.apache.parquet"
	default:
		return "application/json"
	}
}

// Extension returns the file extension for f, without the dot
func (f Format) Extension() string {
	return string(f)
}

// Write encodes records to w in the given format
func Write(w io.Writer, format Format, records []*models.ScoreRecord) error {
	if records == nil {
		records = []*models.ScoreRecord{}
	}

	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	case Parquet:
		rows := make([]scoreRow, 0, len(records))
		for _, r := range records {
			row, err := toRow(r)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		if err := parquet.Write(w, rows); err != nil {
			return fmt.Errorf("failed to write parquet: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}

	slog.Debug("Exported score records", "format", format, "count", len(records))
	return nil
}

// FormatFromPath picks the format from a file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".parquet"):
		return Parquet
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return YAML
	default:
		return JSON
	}
}

// Read decodes records previously written with Write
func Read(data []byte, format Format) ([]*models.ScoreRecord, error) {
	var records []*models.ScoreRecord
	switch format {
	case JSON:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	case Parquet:
		return ReadParquetBytes(data)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	return records, nil
}

// ReadParquet decodes records previously written with the Parquet format
func ReadParquet(r io.ReaderAt, size int64) ([]*models.ScoreRecord, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[scoreRow](pf)
	defer reader.Close()

	var records []*models.ScoreRecord
	rows := make([]scoreRow, 64)
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			rec, convErr := row.toRecord()
			if convErr != nil {
				return nil, convErr
			}
			records = append(records, rec)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Read score records from parquet", "count", len(records), "num_rows", pf.NumRows())
	return records, nil
}

// ReadParquetBytes is ReadParquet over an in-memory file
func ReadParquetBytes(data []byte) ([]*models.ScoreRecord, error) {
	return ReadParquet(bytes.NewReader(data), int64(len(data)))
}

type scoreRow struct {
	ID            string        `parquet:"id"`
	ItemURL       string        `parquet:"item_url"`
	Title         string        `parquet:"title"`
	Provider      string        `parquet:"provider"`
	Model         string        `parquet:"model"`
	OverallScore  float64       `parquet:"overall_score"`
	Categories    []categoryRow `parquet:"categories"`
	Improvements  []string      `parquet:"improvements"`
	ImageAnalysis string        `parquet:"image_analysis_json"`
	Input         string        `parquet:"input_json"`
	CreatedAtMs   int64         `parquet:"created_at_ms"`
}

type categoryRow struct {
	Category string `parquet:"category"`
	Score    int32  `parquet:"score"`
	Feedback string `parquet:"feedback"`
}

func toRow(r *models.ScoreRecord) (scoreRow, error) {
	input, err := json.Marshal(r.Input)
	if err != nil {
		return scoreRow{}, fmt.Errorf("failed to encode input of %s: %w", r.ID, err)
	}
	analysis, err := json.Marshal(r.Score.ImageAnalysis)
	if err != nil {
		return scoreRow{}, fmt.Errorf("failed to encode image analysis of %s: %w", r.ID, err)
	}

	categories := make([]categoryRow, 0, len(r.Score.Scores))
	for _, c := range r.Score.Scores {
		categories = append(categories, categoryRow{
			Category: c.Category,
			Score:    int32(c.Score),
			Feedback: c.Feedback,
		})
	}

	return scoreRow{
		ID:            r.ID,
		ItemURL:       r.ItemURL,
		Title:         r.Title,
		Provider:      r.Provider,
		Model:         r.Model,
		OverallScore:  r.Score.OverallScore,
		Categories:    categories,
		Improvements:  r.Score.Improvements,
		ImageAnalysis: string(analysis),
		Input:         string(input),
		CreatedAtMs:   r.CreatedAt.UnixMilli(),
	}, nil
}

func (row scoreRow) toRecord() (*models.ScoreRecord, error) {
	rec := &models.ScoreRecord{
		ID:        row.ID,
		ItemURL:   row.ItemURL,
		Title:     row.Title,
		Provider:  row.Provider,
		Model:     row.Model,
		CreatedAt: time.UnixMilli(row.CreatedAtMs).UTC(),
		Score: lpscore.LPScore{
			OverallScore: row.OverallScore,
			Scores:       make([]lpscore.CategoryScore, 0, len(row.Categories)),
			Improvements: append([]string{}, row.Improvements...),
		},
	}
	for _, c := range row.Categories {
		rec.Score.Scores = append(rec.Score.Scores, lpscore.CategoryScore{
			Category: c.Category,
			Score:    int(c.Score),
			Feedback: c.Feedback,
		})
	}
	if row.ImageAnalysis != "" {
		if err := json.Unmarshal([]byte(row.ImageAnalysis), &rec.Score.ImageAnalysis); err != nil {
			return nil, fmt.Errorf("failed to decode image analysis of %s: %w", row.ID, err)
		}
	}
	if row.Input != "" {
		if err := json.Unmarshal([]byte(row.Input), &rec.Input); err != nil {
			return nil, fmt.Errorf("failed to decode input of %s: %w", row.ID, err)
		}
	}
	return rec, nil
}
