package repository

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"

	"shopsmart/models"
)

//go:embed schema/catalog.schema.json
var catalogSchemaJSON []byte

// ErrSchemaViolation is returned when a catalog document does not match the schema.
var ErrSchemaViolation = errors.New("catalog schema violation")

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension; anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

var catalogSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("catalog.schema.json", bytes.NewReader(catalogSchemaJSON)); err != nil {
		panic(fmt.Sprintf("failed to add catalog schema: %v", err))
	}
	return compiler.MustCompile("catalog.schema.json")
}

// productRecord is the on-disk shape of a product.
type productRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	Price       decimal.Decimal `json:"price"`
	Rating      float64         `json:"rating"`
	Stock       int             `json:"stock"`
	IsNew       bool            `json:"isNew"`
	CreatedAt   string          `json:"createdAt"`
	Description string          `json:"description"`
	Accent      string          `json:"accent"`
}

type catalogDocument struct {
	Products []productRecord `json:"products"`
}

// DecodeCatalog validates a catalog document against the catalog schema and
// returns its products in document order.
func DecodeCatalog(data []byte, format Format) ([]models.Product, error) {
	jsonData := data
	if format == FormatYAML {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
		}
		jsonData = converted
	}

	var raw interface{}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := catalogSchema.Validate(raw); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return nil, formatSchemaValidationError(validationErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	products := make([]models.Product, 0, len(doc.Products))
	for _, rec := range doc.Products {
		createdAt, err := ParseTimestamp(rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", rec.ID, err)
		}
		tags := rec.Tags
		if tags == nil {
			tags = []string{}
		}
		products = append(products, models.Product{
			ID:          rec.ID,
			Name:        rec.Name,
			Category:    rec.Category,
			Tags:        tags,
			Price:       rec.Price,
			Rating:      rec.Rating,
			Stock:       rec.Stock,
			IsNew:       rec.IsNew,
			CreatedAt:   createdAt,
			Description: rec.Description,
			Accent:      rec.Accent,
		})
	}
	return products, nil
}

// EncodeCatalog writes products as a catalog document.
func EncodeCatalog(products []models.Product, format Format) ([]byte, error) {
	doc := catalogDocument{Products: make([]productRecord, 0, len(products))}
	for _, p := range products {
		rec := productRecord{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Tags:        p.Tags,
			Price:       p.Price,
			Rating:      p.Rating,
			Stock:       p.Stock,
			IsNew:       p.IsNew,
			Description: p.Description,
			Accent:      p.Accent,
		}
		if !p.CreatedAt.IsZero() {
			rec.CreatedAt = p.CreatedAt.UTC().Format(time.RFC3339)
		}
		doc.Products = append(doc.Products, rec)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if format == FormatYAML {
		out, err := yaml.JSONToYAML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML catalog: %w", err)
		}
		return out, nil
	}
	return data, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 timestamps, SQL-style timestamps and plain
// dates. An empty string is the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string
	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return ErrSchemaViolation
	}
	return fmt.Errorf("%w:\n    - %s", ErrSchemaViolation, strings.Join(messages, "\n    - "))
}
