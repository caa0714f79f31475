package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"shopsmart/models"
)

const (
	// MediaSizeThumb is the product grid tile size.
	MediaSizeThumb = "thumb"
	// MediaSizeMedium is the larger tile used for exports.
	MediaSizeMedium = "medium"

	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// fallbackPalette colours products that have no valid accent.
var fallbackPalette = []color.NRGBA{
	{0x6C, 0x5C, 0xE7, 0xFF},
	{0x00, 0xB8, 0x94, 0xFF},
	{0xE1, 0x70, 0x55, 0xFF},
	{0x09, 0x84, 0xE3, 0xFF},
	{0xFD, 0xCB, 0x6E, 0xFF},
	{0x63, 0x6E, 0x72, 0xFF},
}

// MediaService renders product media tiles from each product's accent colour
// and caches the PNG bytes in memory and, optionally, on disk.
type MediaService struct {
	cacheDir string
	logger   *zap.Logger

	mu     sync.Mutex
	memory map[string][]byte
}

// NewMediaService creates a MediaService. An empty cacheDir disables the disk cache.
func NewMediaService(cacheDir string, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaService{
		cacheDir: cacheDir,
		logger:   logger,
		memory:   make(map[string][]byte),
	}
}

// CachePath returns the disk cache file for a product tile. The name carries
// a digest of the fields the tile is drawn from.
func (s *MediaService) CachePath(p models.Product, size string) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, fmt.Sprintf("product_%s_%s_%s.png", sanitizeFileName(p.ID), tileDigest(p), size))
}

// tileDigest hashes the product fields renderTile reads.
func tileDigest(p models.Product) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%t", p.ID, p.Accent, p.Category, p.IsNew)
	return fmt.Sprintf("%016x", h.Sum64())
}

func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

// Tile returns the PNG tile for the product at the given size
// ("thumb" or "medium"; anything else is treated as medium).
func (s *MediaService) Tile(p models.Product, size string) ([]byte, error) {
	dim := maxSizeMedium
	switch size {
	case MediaSizeThumb:
		dim = maxSizeThumb
	case MediaSizeMedium:
	default:
		s.logger.Warn("⚠️  Unknown media size, defaulting to medium", zap.String("size", size))
		size = MediaSizeMedium
	}

	key := p.ID + "/" + size + "/" + tileDigest(p)
	s.mu.Lock()
	if data, ok := s.memory[key]; ok {
		s.mu.Unlock()
		return data, nil
	}
	s.mu.Unlock()

	cachePath := s.CachePath(p, size)
	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil {
			s.remember(key, data)
			return data, nil
		}
	}

	data, err := renderTile(p, dim)
	if err != nil {
		return nil, err
	}
	s.remember(key, data)

	if cachePath != "" {
		if err := saveToCache(cachePath, data); err != nil {
			s.logger.Warn("Failed to cache media tile", zap.String("path", cachePath), zap.Error(err))
		} else {
			s.logger.Debug("✓ Media tile cached", zap.String("path", cachePath))
		}
	}
	return data, nil
}

// DataURI returns the tile as a data: URI for self-contained documents.
func (s *MediaService) DataURI(p models.Product, size string) (string, error) {
	data, err := s.Tile(p, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *MediaService) remember(key string, data []byte) {
	s.mu.Lock()
	s.memory[key] = data
	s.mu.Unlock()
}

func saveToCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

func renderTile(p models.Product, dim int) ([]byte, error) {
	accent := AccentColor(p)
	tile := imaging.New(dim, dim, accent)

	inner := imaging.New(dim*3/5, dim*3/5, lighten(accent, 0.35))
	tile = imaging.OverlayCenter(tile, inner, 0.9)

	if p.IsNew {
		band := imaging.New(dim, dim/10, color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF})
		tile = imaging.Overlay(tile, band, image.Pt(0, 0), 0.6)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, tile, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode tile: %w", err)
	}
	return buf.Bytes(), nil
}

// AccentColor parses the product accent ("#RGB" or "#RRGGBB"). Products
// without a valid accent get a stable colour picked from their category.
func AccentColor(p models.Product) color.NRGBA {
	if c, ok := parseHexColor(p.Accent); ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(p.Category))
	return fallbackPalette[h.Sum32()%uint32(len(fallbackPalette))]
}

func parseHexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, true
}

func lighten(c color.NRGBA, amount float64) color.NRGBA {
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*amount)
	}
	return color.NRGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
