package polyarea

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// LoaderConfig bounds polygon input
type LoaderConfig struct {
	MaxVertices int `json:"max_vertices"` // 0 means no ceiling
}

// LoadPolygonFile reads polygon vertices from the file at path
func LoadPolygonFile(path string, cfg LoaderConfig) (*Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open polygon file: %w", err)
	}
	defer f.Close()

	return LoadPolygon(f, cfg)
}

// LoadPolygon parses one vertex per line, each two whitespace-separated
// finite numbers; anything after the pair is ignored. Lines that fail
// to parse are skipped with a warning rather than treated as fatal. At
// least three vertices must survive parsing.
func LoadPolygon(r io.Reader, cfg LoaderConfig) (*Polygon, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read polygon: %w", err)
	}

	vertices := lo.FilterMap(lines, func(line string, i int) (Point, bool) {
		p, ok := parseVertex(line)
		if !ok && strings.TrimSpace(line) != "" {
			log.Warnf("skipping malformed vertex on line %d: %q", i+1, line)
		}
		return p, ok
	})

	if cfg.MaxVertices > 0 && len(vertices) > cfg.MaxVertices {
		return nil, fmt.Errorf("%w: %d > %d", ErrVertexCapExceeded, len(vertices), cfg.MaxVertices)
	}
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: parsed %d", ErrPolygonTooSmall, len(vertices))
	}

	return NewPolygon(vertices...), nil
}

func parseVertex(line string) (Point, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Point{}, false
	}

	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, false
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, false
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return Point{}, false
	}

	return Point{X: x, Y: y}, true
}
