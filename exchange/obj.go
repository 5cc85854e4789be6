// Package exchange reads and writes the Wavefront-OBJ dialect used to hand
// a pre-triangulated floor plan into this module and to persist the
// optimized result back out (component C7).
package exchange

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/archfloor/doorplan"
)

const (
	prefixVertex = "v"
	prefixLine   = "l"
	prefixFace   = "f"
	prefixGroup  = "g"
)

var (
	ErrInvalidVertex = errors.New("exchange: invalid vertex record")
	ErrInvalidLine   = errors.New("exchange: invalid line record")
	ErrInvalidFace   = errors.New("exchange: invalid face record")
)

// Mesh is the plain data this package moves between a Reader and a
// Writer: a point set, the constraint (wall) segments referencing it by
// index, and the triangulation, also by index.
type Mesh struct {
	Points      []geom.Point
	FixedEdges  [][2]int
	Triangles   [][3]int
	FaceGroups  []string // one entry per triangle, empty string if ungrouped
}

// Reader parses the v/l/f dialect: `v x y z` vertices (z discarded), `l i
// j [k ...]` polylines (each consecutive pair becomes a constraint edge)
// and `f i j k` triangles (a trailing `/...` on an index is ignored).
type Reader struct {
	r io.Reader

	points    []geom.Point
	lines     [][2]int
	triangles [][3]int
	groups    []string
	group     string
}

// NewReader constructs a Reader over an io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read parses the OBJ stream into a Mesh, merging duplicate vertices (by
// coordinate rounded to six decimal places) and remapping every index
// accordingly (original_source Loader._remove_duplicates), then
// normalizing the merged point set into [0, 1]^2 with a y-flip
// (original_source Loader._optimize/_flip_z).
func (r *Reader) Read() (*Mesh, error) {
	scanner := bufio.NewScanner(r.r)
	line := 0

	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		prefix := parsePrefix(data)
		var err error

		switch string(prefix) {
		case prefixVertex:
			err = r.parseVertex(data)
		case prefixLine:
			err = r.parseLine(data)
		case prefixFace:
			err = r.parseFace(data)
		case prefixGroup:
			r.group = string(bytes.TrimSpace(data[len(prefixGroup):]))
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	points, remap := mergeDuplicates(r.points)
	points = normalize(points)

	edges := make([][2]int, len(r.lines))
	for i, e := range r.lines {
		edges[i] = [2]int{remap[e[0]], remap[e[1]]}
	}

	triangles := make([][3]int, len(r.triangles))
	for i, tri := range r.triangles {
		triangles[i] = [3]int{remap[tri[0]], remap[tri[1]], remap[tri[2]]}
	}

	return &Mesh{
		Points:     points,
		FixedEdges: edges,
		Triangles:  triangles,
		FaceGroups: r.groups,
	}, nil
}

func parsePrefix(data []byte) []byte {
	for i := 0; i < len(data); i++ {
		value, _ := utf8.DecodeRune(data[i : i+1])
		if unicode.IsSpace(value) {
			return data[:i]
		}
	}
	return data
}

func (r *Reader) parseVertex(data []byte) error {
	fields := bytes.Fields(data[len(prefixVertex):])
	if len(fields) < 2 {
		return ErrInvalidVertex
	}

	var xy [2]float64
	for i := 0; i < 2; i++ {
		v, err := strconv.ParseFloat(string(fields[i]), 64)
		if err != nil {
			return ErrInvalidVertex
		}
		xy[i] = v
	}

	r.points = append(r.points, geom.NewPoint(xy[0], xy[1]))
	return nil
}

func (r *Reader) parseLine(data []byte) error {
	fields := bytes.Fields(data[len(prefixLine):])
	if len(fields) < 2 {
		return ErrInvalidLine
	}

	indices := make([]int, len(fields))
	for i, field := range fields {
		v, err := strconv.Atoi(string(field))
		if err != nil || v <= 0 {
			return ErrInvalidLine
		}
		indices[i] = v - 1
	}

	for i := 0; i < len(indices)-1; i++ {
		r.lines = append(r.lines, [2]int{indices[i], indices[i+1]})
	}
	return nil
}

func (r *Reader) parseFace(data []byte) error {
	fields := bytes.Fields(data[len(prefixFace):])
	if len(fields) != 3 {
		return ErrInvalidFace
	}

	var tri [3]int
	for i := 0; i < 3; i++ {
		field := fields[i]
		if idx := bytes.IndexByte(field, '/'); idx != -1 {
			field = field[:idx]
		}

		v, err := strconv.Atoi(string(field))
		if err != nil || v <= 0 {
			return ErrInvalidFace
		}
		tri[i] = v - 1
	}

	r.triangles = append(r.triangles, tri)
	r.groups = append(r.groups, r.group)
	return nil
}

// mergeDuplicates merges points that round to the same coordinate at six
// decimal places, returning the deduplicated points and a remap table from
// original index to merged index.
func mergeDuplicates(points []geom.Point) ([]geom.Point, []int) {
	seen := make(map[[2]int64]int, len(points))
	merged := make([]geom.Point, 0, len(points))
	remap := make([]int, len(points))

	for i, p := range points {
		key := [2]int64{round6(p.X()), round6(p.Y())}
		if j, ok := seen[key]; ok {
			remap[i] = j
			continue
		}

		seen[key] = len(merged)
		remap[i] = len(merged)
		merged = append(merged, p)
	}

	return merged, remap
}

func round6(v float64) int64 {
	return int64(math.Round(v * 1e6))
}

// normalize rescales points so their bounding box maps onto [0, 1]^2 and
// flips y (original_source Loader._optimize/_flip_z); the file's own
// coordinate frame is otherwise arbitrary.
func normalize(points []geom.Point) []geom.Point {
	if len(points) == 0 {
		return points
	}

	minP, maxP := points[0], points[0]
	for _, p := range points[1:] {
		if p.X() < minP.X() {
			minP[0] = p.X()
		}
		if p.Y() < minP.Y() {
			minP[1] = p.Y()
		}
		if p.X() > maxP.X() {
			maxP[0] = p.X()
		}
		if p.Y() > maxP.Y() {
			maxP[1] = p.Y()
		}
	}

	dx := maxP.X() - minP.X()
	dy := maxP.Y() - minP.Y()
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}

	out := make([]geom.Point, len(points))
	for i, p := range points {
		x := (p.X() - minP.X()) / dx
		y := (p.Y() - minP.Y()) / dy
		out[i] = geom.NewPoint(x, 1-y)
	}
	return out
}

// Writer writes a Mesh back out in the same dialect, grouping triangles
// into `g` records by room id so a modified floor plan can be inspected
// after an optimization run.
type Writer struct {
	w io.Writer
}

// NewWriter constructs a Writer over an io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write serializes mesh. roomOf, if non-nil, is called with each triangle
// index to produce its group label; triangles are written in a single
// block per consecutive label.
func (w *Writer) Write(mesh *Mesh, roomOf func(face int) string) error {
	bw := bufio.NewWriter(w.w)

	for _, p := range mesh.Points {
		if _, err := fmt.Fprintf(bw, "v %.6f %.6f 0\n", p.X(), p.Y()); err != nil {
			return err
		}
	}

	for _, e := range mesh.FixedEdges {
		if _, err := fmt.Fprintf(bw, "l %d %d\n", e[0]+1, e[1]+1); err != nil {
			return err
		}
	}

	var lastGroup string
	wroteGroup := false
	for i, tri := range mesh.Triangles {
		group := ""
		if roomOf != nil {
			group = roomOf(i)
		}

		if !wroteGroup || group != lastGroup {
			if _, err := fmt.Fprintf(bw, "g %s\n", group); err != nil {
				return err
			}
			lastGroup = group
			wroteGroup = true
		}

		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", tri[0]+1, tri[1]+1, tri[2]+1); err != nil {
			return err
		}
	}

	return bw.Flush()
}
