package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/daniel-roulin/trusk/pkg/math3d"
)

var (
	// ErrEmptyMesh is returned when a file parses but yields no triangles.
	ErrEmptyMesh = errors.New("models: mesh has no triangles")
	// ErrIndexRange is returned for a face referencing a vertex that does not exist.
	ErrIndexRange = errors.New("models: vertex index out of range")
)

// ParseError describes a failure while reading a mesh file.
type ParseError struct {
	Path string
	Line int // 1-based, 0 when the error is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	mesh, err := parseOBJ(f, path)
	if err != nil {
		return nil, err
	}
	mesh.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return mesh, nil
}

// ParseOBJ reads the OBJ subset Trusk understands from r:
//
//	v x y z [w]      vertex (w is accepted and ignored; points have W=1)
//	f a b c [d ...]  face of 1-based (or negative, relative) indices
//
// Only the first slash-separated field of a face token is used. Quads and
// larger polygons are split into a fan around their first vertex. All other
// lines are skipped.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	return parseOBJ(r, "obj")
}

func parseOBJ(r io.Reader, name string) (*Mesh, error) {
	var verts []math3d.Vec4
	mesh := NewMesh(name)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, &ParseError{Path: name, Line: line, Err: err}
			}
			verts = append(verts, v)

		case "f":
			idx, err := parseFace(fields[1:], len(verts))
			if err != nil {
				return nil, &ParseError{Path: name, Line: line, Err: err}
			}
			for i := 1; i+1 < len(idx); i++ {
				mesh.Add(Tri(verts[idx[0]], verts[idx[i]], verts[idx[i+1]]))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Path: name, Line: line, Err: err}
	}
	if len(mesh.Triangles) == 0 {
		return nil, &ParseError{Path: name, Err: ErrEmptyMesh}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func parseVertex(args []string) (math3d.Vec4, error) {
	if len(args) < 3 || len(args) > 4 {
		return math3d.Vec4{}, fmt.Errorf("vertex wants 3 or 4 coordinates, got %d", len(args))
	}
	var c [4]float64
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math3d.Vec4{}, fmt.Errorf("vertex coordinate %q: %w", s, err)
		}
		c[i] = f
	}
	return math3d.Point(c[0], c[1], c[2]), nil
}

// parseFace resolves face tokens to 0-based indices into a list of n vertices.
func parseFace(args []string, n int) ([]int, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("face wants at least 3 vertices, got %d", len(args))
	}
	idx := make([]int, len(args))
	for i, tok := range args {
		s, _, _ := strings.Cut(tok, "/")
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("face index %q: %w", tok, err)
		}
		switch {
		case v > 0 && v <= n:
			idx[i] = v - 1
		case v < 0 && -v <= n:
			idx[i] = n + v
		default:
			return nil, fmt.Errorf("face index %d with %d vertices: %w", v, n, ErrIndexRange)
		}
	}
	return idx, nil
}
