package pathbool

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	if n == 0 {
		return 0.0, 0
	}
	return f, i + n
}

// ParseSVGPath parses SVG path data into a set of contours. It supports the M, L, H, V, C, S, Q, T and Z commands in absolute and relative form. Quadratic Béziers are promoted to their exact cubic equivalents. Arc commands are not supported, convert them to cubics beforehand.
func ParseSVGPath(sPath string) (Paths, error) {
	path := []byte(sPath)

	var ps Paths
	var p *Path
	var prevCmd byte
	var start, pos Point
	cpx, cpy := 0.0, 0.0 // last control point for S/T

	// open appends a contour starting at the current position when a drawing command arrives without a preceding moveto
	open := func() *Path {
		if p == nil {
			p = &Path{}
			p.MoveTo(pos.X, pos.Y)
		}
		return p
	}
	num := func(i *int) (float64, error) {
		f, n := parseNum(path[*i:])
		if n == 0 {
			return 0.0, fmt.Errorf("bad number in path data at position %d", *i)
		}
		*i += n
		return f, nil
	}

	i := 0
	for i < len(path) {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}
		cmd := prevCmd
		explicit := false
		if 'A' <= path[i] && path[i] <= 'z' && (path[i] < '0' || '9' < path[i]) {
			cmd = path[i]
			explicit = true
			i++
		}
		if cmd == 0 {
			return nil, fmt.Errorf("path data must start with a moveto command")
		}

		// an implicit repetition of a moveto draws lines
		if !explicit && cmd == 'M' {
			cmd = 'L'
		} else if !explicit && cmd == 'm' {
			cmd = 'l'
		} else if !explicit && (cmd == 'Z' || cmd == 'z') {
			return nil, fmt.Errorf("unexpected character '%c' at position %d", path[i], i)
		}

		x, y := pos.X, pos.Y
		var err error
		switch cmd {
		case 'M', 'm':
			var a, b float64
			if a, err = num(&i); err == nil {
				b, err = num(&i)
			}
			if err != nil {
				return nil, err
			}
			if cmd == 'm' {
				a += x
				b += y
			}
			if p != nil && !p.Empty() {
				ps = append(ps, p)
			}
			p = &Path{}
			p.MoveTo(a, b)
			start = Point{a, b}
			pos = start
		case 'Z', 'z':
			if p != nil {
				p.Close()
				ps = append(ps, p)
				p = nil
			}
			pos = start
		case 'L', 'l':
			var a, b float64
			if a, err = num(&i); err == nil {
				b, err = num(&i)
			}
			if err != nil {
				return nil, err
			}
			if cmd == 'l' {
				a += x
				b += y
			}
			open().LineTo(a, b)
			pos = Point{a, b}
		case 'H', 'h':
			a, err := num(&i)
			if err != nil {
				return nil, err
			}
			if cmd == 'h' {
				a += x
			}
			open().LineTo(a, y)
			pos = Point{a, y}
		case 'V', 'v':
			b, err := num(&i)
			if err != nil {
				return nil, err
			}
			if cmd == 'v' {
				b += y
			}
			open().LineTo(x, b)
			pos = Point{x, b}
		case 'C', 'c':
			var a, b, c, d, e, f float64
			for _, fp := range []*float64{&a, &b, &c, &d, &e, &f} {
				if *fp, err = num(&i); err != nil {
					return nil, err
				}
			}
			if cmd == 'c' {
				a += x
				b += y
				c += x
				d += y
				e += x
				f += y
			}
			open().CubeTo(a, b, c, d, e, f)
			cpx, cpy = c, d
			pos = Point{e, f}
		case 'S', 's':
			var c, d, e, f float64
			for _, fp := range []*float64{&c, &d, &e, &f} {
				if *fp, err = num(&i); err != nil {
					return nil, err
				}
			}
			if cmd == 's' {
				c += x
				d += y
				e += x
				f += y
			}
			a, b := x, y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				a, b = 2.0*x-cpx, 2.0*y-cpy
			}
			open().CubeTo(a, b, c, d, e, f)
			cpx, cpy = c, d
			pos = Point{e, f}
		case 'Q', 'q':
			var a, b, c, d float64
			for _, fp := range []*float64{&a, &b, &c, &d} {
				if *fp, err = num(&i); err != nil {
					return nil, err
				}
			}
			if cmd == 'q' {
				a += x
				b += y
				c += x
				d += y
			}
			open().QuadTo(a, b, c, d)
			cpx, cpy = a, b
			pos = Point{c, d}
		case 'T', 't':
			var c, d float64
			for _, fp := range []*float64{&c, &d} {
				if *fp, err = num(&i); err != nil {
					return nil, err
				}
			}
			if cmd == 't' {
				c += x
				d += y
			}
			a, b := x, y
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				a, b = 2.0*x-cpx, 2.0*y-cpy
			}
			open().QuadTo(a, b, c, d)
			cpx, cpy = a, b
			pos = Point{c, d}
		case 'A', 'a':
			return nil, fmt.Errorf("arc commands are not supported")
		default:
			return nil, fmt.Errorf("unknown path data command '%c' at position %d", cmd, i)
		}
		prevCmd = cmd
	}
	if p != nil && !p.Empty() {
		ps = append(ps, p)
	}
	return ps, nil
}

// MustParseSVGPath parses SVG path data into a set of contours and panics on failure.
func MustParseSVGPath(sPath string) Paths {
	ps, err := ParseSVGPath(sPath)
	if err != nil {
		panic(err)
	}
	return ps
}

// writeFloats writes space-separated coordinates to the builder.
func writeFloats(sb *strings.Builder, fs ...float64) {
	for i, f := range fs {
		if 0 < i {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(sb, "%g", f)
	}
}
