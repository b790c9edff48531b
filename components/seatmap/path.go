package seatmap

import (
	"regexp"
	"strconv"
	"unicode"
)

var (
	pathSegment = regexp.MustCompile(`([MmLlHhVvCcSsQqTtAaZz])([^MmLlHhVvCcSsQqTtAaZz]*)`)
	pathNumber  = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
)

// pathArity is the number of arguments one segment of each command consumes.
var pathArity = map[rune]int{
	'm': 2, 'l': 2, 't': 2,
	'h': 1, 'v': 1,
	'c': 6, 's': 4, 'q': 4,
	'a': 7,
	'z': 0,
}

// PathPoints flattens path data into the absolute coordinates it visits.
// Control points of curves are included and arcs contribute their end points,
// so the hull of the result contains the drawn path except for arc bulges.
func PathPoints(d string) []float64 {
	var (
		out            []float64
		curX, curY     float64
		startX, startY float64
	)
	visit := func(x, y float64) {
		out = append(out, x, y)
	}
	for _, seg := range pathSegment.FindAllStringSubmatch(d, -1) {
		cmd := rune(seg[1][0])
		relative := unicode.IsLower(cmd)
		lower := unicode.ToLower(cmd)
		if lower == 'z' {
			curX, curY = startX, startY
			continue
		}
		args := pathNumbers(seg[2])
		arity := pathArity[lower]
		for i := 0; i+arity <= len(args); i += arity {
			step := args[i : i+arity]
			baseX, baseY := 0.0, 0.0
			if relative {
				baseX, baseY = curX, curY
			}
			switch lower {
			case 'h':
				curX = baseX + step[0]
				visit(curX, curY)
			case 'v':
				curY = baseY + step[0]
				visit(curX, curY)
			case 'a':
				curX, curY = baseX+step[5], baseY+step[6]
				visit(curX, curY)
			default:
				for j := 0; j+1 < arity; j += 2 {
					visit(baseX+step[j], baseY+step[j+1])
				}
				curX, curY = baseX+step[arity-2], baseY+step[arity-1]
			}
			if lower == 'm' {
				if i == 0 {
					startX, startY = curX, curY
				}
				// extra pairs after a moveto are implicit linetos
				lower = 'l'
			}
		}
	}
	return out
}

func pathNumbers(raw string) []float64 {
	tokens := pathNumber.FindAllString(raw, -1)
	out := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}
