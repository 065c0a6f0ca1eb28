package buffer

// Pos points into the logical document by (row, col) in runes.
// Row and Col are 0-based.
type Pos struct {
	Row int
	Col int
}

func ComparePos(a, b Pos) int {
	if a.Row < b.Row {
		return -1
	}
	if a.Row > b.Row {
		return 1
	}
	if a.Col < b.Col {
		return -1
	}
	if a.Col > b.Col {
		return 1
	}
	return 0
}

// CharRange is a half-open character interval [Location, Location+Length).
type CharRange struct {
	Location int
	Length   int
}

func (r CharRange) End() int { return r.Location + r.Length }

func (r CharRange) IsEmpty() bool { return r.Length <= 0 }

// Contains reports whether off lies in r. An empty range contains its own
// location so that a caret can be matched against it.
func (r CharRange) Contains(off int) bool {
	if r.Length <= 0 {
		return off == r.Location
	}
	return off >= r.Location && off < r.End()
}

// Union returns the smallest range covering both operands.
func (r CharRange) Union(o CharRange) CharRange {
	start := minInt(r.Location, o.Location)
	end := maxInt(r.End(), o.End())
	return CharRange{Location: start, Length: end - start}
}

// Intersects reports whether the two ranges share at least one character,
// treating empty ranges as carets.
func (r CharRange) Intersects(o CharRange) bool {
	if r.IsEmpty() {
		return o.Contains(r.Location) || o.End() == r.Location
	}
	if o.IsEmpty() {
		return r.Contains(o.Location) || r.End() == o.Location
	}
	return r.Location < o.End() && o.Location < r.End()
}

// LineRange is an inclusive interval of 0-based line numbers.
type LineRange struct {
	First int
	Last  int
}

func (r LineRange) Contains(line int) bool {
	return line >= r.First && line <= r.Last
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
