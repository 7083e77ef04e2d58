package diff

import "math"

// Kind identifies the type of an edit operation.
type Kind int

const (
	Insert Kind = iota
	Delete
	Substitute
)

// String returns the upper-case name used in change logs.
func (k Kind) String() string {
	switch k {
	case Insert:
		return "INSERT"
	case Delete:
		return "DELETE"
	case Substitute:
		return "SUBSTITUTE"
	default:
		return "UNKNOWN"
	}
}

// Edit is a single step of an edit script.
//
// Index is expressed in source coordinates:
//   - Insert: Value goes in front of source[Index] (Index may equal len(source)).
//   - Delete: source[Index] is removed; Value is the removed element.
//   - Substitute: source[Index] is replaced by Value.
type Edit[T any] struct {
	Kind  Kind
	Index int
	Value T
}

// Compute returns the minimal edit script turning source into target, using ==
// to compare elements. Edits are ordered from the end of the sequences toward
// the start.
func Compute[T comparable](source, target []T) []Edit[T] {
	return ComputeFunc(source, target, func(a, b T) bool { return a == b })
}

// ComputeFunc is Compute with a caller supplied equality predicate.
func ComputeFunc[T any](source, target []T, equal func(a, b T) bool) []Edit[T] {
	table := costTable(source, target, equal)
	return backtrack(table, source, target, equal)
}

// Distance returns the edit distance between source and target under equal.
func Distance[T any](source, target []T, equal func(a, b T) bool) int {
	return costTable(source, target, equal)[len(source)][len(target)]
}

func costTable[T any](source, target []T, equal func(a, b T) bool) [][]int {
	m, n := len(source), len(target)
	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
		table[i][0] = i
	}
	for j := 1; j <= n; j++ {
		table[0][j] = j
	}

	for j := 1; j <= n; j++ {
		for i := 1; i <= m; i++ {
			if equal(source[i-1], target[j-1]) {
				table[i][j] = table[i-1][j-1]
				continue
			}
			insertion := table[i][j-1]
			deletion := table[i-1][j]
			substitution := table[i-1][j-1]
			table[i][j] = min(deletion, insertion, substitution) + 1
		}
	}
	return table
}

// backtrack walks the table from (m,n) to (0,0). Priority on ties is
// insertion, deletion, match, substitution. The last two branches only fire
// when insertion and deletion tie below the diagonal, where a substitution
// would not lie on a minimal path.
func backtrack[T any](table [][]int, source, target []T, equal func(a, b T) bool) []Edit[T] {
	i, j := len(source), len(target)
	edits := make([]Edit[T], 0, table[i][j])

	for i > 0 || j > 0 {
		insertion, deletion, diagonal := math.MaxInt, math.MaxInt, math.MaxInt
		if j > 0 {
			insertion = table[i][j-1]
		}
		if i > 0 {
			deletion = table[i-1][j]
		}
		if i > 0 && j > 0 {
			diagonal = table[i-1][j-1]
		}
		cost := table[i][j]

		switch {
		case insertion < diagonal && insertion < deletion:
			edits = append(edits, Edit[T]{Kind: Insert, Index: i, Value: target[j-1]})
			j--
		case deletion < diagonal && deletion < insertion:
			edits = append(edits, Edit[T]{Kind: Delete, Index: i - 1, Value: source[i-1]})
			i--
		case diagonal == cost && equal(source[i-1], target[j-1]):
			i--
			j--
		case diagonal+1 == cost:
			edits = append(edits, Edit[T]{Kind: Substitute, Index: i - 1, Value: target[j-1]})
			i--
			j--
		case insertion+1 == cost:
			edits = append(edits, Edit[T]{Kind: Insert, Index: i, Value: target[j-1]})
			j--
		default:
			edits = append(edits, Edit[T]{Kind: Delete, Index: i - 1, Value: source[i-1]})
			i--
		}
	}
	return edits
}

// Apply replays edits produced by Compute against a copy of source and returns
// the result. Edits are replayed left to right (reverse emission order) with
// their indices shifted by the inserts and deletes already applied.
func Apply[T any](source []T, edits []Edit[T]) []T {
	out := make([]T, len(source), len(source)+len(edits))
	copy(out, source)

	offset := 0
	for k := len(edits) - 1; k >= 0; k-- {
		e := edits[k]
		pos := e.Index + offset
		switch e.Kind {
		case Insert:
			out = append(out, e.Value)
			copy(out[pos+1:], out[pos:])
			out[pos] = e.Value
			offset++
		case Delete:
			out = append(out[:pos], out[pos+1:]...)
			offset--
		case Substitute:
			out[pos] = e.Value
		}
	}
	return out
}

// Patch applies a single edit to items, which may be modified in place, and
// returns the resulting slice. Fed with edits in emission order it needs no
// index shifting: emission runs from the end of the sequence toward the start,
// so the prefix an edit addresses has not been touched yet.
func Patch[T any](items []T, e Edit[T]) []T {
	switch e.Kind {
	case Insert:
		var zero T
		items = append(items, zero)
		copy(items[e.Index+1:], items[e.Index:])
		items[e.Index] = e.Value
	case Delete:
		items = append(items[:e.Index], items[e.Index+1:]...)
	case Substitute:
		items[e.Index] = e.Value
	}
	return items
}
