package menu

// Query is the editable search text. The cursor is a rune offset in 0..len.
type Query struct {
	runes  []rune
	cursor int
}

func (q *Query) String() string { return string(q.runes) }

// Cursor returns the rune offset of the edit point
func (q *Query) Cursor() int { return q.cursor }

// Len returns the number of runes
func (q *Query) Len() int { return len(q.runes) }

// Insert adds r at the cursor and advances it
func (q *Query) Insert(r rune) {
	q.runes = append(q.runes, 0)
	copy(q.runes[q.cursor+1:], q.runes[q.cursor:])
	q.runes[q.cursor] = r
	q.cursor++
}

// Backspace removes the rune before the cursor
func (q *Query) Backspace() bool {
	if q.cursor == 0 {
		return false
	}
	q.runes = append(q.runes[:q.cursor-1], q.runes[q.cursor:]...)
	q.cursor--
	return true
}

// Delete removes the rune under the cursor
func (q *Query) Delete() bool {
	if q.cursor >= len(q.runes) {
		return false
	}
	q.runes = append(q.runes[:q.cursor], q.runes[q.cursor+1:]...)
	return true
}

func (q *Query) Left() {
	if q.cursor > 0 {
		q.cursor--
	}
}

func (q *Query) Right() {
	if q.cursor < len(q.runes) {
		q.cursor++
	}
}

func (q *Query) Home() { q.cursor = 0 }

func (q *Query) End() { q.cursor = len(q.runes) }

// Clear empties the query. It reports whether anything was removed.
func (q *Query) Clear() bool {
	changed := len(q.runes) > 0
	q.runes = nil
	q.cursor = 0
	return changed
}
