package menu

// Direction represents a highlight movement
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionPageUp
	DirectionPageDown
	DirectionHome
	DirectionEnd
)

// Navigator keeps the highlighted row and the visible window over the ranked list.
// Movement is clamped to the list; it never wraps.
type Navigator struct {
	cursor         int
	viewportOffset int
	viewportHeight int
	count          int
}

// NewNavigator creates a navigator with a default viewport
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 10}
}

// Cursor returns the highlighted index
func (n *Navigator) Cursor() int { return n.cursor }

// ViewportOffset returns the first visible index
func (n *Navigator) ViewportOffset() int { return n.viewportOffset }

// ViewportHeight returns the number of visible rows
func (n *Navigator) ViewportHeight() int { return n.viewportHeight }

// SetViewportHeight updates the number of visible rows
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureVisible()
}

// SetCount replaces the list length and moves the highlight back to the top
func (n *Navigator) SetCount(count int) {
	n.count = count
	n.cursor = 0
	n.viewportOffset = 0
}

// Navigate moves the highlight
func (n *Navigator) Navigate(direction Direction) {
	switch direction {
	case DirectionUp:
		n.cursor = n.clampIndex(n.cursor - 1)
	case DirectionDown:
		n.cursor = n.clampIndex(n.cursor + 1)
	case DirectionPageUp:
		n.cursor = n.clampIndex(n.cursor - n.pageSize())
	case DirectionPageDown:
		n.cursor = n.clampIndex(n.cursor + n.pageSize())
	case DirectionHome:
		n.cursor = 0
	case DirectionEnd:
		n.cursor = n.clampIndex(n.count - 1)
	}
	n.ensureVisible()
}

func (n *Navigator) pageSize() int {
	if n.viewportHeight > 1 {
		return n.viewportHeight - 1
	}
	return 1
}

func (n *Navigator) clampIndex(index int) int {
	if index > n.count-1 {
		index = n.count - 1
	}
	if index < 0 {
		return 0
	}
	return index
}

func (n *Navigator) ensureVisible() {
	if n.cursor < n.viewportOffset {
		n.viewportOffset = n.cursor
	} else if n.cursor >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.cursor - n.viewportHeight + 1
	}
}
