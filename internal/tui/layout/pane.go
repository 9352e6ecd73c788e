package layout

// PaneLayout holds calculated pane dimensions.
type PaneLayout struct {
	ListWidth   int
	DetailWidth int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneWidths splits the terminal width between the row list and
// the detail pane.
func CalculatePaneWidths(terminalWidth int, cfg PaneConfig) PaneLayout {
	available := terminalWidth - cfg.WidthOffset

	list := available * cfg.ListWidthPercent / 100
	if list < cfg.MinListWidth {
		list = cfg.MinListWidth
	}
	detail := available - list
	if detail < cfg.MinDetailWidth {
		detail = cfg.MinDetailWidth
	}

	return PaneLayout{
		ListWidth:   list,
		DetailWidth: detail,
	}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}

// CalculateColumns splits a row's item width into name, target and tag
// columns. The tag column takes whatever is left.
func CalculateColumns(itemWidth int, cfg TableConfig) (name, target, tags int) {
	name = itemWidth * cfg.NamePercent / 100
	target = itemWidth * cfg.TargetPercent / 100
	tags = itemWidth - name - target
	if tags < 0 {
		tags = 0
	}
	return name, target, tags
}

// Rect is a screen region in cells. The right and bottom edges are
// exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// CalculateDetailPaneRect returns the screen region of the right-hand pane,
// border included. originX and originY locate the top-left corner of the
// list pane.
func CalculateDetailPaneRect(terminalWidth, terminalHeight, originX, originY int, cfg PaneConfig) Rect {
	panes := CalculatePaneWidths(terminalWidth, cfg)
	height := CalculatePaneHeight(terminalHeight, cfg)
	return Rect{
		X: originX + panes.ListWidth + 2,
		Y: originY,
		W: panes.DetailWidth + 2,
		H: height + 2,
	}
}
