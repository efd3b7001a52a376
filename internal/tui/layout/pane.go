package layout

// CalculateListHeight computes the number of tab rows that fit.
// Returns at least MinHeight.
func CalculateListHeight(terminalHeight int, cfg ListConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateItemWidth computes the width available for a row.
func CalculateItemWidth(terminalWidth int, cfg ListConfig) int {
	width := terminalWidth - cfg.ContentPadding
	if width < 1 {
		return 1
	}
	return width
}

// CalculateColumnWidths splits a row between title and URL.
func CalculateColumnWidths(itemWidth int, cfg ListConfig) (title, url int) {
	title = itemWidth * cfg.TitleWidthPercent / 100
	url = itemWidth - title - 1 // one space between columns
	if url < 0 {
		url = 0
	}
	return title, url
}

// CalculateGridColumns computes how many cells fit side by side. At least one.
func CalculateGridColumns(itemWidth int, cfg GridConfig) int {
	if cfg.CellWidth <= 0 {
		return 1
	}
	cols := (itemWidth + cfg.Gap) / (cfg.CellWidth + cfg.Gap)
	if cols < 1 {
		return 1
	}
	return cols
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
