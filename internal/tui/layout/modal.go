package layout

// CalculateModalWidth computes the modal width as DefaultWidthPercent of the
// terminal, clamped between MinWidth and MaxWidth.
func CalculateModalWidth(terminalWidth int, cfg ModalConfig) int {
	width := terminalWidth * cfg.DefaultWidthPercent / 100

	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}

	// Don't exceed terminal width
	if width > terminalWidth-4 {
		width = terminalWidth - 4
	}
	if width < 1 {
		return 1
	}

	return width
}

// CalculateHelpRows returns how many of total key bindings fit in the help
// overlay. When some are cut, one row is kept free for the "+N more" line.
func CalculateHelpRows(terminalHeight, total int, cfg ModalConfig) int {
	avail := terminalHeight - cfg.VerticalChrome
	if avail >= total {
		return total
	}
	avail-- // "+N more"
	if avail < 1 {
		return 1
	}
	return avail
}
