package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
	Table TableConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + status bar (2) = 6
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthOffset is subtracted before splitting the width between the
	// row list and the detail pane (borders and padding of both panes).
	WidthOffset int

	// ListWidthPercent is the row list's share of the remaining width.
	ListWidthPercent int

	// MinListWidth and MinDetailWidth bound the two panes.
	MinListWidth   int
	MinDetailWidth int

	// ContentPadding is subtracted from pane width for row rendering.
	ContentPadding int

	// DetailHeaderLines is the number of fixed lines above the preview.
	DetailHeaderLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// VerticalChrome is the number of help overlay lines that are not key
	// bindings: border, padding, title and hints.
	VerticalChrome int

	// HelpKeyColumnWidth: width of the key column in the help overlay.
	HelpKeyColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TagCharLimit    int
	FilterCharLimit int

	StandardWidth int // tag input
	FilterWidth   int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// TableConfig holds row list column widths as percentages of the item width.
type TableConfig struct {
	NamePercent   int
	TargetPercent int
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:   6, // app padding (1) + header (1) + pane borders (2) + status bar (2)
			MinHeight:         5,
			WidthOffset:       6,
			ListWidthPercent:  55,
			MinListWidth:      30,
			MinDetailWidth:    20,
			ContentPadding:    4,
			DetailHeaderLines: 8,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 50,
			MinWidth:            40,
			MaxWidth:            80,
			VerticalChrome:      8,
			HelpKeyColumnWidth:  14,
		},
		Input: InputConfig{
			TagCharLimit:    50,
			FilterCharLimit: 50,
			StandardWidth:   30,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
		Table: TableConfig{
			NamePercent:   40,
			TargetPercent: 45,
		},
	}
}
