package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Grid  GridConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds list area configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for the tab area.
	// Accounts for: app padding (1) + header (1) + spacer (1) + message (1) + hint bar (1) = 5
	HeightReduction int

	// MinHeight is the minimum number of rows shown.
	MinHeight int

	// ContentPadding is subtracted from terminal width for row rendering.
	// Accounts for app padding on each side.
	ContentPadding int

	// TitleWidthPercent is the share of a row given to the title; the URL gets the rest.
	TitleWidthPercent int
}

// GridConfig holds grid view configuration.
type GridConfig struct {
	// CellWidth is the width of one tab cell.
	CellWidth int

	// Gap is the number of spaces between cells.
	Gap int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	SearchWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction:   5, // app padding (1) + header (1) + spacer (1) + message (1) + hint bar (1)
			MinHeight:         3,
			ContentPadding:    4,
			TitleWidthPercent: 50,
		},
		Grid: GridConfig{
			CellWidth: 24,
			Gap:       2,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			SearchWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
