package dto

// AddPresetRequest represents the request body for adding a group label.
type AddPresetRequest struct {
	Label string `json:"label" binding:"required"`
}

// ToggleGroupTotalRequest represents the request body for toggling a group's
// subtotal column.
type ToggleGroupTotalRequest struct {
	Label string `json:"label" binding:"required"`
	Show  *bool  `json:"show" binding:"required"`
}

// PresetsResponse represents the preset vocabulary.
type PresetsResponse struct {
	Presets []string `json:"presets"`
	Added   *bool    `json:"added,omitempty"`
}

// ShowTotalsResponse represents the per-group subtotal settings.
type ShowTotalsResponse struct {
	ShowTotals map[string]bool `json:"show_totals"`
}
