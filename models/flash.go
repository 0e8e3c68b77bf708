package models

// Flash is a one-time notice shown on the next rendered page after a
// redirect. Category is one of: success, danger, info, secondary.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}
