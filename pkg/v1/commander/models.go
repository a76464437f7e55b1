package commander

// Pipeline command names.
const (
	CommandRefresh = "refresh"
	CommandWarm    = "warm"
)

// Command is one pipeline command message.
type Command struct {
	Command     string `json:"command"`
	MaxAgeHours int    `json:"maxAgeHours,omitempty"`
	SKU         string `json:"sku,omitempty"`
}
