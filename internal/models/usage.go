package models

// CommandUsage is a per-user counter for a single command.
type CommandUsage struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	CommandName string `json:"command_name"`
	UsageCount  int64  `json:"usage_count"`
}

// UsageStats aggregates counters for the /stats report.
type UsageStats struct {
	Total     int64
	ByCommand map[string]int64
}
