package models

// UserPreference stores per-user display settings. The only one today is
// the UTC offset used to localize reminder times, kept in "+HH:MM" form.
type UserPreference struct {
	UserID    int64  `json:"user_id"`
	UTCOffset string `json:"utc_offset"`
}
