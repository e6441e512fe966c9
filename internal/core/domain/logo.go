package domain

import "time"

// Logo is the application logo singleton, stored under "app:logo". Absent
// until the first manager upload, then overwritten with no history.
type Logo struct {
	URL        string    `json:"url"`
	FileName   string    `json:"fileName"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}
