package models

// Image is a slider or gallery image row
type Image struct {
	ID       int64  `db:"id" json:"id"`
	BureauID string `db:"bureau_id" json:"bureauId,omitempty"`
	ImageURL string `db:"image_url" json:"imageUrl"`
}
