package models

import "time"

// Setting is a free-form key/value store for operator-editable configuration
// that should not require a redeploy. The risk score weight table lives under
// the "risk_score_weights" key as JSON.
type Setting struct {
	Key       string    `gorm:"size:64;primaryKey" json:"key"`
	Value     string    `gorm:"type:longtext" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
