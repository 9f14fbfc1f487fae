package domain

import "time"

// Resident 入居者领域模型（对应 residents 表）
type Resident struct {
	ResidentID int64  `db:"id" json:"resident_id"`
	UnitID     int64  `db:"unit_id" json:"unit_id"` // FK to units
	Name       string `db:"name" json:"name"`

	// 要介護度等区分 / 主病名（可选）
	CareLevel string `db:"care_level" json:"care_level,omitempty"`
	Disease   string `db:"disease" json:"disease,omitempty"`

	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
