package domain

import "time"

// Unit 居住单元（ユニット）领域模型（对应 units 表）
type Unit struct {
	UnitID    int64     `db:"id" json:"unit_id"`
	Name      string    `db:"name" json:"name"`           // TEXT, NOT NULL, UNIQUE
	IsActive  bool      `db:"is_active" json:"is_active"` // 停用单元不出现在选择列表
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
