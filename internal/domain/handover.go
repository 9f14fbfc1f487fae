package domain

import "time"

// HandoverEntry 申し送り（连络帐）领域模型（对应 handovers 表）
type HandoverEntry struct {
	HandoverID   int64  `db:"id" json:"handover_id"`
	UnitID       int64  `db:"unit_id" json:"unit_id"`
	ResidentID   *int64 `db:"resident_id" json:"resident_id"` // nil = 全体（设施范围）
	HandoverDate string `db:"handover_date" json:"handover_date"`
	Content      string `db:"content" json:"content"` // 不允许空
	AuthorName   string `db:"created_by" json:"author_name"`

	// SourceRecordID 自动联动来源；同一记录最多对应一条（部分唯一索引）
	SourceRecordID *int64 `db:"source_record_id" json:"source_record_id,omitempty"`

	IsDeleted bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
