package domain

import "time"

// 确认标记类型；唯一约束是 (handover_id, person_name, mark_type)，新增类型不影响该约束
const (
	MarkLike  = "like"
	MarkCheck = "check"
)

// MaxMarkTypeLen mark_type 最大长度
const MaxMarkTypeLen = 32

// ToggleResult 切换结果
type ToggleResult string

const (
	ToggleAdded   ToggleResult = "added"
	ToggleRemoved ToggleResult = "removed"
)

// Acknowledgement 申し送り的确认/点赞标记（对应 handover_reactions 表）
// 只有插入和物理删除，没有更新
type Acknowledgement struct {
	HandoverID int64     `db:"handover_id" json:"handover_id"`
	PersonName string    `db:"person_name" json:"person_name"`
	MarkType   string    `db:"mark_type" json:"mark_type"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
