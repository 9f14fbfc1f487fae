package domain

import "time"

// SafetyChecks 巡视安全确认的固定选项（显示时排在自由输入项之前）
var SafetyChecks = []string{"room_temp_ok", "no_condition_change", "no_hazards", "no_fall_risk"}

// MaxPatrols 一条记录最多的巡视数
const MaxPatrols = 6

// PatrolStatuses 巡视时的状况选项
var PatrolStatuses = []string{"", "asleep", "awake_calm", "awake_restless", "agitated", "absent"}

// Patrol 巡视子记录（对应 daily_patrols 表）
type Patrol struct {
	PatrolID     int64      `db:"id" json:"patrol_id"`
	RecordID     int64      `db:"record_id" json:"record_id"` // FK to daily_records
	PatrolNo     int        `db:"patrol_no" json:"patrol_no"`
	Time         *TimeOfDay `json:"time,omitempty"` // patrol_time_hh / patrol_time_mm
	Status       string     `db:"status" json:"status"`
	Memo         string     `db:"memo" json:"memo"`
	Intervened   bool       `db:"intervened" json:"intervened"`
	DoorOpened   bool       `db:"door_opened" json:"door_opened"`
	SafetyChecks []string   `db:"safety_checks" json:"safety_checks"` // 逗号分隔存储
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// HasContent 巡视是否有任何输入（全空的巡视不保存）
func (p Patrol) HasContent() bool {
	return p.Time != nil ||
		p.Status != "" ||
		p.Memo != "" ||
		p.Intervened ||
		p.DoorOpened ||
		len(p.SafetyChecks) > 0
}
