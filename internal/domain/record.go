package domain

import (
	"fmt"
	"time"
)

// DateLayout 记录日期 / 申し送り日期的存储格式
const DateLayout = "2006-01-02"

// Shift 勤务区分
const (
	ShiftDay   = "day"
	ShiftNight = "night"
)

// Scenes 支援记录的场面（空字符串 = 未选择）
var Scenes = []string{
	"", "wakeup", "condition", "meal", "bath", "bedtime",
	"outing", "day_service", "medication", "social", "money", "other",
}

// SceneWakeup 选择该场面时自动置 wakeup_flag
const SceneWakeup = "wakeup"

// FeverThreshold 体温 >= 该值视为发热
const FeverThreshold = 37.5

// LowIntakeScore 摄取量 <= 该值视为低摄取
const LowIntakeScore = 3

// TimeOfDay 记录时刻（时、分必须同时存在或同时缺失，用指针 nil 表示缺失）
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Valid 检查时刻范围
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Vitals 一次测量（AM 或 PM），nil 字段 = 未测定
type Vitals struct {
	Temperature *float64 `json:"temperature,omitempty"` // ℃
	Systolic    *int     `json:"systolic,omitempty"`
	Diastolic   *int     `json:"diastolic,omitempty"`
	Pulse       *int     `json:"pulse,omitempty"`
	SpO2        *int     `json:"spo2,omitempty"`
}

// Empty 是否一个值都没有
func (v Vitals) Empty() bool {
	return v.Temperature == nil && v.Systolic == nil && v.Diastolic == nil && v.Pulse == nil && v.SpO2 == nil
}

// Meal 一餐的摄取情况，Score 1..10（未进食时为 0）
type Meal struct {
	Done  bool `json:"done"`
	Score int  `json:"score"`
}

// LowIntake 已进食但摄取量偏低
func (m Meal) LowIntake() bool {
	return m.Done && m.Score <= LowIntakeScore
}

// Meals 早/午/晚
type Meals struct {
	Breakfast Meal `json:"breakfast"`
	Lunch     Meal `json:"lunch"`
	Dinner    Meal `json:"dinner"`
}

// Medication 服药确认（早/午/晚/睡前）
type Medication struct {
	Morning bool `json:"morning"`
	Noon    bool `json:"noon"`
	Evening bool `json:"evening"`
	Bedtime bool `json:"bedtime"`
}

// Any 是否有任一服药
func (m Medication) Any() bool {
	return m.Morning || m.Noon || m.Evening || m.Bedtime
}

// Record 支援记录领域模型（对应 daily_records 表）
// 只追加：创建后除 is_deleted / updated_at 外不再修改
type Record struct {
	RecordID   int64  `db:"id" json:"record_id"`
	UnitID     int64  `db:"unit_id" json:"unit_id"`
	ResidentID int64  `db:"resident_id" json:"resident_id"`
	RecordDate string `db:"record_date" json:"record_date"` // YYYY-MM-DD

	// record_time_hh / record_time_mm，nil = 时刻なし
	Time *TimeOfDay `json:"time,omitempty"`

	Shift      string `db:"shift" json:"shift"`
	AuthorName string `db:"recorder_name" json:"author_name"`
	Scene      string `db:"scene" json:"scene"`
	SceneNote  string `db:"scene_note" json:"scene_note,omitempty"`
	WakeupFlag bool   `db:"wakeup_flag" json:"wakeup_flag"`

	VitalsAM   Vitals     `json:"vitals_am"`
	VitalsPM   Vitals     `json:"vitals_pm"`
	Meals      Meals      `json:"meals"`
	Medication Medication `json:"medication"`

	Note  string `db:"note" json:"note"`
	Share bool   `db:"share_handover" json:"share"`

	IsDeleted bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Patrols []Patrol `json:"patrols,omitempty"`
}

// Flags 由记录派生的提示标记（列表显示用）
type Flags struct {
	FeverAM         bool `json:"fever_am"`
	FeverPM         bool `json:"fever_pm"`
	LowIntakeBreak  bool `json:"low_intake_breakfast"`
	LowIntakeLunch  bool `json:"low_intake_lunch"`
	LowIntakeDinner bool `json:"low_intake_dinner"`
	Medicated       bool `json:"medicated"`
	PatrolCount     int  `json:"patrol_count"`
}

// Flags 计算记录的提示标记
func (r *Record) Flags() Flags {
	fever := func(v Vitals) bool {
		return v.Temperature != nil && *v.Temperature >= FeverThreshold
	}
	return Flags{
		FeverAM:         fever(r.VitalsAM),
		FeverPM:         fever(r.VitalsPM),
		LowIntakeBreak:  r.Meals.Breakfast.LowIntake(),
		LowIntakeLunch:  r.Meals.Lunch.LowIntake(),
		LowIntakeDinner: r.Meals.Dinner.LowIntake(),
		Medicated:       r.Medication.Any(),
		PatrolCount:     len(r.Patrols),
	}
}
