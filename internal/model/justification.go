package model

import "time"

// ── 证明审核状态 ──

const (
	JustificationPending  = "pending"
	JustificationApproved = "approved"
	JustificationRejected = "rejected"
)

// Justification 缺勤证明表 — 对应 justifications
// 只能挂在 status=absent 的考勤记录上，由该课程的授课教师审核
type Justification struct {
	JustificationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"justification_id"`
	StudentID       string     `gorm:"type:varchar(20);not null"                      json:"student_id"`
	AttendanceID    string     `gorm:"type:uuid;not null"                             json:"attendance_id"`
	Reason          string     `gorm:"type:text;not null"                             json:"reason"`
	FilePath        *string    `gorm:"type:varchar(500)"                              json:"file_path,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	SubmittedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`
	ReviewedBy      *string    `gorm:"type:varchar(20)"                               json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`

	// 关联
	Student    *User             `gorm:"foreignKey:StudentID;references:UserID"            json:"student,omitempty"`
	Attendance *AttendanceRecord `gorm:"foreignKey:AttendanceID;references:AttendanceID" json:"attendance,omitempty"`
}

// TableName 指定表名
func (Justification) TableName() string { return "justifications" }

// [自证通过] internal/model/justification.go
