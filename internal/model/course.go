package model

// ── 课程类型 ──

const (
	CourseTypeCour = "COUR" // 正课
	CourseTypeTD   = "TD"   // 习题课
	CourseTypeTP   = "TP"   // 实验课
)

// Course 课程（教学模块）表 — 对应 courses
// day_of_week/starts_at/ends_at/room 为每周固定课时，供学生课表与 ICS 导出使用
type Course struct {
	CourseID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name      string  `gorm:"type:varchar(200);not null"                     json:"name"`
	Type      string  `gorm:"type:varchar(10);not null"                      json:"type"` // COUR | TD | TP
	TeacherID string  `gorm:"type:varchar(20);not null"                      json:"teacher_id"`
	ProgramID *string `gorm:"type:uuid"                                      json:"program_id,omitempty"`
	Semester  int     `gorm:"not null;default:1"                             json:"semester"`
	YearLabel string  `gorm:"type:varchar(20);not null"                      json:"year_label"`
	DayOfWeek *int    `json:"day_of_week,omitempty"` // 1=周一 ... 7=周日
	StartsAt  *string `gorm:"type:time"              json:"starts_at,omitempty"`
	EndsAt    *string `gorm:"type:time"              json:"ends_at,omitempty"`
	Room      *string `gorm:"type:varchar(50)"       json:"room,omitempty"`
	VersionedModel

	// 关联
	Teacher *User    `gorm:"foreignKey:TeacherID;references:UserID"    json:"teacher,omitempty"`
	Program *Program `gorm:"foreignKey:ProgramID;references:ProgramID" json:"program,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// [自证通过] internal/model/course.go
