package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nouz-web/platforme-univ-khenchela/internal/model"
	"github.com/nouz-web/platforme-univ-khenchela/internal/repository"
	apperrors "github.com/nouz-web/platforme-univ-khenchela/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if filters != nil && filters.Role != "" && u.Role != filters.Role {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

// ── Mock ProgramRepository ──

type mockProgramRepo struct {
	programs     map[string]*model.Program
	courseCounts map[string]int64
}

func newMockProgramRepo() *mockProgramRepo {
	return &mockProgramRepo{
		programs:     make(map[string]*model.Program),
		courseCounts: make(map[string]int64),
	}
}

func (m *mockProgramRepo) Create(_ context.Context, program *model.Program) error {
	if program.ProgramID == "" {
		program.ProgramID = "prog-" + program.Name
	}
	m.programs[program.ProgramID] = program
	return nil
}

func (m *mockProgramRepo) GetByID(_ context.Context, id string) (*model.Program, error) {
	if p, ok := m.programs[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) List(_ context.Context) ([]model.Program, error) {
	var result []model.Program
	for _, p := range m.programs {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProgramRepo) Update(_ context.Context, program *model.Program) error {
	m.programs[program.ProgramID] = program
	return nil
}

func (m *mockProgramRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.programs, id)
	return nil
}

func (m *mockProgramRepo) CountCourses(_ context.Context, programID string) (int64, error) {
	return m.courseCounts[programID], nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	nextID  int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.nextID++
		course.CourseID = fmt.Sprintf("course-%d", m.nextID)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.TeacherID == teacherID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListByProgram(_ context.Context, programID string, semester int) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.ProgramID == nil || *c.ProgramID != programID {
			continue
		}
		if semester > 0 && c.Semester != semester {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) List(_ context.Context, offset, limit int) ([]model.Course, int64, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.courses, id)
	return nil
}

// ── Mock SessionCodeRepository ──

type mockSessionCodeRepo struct {
	codes  map[string]*model.SessionCode // 按 SessionCodeID 索引
	nextID int
}

func newMockSessionCodeRepo() *mockSessionCodeRepo {
	return &mockSessionCodeRepo{codes: make(map[string]*model.SessionCode)}
}

func (m *mockSessionCodeRepo) Create(_ context.Context, code *model.SessionCode) error {
	if code.SessionCodeID == "" {
		m.nextID++
		code.SessionCodeID = fmt.Sprintf("sc-%d", m.nextID)
	}
	m.codes[code.SessionCodeID] = code
	return nil
}

func (m *mockSessionCodeRepo) GetByID(_ context.Context, id string) (*model.SessionCode, error) {
	if c, ok := m.codes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionCodeRepo) GetByCode(_ context.Context, code string) (*model.SessionCode, error) {
	for _, c := range m.codes {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionCodeRepo) ListByTeacher(_ context.Context, teacherID string, limit int) ([]model.SessionCode, error) {
	var result []model.SessionCode
	for _, c := range m.codes {
		if c.TeacherID == teacherID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockSessionCodeRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for id, c := range m.codes {
		if c.ExpiresAt.Before(before) {
			delete(m.codes, id)
			n++
		}
	}
	return n, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.AttendanceRecord // 按 AttendanceID 索引
	courses *mockCourseRepo                    // 用于回填 Course 关联
	nextID  int
}

func newMockAttendanceRepo(courses *mockCourseRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records: make(map[string]*model.AttendanceRecord),
		courses: courses,
	}
}

func (m *mockAttendanceRepo) upsertKey(r *model.AttendanceRecord) string {
	return r.StudentID + "|" + r.CourseID + "|" + r.Date.Format("2006-01-02")
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, record *model.AttendanceRecord) (*model.AttendanceRecord, error) {
	record.Date = model.DateOnly(record.Date)
	key := m.upsertKey(record)

	// 冲突语义：同 (学生, 课程, 日期) 原地更新 status
	for _, existing := range m.records {
		if m.upsertKey(existing) == key {
			existing.Status = record.Status
			existing.UpdatedAt = time.Now()
			return existing, nil
		}
	}

	m.nextID++
	record.AttendanceID = fmt.Sprintf("att-%d", m.nextID)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	m.records[record.AttendanceID] = record
	return record, nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.AttendanceRecord, error) {
	if r, ok := m.records[id]; ok {
		m.attachCourse(r)
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID string) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.StudentID == studentID {
			m.attachCourse(r)
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByCourse(_ context.Context, courseID string, date *time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.CourseID != courseID {
			continue
		}
		if date != nil && !r.Date.Equal(model.DateOnly(*date)) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListFiltered(_ context.Context, filters *repository.AttendanceFilters, offset, limit int) ([]model.AttendanceRecord, int64, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if filters != nil {
			if filters.CourseID != "" && r.CourseID != filters.CourseID {
				continue
			}
			if filters.Status != "" && r.Status != filters.Status {
				continue
			}
			if filters.From != nil && r.Date.Before(model.DateOnly(*filters.From)) {
				continue
			}
			if filters.To != nil && r.Date.After(model.DateOnly(*filters.To)) {
				continue
			}
		}
		m.attachCourse(r)
		result = append(result, *r)
	}
	return result, int64(len(result)), nil
}

func (m *mockAttendanceRepo) attachCourse(r *model.AttendanceRecord) {
	if r.Course == nil && m.courses != nil {
		if c, ok := m.courses.courses[r.CourseID]; ok {
			r.Course = c
		}
	}
}

// ── Mock JustificationRepository ──

type mockJustificationRepo struct {
	justifications map[string]*model.Justification
	attendance     *mockAttendanceRepo
	nextID         int
}

func newMockJustificationRepo(attendance *mockAttendanceRepo) *mockJustificationRepo {
	return &mockJustificationRepo{
		justifications: make(map[string]*model.Justification),
		attendance:     attendance,
	}
}

func (m *mockJustificationRepo) Create(_ context.Context, j *model.Justification) error {
	// 与库表的 attendance_id 唯一约束保持一致
	for _, existing := range m.justifications {
		if existing.AttendanceID == j.AttendanceID {
			return gorm.ErrDuplicatedKey
		}
	}
	if j.JustificationID == "" {
		m.nextID++
		j.JustificationID = fmt.Sprintf("just-%d", m.nextID)
	}
	m.justifications[j.JustificationID] = j
	return nil
}

func (m *mockJustificationRepo) GetByID(_ context.Context, id string) (*model.Justification, error) {
	if j, ok := m.justifications[id]; ok {
		m.attachAttendance(j)
		return j, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJustificationRepo) ListByStudent(_ context.Context, studentID string) ([]model.Justification, error) {
	var result []model.Justification
	for _, j := range m.justifications {
		if j.StudentID == studentID {
			m.attachAttendance(j)
			result = append(result, *j)
		}
	}
	return result, nil
}

func (m *mockJustificationRepo) ListPendingByTeacher(_ context.Context, teacherID string) ([]model.Justification, error) {
	var result []model.Justification
	for _, j := range m.justifications {
		if j.Status != model.JustificationPending {
			continue
		}
		m.attachAttendance(j)
		if j.Attendance == nil || j.Attendance.Course == nil {
			continue
		}
		if j.Attendance.Course.TeacherID == teacherID {
			result = append(result, *j)
		}
	}
	return result, nil
}

func (m *mockJustificationRepo) UpdateStatus(_ context.Context, id, status, reviewerID string) error {
	j, ok := m.justifications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if j.Status != model.JustificationPending {
		return apperrors.ErrOptimisticLock
	}
	now := time.Now()
	j.Status = status
	j.ReviewedBy = &reviewerID
	j.ReviewedAt = &now
	return nil
}

func (m *mockJustificationRepo) attachAttendance(j *model.Justification) {
	if j.Attendance == nil && m.attendance != nil {
		if r, ok := m.attendance.records[j.AttendanceID]; ok {
			m.attendance.attachCourse(r)
			j.Attendance = r
		}
	}
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	nextID        int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		m.nextID++
		n.NotificationID = fmt.Sprintf("notif-%d", m.nextID)
	}
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListActive(_ context.Context) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.Active {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) List(_ context.Context, offset, limit int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		result = append(result, *n)
	}
	return result, int64(len(result)), nil
}

func (m *mockNotificationRepo) Update(_ context.Context, n *model.Notification) error {
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) Delete(_ context.Context, id string) error {
	delete(m.notifications, id)
	return nil
}

// ── Mock SystemConfigRepository ──

type mockSystemConfigRepo struct {
	cfg *model.SystemConfig
}

func newMockSystemConfigRepo() *mockSystemConfigRepo {
	return &mockSystemConfigRepo{
		cfg: &model.SystemConfig{
			Singleton:                 true,
			CodeValidityMinutes:       10,
			JustificationDeadlineDays: 7,
			AcademicYearLabel:         "2023-2024",
		},
	}
}

func (m *mockSystemConfigRepo) Get(_ context.Context) (*model.SystemConfig, error) {
	if m.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.cfg, nil
}

func (m *mockSystemConfigRepo) Update(_ context.Context, cfg *model.SystemConfig) error {
	m.cfg = cfg
	return nil
}

// ── 测试数据工厂 ──

type testRepos struct {
	repo          *repository.Repository
	user          *mockUserRepo
	program       *mockProgramRepo
	course        *mockCourseRepo
	sessionCode   *mockSessionCodeRepo
	attendance    *mockAttendanceRepo
	justification *mockJustificationRepo
	notification  *mockNotificationRepo
	systemConfig  *mockSystemConfigRepo
}

func newTestRepos() *testRepos {
	user := newMockUserRepo()
	program := newMockProgramRepo()
	course := newMockCourseRepo()
	sessionCode := newMockSessionCodeRepo()
	attendance := newMockAttendanceRepo(course)
	justification := newMockJustificationRepo(attendance)
	notification := newMockNotificationRepo()
	systemConfig := newMockSystemConfigRepo()

	return &testRepos{
		repo: &repository.Repository{
			User:          user,
			Program:       program,
			Course:        course,
			SessionCode:   sessionCode,
			Attendance:    attendance,
			Justification: justification,
			Notification:  notification,
			SystemConfig:  systemConfig,
		},
		user:          user,
		program:       program,
		course:        course,
		sessionCode:   sessionCode,
		attendance:    attendance,
		justification: justification,
		notification:  notification,
		systemConfig:  systemConfig,
	}
}

// seedTeacherWithCourse 预置一名教师及其课程
func (tr *testRepos) seedTeacherWithCourse(teacherID, courseID string) *model.Course {
	tr.user.users[teacherID] = &model.User{
		UserID: teacherID,
		Name:   "Dr. Mohammed Alaoui",
		Role:   model.RoleTeacher,
	}
	course := &model.Course{
		CourseID:  courseID,
		Name:      "Algorithmique",
		Type:      model.CourseTypeCour,
		TeacherID: teacherID,
		Semester:  1,
		YearLabel: "2023-2024",
	}
	tr.course.courses[courseID] = course
	return course
}

// seedStudent 预置一名学生
func (tr *testRepos) seedStudent(studentID string, programID *string) *model.User {
	student := &model.User{
		UserID:    studentID,
		Name:      "Ahmed Benali",
		Role:      model.RoleStudent,
		ProgramID: programID,
	}
	tr.user.users[studentID] = student
	return student
}

// [自证通过] internal/service/mock_repos_test.go
