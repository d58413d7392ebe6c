package repository

import (
	"context"
	"errors"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"gorm.io/gorm"
)

// OrgRepository 组织架构仓库
type OrgRepository struct {
	db *gorm.DB
}

// NewOrgRepository 创建组织架构仓库
func NewOrgRepository(db *gorm.DB) *OrgRepository {
	return &OrgRepository{db: db}
}

// ListDivisions 获取全部战区
func (r *OrgRepository) ListDivisions(ctx context.Context) ([]entity.Division, error) {
	var divisions []entity.Division
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&divisions).Error
	return divisions, err
}

// FindDivision 根据ID查找战区
func (r *OrgRepository) FindDivision(ctx context.Context, id string) (*entity.Division, error) {
	var division entity.Division
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&division).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &division, nil
}

// ListDepartments 获取战区下的科室
func (r *OrgRepository) ListDepartments(ctx context.Context, divisionID string) ([]entity.Department, error) {
	query := r.db.WithContext(ctx).Model(&entity.Department{})
	if divisionID != "" {
		query = query.Where("division_id = ?", divisionID)
	}

	var departments []entity.Department
	err := query.Order("name ASC").Find(&departments).Error
	return departments, err
}

// FindDepartment 根据ID查找科室
func (r *OrgRepository) FindDepartment(ctx context.Context, id string) (*entity.Department, error) {
	var department entity.Department
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &department, nil
}

// FindUser 根据ID查找用户
func (r *OrgRepository) FindUser(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByUsername 根据用户名查找用户
func (r *OrgRepository) FindUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
