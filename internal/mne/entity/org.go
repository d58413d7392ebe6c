package entity

import (
	"time"
)

// DivisionType 事业部类型
const (
	DivisionIncomeGenerating = "INCOME_GENERATING"
	DivisionSupport          = "SUPPORT"
)

// Division 事业部
type Division struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"size:200;not null;uniqueIndex"`
	Type        string    `json:"type" gorm:"size:32;not null;default:SUPPORT"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`

	// 关联
	Departments []Department `json:"departments,omitempty" gorm:"foreignKey:DivisionID"`
}

func (Division) TableName() string {
	return "divisions"
}

// Department 部门
type Department struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	DivisionID  string    `json:"division_id" gorm:"size:36;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`

	// 关联
	Division       *Division       `json:"division,omitempty" gorm:"foreignKey:DivisionID"`
	SubDepartments []SubDepartment `json:"sub_departments,omitempty" gorm:"foreignKey:DepartmentID"`
}

func (Department) TableName() string {
	return "departments"
}

// SubDepartment 子部门
type SubDepartment struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Name         string    `json:"name" gorm:"size:200;not null"`
	DepartmentID string    `json:"department_id" gorm:"size:36;not null;index"`
	Description  string    `json:"description" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`

	// 关联
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

func (SubDepartment) TableName() string {
	return "sub_departments"
}

// User 用户
type User struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	Username        string    `json:"username" gorm:"size:100;not null;uniqueIndex"`
	PasswordHash    string    `json:"-" gorm:"size:100;not null"`
	FullName        string    `json:"full_name" gorm:"size:200;not null"`
	Email           string    `json:"email" gorm:"size:255;index"`
	Phone           string    `json:"phone" gorm:"size:20"`
	Role            string    `json:"role" gorm:"size:32;not null;default:SUB_DEPARTMENT_STAFF"`
	DivisionID      *string   `json:"division_id" gorm:"size:36"`
	DepartmentID    *string   `json:"department_id" gorm:"size:36"`
	SubDepartmentID *string   `json:"sub_department_id" gorm:"size:36"`
	IsActive        bool      `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`

	// 关联
	Division   *Division   `json:"division,omitempty" gorm:"foreignKey:DivisionID"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

func (User) TableName() string {
	return "users"
}
