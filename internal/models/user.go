package models

import "time"

// Permissions: Kullanıcının bağımsız yetki bayrakları
type Permissions struct {
	Add              bool `json:"add"`
	Edit             bool `json:"edit"`
	Delete           bool `json:"delete"`
	ChangeStatus     bool `json:"changeStatus"`
	ManageCategories bool `json:"manageCategories"`
	ManageUsers      bool `json:"manageUsers"`
}

type User struct {
	ID                  uint   `gorm:"primaryKey"`
	Username            string `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash        string `gorm:"size:255;not null"`
	CanAdd              bool   `gorm:"not null;default:false"`
	CanEdit             bool   `gorm:"not null;default:false"`
	CanDelete           bool   `gorm:"not null;default:false"`
	CanChangeStatus     bool   `gorm:"not null;default:false"`
	CanManageCategories bool   `gorm:"not null;default:false"`
	CanManageUsers      bool   `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (u *User) Permissions() Permissions {
	return Permissions{
		Add:              u.CanAdd,
		Edit:             u.CanEdit,
		Delete:           u.CanDelete,
		ChangeStatus:     u.CanChangeStatus,
		ManageCategories: u.CanManageCategories,
		ManageUsers:      u.CanManageUsers,
	}
}

func (u *User) SetPermissions(p Permissions) {
	u.CanAdd = p.Add
	u.CanEdit = p.Edit
	u.CanDelete = p.Delete
	u.CanChangeStatus = p.ChangeStatus
	u.CanManageCategories = p.ManageCategories
	u.CanManageUsers = p.ManageUsers
}
