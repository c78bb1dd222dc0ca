package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the user model stored in the database. The password
// hash is never serialized. Superusers may exist without a tenant.
type User struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email          string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	FullName       string     `json:"full_name" gorm:"type:varchar(100);index"`
	HashedPassword string     `json:"-" gorm:"type:varchar(255);not null"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	IsSuperuser    bool       `json:"is_superuser" gorm:"default:false"`
	TenantID       *uuid.UUID `json:"tenant_id" gorm:"type:uuid;index"`

	Tenant *Tenant `json:"-" gorm:"foreignKey:TenantID"`
	Timestamps
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
