package model

import (
	"time"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ActivationCodeModel represents the activation_codes table.
type ActivationCodeModel struct {
	Code        string     `gorm:"type:varchar(64);primaryKey"`
	Active      bool       `gorm:"default:true"`
	Used        bool       `gorm:"default:false"`
	MaxUses     int        `gorm:"default:1"`
	CurrentUses int        `gorm:"default:0"`
	PaymentID   string     `gorm:"type:varchar(255)"`
	Kind        string     `gorm:"type:varchar(20)"`
	ExpiresAt   *time.Time `gorm:"type:timestamptz;index"`
	CreatedBy   string     `gorm:"type:varchar(255)"`
	UsedBy      string     `gorm:"type:varchar(255)"`
	UsedAt      *time.Time `gorm:"type:timestamptz"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for the ActivationCodeModel.
func (ActivationCodeModel) TableName() string {
	return "activation_codes"
}

// ToEntity converts an ActivationCodeModel to a domain ActivationCode entity.
func (m *ActivationCodeModel) ToEntity() *entity.ActivationCode {
	return &entity.ActivationCode{
		Code:        m.Code,
		Active:      m.Active,
		Used:        m.Used,
		MaxUses:     m.MaxUses,
		CurrentUses: m.CurrentUses,
		PaymentID:   m.PaymentID,
		Kind:        m.Kind,
		ExpiresAt:   m.ExpiresAt,
		CreatedBy:   m.CreatedBy,
		UsedBy:      m.UsedBy,
		UsedAt:      m.UsedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ActivationCodeFromEntity creates an ActivationCodeModel from a domain entity.
func ActivationCodeFromEntity(code *entity.ActivationCode) *ActivationCodeModel {
	return &ActivationCodeModel{
		Code:        code.Code,
		Active:      code.Active,
		Used:        code.Used,
		MaxUses:     code.MaxUses,
		CurrentUses: code.CurrentUses,
		PaymentID:   code.PaymentID,
		Kind:        code.Kind,
		ExpiresAt:   code.ExpiresAt,
		CreatedBy:   code.CreatedBy,
		UsedBy:      code.UsedBy,
		UsedAt:      code.UsedAt,
		CreatedAt:   code.CreatedAt,
		UpdatedAt:   code.UpdatedAt,
	}
}
