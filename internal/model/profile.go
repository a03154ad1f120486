package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AvatarType string

const (
	AvatarEmoji  AvatarType = "emoji"
	AvatarBase64 AvatarType = "base64"
	AvatarURL    AvatarType = "url"
)

func (t AvatarType) Valid() bool {
	switch t {
	case AvatarEmoji, AvatarBase64, AvatarURL:
		return true
	}
	return false
}

// UserProfile stores per-member display data keyed by the token subject.
type UserProfile struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"-"`
	UserID   string    `gorm:"not null;uniqueIndex;index:idx_profiles_tenant_user,priority:2" json:"userId"`
	TenantID string    `gorm:"not null;index;index:idx_profiles_tenant_user,priority:1" json:"tenantId"`
	Email    string    `gorm:"not null" json:"email"`
	Name     string    `gorm:"not null" json:"name"`

	Avatar       *string    `json:"avatar,omitempty"`
	AvatarType   AvatarType `gorm:"not null;default:emoji" json:"avatarType"`
	DefaultEmoji string     `gorm:"not null;default:👤" json:"defaultEmoji"`

	Preferences ProfilePreferences `gorm:"type:jsonb" json:"preferences"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProfilePreferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

func DefaultProfilePreferences() ProfilePreferences {
	return ProfilePreferences{Theme: "light", Notifications: true}
}

func (p ProfilePreferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *ProfilePreferences) Scan(src any) error {
	return scanJSON(src, p, "ProfilePreferences")
}

// DisplayAvatar resolves what the UI should render: the uploaded image when
// one exists, otherwise the emoji fallback.
type DisplayAvatar struct {
	Type AvatarType `json:"type"`
	Data string     `json:"data"`
}

func (u *UserProfile) DisplayAvatar() DisplayAvatar {
	if u.Avatar != nil && u.AvatarType != AvatarEmoji {
		return DisplayAvatar{Type: u.AvatarType, Data: *u.Avatar}
	}
	if u.Avatar != nil {
		return DisplayAvatar{Type: AvatarEmoji, Data: *u.Avatar}
	}
	return DisplayAvatar{Type: AvatarEmoji, Data: u.DefaultEmoji}
}
