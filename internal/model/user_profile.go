package model

import "time"

type UserProfile struct {
	UID          string     `gorm:"column:uid;primaryKey;size:128" json:"uid"`
	DisplayName  string     `gorm:"column:display_name;size:255" json:"displayName"`
	SearchName   string     `gorm:"column:search_name;size:255;index" json:"-"`
	Email        string     `gorm:"column:email;size:255" json:"-"`
	PhotoURL     string     `gorm:"column:photo_url;size:1024" json:"photoURL"`
	AvatarURL    string     `gorm:"column:avatar_url;size:1024" json:"avatarUrl"`
	AvatarPath   string     `gorm:"column:avatar_path;size:512" json:"-"`
	IsAdmin      bool       `gorm:"column:is_admin;not null" json:"isAdmin"`
	Banned       bool       `gorm:"column:banned;not null" json:"banned"`
	BannedAt     *time.Time `gorm:"column:banned_at" json:"bannedAt,omitempty"`
	BannedReason string     `gorm:"column:banned_reason;size:512" json:"bannedReason,omitempty"`
	BannedBy     string     `gorm:"column:banned_by;size:128" json:"-"`
	LikesCount   int64      `gorm:"column:likes_count;not null" json:"likesCount"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// ProfileLike is one entry of a profile's liked-by set.
type ProfileLike struct {
	ProfileUID string    `gorm:"column:profile_uid;primaryKey;size:128"`
	LikerUID   string    `gorm:"column:liker_uid;primaryKey;size:128"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ProfileLike) TableName() string {
	return "profile_likes"
}
