package model

import "time"

// Profile holds the public details of a student, volunteer or mentor.
type Profile struct {
	UserID         string    `gorm:"column:user_id;primaryKey" json:"userId"`
	FullName       string    `gorm:"column:full_name" json:"fullName"`
	Location       string    `gorm:"column:location" json:"location"`
	Bio            string    `gorm:"column:bio" json:"bio"`
	Skills         string    `gorm:"column:skills" json:"skills"`
	Availability   string    `gorm:"column:availability" json:"availability"`
	Education      string    `gorm:"column:education" json:"education"`
	Experience     string    `gorm:"column:experience" json:"experience"`
	ResumeFileName string    `gorm:"column:resume_file_name" json:"resumeFileName,omitempty"`
	ResumeURL      string    `gorm:"column:resume_url" json:"resumeUrl,omitempty"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileWithAccount is a profile joined with the owning account's identity.
type ProfileWithAccount struct {
	Profile
	Name  string `gorm:"column:name" json:"name"`
	Email string `gorm:"column:email" json:"email"`
	Role  Role   `gorm:"column:role" json:"role"`
}
