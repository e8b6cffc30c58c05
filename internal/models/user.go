package models

import (
	"time"
)

// ユーザータイプ
const (
	UserTypeStudent = "student" // 学生
	UserTypeAdvisor = "advisor" // 顧問・コーチ
	UserTypeAlumni  = "alumni"  // OG/OB
	UserTypeStaff   = "staff"   // スタッフ
)

// User は会員モデル
type User struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	UserType          string     `json:"userType" gorm:"not null"`
	LastName          string     `json:"lastName" gorm:"not null"`
	FirstName         string     `json:"firstName" gorm:"not null"`
	LastNameKana      string     `json:"lastNameKana" gorm:"not null"`
	FirstNameKana     string     `json:"firstNameKana" gorm:"not null"`
	LastNameRomaji    string     `json:"lastNameRomaji" gorm:"not null"`
	FirstNameRomaji   string     `json:"firstNameRomaji" gorm:"not null"`
	Gender            string     `json:"gender" gorm:"not null"`
	PostalCode        string     `json:"postalCode" gorm:"not null"`
	Address           string     `json:"address" gorm:"not null"`
	Building          *string    `json:"building"`
	Affiliation       *string    `json:"affiliation"`
	AffiliationDetail *string    `json:"affiliationDetail"`
	SchoolName        *string    `json:"schoolName"`
	BirthDate         time.Time  `json:"birthDate" gorm:"not null"`
	Phone             string     `json:"phone" gorm:"not null"`
	PhotoURL          *string    `json:"photoUrl" gorm:"column:photo_url"`
	Email             string     `json:"email" gorm:"unique;not null"`
	Password          string     `json:"-" gorm:"not null"`
	ReceiveNews       bool       `json:"receiveNews" gorm:"default:false"`
	ParentalConsent   bool       `json:"parentalConsent" gorm:"default:false"`
	ResetToken        *string    `json:"-"`
	ResetTokenExpiry  *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// SessionUser セッションCookieとログインレスポンスに載せる最小限のユーザー情報。
// パスワードハッシュは決して含めない
type SessionUser struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserType  string `json:"userType"`
}

// ToSessionUser セッション用のプロジェクションを作成
func (u *User) ToSessionUser() SessionUser {
	return SessionUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserType:  u.UserType,
	}
}
