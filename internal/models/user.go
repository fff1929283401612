package models

import "time"

// User is the full account record, including reward bookkeeping. The
// password hash never leaves the server; handlers respond with Public().
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	ProfileImage    string    `json:"profileImage"`
	Coins           int       `json:"coins"`
	PlasticMaterial int       `json:"plasticMaterial"`
	GlassMaterial   int       `json:"glassMaterial"`
	MetalMaterial   int       `json:"metalMaterial"`
	PaperMaterial   int       `json:"paperMaterial"`
	OrganicMaterial int       `json:"organicMaterial"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PublicUser is the identity payload returned by the auth endpoints.
type PublicUser struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

// MaterialCount returns the counter matching a material field name, or 0
// for an unrecognized field.
func (u *User) MaterialCount(field string) int {
	switch field {
	case "plasticMaterial":
		return u.PlasticMaterial
	case "glassMaterial":
		return u.GlassMaterial
	case "metalMaterial":
		return u.MetalMaterial
	case "paperMaterial":
		return u.PaperMaterial
	case "organicMaterial":
		return u.OrganicMaterial
	}
	return 0
}
