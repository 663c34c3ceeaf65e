package response

import (
	"time"

	"linkea/internal/core/domain/user"
)

type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Links       string    `json:"links"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = string(du.ID)
	u.Name = du.Name
	u.Email = string(du.Email)
	u.Handle = string(du.Handle)
	u.Description = du.Description
	u.Image = du.Image
	u.Links = du.Links
	u.CreatedAt = du.CreatedAt
}

type Profile struct {
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Links       string `json:"links"`
}

func (p *Profile) FromDomainProfile(dp user.PublicProfile) {
	p.Handle = string(dp.Handle)
	p.Name = dp.Name
	p.Description = dp.Description
	p.Image = dp.Image
	p.Links = dp.Links
}
