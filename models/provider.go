package models

import "time"

// Provider is a practitioner who accepts appointment bookings.
type Provider struct {
	ID           string             `bson:"id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Speciality   string             `bson:"speciality" json:"speciality"`
	Degree       string             `bson:"degree" json:"degree"`
	Experience   string             `bson:"experience" json:"experience"`
	About        string             `bson:"about" json:"about"`
	Fees         float64            `bson:"fees" json:"fees"`
	Address      Address            `bson:"address" json:"address"`
	ImageURL     string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Available    bool               `bson:"available" json:"available"`
	Availability WeeklyAvailability `bson:"availability,omitempty" json:"availability,omitempty"`
	TokenHash    string             `bson:"tokenHash,omitempty" json:"-"`
	FCMToken     string             `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Address struct {
	Line1 string `bson:"line1" json:"line1"`
	Line2 string `bson:"line2,omitempty" json:"line2,omitempty"`
}

// PublicView strips credentials and contact details for the discovery
// listing.
func (p Provider) PublicView() Provider {
	p.Email = ""
	p.PasswordHash = ""
	p.TokenHash = ""
	p.FCMToken = ""
	return p
}
