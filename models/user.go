package models

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID                   string  `bson:"_id" json:"id" yaml:"id"`
	Name                 string  `bson:"name" json:"name" yaml:"name"`
	Email                string  `bson:"email" json:"email" yaml:"email"`
	Avatar               *string `bson:"avatar,omitempty" json:"avatar,omitempty" yaml:"avatar,omitempty"`
	JoinedAt             string  `bson:"joinedAt" json:"joinedAt" yaml:"joinedAt"`
	IssuesSubmitted      int     `bson:"issuesSubmitted" json:"issuesSubmitted" yaml:"issuesSubmitted"`
	VotesGiven           int     `bson:"votesGiven" json:"votesGiven" yaml:"votesGiven"`
	SuggestionsSubmitted int     `bson:"suggestionsSubmitted" json:"suggestionsSubmitted" yaml:"suggestionsSubmitted"`
	Location             string  `bson:"location" json:"location" yaml:"location"`
	Password             string  `bson:"password,omitempty" json:"-" yaml:"password,omitempty"`
	Disabled             bool    `bson:"disabled,omitempty" json:"-" yaml:"disabled,omitempty"`
}

// bcrypt reads at most 72 bytes, so passwords are digested to a fixed
// 44-byte string first.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// HashPassword replaces the plain-text password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword(passwordDigest(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), passwordDigest(candidate))
	return err == nil
}
