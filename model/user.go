package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a donor directory entry. Email is the identity key and is
// unique across the collection. The password hash never leaves the
// server, hence the "-" json tag.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Age        int                `bson:"age,omitempty" json:"age,omitempty"`
	Gender     string             `bson:"gender,omitempty" json:"gender,omitempty"`
	BloodGroup string             `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Locality   string             `bson:"locality" json:"locality"`
}

// ProfileUpdate holds the mutable profile fields. Empty fields are
// left untouched.
type ProfileUpdate struct {
	Name       string
	Phone      string
	Locality   string
	BloodGroup string
}

// DonorFilter narrows a directory query. Zero-valued fields are
// unconstrained.
type DonorFilter struct {
	BloodGroup   string
	Locality     string
	ExcludeEmail string
}
