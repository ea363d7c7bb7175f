package models

import "time"

type User struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Password    string    `bson:"password" json:"-"`
	IsPaid      bool      `bson:"isPaid" json:"isPaid"`
	HiddenCodes []string  `bson:"hiddenCodes,omitempty" json:"hiddenCodes,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
