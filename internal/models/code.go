package models

// AccessCode buckets a set of quiz questions and gates whether they require
// a paid entitlement.
type AccessCode struct {
	ID     string `bson:"_id,omitempty" json:"id,omitempty"`
	Code   string `bson:"code" json:"code"`
	Active bool   `bson:"active" json:"active"`
	IsPaid bool   `bson:"isPaid" json:"isPaid"`
}

// CodeListing is the projection returned by the codes listing endpoint.
type CodeListing struct {
	Code   string `bson:"code" json:"code"`
	Active bool   `bson:"active" json:"active"`
}
