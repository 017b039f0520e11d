package ctdf

// Identity is the local record of a user signed in through an identity provider.
type Identity struct {
	RecordMeta `bson:",inline" groups:"basic"`

	Subject  string `json:"subject" bson:"subject" groups:"basic"`
	Email    string `json:"email" bson:"email" groups:"basic"`
	Name     string `json:"name" bson:"name" groups:"basic"`
	Picture  string `json:"picture,omitempty" bson:"picture" groups:"basic"`
	Provider string `json:"provider" bson:"provider" groups:"basic"`
}

func (i *Identity) RecordKind() string { return RecordKindIdentity }
