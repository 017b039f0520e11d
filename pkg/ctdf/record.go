package ctdf

import "time"

// RecordMeta is the store-assigned part of every persisted record.
type RecordMeta struct {
	ID        string    `json:"id" bson:"id" groups:"basic"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" groups:"basic"`
}

func (m *RecordMeta) Meta() *RecordMeta {
	return m
}

// Record is implemented by every type a database.Repository can hold.
type Record interface {
	Meta() *RecordMeta
	RecordKind() string
}
