package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo is a gallery image. ImageURL points at the stored file and is set
// once at upload; ThumbURL is present only when thumbnail generation
// succeeded.
type Photo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
	ThumbURL    string             `bson:"thumbUrl,omitempty" json:"thumbUrl,omitempty"`
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}

// Award is a hall-of-fame entry. Year is free-form text; several awards may
// share a year.
type Award struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Year        string             `bson:"year" json:"year"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
}

// Ticker is one line of breaking-news text.
type Ticker struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Event is an upcoming event. Date is free-form text, not validated.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Date        string             `bson:"date" json:"date"`
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description" json:"description"`
}
