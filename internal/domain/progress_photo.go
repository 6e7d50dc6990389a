package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressPhoto stores metadata about a photo uploaded by a user.
// The actual file resides in S3.
type ProgressPhoto struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"` // bucket key, internal use only
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"` // MIME type, e.g. "image/jpeg"
	Size        int64              `bson:"size" json:"size"`               // in bytes
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
