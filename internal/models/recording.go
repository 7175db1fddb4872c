package models

import "time"

type Recording struct {
	RecordingID string    `bson:"recording_id" json:"id"`
	SessionID   string    `bson:"session_id" json:"session_id"`
	UploadedBy  string    `bson:"uploaded_by" json:"uploaded_by"`
	FileName    string    `bson:"file_name" json:"file_name"`
	ObjectName  string    `bson:"object_name" json:"object_name"`
	URL         string    `bson:"url" json:"url"`
	MimeType    string    `bson:"mime_type" json:"mime_type"`
	SizeBytes   int64     `bson:"size_bytes" json:"size_bytes"`
	UploadedAt  time.Time `bson:"uploaded_at" json:"uploaded_at"`
}
