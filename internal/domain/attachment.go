package domain

import (
	"strings"
	"time"
)

// Attachment is a binary file tied to a note. FileData is held fully in
// memory and marshals as base64 on the wire; the transport layer above the
// store is expected to enforce any upload ceiling before decoding.
type Attachment struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	FileSize  int64     `json:"fileSize"`
	FileType  string    `json:"fileType"`
	FileData  []byte    `json:"fileData"`
	NoteID    int64     `json:"noteId"`
	CreatedAt time.Time `json:"createdAt"`
}

// AttachmentInsert is the validated input for creating an attachment.
// FileData arrives already decoded.
type AttachmentInsert struct {
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
	FileData []byte `json:"fileData"`
	NoteID   int64  `json:"noteId"`
}

// Validate checks required fields. maxBytes bounds the payload; zero means
// unbounded.
func (in *AttachmentInsert) Validate(maxBytes int64) error {
	if strings.TrimSpace(in.FileName) == "" {
		return &ValidationError{Field: "fileName", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.FileType) == "" {
		return &ValidationError{Field: "fileType", Reason: "must not be empty"}
	}
	if in.FileSize <= 0 {
		return &ValidationError{Field: "fileSize", Reason: "must be positive"}
	}
	if len(in.FileData) == 0 {
		return &ValidationError{Field: "fileData", Reason: "must not be empty"}
	}
	if in.NoteID <= 0 {
		return &ValidationError{Field: "noteId", Reason: "must reference a note"}
	}
	if maxBytes > 0 && int64(len(in.FileData)) > maxBytes {
		return &ValidationError{Field: "fileData", Reason: "exceeds attachment size limit"}
	}
	return nil
}
