package entity

import "time"

// Item is one entry of a PROPFIND listing or a search result.
//
// Optional fields are nil when the server did not send the matching element.
// Search results carry ResourcePerm and leave the privilege flags nil, listings do the
// opposite.
type Item struct {
	Href          string
	DisplayName   *string
	IsDir         bool
	ContentLength *int64
	LastModified  *time.Time
	Owner         *string
	MimeType      *string
	ResourcePerm  *string

	Readable      *bool
	Writable      *bool
	FullPrivilege *bool
	ReadACL       *bool
	WriteACL      *bool
}

// Size returns the content length, directories and items without length report 0.
func (it *Item) Size() int64 {
	if it.ContentLength == nil {
		return 0
	}
	return *it.ContentLength
}

type UploadOutcome string

const (
	UploadCreated     UploadOutcome = "Upload"
	UploadOverwritten UploadOutcome = "Overwrite"
)
