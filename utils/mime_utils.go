package utils

import (
	"mime"
	"path"

	"github.com/gabriel-vasile/mimetype"
)

const defaultMimeType = "application/octet-stream"

// DetermineMimeType prefers the extension of filename and falls back to sniffing head.
func DetermineMimeType(filename string, head []byte) string {
	if t := mime.TypeByExtension(path.Ext(filename)); len(t) != 0 {
		return t
	}
	if len(head) == 0 {
		return defaultMimeType
	}
	return mimetype.Detect(head).String()
}
