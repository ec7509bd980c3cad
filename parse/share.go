package parse

import (
	"strings"

	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/errs"
)

type shareLinkWire struct {
	ShareLink *string `xml:"sharelink"`
}

// ParseShareLink returns the trimmed link of a pubObject response.
func ParseShareLink(body []byte) (string, error) {
	wire := &shareLinkWire{}
	if err := decode("share link", body, wire); err != nil {
		return "", err
	}
	if wire.ShareLink == nil {
		return "", errs.DecodeMissing("share link", "sharelink")
	}
	return strings.TrimSpace(*wire.ShareLink), nil
}

type aclWire struct {
	ACLs []struct {
		Username *string `xml:"username"`
		Group    *string `xml:"group"`
		Perm     *string `xml:"perm"`
	} `xml:"acl"`
}

// ParseACL splits the acl entries by principal kind, keeping first seen order. An entry
// with a username element is a user entry, anything else a group entry. Principals are
// trimmed.
func ParseACL(body []byte) (*entity.ACL, error) {
	wire := &aclWire{}
	if err := decode("acl", body, wire); err != nil {
		return nil, err
	}
	acl := entity.NewACL()
	for _, a := range wire.ACLs {
		var perm entity.Perm
		if a.Perm != nil {
			perm = entity.Perm(strings.TrimSpace(*a.Perm))
		}
		if a.Username != nil {
			acl.Users.Set(strings.TrimSpace(*a.Username), perm)
			continue
		}
		var group string
		if a.Group != nil {
			group = strings.TrimSpace(*a.Group)
		}
		acl.Groups.Set(group, perm)
	}
	return acl, nil
}

type cursorWire struct {
	Cursor *string `xml:"cursor"`
}

func ParseLatestCursor(body []byte) (int64, error) {
	wire := &cursorWire{}
	if err := decode("latest cursor", body, wire); err != nil {
		return 0, err
	}
	r := &reader{what: "latest cursor"}
	c := r.optHexInt("cursor", wire.Cursor)
	if r.err != nil {
		return 0, r.err
	}
	if c == nil {
		return 0, errs.DecodeMissing("latest cursor", "cursor")
	}
	return *c, nil
}

type historyEntryWire struct {
	Path      *string `xml:"path"`
	Size      *string `xml:"size"`
	IsDeleted *string `xml:"isDeleted"`
	IsDir     *string `xml:"isDir"`
	Modified  *string `xml:"modified"`
	Revision  *string `xml:"revision"`
}

type historyWire struct {
	Reset   *string            `xml:"reset"`
	Cursor  *string            `xml:"cursor"`
	HasMore *string            `xml:"hasMore"`
	Entries []historyEntryWire `xml:"delta>entry"`
}

// ParseHistory decodes one page of the delta feed.
func ParseHistory(body []byte) (*entity.History, error) {
	wire := &historyWire{}
	if err := decode("history", body, wire); err != nil {
		return nil, err
	}
	r := &reader{what: "history"}
	h := &entity.History{
		Reset:   optBool(wire.Reset),
		Cursor:  r.optHexInt("cursor", wire.Cursor),
		HasMore: optBool(wire.HasMore),
		Entries: make([]*entity.HistoryEntry, 0, len(wire.Entries)),
	}
	for _, e := range wire.Entries {
		h.Entries = append(h.Entries, &entity.HistoryEntry{
			Path:      optText(e.Path),
			Size:      r.optInt("size", e.Size),
			IsDeleted: optBool(e.IsDeleted),
			IsDir:     optBool(e.IsDir),
			Modified:  r.optTime("modified", e.Modified),
			Revision:  r.optInt("revision", e.Revision),
		})
	}
	if r.err != nil {
		return nil, r.err
	}
	return h, nil
}

type copyUUIDWire struct {
	CopyUUID *string `xml:"copy_uuid"`
}

func ParseCopyUUID(body []byte) (string, error) {
	wire := &copyUUIDWire{}
	if err := decode("copy uuid", body, wire); err != nil {
		return "", err
	}
	if wire.CopyUUID == nil {
		return "", errs.DecodeMissing("copy uuid", "copy_uuid")
	}
	return strings.TrimSpace(*wire.CopyUUID), nil
}

type contentURLWire struct {
	Href *string `xml:"href"`
}

// ParseContentURL returns the percent decoded direct link.
func ParseContentURL(body []byte) (string, error) {
	wire := &contentURLWire{}
	if err := decode("content url", body, wire); err != nil {
		return "", err
	}
	if wire.Href == nil {
		return "", errs.DecodeMissing("content url", "href")
	}
	return *optUnescape(wire.Href), nil
}
