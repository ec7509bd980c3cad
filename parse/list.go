package parse

import (
	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/errs"
)

type multistatusWire struct {
	Responses []responseWire `xml:"response"`
}

type responseWire struct {
	Href      *string        `xml:"href"`
	Propstats []propstatWire `xml:"propstat"`
}

type propstatWire struct {
	Prop propWire `xml:"prop"`
}

type resourceTypeWire struct {
	Collection *struct{} `xml:"collection"`
}

type privilegeWire struct {
	Read         *struct{} `xml:"read"`
	Write        *struct{} `xml:"write"`
	All          *struct{} `xml:"all"`
	ReadACL      *struct{} `xml:"read_acl"`
	WriteACL     *struct{} `xml:"write_acl"`
	ReadACLDash  *struct{} `xml:"read-acl"`
	WriteACLDash *struct{} `xml:"write-acl"`
}

type privilegeSetWire struct {
	Privileges []privilegeWire `xml:"privilege"`
}

type propWire struct {
	DisplayName   *string           `xml:"displayname"`
	ResourceType  *resourceTypeWire `xml:"resourcetype"`
	ContentLength *string           `xml:"getcontentlength"`
	LastModified  *string           `xml:"getlastmodified"`
	Owner         *string           `xml:"owner"`
	ContentType   *string           `xml:"getcontenttype"`
	ResourcePerm  *string           `xml:"resourceperm"`
	PrivilegeSet  *privilegeSetWire `xml:"current-user-privilege-set"`
	Privileges    []privilegeWire   `xml:"privilege"`
}

// mergedProp folds the props of every propstat of one response, the first
// occurrence of a leaf wins.
type mergedProp struct {
	propWire
	isDir                               bool
	read, write, all, readACL, writeACL *struct{}
}

func firstString(dst **string, src *string) {
	if *dst == nil {
		*dst = src
	}
}

func (m *mergedProp) addPrivileges(ps []privilegeWire) {
	for _, p := range ps {
		if p.Read != nil {
			m.read = p.Read
		}
		if p.Write != nil {
			m.write = p.Write
		}
		if p.All != nil {
			m.all = p.All
		}
		if p.ReadACL != nil {
			m.readACL = p.ReadACL
		}
		if p.ReadACLDash != nil {
			m.readACL = p.ReadACLDash
		}
		if p.WriteACL != nil {
			m.writeACL = p.WriteACL
		}
		if p.WriteACLDash != nil {
			m.writeACL = p.WriteACLDash
		}
	}
}

func merge(stats []propstatWire) *mergedProp {
	m := &mergedProp{}
	for _, st := range stats {
		p := st.Prop
		firstString(&m.DisplayName, p.DisplayName)
		firstString(&m.ContentLength, p.ContentLength)
		firstString(&m.LastModified, p.LastModified)
		firstString(&m.Owner, p.Owner)
		firstString(&m.ContentType, p.ContentType)
		firstString(&m.ResourcePerm, p.ResourcePerm)
		if p.ResourceType != nil && p.ResourceType.Collection != nil {
			m.isDir = true
		}
		if p.PrivilegeSet != nil {
			m.addPrivileges(p.PrivilegeSet.Privileges)
		}
		m.addPrivileges(p.Privileges)
	}
	return m
}

func parseMultistatus(what string, body []byte, searching bool) ([]*entity.Item, error) {
	wire := &multistatusWire{}
	if err := decode(what, body, wire); err != nil {
		return nil, err
	}
	r := &reader{what: what}
	rs := make([]*entity.Item, 0, len(wire.Responses))
	for _, resp := range wire.Responses {
		if resp.Href == nil {
			return nil, errs.DecodeMissing(what, "href")
		}
		m := merge(resp.Propstats)
		item := &entity.Item{
			Href:          *optUnescape(resp.Href),
			IsDir:         m.isDir,
			ContentLength: r.optInt("getcontentlength", m.ContentLength),
			LastModified:  r.optTime("getlastmodified", m.LastModified),
			Owner:         optText(m.Owner),
			MimeType:      optText(m.ContentType),
		}
		if searching {
			item.ResourcePerm = optText(m.ResourcePerm)
		} else {
			item.DisplayName = optText(m.DisplayName)
			item.Readable = present(m.read)
			item.Writable = present(m.write)
			item.FullPrivilege = present(m.all)
			item.ReadACL = present(m.readACL)
			item.WriteACL = present(m.writeACL)
		}
		if r.err != nil {
			return nil, r.err
		}
		rs = append(rs, item)
	}
	return rs, nil
}

// ParseList decodes a PROPFIND multistatus, one item per response in document order.
func ParseList(body []byte) ([]*entity.Item, error) {
	return parseMultistatus("listing", body, false)
}

// ParseSearch decodes a search multistatus. Items carry ResourcePerm instead of the
// privilege flags and display name.
func ParseSearch(body []byte) ([]*entity.Item, error) {
	return parseMultistatus("search", body, true)
}
