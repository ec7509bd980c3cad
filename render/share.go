package render

import (
	"encoding/xml"
	"strings"

	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/errs"
	"github.com/xxxsen/nsdav/utils"
)

// PublishArgs shares Href. Empty Users and Groups publish to everyone.
type PublishArgs struct {
	Href         string
	Users        []string
	Groups       []string
	Downloadable bool
}

type publishACL struct {
	Usernames []string `xml:"s:username"`
	Groups    []string `xml:"s:group"`
}

type publishDoc struct {
	XMLName          xml.Name    `xml:"s:publish"`
	NS               string      `xml:"xmlns:s,attr"`
	Href             string      `xml:"s:href"`
	ACL              *publishACL `xml:"s:acl,omitempty"`
	DownloadDisabled string      `xml:"s:downloadDisabled"`
}

func (a *PublishArgs) Operation() Operation { return OpPubObject }

func (a *PublishArgs) document() (interface{}, error) {
	if len(a.Href) == 0 {
		return nil, errs.Missing("href")
	}
	doc := &publishDoc{
		NS:               Namespace,
		Href:             a.Href,
		DownloadDisabled: formatBool(!a.Downloadable),
	}
	if len(a.Users) != 0 || len(a.Groups) != 0 {
		doc.ACL = &publishACL{Usernames: a.Users, Groups: a.Groups}
	}
	return doc, nil
}

type GetACLArgs struct {
	Href string
}

type getACLDoc struct {
	XMLName xml.Name `xml:"s:get_acl"`
	NS      string   `xml:"xmlns:s,attr"`
	Href    string   `xml:"s:href"`
}

func (a *GetACLArgs) Operation() Operation { return OpGetSandboxAcl }

func (a *GetACLArgs) document() (interface{}, error) {
	if len(a.Href) == 0 {
		return nil, errs.Missing("href")
	}
	return &getACLDoc{NS: Namespace, Href: a.Href}, nil
}

// ACLEntry grants Perm to one user name or group id.
type ACLEntry struct {
	Principal string
	Perm      entity.Perm
}

// UpdateACLArgs replaces the sandbox acl of Href. User entries are rendered before
// group entries.
type UpdateACLArgs struct {
	Href   string
	Users  []ACLEntry
	Groups []ACLEntry
}

type aclDoc struct {
	Username string `xml:"s:username,omitempty"`
	Group    string `xml:"s:group,omitempty"`
	Perm     string `xml:"s:perm"`
}

type sandboxDoc struct {
	XMLName xml.Name `xml:"s:sandbox"`
	NS      string   `xml:"xmlns:s,attr"`
	Href    string   `xml:"s:href"`
	ACLs    []aclDoc `xml:"s:acl"`
}

func (a *UpdateACLArgs) Operation() Operation { return OpUpdateSandboxAcl }

func checkACLEntry(field string, ent ACLEntry) error {
	if len(ent.Principal) == 0 {
		return errs.Invalid(field, "empty principal")
	}
	if !ent.Perm.Valid() {
		return errs.Invalid(field, "invalid perm:%q of principal:%s", string(ent.Perm), ent.Principal)
	}
	return nil
}

func (a *UpdateACLArgs) document() (interface{}, error) {
	if len(a.Href) == 0 {
		return nil, errs.Missing("href")
	}
	doc := &sandboxDoc{
		NS:   Namespace,
		Href: a.Href,
		ACLs: make([]aclDoc, 0, len(a.Users)+len(a.Groups)),
	}
	for _, u := range a.Users {
		if err := checkACLEntry("users", u); err != nil {
			return nil, err
		}
		doc.ACLs = append(doc.ACLs, aclDoc{Username: u.Principal, Perm: string(u.Perm)})
	}
	for _, g := range a.Groups {
		if err := checkACLEntry("groups", g); err != nil {
			return nil, err
		}
		doc.ACLs = append(doc.ACLs, aclDoc{Group: g.Principal, Perm: string(g.Perm)})
	}
	return doc, nil
}

// DeltaArgs asks for the change feed of a sandbox, Cursor 0 means from the start.
type DeltaArgs struct {
	Folder string
	Cursor int64
}

type deltaDoc struct {
	XMLName    xml.Name `xml:"s:delta"`
	NS         string   `xml:"xmlns:s,attr"`
	FolderName string   `xml:"s:folderName"`
	Cursor     string   `xml:"s:cursor,omitempty"`
}

func (a *DeltaArgs) Operation() Operation { return OpDelta }

func (a *DeltaArgs) document() (interface{}, error) {
	if len(a.Folder) == 0 {
		return nil, errs.Missing("folder")
	}
	if a.Cursor < 0 {
		return nil, errs.Invalid("cursor", "negative cursor:%d", a.Cursor)
	}
	doc := &deltaDoc{NS: Namespace, FolderName: a.Folder}
	if a.Cursor != 0 {
		doc.Cursor = utils.EncodeCursor(a.Cursor)
	}
	return doc, nil
}

type LatestCursorArgs struct {
	Folder string
}

func (a *LatestCursorArgs) Operation() Operation { return OpLatestDeltaCursor }

func (a *LatestCursorArgs) document() (interface{}, error) {
	if len(a.Folder) == 0 {
		return nil, errs.Missing("folder")
	}
	return &deltaDoc{NS: Namespace, FolderName: a.Folder}, nil
}

// SubmitCopyArgs copies a published object at URL into Href.
type SubmitCopyArgs struct {
	Href     string
	URL      string
	Password string
}

type copyPubDoc struct {
	XMLName            xml.Name `xml:"s:copy_pub"`
	NS                 string   `xml:"xmlns:s,attr"`
	Href               string   `xml:"s:href,omitempty"`
	PublishedObjectURL string   `xml:"s:published_object_url,omitempty"`
	CopyPassword       string   `xml:"s:copy_password,omitempty"`
	CopyUUID           string   `xml:"s:copy_uuid,omitempty"`
}

func (a *SubmitCopyArgs) Operation() Operation { return OpSubmitCopyPubObject }

func (a *SubmitCopyArgs) document() (interface{}, error) {
	if len(a.Href) == 0 {
		return nil, errs.Missing("href")
	}
	if len(a.URL) == 0 {
		return nil, errs.Missing("url")
	}
	return &copyPubDoc{
		NS:                 Namespace,
		Href:               a.Href,
		PublishedObjectURL: a.URL,
		CopyPassword:       a.Password,
	}, nil
}

type PollCopyArgs struct {
	CopyUUID string
}

func (a *PollCopyArgs) Operation() Operation { return OpPollCopyPubObject }

func (a *PollCopyArgs) document() (interface{}, error) {
	if len(a.CopyUUID) == 0 {
		return nil, errs.Missing("copy_uuid")
	}
	return &copyPubDoc{NS: Namespace, CopyUUID: a.CopyUUID}, nil
}

type SearchArgs struct {
	Keywords []string
	Href     string
}

type searchDoc struct {
	XMLName  xml.Name `xml:"s:search"`
	NS       string   `xml:"xmlns:s,attr"`
	Keywords string   `xml:"s:keywords"`
	Path     string   `xml:"s:path"`
}

func (a *SearchArgs) Operation() Operation { return OpSearch }

func (a *SearchArgs) document() (interface{}, error) {
	if len(a.Keywords) == 0 {
		return nil, errs.Missing("keywords")
	}
	if len(a.Href) == 0 {
		return nil, errs.Missing("href")
	}
	return &searchDoc{
		NS:       Namespace,
		Keywords: strings.Join(a.Keywords, " "),
		Path:     a.Href,
	}, nil
}

type ContentURLArgs struct {
	Href     string
	Platform string
	LinkType string
}

type contentLinkDoc struct {
	XMLName      xml.Name `xml:"s:direct_content_link"`
	NS           string   `xml:"xmlns:s,attr"`
	Href         string   `xml:"s:href"`
	Platform     string   `xml:"s:platform"`
	LinkType     string   `xml:"s:link_type"`
	RelativePath string   `xml:"s:relative_path,omitempty"`
	Password     string   `xml:"s:password,omitempty"`
}

func (a *ContentURLArgs) Operation() Operation { return OpDirectContentUrl }

func (a *ContentURLArgs) document() (interface{}, error) {
	if len(a.Href) == 0 {
		return nil, errs.Missing("href")
	}
	return &contentLinkDoc{
		NS:       Namespace,
		Href:     a.Href,
		Platform: a.Platform,
		LinkType: a.LinkType,
	}, nil
}

// PubContentURLArgs resolves a direct link inside a published object. RelativePath and
// Password are only sent when set.
type PubContentURLArgs struct {
	Link         string
	Platform     string
	LinkType     string
	RelativePath string
	Password     string
}

func (a *PubContentURLArgs) Operation() Operation { return OpDirectPubContentUrl }

func (a *PubContentURLArgs) document() (interface{}, error) {
	if len(a.Link) == 0 {
		return nil, errs.Missing("link")
	}
	return &contentLinkDoc{
		NS:           Namespace,
		Href:         a.Link,
		Platform:     a.Platform,
		LinkType:     a.LinkType,
		RelativePath: a.RelativePath,
		Password:     a.Password,
	}, nil
}
