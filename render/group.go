package render

import (
	"encoding/xml"
	"strconv"

	"github.com/xxxsen/nsdav/errs"
)

type groupUserDoc struct {
	Username string `xml:"s:username"`
}

type subGroupDoc struct {
	ID int64 `xml:"s:id"`
}

type groupDoc struct {
	XMLName   xml.Name       `xml:"s:group"`
	NS        string         `xml:"xmlns:s,attr"`
	ID        string         `xml:"s:id"`
	Name      string         `xml:"s:name,omitempty"`
	SubGroups []subGroupDoc  `xml:"s:subGroup"`
	Admins    []groupUserDoc `xml:"s:admin"`
	Users     []groupUserDoc `xml:"s:user"`
}

func newGroupDoc(id int64) *groupDoc {
	return &groupDoc{NS: Namespace, ID: strconv.FormatInt(id, 10)}
}

func toGroupUsers(field string, users []string) ([]groupUserDoc, error) {
	rs := make([]groupUserDoc, 0, len(users))
	for _, u := range users {
		if len(u) == 0 {
			return nil, errs.Invalid(field, "empty user name")
		}
		rs = append(rs, groupUserDoc{Username: u})
	}
	return rs, nil
}

type GroupMembersArgs struct {
	GroupID int64
}

func (a *GroupMembersArgs) Operation() Operation { return OpGetGroupMembers }

func (a *GroupMembersArgs) document() (interface{}, error) {
	return newGroupDoc(a.GroupID), nil
}

// CreateGroupArgs creates group Name under ParentID with at least one admin.
type CreateGroupArgs struct {
	ParentID int64
	Name     string
	Admins   []string
	Users    []string
}

func (a *CreateGroupArgs) Operation() Operation { return OpCreateGroup }

func (a *CreateGroupArgs) document() (interface{}, error) {
	if len(a.Name) == 0 {
		return nil, errs.Missing("name")
	}
	if len(a.Admins) == 0 {
		return nil, errs.Invalid("admins", "empty admins")
	}
	doc := newGroupDoc(a.ParentID)
	doc.Name = a.Name
	var err error
	if doc.Admins, err = toGroupUsers("admins", a.Admins); err != nil {
		return nil, err
	}
	if doc.Users, err = toGroupUsers("users", a.Users); err != nil {
		return nil, err
	}
	return doc, nil
}

type AddGroupMembersArgs struct {
	GroupID int64
	Users   []string
}

func (a *AddGroupMembersArgs) Operation() Operation { return OpAddMemberToGroup }

func (a *AddGroupMembersArgs) document() (interface{}, error) {
	if len(a.Users) == 0 {
		return nil, errs.Invalid("users", "empty users")
	}
	doc := newGroupDoc(a.GroupID)
	var err error
	if doc.Users, err = toGroupUsers("users", a.Users); err != nil {
		return nil, err
	}
	return doc, nil
}

type RemoveGroupMembersArgs struct {
	GroupID   int64
	Users     []string
	SubGroups []int64
}

func (a *RemoveGroupMembersArgs) Operation() Operation { return OpRemoveMemberFromGroup }

func (a *RemoveGroupMembersArgs) document() (interface{}, error) {
	if len(a.Users) == 0 && len(a.SubGroups) == 0 {
		return nil, errs.Invalid("users", "empty users and subgroups")
	}
	doc := newGroupDoc(a.GroupID)
	for _, id := range a.SubGroups {
		doc.SubGroups = append(doc.SubGroups, subGroupDoc{ID: id})
	}
	var err error
	if doc.Users, err = toGroupUsers("users", a.Users); err != nil {
		return nil, err
	}
	return doc, nil
}
