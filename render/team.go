package render

import (
	"encoding/xml"
	"strconv"

	"github.com/xxxsen/nsdav/errs"
)

const maxMembersPerBatch = 10

type UserInfoArgs struct{}

type userInfoDoc struct {
	XMLName xml.Name `xml:"s:user_info"`
	NS      string   `xml:"xmlns:s,attr"`
}

func (a *UserInfoArgs) Operation() Operation { return OpGetUserInfo }

func (a *UserInfoArgs) document() (interface{}, error) {
	return &userInfoDoc{NS: Namespace}, nil
}

type TeamInfoArgs struct {
	Name string
}

type teamDoc struct {
	XMLName      xml.Name      `xml:"s:team"`
	NS           string        `xml:"xmlns:s,attr"`
	Name         string        `xml:"s:name,omitempty"`
	Username     string        `xml:"s:username,omitempty"`
	StorageQuota string        `xml:"s:storageQuota,omitempty"`
	Receipt      string        `xml:"s:folder_receipt,omitempty"`
	CleanPerms   string        `xml:"s:clean_perms,omitempty"`
	Users        []teamUserDoc `xml:"s:user"`
}

type teamUserDoc struct {
	Username     string `xml:"s:username"`
	Password     string `xml:"s:password,omitempty"`
	StorageQuota string `xml:"s:storage_quota,omitempty"`
	Nickname     string `xml:"s:nickname,omitempty"`
	LDAPUser     string `xml:"s:ldap_user,omitempty"`
	LDAPID       string `xml:"s:ldap_id,omitempty"`
	Disabled     string `xml:"s:disabled,omitempty"`
}

func (a *TeamInfoArgs) Operation() Operation { return OpUpdateTeamInfo }

func (a *TeamInfoArgs) document() (interface{}, error) {
	if len(a.Name) == 0 {
		return nil, errs.Missing("name")
	}
	return &teamDoc{NS: Namespace, Name: a.Name}, nil
}

type TeamMembersArgs struct{}

func (a *TeamMembersArgs) Operation() Operation { return OpGetTeamMembers }

func (a *TeamMembersArgs) document() (interface{}, error) {
	return &teamDoc{NS: Namespace}, nil
}

// NewMember describes one account created by createEtpTeamMember. StorageQuota is in
// bytes and required.
type NewMember struct {
	UserName     string
	Password     string
	StorageQuota *int64
	Nickname     string
	LDAPUser     *bool
	LDAPID       string
}

type CreateMembersArgs struct {
	Users []NewMember
}

func (a *CreateMembersArgs) Operation() Operation { return OpCreateEtpTeamMember }

func (a *CreateMembersArgs) document() (interface{}, error) {
	if len(a.Users) == 0 {
		return nil, errs.Invalid("users", "empty users")
	}
	if len(a.Users) > maxMembersPerBatch {
		return nil, errs.Invalid("users", "too many users at once, count:%d, max:%d", len(a.Users), maxMembersPerBatch)
	}
	doc := &teamDoc{NS: Namespace, Users: make([]teamUserDoc, 0, len(a.Users))}
	for idx, u := range a.Users {
		if len(u.UserName) == 0 {
			return nil, errs.Invalid("user_name", "missing user_name, user index:%d", idx)
		}
		if len(u.Password) == 0 {
			return nil, errs.Invalid("password", "missing password, user:%s", u.UserName)
		}
		if u.StorageQuota == nil {
			return nil, errs.Invalid("storage_quota", "missing storage_quota, user:%s", u.UserName)
		}
		item := teamUserDoc{
			Username:     u.UserName,
			Password:     u.Password,
			StorageQuota: strconv.FormatInt(*u.StorageQuota, 10),
			Nickname:     u.Nickname,
			LDAPID:       u.LDAPID,
		}
		if u.LDAPUser != nil {
			item.LDAPUser = formatBool(*u.LDAPUser)
		}
		doc.Users = append(doc.Users, item)
	}
	return doc, nil
}

type StorageQuotaArgs struct {
	UserName     string
	StorageQuota int64
}

func (a *StorageQuotaArgs) Operation() Operation { return OpUpdateTeamMemberStorageQuota }

func (a *StorageQuotaArgs) document() (interface{}, error) {
	if len(a.UserName) == 0 {
		return nil, errs.Missing("user_name")
	}
	if a.StorageQuota < 0 {
		return nil, errs.Invalid("storage_quota", "negative quota:%d", a.StorageQuota)
	}
	return &teamDoc{
		NS:           Namespace,
		Username:     a.UserName,
		StorageQuota: strconv.FormatInt(a.StorageQuota, 10),
	}, nil
}

type MemberInfoArgs struct {
	UserName string
}

func (a *MemberInfoArgs) Operation() Operation { return OpGetTeamMemberInfo }

func (a *MemberInfoArgs) document() (interface{}, error) {
	if len(a.UserName) == 0 {
		return nil, errs.Missing("user_name")
	}
	return &teamDoc{NS: Namespace, Username: a.UserName}, nil
}

// RemoveMemberArgs removes a member. FolderReceipt takes over the member's folders and
// is dropped when CleanPerms is set.
type RemoveMemberArgs struct {
	UserName      string
	FolderReceipt string
	CleanPerms    bool
}

func (a *RemoveMemberArgs) Operation() Operation { return OpRemoveTeamMember }

func (a *RemoveMemberArgs) document() (interface{}, error) {
	if len(a.UserName) == 0 {
		return nil, errs.Missing("user_name")
	}
	doc := &teamDoc{
		NS:         Namespace,
		Username:   a.UserName,
		CleanPerms: formatBool(a.CleanPerms),
	}
	if !a.CleanPerms {
		doc.Receipt = a.FolderReceipt
	}
	return doc, nil
}

// MemberStatus enables or disables one member.
type MemberStatus struct {
	UserName string
	Disabled bool
}

type MemberStatusArgs struct {
	Users []MemberStatus
}

func (a *MemberStatusArgs) Operation() Operation { return OpUpdateTeamMemberStatus }

func (a *MemberStatusArgs) document() (interface{}, error) {
	if len(a.Users) == 0 {
		return nil, errs.Invalid("users", "empty users")
	}
	doc := &teamDoc{NS: Namespace, Users: make([]teamUserDoc, 0, len(a.Users))}
	for idx, u := range a.Users {
		if len(u.UserName) == 0 {
			return nil, errs.Invalid("user_name", "missing user_name, user index:%d", idx)
		}
		doc.Users = append(doc.Users, teamUserDoc{
			Username: u.UserName,
			Disabled: formatBool(u.Disabled),
		})
	}
	return doc, nil
}
