package entity

import "time"

// UserInfo describes the authenticated account. Team fields stay nil unless the account
// is in an active team edition and the server sent them.
type UserInfo struct {
	UserName     *string
	State        *string
	IsAdmin      *bool
	TeamID       *int64
	StorageQuota *int64
	UsedStorage  *int64
	ExpireTime   *time.Time
	Collections  []*Collection
}

// Collection is a top level folder visible to the user.
type Collection struct {
	Href        *string
	UsedStorage *int64
	IsOwner     *bool
}

type TeamMember struct {
	Admin        bool
	UserName     *string
	Nickname     *string
	StorageQuota *int64
	LDAPUser     *bool
	Disabled     *bool
}

type TeamMemberInfo struct {
	UserName     *string
	StorageQuota *int64
	ExpireTime   *time.Time
	Sandboxes    []*Sandbox
}

type Sandbox struct {
	Name         *string
	StorageQuota *int64
}

type Member struct {
	UserName *string
	Nickname *string
}

type Subgroup struct {
	GroupID *int64
	Name    *string
}

type GroupMembers struct {
	Subgroups []*Subgroup
	Admins    []*Member
	Users     []*Member
}
