package parse

import (
	"encoding/xml"
	"strings"

	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/errs"
)

type collectionWire struct {
	Href        *string `xml:"href"`
	UsedStorage *string `xml:"used_storage"`
	Owner       *string `xml:"owner"`
}

type userInfoWire struct {
	Username     *string `xml:"username"`
	State        *string `xml:"account_state"`
	StorageQuota *string `xml:"storage_quota"`
	UsedStorage  *string `xml:"used_storage"`
	Team         *struct {
		IsAdmin *string `xml:"is_admin"`
		ID      *string `xml:"id"`
	} `xml:"team"`
	ExpireTime  *string          `xml:"expire_time"`
	Collections []collectionWire `xml:"collection"`
}

// ParseUserInfo decodes getUserInfo. Team related fields stay nil unless present.
func ParseUserInfo(body []byte) (*entity.UserInfo, error) {
	wire := &userInfoWire{}
	if err := decode("user info", body, wire); err != nil {
		return nil, err
	}
	r := &reader{what: "user info"}
	info := &entity.UserInfo{
		UserName:     optText(wire.Username),
		State:        optText(wire.State),
		StorageQuota: r.optInt("storage_quota", wire.StorageQuota),
		UsedStorage:  r.optInt("used_storage", wire.UsedStorage),
		ExpireTime:   r.optMillis("expire_time", wire.ExpireTime),
		Collections:  make([]*entity.Collection, 0, len(wire.Collections)),
	}
	if wire.Team != nil {
		info.IsAdmin = optBool(wire.Team.IsAdmin)
		info.TeamID = r.optInt("team/id", wire.Team.ID)
	}
	for _, c := range wire.Collections {
		info.Collections = append(info.Collections, &entity.Collection{
			Href:        optUnescape(c.Href),
			UsedStorage: r.optInt("collection/used_storage", c.UsedStorage),
			IsOwner:     optBool(c.Owner),
		})
	}
	if r.err != nil {
		return nil, r.err
	}
	return info, nil
}

type teamMemberWire struct {
	XMLName      xml.Name
	Username     *string `xml:"username"`
	Nickname     *string `xml:"nickname"`
	StorageQuota *string `xml:"storage_quota"`
	LDAPUser     *string `xml:"ldap_user"`
	Disabled     *string `xml:"disabled"`
}

type teamMembersWire struct {
	Members []teamMemberWire `xml:",any"`
}

// ParseTeamMembers decodes every child of the root as a member, children named like
// admin are administrators.
func ParseTeamMembers(body []byte) ([]*entity.TeamMember, error) {
	wire := &teamMembersWire{}
	if err := decode("team members", body, wire); err != nil {
		return nil, err
	}
	r := &reader{what: "team members"}
	rs := make([]*entity.TeamMember, 0, len(wire.Members))
	for _, m := range wire.Members {
		rs = append(rs, &entity.TeamMember{
			Admin:        strings.Contains(m.XMLName.Local, "admin"),
			UserName:     optText(m.Username),
			Nickname:     optText(m.Nickname),
			StorageQuota: r.optInt("storage_quota", m.StorageQuota),
			LDAPUser:     optBool(m.LDAPUser),
			Disabled:     optBool(m.Disabled),
		})
	}
	if r.err != nil {
		return nil, r.err
	}
	return rs, nil
}

type memberInfoWire struct {
	Username     *string `xml:"username"`
	StorageQuota *string `xml:"storageQuota"`
	ExpireTime   *string `xml:"expireTime"`
	Sandboxes    []struct {
		Name         *string `xml:"name"`
		StorageQuota *string `xml:"storageQuota"`
	} `xml:"sandbox"`
}

func ParseTeamMemberInfo(body []byte) (*entity.TeamMemberInfo, error) {
	wire := &memberInfoWire{}
	if err := decode("team member info", body, wire); err != nil {
		return nil, err
	}
	r := &reader{what: "team member info"}
	info := &entity.TeamMemberInfo{
		UserName:     optText(wire.Username),
		StorageQuota: r.optInt("storageQuota", wire.StorageQuota),
		ExpireTime:   r.optMillis("expireTime", wire.ExpireTime),
		Sandboxes:    make([]*entity.Sandbox, 0, len(wire.Sandboxes)),
	}
	for _, sb := range wire.Sandboxes {
		info.Sandboxes = append(info.Sandboxes, &entity.Sandbox{
			Name:         optText(sb.Name),
			StorageQuota: r.optInt("sandbox/storageQuota", sb.StorageQuota),
		})
	}
	if r.err != nil {
		return nil, r.err
	}
	return info, nil
}

type memberWire struct {
	Username *string `xml:"username"`
	Nickname *string `xml:"nickname"`
}

type groupMembersWire struct {
	Subgroups []struct {
		ID   *string `xml:"id"`
		Name *string `xml:"name"`
	} `xml:"subgroup"`
	Admins []memberWire `xml:"admin"`
	Users  []memberWire `xml:"user"`
}

func toMembers(ws []memberWire) []*entity.Member {
	rs := make([]*entity.Member, 0, len(ws))
	for _, w := range ws {
		rs = append(rs, &entity.Member{UserName: optText(w.Username), Nickname: optText(w.Nickname)})
	}
	return rs
}

func ParseGroupMembers(body []byte) (*entity.GroupMembers, error) {
	wire := &groupMembersWire{}
	if err := decode("group members", body, wire); err != nil {
		return nil, err
	}
	r := &reader{what: "group members"}
	gm := &entity.GroupMembers{
		Subgroups: make([]*entity.Subgroup, 0, len(wire.Subgroups)),
		Admins:    toMembers(wire.Admins),
		Users:     toMembers(wire.Users),
	}
	for _, sg := range wire.Subgroups {
		gm.Subgroups = append(gm.Subgroups, &entity.Subgroup{
			GroupID: r.optInt("subgroup/id", sg.ID),
			Name:    optText(sg.Name),
		})
	}
	if r.err != nil {
		return nil, r.err
	}
	return gm, nil
}

type createdGroupWire struct {
	ID *string `xml:"id"`
}

// ParseCreatedGroup returns the id of the group made by createGroup.
func ParseCreatedGroup(body []byte) (int64, error) {
	wire := &createdGroupWire{}
	if err := decode("created group", body, wire); err != nil {
		return 0, err
	}
	r := &reader{what: "created group"}
	id := r.optInt("id", wire.ID)
	if r.err != nil {
		return 0, r.err
	}
	if id == nil {
		return 0, errs.DecodeMissing("created group", "id")
	}
	return *id, nil
}

type auditLogsWire struct {
	LogNum             *string `xml:"log_num"`
	FirstOperationTime *string `xml:"first_operation_time"`
	LastOperationTime  *string `xml:"last_operation_time"`
	HasMore            *string `xml:"has_more"`
	Activities         []struct {
		Operator   *string `xml:"operator"`
		Operation  *string `xml:"operation"`
		IP         *string `xml:"ip"`
		IPLocation *string `xml:"ip_location"`
		Terminal   *string `xml:"terminal"`
		Consuming  *string `xml:"consuming"`
	} `xml:"activity"`
}

func ParseAuditLogs(body []byte) (*entity.AuditLogPage, error) {
	wire := &auditLogsWire{}
	if err := decode("audit logs", body, wire); err != nil {
		return nil, err
	}
	r := &reader{what: "audit logs"}
	page := &entity.AuditLogPage{
		LogNum:             r.optInt("log_num", wire.LogNum),
		FirstOperationTime: r.optMillis("first_operation_time", wire.FirstOperationTime),
		LastOperationTime:  r.optMillis("last_operation_time", wire.LastOperationTime),
		HasMore:            optBool(wire.HasMore),
		Activities:         make([]*entity.Activity, 0, len(wire.Activities)),
	}
	for _, a := range wire.Activities {
		page.Activities = append(page.Activities, &entity.Activity{
			Operator:   optText(a.Operator),
			Operation:  optText(a.Operation),
			IP:         optText(a.IP),
			IPLocation: optText(a.IPLocation),
			Terminal:   optText(a.Terminal),
			Consuming:  optText(a.Consuming),
		})
	}
	if r.err != nil {
		return nil, r.err
	}
	return page, nil
}
