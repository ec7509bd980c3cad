package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

const (
	Namespace = "http://ns.jianguoyun.com"
	xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"
)

// Operation names one custom operation posted to the operation namespace.
type Operation int

const (
	OpPubObject Operation = iota
	OpGetSandboxAcl
	OpUpdateSandboxAcl
	OpDelta
	OpLatestDeltaCursor
	OpSubmitCopyPubObject
	OpPollCopyPubObject
	OpSearch
	OpDirectContentUrl
	OpDirectPubContentUrl
	OpGetUserInfo
	OpUpdateTeamInfo
	OpGetTeamMembers
	OpCreateEtpTeamMember
	OpUpdateTeamMemberStorageQuota
	OpGetTeamMemberInfo
	OpRemoveTeamMember
	OpGetGroupMembers
	OpCreateGroup
	OpAddMemberToGroup
	OpRemoveMemberFromGroup
	OpUpdateTeamMemberStatus
	OpQueryAuditLogs
	opCount
)

var opNames = [opCount]string{
	OpPubObject:                    "pubObject",
	OpGetSandboxAcl:                "getSandboxAcl",
	OpUpdateSandboxAcl:             "updateSandboxAcl",
	OpDelta:                        "delta",
	OpLatestDeltaCursor:            "latestDeltaCursor",
	OpSubmitCopyPubObject:          "submitCopyPubObject",
	OpPollCopyPubObject:            "pollCopyPubObject",
	OpSearch:                       "search",
	OpDirectContentUrl:             "directContentUrl",
	OpDirectPubContentUrl:          "directPubContentUrl",
	OpGetUserInfo:                  "getUserInfo",
	OpUpdateTeamInfo:               "updateTeamInfo",
	OpGetTeamMembers:               "getTeamMembers",
	OpCreateEtpTeamMember:          "createEtpTeamMember",
	OpUpdateTeamMemberStorageQuota: "updateTeamMemberStorageQuota",
	OpGetTeamMemberInfo:            "getTeamMemberInfo",
	OpRemoveTeamMember:             "removeTeamMember",
	OpGetGroupMembers:              "getGroupMembers",
	OpCreateGroup:                  "createGroup",
	OpAddMemberToGroup:             "addMemberToGroup",
	OpRemoveMemberFromGroup:        "removeMemberFromGroup",
	OpUpdateTeamMemberStatus:       "updateTeamMemberStatus",
	OpQueryAuditLogs:               "queryAuditLogs",
}

// Name is the path segment the operation is posted to.
func (o Operation) Name() string {
	if o < 0 || o >= opCount {
		return fmt.Sprintf("Operation(%d)", int(o))
	}
	return opNames[o]
}

func (o Operation) String() string {
	return o.Name()
}

func Operations() []Operation {
	rs := make([]Operation, 0, opCount)
	for o := Operation(0); o < opCount; o++ {
		rs = append(rs, o)
	}
	return rs
}

// Args is implemented by the argument struct of every operation in this package and
// nowhere else.
type Args interface {
	Operation() Operation
	// document validates the arguments and returns the value to marshal.
	document() (interface{}, error)
}

// Render validates args and returns the xml request body.
func Render(args Args) ([]byte, error) {
	doc, err := args.document()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBufferString(xmlHeader)
	if err := xml.NewEncoder(buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encode %s body failed, err:%w", args.Operation().Name(), err)
	}
	return buf.Bytes(), nil
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}
