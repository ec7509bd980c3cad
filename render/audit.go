package render

import (
	"encoding/xml"
	"time"

	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/errs"
)

// AuditLogArgs filters the audit log between Start and End. Empty filters match all.
type AuditLogArgs struct {
	Start    time.Time
	End      time.Time
	UserName string
	OpType   entity.OperationType
	FileName string
}

type auditDoc struct {
	XMLName   xml.Name `xml:"s:search"`
	NS        string   `xml:"xmlns:s,attr"`
	TimeStart int64    `xml:"s:time_start"`
	TimeEnd   int64    `xml:"s:time_end"`
	Username  string   `xml:"s:username,omitempty"`
	OpType    string   `xml:"s:op_type,omitempty"`
	FileName  string   `xml:"s:filename,omitempty"`
}

func (a *AuditLogArgs) Operation() Operation { return OpQueryAuditLogs }

func toMillis(t time.Time) int64 {
	return t.Round(time.Millisecond).UnixMilli()
}

func (a *AuditLogArgs) document() (interface{}, error) {
	if len(a.OpType) != 0 && !a.OpType.Valid() {
		return nil, errs.Invalid("op_type", "unknown operation type:%q", string(a.OpType))
	}
	if a.End.Before(a.Start) {
		return nil, errs.Invalid("time_end", "end before start")
	}
	return &auditDoc{
		NS:        Namespace,
		TimeStart: toMillis(a.Start),
		TimeEnd:   toMillis(a.End),
		Username:  a.UserName,
		OpType:    string(a.OpType),
		FileName:  a.FileName,
	}, nil
}
