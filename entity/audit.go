package entity

import "time"

type Activity struct {
	Operator   *string
	Operation  *string
	IP         *string
	IPLocation *string
	Terminal   *string
	Consuming  *string
}

// AuditLogPage is one page of a queryAuditLogs result.
type AuditLogPage struct {
	LogNum             *int64
	FirstOperationTime *time.Time
	LastOperationTime  *time.Time
	HasMore            *bool
	Activities         []*Activity
}
