package entity

// Perm is a sandbox permission code as used by the acl operations.
type Perm string

const (
	PermDownloadPreview Perm = "1"
	PermUpload          Perm = "2"
	PermFullExceptACL   Perm = "3"
	PermFull            Perm = "4"
	PermPreview         Perm = "5"
)

var permDesc = map[Perm]string{
	PermDownloadPreview: "download and preview",
	PermUpload:          "upload",
	PermFullExceptACL:   "upload, download, preview, remove and move",
	PermFull:            "upload, download, preview, remove, move and change acls of others",
	PermPreview:         "preview",
}

func (p Perm) Valid() bool {
	_, ok := permDesc[p]
	return ok
}

func (p Perm) Describe() string {
	if d, ok := permDesc[p]; ok {
		return d
	}
	return "unknown"
}

// OperationType filters audit log queries.
type OperationType string

const (
	OpSessionStart  OperationType = "SESSION_START"
	OpDownload      OperationType = "DOWNLOAD"
	OpUpload        OperationType = "UPLOAD"
	OpShare         OperationType = "SHARE"
	OpMove          OperationType = "MOVE"
	OpDelete        OperationType = "DELETE"
	OpRestore       OperationType = "RESTORE"
	OpPreview       OperationType = "PREVIEW"
	OpPurge         OperationType = "PURGE"
	OpPwdAttack     OperationType = "PWD_ATTACK"
	OpVirusInfected OperationType = "VIRUS_INFECTED"
)

var operationTypes = map[OperationType]struct{}{
	OpSessionStart:  {},
	OpDownload:      {},
	OpUpload:        {},
	OpShare:         {},
	OpMove:          {},
	OpDelete:        {},
	OpRestore:       {},
	OpPreview:       {},
	OpPurge:         {},
	OpPwdAttack:     {},
	OpVirusInfected: {},
}

func (o OperationType) Valid() bool {
	_, ok := operationTypes[o]
	return ok
}
