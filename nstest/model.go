package nstest

import "encoding/xml"

// OpRequest is the union of every operation body, matched by local element name.
type OpRequest struct {
	Href               string `xml:"href"`
	FolderName         string `xml:"folderName"`
	Cursor             string `xml:"cursor"`
	Keywords           string `xml:"keywords"`
	Path               string `xml:"path"`
	PublishedObjectURL string `xml:"published_object_url"`
	CopyUUID           string `xml:"copy_uuid"`
	DownloadDisabled   string `xml:"downloadDisabled"`
	ACLs               []struct {
		Username *string `xml:"username"`
		Group    *string `xml:"group"`
		Perm     string  `xml:"perm"`
	} `xml:"acl"`
	ID            int64  `xml:"id"`
	Name          string `xml:"name"`
	Username      string `xml:"username"`
	StorageQuota  int64  `xml:"storageQuota"`
	FolderReceipt string `xml:"folder_receipt"`
	CleanPerms    string `xml:"clean_perms"`
	Users         []struct {
		Username     string `xml:"username"`
		Password     string `xml:"password"`
		StorageQuota int64  `xml:"storage_quota"`
		Nickname     string `xml:"nickname"`
		Disabled     string `xml:"disabled"`
	} `xml:"user"`
	Admins []struct {
		Username string `xml:"username"`
	} `xml:"admin"`
	SubGroups []struct {
		ID int64 `xml:"id"`
	} `xml:"subGroup"`
	TimeStart int64  `xml:"time_start"`
	TimeEnd   int64  `xml:"time_end"`
	OpType    string `xml:"op_type"`
	FileName  string `xml:"filename"`
}

type faultDoc struct {
	XMLName   xml.Name `xml:"d:error"`
	DavNS     string   `xml:"xmlns:d,attr"`
	NS        string   `xml:"xmlns:s,attr"`
	Exception string   `xml:"s:exception"`
	Message   string   `xml:"s:message"`
}

func newFault(exception string, message string) *faultDoc {
	return &faultDoc{DavNS: "DAV:", NS: namespace, Exception: exception, Message: message}
}

type shareLinkDoc struct {
	XMLName   xml.Name `xml:"s:publish"`
	NS        string   `xml:"xmlns:s,attr"`
	ShareLink string   `xml:"s:sharelink"`
}

type aclEntryDoc struct {
	Username string `xml:"s:username,omitempty"`
	Group    string `xml:"s:group,omitempty"`
	Perm     string `xml:"s:perm"`
}

type aclDoc struct {
	XMLName xml.Name      `xml:"s:sandbox"`
	NS      string        `xml:"xmlns:s,attr"`
	ACLs    []aclEntryDoc `xml:"s:acl"`
}

type historyEntryDoc struct {
	Path      string `xml:"s:path"`
	Size      int64  `xml:"s:size"`
	IsDeleted bool   `xml:"s:isDeleted"`
	IsDir     bool   `xml:"s:isDir"`
	Modified  string `xml:"s:modified"`
	Revision  int64  `xml:"s:revision"`
}

type historyDoc struct {
	XMLName xml.Name          `xml:"s:delta"`
	NS      string            `xml:"xmlns:s,attr"`
	Reset   *bool             `xml:"s:reset,omitempty"`
	Cursor  string            `xml:"s:cursor"`
	HasMore *bool             `xml:"s:hasMore,omitempty"`
	Entries []historyEntryDoc `xml:"s:delta>s:entry"`
}

type copyDoc struct {
	XMLName  xml.Name `xml:"s:copy_pub"`
	NS       string   `xml:"xmlns:s,attr"`
	CopyUUID string   `xml:"s:copy_uuid"`
}

type resourceTypeDoc struct {
	Collection *struct{} `xml:"d:collection,omitempty"`
}

type searchPropDoc struct {
	DisplayName   string          `xml:"d:displayname"`
	ResourceType  resourceTypeDoc `xml:"d:resourcetype"`
	ContentLength int64           `xml:"d:getcontentlength"`
	LastModified  string          `xml:"d:getlastmodified"`
	ResourcePerm  string          `xml:"s:resourceperm"`
}

type searchResponseDoc struct {
	Href string        `xml:"d:href"`
	Prop searchPropDoc `xml:"d:propstat>d:prop"`
}

type multistatusDoc struct {
	XMLName   xml.Name            `xml:"d:multistatus"`
	DavNS     string              `xml:"xmlns:d,attr"`
	NS        string              `xml:"xmlns:s,attr"`
	Responses []searchResponseDoc `xml:"d:response"`
}

type contentLinkDoc struct {
	XMLName xml.Name `xml:"s:direct_content_link"`
	NS      string   `xml:"xmlns:s,attr"`
	Href    string   `xml:"s:href"`
}

type collectionDoc struct {
	Href        string `xml:"s:href"`
	UsedStorage int64  `xml:"s:used_storage"`
	Owner       bool   `xml:"s:owner"`
}

type userInfoTeamDoc struct {
	IsAdmin bool  `xml:"s:is_admin"`
	ID      int64 `xml:"s:id"`
}

type userInfoDoc struct {
	XMLName      xml.Name         `xml:"s:user_info"`
	NS           string           `xml:"xmlns:s,attr"`
	Username     string           `xml:"s:username"`
	State        string           `xml:"s:account_state"`
	StorageQuota int64            `xml:"s:storage_quota"`
	UsedStorage  int64            `xml:"s:used_storage"`
	Team         *userInfoTeamDoc `xml:"s:team"`
	ExpireTime   int64            `xml:"s:expire_time"`
	Collections  []collectionDoc  `xml:"s:collection"`
}

type teamMemberDoc struct {
	XMLName      xml.Name
	Username     string `xml:"s:username"`
	Nickname     string `xml:"s:nickname,omitempty"`
	StorageQuota int64  `xml:"s:storage_quota"`
	Disabled     bool   `xml:"s:disabled"`
}

type teamMembersDoc struct {
	XMLName xml.Name        `xml:"s:team"`
	NS      string          `xml:"xmlns:s,attr"`
	Members []teamMemberDoc `xml:"s:user"`
}

type sandboxDoc struct {
	Name         string `xml:"s:name"`
	StorageQuota int64  `xml:"s:storageQuota"`
}

type memberInfoDoc struct {
	XMLName      xml.Name     `xml:"s:team"`
	NS           string       `xml:"xmlns:s,attr"`
	Username     string       `xml:"s:username"`
	StorageQuota int64        `xml:"s:storageQuota"`
	ExpireTime   int64        `xml:"s:expireTime"`
	Sandboxes    []sandboxDoc `xml:"s:sandbox"`
}

type groupUserDoc struct {
	Username string `xml:"s:username"`
	Nickname string `xml:"s:nickname,omitempty"`
}

type subgroupDoc struct {
	ID   int64  `xml:"s:id"`
	Name string `xml:"s:name"`
}

type groupMembersDoc struct {
	XMLName   xml.Name       `xml:"s:group"`
	NS        string         `xml:"xmlns:s,attr"`
	Subgroups []subgroupDoc  `xml:"s:subgroup"`
	Admins    []groupUserDoc `xml:"s:admin"`
	Users     []groupUserDoc `xml:"s:user"`
}

type createdGroupDoc struct {
	XMLName xml.Name `xml:"s:group"`
	NS      string   `xml:"xmlns:s,attr"`
	ID      int64    `xml:"s:id"`
}

type activityDoc struct {
	Operator  string `xml:"s:operator"`
	Operation string `xml:"s:operation"`
	IP        string `xml:"s:ip"`
	Terminal  string `xml:"s:terminal"`
}

type auditLogsDoc struct {
	XMLName            xml.Name      `xml:"s:search"`
	NS                 string        `xml:"xmlns:s,attr"`
	LogNum             int           `xml:"s:log_num"`
	FirstOperationTime int64         `xml:"s:first_operation_time,omitempty"`
	LastOperationTime  int64         `xml:"s:last_operation_time,omitempty"`
	HasMore            bool          `xml:"s:has_more"`
	Activities         []activityDoc `xml:"s:activity"`
}
