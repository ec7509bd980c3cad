package parse

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/errs"
)

const listingBody = `<?xml version="1.0" encoding="utf-8"?>
<d:multistatus xmlns:d="DAV:" xmlns:s="http://ns.jianguoyun.com">
  <d:response>
    <d:href>/dav/my%20docs/</d:href>
    <d:propstat>
      <d:prop>
        <d:displayname>my docs</d:displayname>
        <d:resourcetype><d:collection/></d:resourcetype>
        <d:getlastmodified>Mon, 02 Jan 2006 15:04:05 GMT</d:getlastmodified>
        <d:owner>alice</d:owner>
        <d:current-user-privilege-set>
          <d:privilege><d:read/></d:privilege>
          <d:privilege><d:write/></d:privilege>
        </d:current-user-privilege-set>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
  <d:response>
    <d:href>/dav/my%20docs/a.txt</d:href>
    <d:propstat>
      <d:prop>
        <d:displayname>a.txt</d:displayname>
        <d:resourcetype/>
        <d:getcontentlength>12</d:getcontentlength>
        <d:getcontenttype>text/plain</d:getcontenttype>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
    <d:propstat>
      <d:prop>
        <d:getlastmodified>Tue, 03 Jan 2006 15:04:05 +0800</d:getlastmodified>
        <d:privilege><d:all/></d:privilege>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
</d:multistatus>`

func TestParseList(t *testing.T) {
	items, err := ParseList([]byte(listingBody))
	require.NoError(t, err)
	require.Equal(t, 2, len(items))

	dir := items[0]
	assert.Equal(t, "/dav/my docs/", dir.Href)
	assert.True(t, dir.IsDir)
	assert.Equal(t, "my docs", *dir.DisplayName)
	assert.Nil(t, dir.ContentLength)
	assert.Equal(t, int64(0), dir.Size())
	require.NotNil(t, dir.LastModified)
	assert.True(t, dir.LastModified.Equal(time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "alice", *dir.Owner)
	assert.True(t, *dir.Readable)
	assert.True(t, *dir.Writable)
	assert.False(t, *dir.FullPrivilege)
	assert.False(t, *dir.ReadACL)
	assert.Nil(t, dir.ResourcePerm)

	file := items[1]
	assert.False(t, file.IsDir)
	assert.Equal(t, int64(12), file.Size())
	assert.Equal(t, "text/plain", *file.MimeType)
	require.NotNil(t, file.LastModified)
	assert.Equal(t, time.Date(2006, 1, 3, 7, 4, 5, 0, time.UTC).Unix(), file.LastModified.Unix())
	assert.True(t, *file.FullPrivilege)
	assert.False(t, *file.Readable)
}

func TestParseListSingleDigitDay(t *testing.T) {
	body := `<d:multistatus xmlns:d="DAV:">
  <d:response>
    <d:href>/dav/a</d:href>
    <d:propstat><d:prop><d:getlastmodified>Mon, 2 Jan 2006 15:04:05 GMT</d:getlastmodified></d:prop></d:propstat>
  </d:response>
  <d:response>
    <d:href>/dav/b</d:href>
    <d:propstat><d:prop><d:getlastmodified>Tue, 3 Jan 2006 15:04:05 +0800</d:getlastmodified></d:prop></d:propstat>
  </d:response>
</d:multistatus>`
	items, err := ParseList([]byte(body))
	require.NoError(t, err)
	require.Equal(t, 2, len(items))
	require.NotNil(t, items[0].LastModified)
	assert.True(t, items[0].LastModified.Equal(time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)))
	require.NotNil(t, items[1].LastModified)
	assert.True(t, items[1].LastModified.Equal(time.Date(2006, 1, 3, 7, 4, 5, 0, time.UTC)))
}

func TestParseSearch(t *testing.T) {
	body := `<d:multistatus xmlns:d="DAV:" xmlns:s="http://ns.jianguoyun.com">
  <d:response>
    <d:href>/dav/a/b.txt</d:href>
    <d:propstat><d:prop>
      <d:displayname>b.txt</d:displayname>
      <d:getcontentlength>3</d:getcontentlength>
      <s:resourceperm>read</s:resourceperm>
    </d:prop></d:propstat>
  </d:response>
</d:multistatus>`
	items, err := ParseSearch([]byte(body))
	require.NoError(t, err)
	require.Equal(t, 1, len(items))
	assert.Equal(t, "read", *items[0].ResourcePerm)
	assert.Nil(t, items[0].DisplayName)
	assert.Nil(t, items[0].Readable)
	assert.Equal(t, int64(3), items[0].Size())
}

func TestParseListErrors(t *testing.T) {
	_, err := ParseList([]byte("<d:multistatus xmlns:d=\"DAV:\"><d:response>"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrDecode))

	_, err = ParseList([]byte(`<d:multistatus xmlns:d="DAV:"><d:response></d:response></d:multistatus>`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrDecode))

	_, err = ParseList([]byte(`<d:multistatus xmlns:d="DAV:"><d:response><d:href>/a</d:href>
<d:propstat><d:prop><d:getcontentlength>abc</d:getcontentlength></d:prop></d:propstat></d:response></d:multistatus>`))
	require.Error(t, err)
	var derr *errs.DecodeError
	assert.True(t, errors.As(err, &derr))

	_, err = ParseList(nil)
	assert.True(t, errors.Is(err, errs.ErrDecode))
}

func TestParseShareLinkAndSimpleValues(t *testing.T) {
	link, err := ParseShareLink([]byte(`<s:publish xmlns:s="http://ns.jianguoyun.com"><s:sharelink>
  https://www.jianguoyun.com/p/abc
</s:sharelink></s:publish>`))
	require.NoError(t, err)
	assert.Equal(t, "https://www.jianguoyun.com/p/abc", link)

	_, err = ParseShareLink([]byte(`<s:publish xmlns:s="http://ns.jianguoyun.com"></s:publish>`))
	assert.True(t, errors.Is(err, errs.ErrDecode))

	uuid, err := ParseCopyUUID([]byte(`<s:copy_pub xmlns:s="http://ns.jianguoyun.com"><s:copy_uuid>u-1</s:copy_uuid></s:copy_pub>`))
	require.NoError(t, err)
	assert.Equal(t, "u-1", uuid)

	u, err := ParseContentURL([]byte(`<s:direct_content_link xmlns:s="http://ns.jianguoyun.com"><s:href>https://x/a%20b</s:href></s:direct_content_link>`))
	require.NoError(t, err)
	assert.Equal(t, "https://x/a b", u)

	id, err := ParseCreatedGroup([]byte(`<s:group xmlns:s="http://ns.jianguoyun.com"><s:id>77</s:id></s:group>`))
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)
}

func TestParseACL(t *testing.T) {
	body := `<s:sandbox xmlns:s="http://ns.jianguoyun.com">
  <s:acl><s:username>alice</s:username><s:perm>3</s:perm></s:acl>
  <s:acl><s:group>42</s:group><s:perm>1</s:perm></s:acl>
  <s:acl><s:username>bob</s:username><s:perm>5</s:perm></s:acl>
</s:sandbox>`
	acl, err := ParseACL([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, acl.Users.Keys())
	perm, ok := acl.Users.Get("alice")
	assert.True(t, ok)
	assert.Equal(t, entity.PermFullExceptACL, perm)
	perm, ok = acl.Groups.Get("42")
	assert.True(t, ok)
	assert.Equal(t, entity.PermDownloadPreview, perm)
	assert.Equal(t, 1, acl.Groups.Len())
}

func TestParseACLTrimsPrincipals(t *testing.T) {
	body := `<s:sandbox xmlns:s="http://ns.jianguoyun.com">
  <s:acl><s:username>
    alice </s:username><s:perm> 3 </s:perm></s:acl>
  <s:acl><s:group> 42 </s:group><s:perm>1</s:perm></s:acl>
</s:sandbox>`
	acl, err := ParseACL([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, acl.Users.Keys())
	assert.Equal(t, []string{"42"}, acl.Groups.Keys())
	perm, ok := acl.Users.Get("alice")
	assert.True(t, ok)
	assert.Equal(t, entity.PermFullExceptACL, perm)
}

func TestParseLatestCursor(t *testing.T) {
	for _, c := range []string{"ff", "FF", " fF "} {
		v, err := ParseLatestCursor([]byte(`<s:delta xmlns:s="http://ns.jianguoyun.com"><s:cursor>` + c + `</s:cursor></s:delta>`))
		require.NoError(t, err)
		assert.Equal(t, int64(255), v)
	}
	_, err := ParseLatestCursor([]byte(`<s:delta xmlns:s="http://ns.jianguoyun.com"></s:delta>`))
	assert.True(t, errors.Is(err, errs.ErrDecode))
	_, err = ParseLatestCursor([]byte(`<s:delta xmlns:s="http://ns.jianguoyun.com"><s:cursor>xyz</s:cursor></s:delta>`))
	assert.True(t, errors.Is(err, errs.ErrDecode))
}

func historyBody(reset string) string {
	return `<s:delta xmlns:s="http://ns.jianguoyun.com">
  <s:reset>` + reset + `</s:reset>
  <s:cursor>5</s:cursor>
  <s:hasMore>true</s:hasMore>
  <s:delta>
    <s:entry>
      <s:path>/docs/a.txt</s:path>
      <s:size>10</s:size>
      <s:isDeleted>false</s:isDeleted>
      <s:isDir>false</s:isDir>
      <s:modified>Mon, 02 Jan 2006 15:04:05 GMT</s:modified>
      <s:revision>3</s:revision>
    </s:entry>
    <s:entry>
      <s:path>/docs/old</s:path>
      <s:isDeleted>true</s:isDeleted>
    </s:entry>
  </s:delta>
</s:delta>`
}

func TestParseHistory(t *testing.T) {
	h, err := ParseHistory([]byte(historyBody("true")))
	require.NoError(t, err)
	assert.True(t, *h.Reset)
	assert.False(t, h.Discontinuous())
	next, ok := h.Next()
	assert.True(t, ok)
	assert.Equal(t, int64(5), next)
	require.Equal(t, 2, len(h.Entries))
	assert.Equal(t, "/docs/a.txt", *h.Entries[0].Path)
	assert.Equal(t, int64(10), *h.Entries[0].Size)
	assert.Equal(t, int64(3), *h.Entries[0].Revision)
	assert.False(t, *h.Entries[0].IsDir)
	assert.True(t, *h.Entries[1].IsDeleted)
	assert.Nil(t, h.Entries[1].Size)
	assert.Nil(t, h.Entries[1].Modified)

	h, err = ParseHistory([]byte(historyBody("false")))
	require.NoError(t, err)
	assert.False(t, *h.Reset)
	assert.True(t, h.Discontinuous())
}

func TestParseUserInfo(t *testing.T) {
	body := `<s:user_info xmlns:s="http://ns.jianguoyun.com">
  <s:username>a@x.com</s:username>
  <s:account_state>team_active</s:account_state>
  <s:storage_quota>1000</s:storage_quota>
  <s:used_storage>300</s:used_storage>
  <s:team><s:is_admin>true</s:is_admin><s:id>9</s:id></s:team>
  <s:expire_time>1500000000123</s:expire_time>
  <s:collection><s:href>/dav/a%20b</s:href><s:used_storage>100</s:used_storage><s:owner>true</s:owner></s:collection>
  <s:collection><s:href>/dav/c</s:href><s:used_storage>200</s:used_storage><s:owner>false</s:owner></s:collection>
</s:user_info>`
	info, err := ParseUserInfo([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", *info.UserName)
	assert.True(t, *info.IsAdmin)
	assert.Equal(t, int64(9), *info.TeamID)
	assert.Equal(t, int64(300), *info.UsedStorage)
	assert.Equal(t, int64(1500000000123), info.ExpireTime.UnixMilli())
	require.Equal(t, 2, len(info.Collections))
	assert.Equal(t, "/dav/a b", *info.Collections[0].Href)
	assert.Equal(t, int64(200), *info.Collections[1].UsedStorage)
	assert.False(t, *info.Collections[1].IsOwner)

	info, err = ParseUserInfo([]byte(`<s:user_info xmlns:s="http://ns.jianguoyun.com"><s:username>p</s:username><s:account_state>personal</s:account_state></s:user_info>`))
	require.NoError(t, err)
	assert.Nil(t, info.TeamID)
	assert.Nil(t, info.IsAdmin)
	assert.Nil(t, info.StorageQuota)
	assert.Nil(t, info.ExpireTime)
	assert.Empty(t, info.Collections)
}

func TestParseTeamMembers(t *testing.T) {
	body := `<s:team xmlns:s="http://ns.jianguoyun.com">
  <s:admin><s:username>boss</s:username><s:storage_quota>10</s:storage_quota></s:admin>
  <s:user><s:username>u1</s:username><s:nickname>U</s:nickname><s:ldap_user>false</s:ldap_user><s:disabled>true</s:disabled></s:user>
</s:team>`
	ms, err := ParseTeamMembers([]byte(body))
	require.NoError(t, err)
	require.Equal(t, 2, len(ms))
	assert.True(t, ms[0].Admin)
	assert.Equal(t, int64(10), *ms[0].StorageQuota)
	assert.Nil(t, ms[0].Disabled)
	assert.False(t, ms[1].Admin)
	assert.Equal(t, "U", *ms[1].Nickname)
	assert.False(t, *ms[1].LDAPUser)
	assert.True(t, *ms[1].Disabled)
}

func TestParseTeamMemberInfo(t *testing.T) {
	body := `<s:team xmlns:s="http://ns.jianguoyun.com">
  <s:username>u1</s:username>
  <s:storageQuota>500</s:storageQuota>
  <s:expireTime>1000</s:expireTime>
  <s:sandbox><s:name>work</s:name><s:storageQuota>50</s:storageQuota></s:sandbox>
</s:team>`
	info, err := ParseTeamMemberInfo([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, int64(500), *info.StorageQuota)
	assert.Equal(t, int64(1), info.ExpireTime.Unix())
	require.Equal(t, 1, len(info.Sandboxes))
	assert.Equal(t, "work", *info.Sandboxes[0].Name)
	assert.Equal(t, int64(50), *info.Sandboxes[0].StorageQuota)
}

func TestParseGroupMembers(t *testing.T) {
	body := `<s:group xmlns:s="http://ns.jianguoyun.com">
  <s:subgroup><s:id>3</s:id><s:name>ops</s:name></s:subgroup>
  <s:admin><s:username>boss</s:username></s:admin>
  <s:user><s:username>u1</s:username><s:nickname>one</s:nickname></s:user>
  <s:user><s:username>u2</s:username></s:user>
</s:group>`
	gm, err := ParseGroupMembers([]byte(body))
	require.NoError(t, err)
	require.Equal(t, 1, len(gm.Subgroups))
	assert.Equal(t, int64(3), *gm.Subgroups[0].GroupID)
	assert.Equal(t, "boss", *gm.Admins[0].UserName)
	assert.Nil(t, gm.Admins[0].Nickname)
	assert.Equal(t, 2, len(gm.Users))
}

func TestParseAuditLogs(t *testing.T) {
	body := `<s:search xmlns:s="http://ns.jianguoyun.com">
  <s:log_num>2</s:log_num>
  <s:first_operation_time>1000</s:first_operation_time>
  <s:last_operation_time>2000</s:last_operation_time>
  <s:has_more>false</s:has_more>
  <s:activity><s:operator>a</s:operator><s:operation>DOWNLOAD</s:operation><s:ip>1.2.3.4</s:ip></s:activity>
  <s:activity><s:operator>b</s:operator><s:terminal>web</s:terminal></s:activity>
</s:search>`
	page, err := ParseAuditLogs([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, int64(2), *page.LogNum)
	assert.Equal(t, int64(2), page.LastOperationTime.Unix())
	assert.False(t, *page.HasMore)
	require.Equal(t, 2, len(page.Activities))
	assert.Equal(t, "1.2.3.4", *page.Activities[0].IP)
	assert.Nil(t, page.Activities[1].IP)
	assert.Equal(t, "web", *page.Activities[1].Terminal)
}

func TestParseFault(t *testing.T) {
	fe := ParseFault(403, []byte(`<d:error xmlns:d="DAV:" xmlns:s="http://ns.jianguoyun.com"><s:exception>Forbidden</s:exception><s:message>no access</s:message></d:error>`))
	assert.Equal(t, 403, fe.StatusCode)
	assert.Equal(t, "Forbidden", *fe.Exception)
	assert.Equal(t, "no access", *fe.Message)

	fe = ParseFault(502, []byte("bad gateway"))
	assert.Equal(t, 502, fe.StatusCode)
	assert.Nil(t, fe.Exception)
	assert.Nil(t, fe.Message)

	fe = ParseFault(500, nil)
	assert.Nil(t, fe.Exception)
}
