package nstest

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xxxsen/nsdav/utils"
	"golang.org/x/net/webdav"
)

func defaultHandlers() map[string]OpHandler {
	return map[string]OpHandler{
		"pubObject":                    handlePublish,
		"getSandboxAcl":                handleGetACL,
		"updateSandboxAcl":             handleUpdateACL,
		"latestDeltaCursor":            handleLatestCursor,
		"delta":                        handleDelta,
		"submitCopyPubObject":          handleSubmitCopy,
		"pollCopyPubObject":            handlePollCopy,
		"search":                       handleSearch,
		"directContentUrl":             handleContentURL,
		"directPubContentUrl":          handlePubContentURL,
		"getUserInfo":                  handleUserInfo,
		"updateTeamInfo":               handleUpdateTeamInfo,
		"getTeamMembers":               handleTeamMembers,
		"createEtpTeamMember":          handleCreateMembers,
		"updateTeamMemberStorageQuota": handleStorageQuota,
		"getTeamMemberInfo":            handleMemberInfo,
		"removeTeamMember":             handleRemoveMember,
		"getGroupMembers":              handleGroupMembers,
		"createGroup":                  handleCreateGroup,
		"addMemberToGroup":             handleAddGroupMembers,
		"removeMemberFromGroup":        handleRemoveGroupMembers,
		"updateTeamMemberStatus":       handleMemberStatus,
		"queryAuditLogs":               handleAuditLogs,
	}
}

func escapePath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}

func xmlName(tag string) xml.Name {
	return xml.Name{Local: tag}
}

// davPath maps an operation href back onto the dav store.
func davPath(href string) (string, bool) {
	if !strings.HasPrefix(href, DavPrefix+"/") {
		return "", false
	}
	return strings.TrimPrefix(href, DavPrefix), true
}

func (s *Server) exists(ctx context.Context, p string) bool {
	_, err := s.fs.Stat(ctx, p)
	return err == nil
}

func handlePublish(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	p, ok := davPath(req.Href)
	if !ok || !s.exists(c.Request.Context(), p) {
		return notFound(req.Href)
	}
	link := fmt.Sprintf("%s/p/%s", s.URL, uuid.NewString())
	s.st.shares[link] = p
	return http.StatusOK, &shareLinkDoc{NS: namespace, ShareLink: link}
}

func handleGetACL(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	doc := &aclDoc{NS: namespace}
	for _, e := range s.st.acls[req.Href] {
		doc.ACLs = append(doc.ACLs, aclEntryDoc{Username: e.user, Group: e.group, Perm: e.perm})
	}
	return http.StatusOK, doc
}

func handleUpdateACL(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	entries := make([]aclEntry, 0, len(req.ACLs))
	for _, a := range req.ACLs {
		e := aclEntry{perm: a.Perm}
		switch {
		case a.Username != nil:
			e.user = *a.Username
		case a.Group != nil:
			e.group = *a.Group
		default:
			return badRequest("acl without principal")
		}
		entries = append(entries, e)
	}
	s.st.acls[req.Href] = entries
	return http.StatusOK, nil
}

func inFolder(folder string, p string) bool {
	root := "/" + strings.Trim(folder, "/")
	return p == root || strings.HasPrefix(p, root+"/")
}

func handleLatestCursor(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	return http.StatusOK, &historyDoc{NS: namespace, Cursor: utils.EncodeCursor(int64(len(s.st.history)))}
}

// handleDelta pages through the change log, the cursor is an index into it.
func handleDelta(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	var from int64
	if len(req.Cursor) != 0 {
		v, err := utils.DecodeCursor(req.Cursor)
		if err != nil || v > int64(len(s.st.history)) {
			return badRequest("invalid cursor")
		}
		from = v
	}
	reset := s.st.reset
	doc := &historyDoc{NS: namespace, Reset: &reset}
	idx := from
	for ; idx < int64(len(s.st.history)) && len(doc.Entries) < s.st.pageSize; idx++ {
		ch := s.st.history[idx]
		if !inFolder(req.FolderName, ch.path) {
			continue
		}
		doc.Entries = append(doc.Entries, historyEntryDoc{
			Path:      ch.path,
			Size:      ch.size,
			IsDeleted: ch.isDeleted,
			IsDir:     ch.isDir,
			Modified:  ch.modified.Format(time.RFC1123),
			Revision:  ch.revision,
		})
	}
	more := idx < int64(len(s.st.history))
	doc.HasMore = &more
	doc.Cursor = utils.EncodeCursor(idx)
	return http.StatusOK, doc
}

func handleSubmitCopy(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	src, ok := s.st.shares[req.PublishedObjectURL]
	if !ok {
		return notFound(req.PublishedObjectURL)
	}
	dst, ok := davPath(req.Href)
	if !ok {
		return badRequest("invalid href")
	}
	id := uuid.NewString()
	s.st.copies[id] = &copyTask{src: src, dst: dst}
	return http.StatusCreated, &copyDoc{NS: namespace, CopyUUID: id}
}

// handlePollCopy reports the copy in process on the first poll and performs it on the
// second.
func handlePollCopy(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	task, ok := s.st.copies[req.CopyUUID]
	if !ok {
		return notFound(req.CopyUUID)
	}
	task.polls++
	if task.polls == 1 {
		return http.StatusCreated, nil
	}
	if task.polls == 2 {
		if err := copyFile(c.Request.Context(), s.fs, task.src, task.dst); err != nil {
			return http.StatusInternalServerError, newFault("CopyFailed", err.Error())
		}
		s.st.addHistory(task.dst, false, false, 0)
	}
	return http.StatusOK, nil
}

func copyFile(ctx context.Context, fs webdav.FileSystem, src string, dst string) error {
	in, err := fs.OpenFile(ctx, src, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := fs.OpenFile(ctx, dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func walk(ctx context.Context, fs webdav.FileSystem, root string, fn func(p string, fi os.FileInfo)) error {
	f, err := fs.OpenFile(ctx, root, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	fis, err := f.Readdir(-1)
	_ = f.Close()
	if err != nil {
		return err
	}
	for _, fi := range fis {
		p := path.Join(root, fi.Name())
		fn(p, fi)
		if fi.IsDir() {
			if err := walk(ctx, fs, p, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func handleSearch(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	root, ok := davPath(req.Path)
	if !ok {
		return badRequest("invalid path")
	}
	keywords := strings.Fields(req.Keywords)
	doc := &multistatusDoc{DavNS: "DAV:", NS: namespace}
	err := walk(c.Request.Context(), s.fs, root, func(p string, fi os.FileInfo) {
		for _, k := range keywords {
			if !strings.Contains(fi.Name(), k) {
				return
			}
		}
		item := searchResponseDoc{
			Href: escapePath(DavPrefix + p),
			Prop: searchPropDoc{
				DisplayName:  fi.Name(),
				LastModified: fi.ModTime().UTC().Format(http.TimeFormat),
				ResourcePerm: "rw",
			},
		}
		if fi.IsDir() {
			item.Prop.ResourceType.Collection = &struct{}{}
		} else {
			item.Prop.ContentLength = fi.Size()
		}
		doc.Responses = append(doc.Responses, item)
	})
	if err != nil {
		return notFound(req.Path)
	}
	return http.StatusMultiStatus, doc
}

func handleContentURL(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	p, ok := davPath(req.Href)
	if !ok || !s.exists(c.Request.Context(), p) {
		return notFound(req.Href)
	}
	return http.StatusOK, &contentLinkDoc{NS: namespace, Href: s.URL + "/direct" + escapePath(p)}
}

func handlePubContentURL(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	p, ok := s.st.shares[req.Href]
	if !ok {
		return notFound(req.Href)
	}
	return http.StatusOK, &contentLinkDoc{NS: namespace, Href: s.URL + "/direct" + escapePath(p)}
}

func handleUserInfo(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	user, _, _ := c.Request.BasicAuth()
	m := s.st.findMember(user)
	if m == nil {
		return notFound(user)
	}
	doc := &userInfoDoc{
		NS:           namespace,
		Username:     m.userName,
		State:        "team_active",
		StorageQuota: m.quota,
		Team:         &userInfoTeamDoc{IsAdmin: m.admin, ID: s.st.teamID},
		ExpireTime:   time.Now().Add(365 * 24 * time.Hour).UnixMilli(),
	}
	_ = walk(c.Request.Context(), s.fs, "/", func(p string, fi os.FileInfo) {
		if !fi.IsDir() {
			doc.UsedStorage += fi.Size()
		}
	})
	doc.Collections = append(doc.Collections, collectionDoc{Href: DavPrefix + "/", UsedStorage: doc.UsedStorage, Owner: true})
	return http.StatusOK, doc
}

func handleUpdateTeamInfo(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	if len(req.Name) == 0 {
		return badRequest("empty team name")
	}
	return http.StatusNoContent, nil
}

func handleTeamMembers(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	doc := &teamMembersDoc{NS: namespace}
	for _, m := range s.st.members {
		tag := "s:user"
		if m.admin {
			tag = "s:admin"
		}
		doc.Members = append(doc.Members, teamMemberDoc{
			XMLName:      xmlName(tag),
			Username:     m.userName,
			Nickname:     m.nickname,
			StorageQuota: m.quota,
			Disabled:     m.disabled,
		})
	}
	return http.StatusOK, doc
}

func handleCreateMembers(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	if len(req.Users) == 0 || len(req.Users) > 10 {
		return badRequest("invalid user count")
	}
	for _, u := range req.Users {
		if s.st.findMember(u.Username) != nil {
			return http.StatusConflict, newFault("UserExists", u.Username)
		}
		s.st.members = append(s.st.members, &member{userName: u.Username, nickname: u.Nickname, quota: u.StorageQuota})
	}
	return http.StatusNoContent, nil
}

func handleStorageQuota(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	m := s.st.findMember(req.Username)
	if m == nil {
		return notFound(req.Username)
	}
	m.quota = req.StorageQuota
	return http.StatusNoContent, nil
}

func handleMemberInfo(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	m := s.st.findMember(req.Username)
	if m == nil {
		return notFound(req.Username)
	}
	return http.StatusOK, &memberInfoDoc{
		NS:           namespace,
		Username:     m.userName,
		StorageQuota: m.quota,
		ExpireTime:   time.Now().Add(30 * 24 * time.Hour).UnixMilli(),
		Sandboxes:    []sandboxDoc{{Name: "default", StorageQuota: m.quota}},
	}
}

func handleRemoveMember(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	if !s.st.removeMember(req.Username) {
		return notFound(req.Username)
	}
	return http.StatusNoContent, nil
}

func handleGroupMembers(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	g, ok := s.st.groups[req.ID]
	if !ok {
		return notFound(fmt.Sprintf("group %d", req.ID))
	}
	doc := &groupMembersDoc{NS: namespace}
	for _, sub := range s.st.groups {
		if sub.parent == g.id && sub.id != g.id {
			doc.Subgroups = append(doc.Subgroups, subgroupDoc{ID: sub.id, Name: sub.name})
		}
	}
	for _, a := range g.admins {
		doc.Admins = append(doc.Admins, groupUserDoc{Username: a})
	}
	for _, u := range g.users {
		doc.Users = append(doc.Users, groupUserDoc{Username: u})
	}
	return http.StatusOK, doc
}

func handleCreateGroup(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	if _, ok := s.st.groups[req.ID]; !ok {
		return notFound(fmt.Sprintf("group %d", req.ID))
	}
	if len(req.Admins) == 0 {
		return badRequest("empty admins")
	}
	g := &group{id: s.st.nextGroupID, parent: req.ID, name: req.Name}
	s.st.nextGroupID++
	for _, a := range req.Admins {
		g.admins = append(g.admins, a.Username)
	}
	for _, u := range req.Users {
		g.users = append(g.users, u.Username)
	}
	s.st.groups[g.id] = g
	return http.StatusOK, &createdGroupDoc{NS: namespace, ID: g.id}
}

func handleAddGroupMembers(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	g, ok := s.st.groups[req.ID]
	if !ok {
		return notFound(fmt.Sprintf("group %d", req.ID))
	}
	for _, u := range req.Users {
		g.users = append(g.users, u.Username)
	}
	return http.StatusNoContent, nil
}

func handleRemoveGroupMembers(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	g, ok := s.st.groups[req.ID]
	if !ok {
		return notFound(fmt.Sprintf("group %d", req.ID))
	}
	drop := make(map[string]struct{}, len(req.Users))
	for _, u := range req.Users {
		drop[u.Username] = struct{}{}
	}
	kept := g.users[:0]
	for _, u := range g.users {
		if _, ok := drop[u]; !ok {
			kept = append(kept, u)
		}
	}
	g.users = kept
	for _, sg := range req.SubGroups {
		if sub, ok := s.st.groups[sg.ID]; ok && sub.parent == g.id {
			delete(s.st.groups, sg.ID)
		}
	}
	return http.StatusNoContent, nil
}

func handleMemberStatus(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	for _, u := range req.Users {
		m := s.st.findMember(u.Username)
		if m == nil {
			return notFound(u.Username)
		}
		m.disabled = u.Disabled == "true"
	}
	return http.StatusNoContent, nil
}

func handleAuditLogs(s *Server, c *gin.Context, req *OpRequest) (int, interface{}) {
	doc := &auditLogsDoc{NS: namespace}
	for _, a := range s.st.activities {
		ms := a.at.UnixMilli()
		if ms < req.TimeStart || (req.TimeEnd > 0 && ms > req.TimeEnd) {
			continue
		}
		if len(req.Username) != 0 && a.operator != req.Username {
			continue
		}
		if len(req.OpType) != 0 && a.operation != req.OpType {
			continue
		}
		if doc.FirstOperationTime == 0 {
			doc.FirstOperationTime = ms
		}
		doc.LastOperationTime = ms
		doc.Activities = append(doc.Activities, activityDoc{
			Operator:  a.operator,
			Operation: a.operation,
			IP:        a.ip,
			Terminal:  "web",
		})
	}
	doc.LogNum = len(doc.Activities)
	return http.StatusOK, doc
}

// Put stores a file directly in the dav store, bypassing the change log.
func (s *Server) Put(p string, data []byte) error {
	ctx := context.Background()
	f, err := s.fs.OpenFile(ctx, p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
