package client

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/errs"
	"github.com/xxxsen/nsdav/parse"
	"github.com/xxxsen/nsdav/render"
	"github.com/xxxsen/nsdav/router"
	"github.com/xxxsen/nsdav/transport"
	"github.com/xxxsen/nsdav/utils"
	"go.uber.org/zap"
)

// call is one operation ready to run: a request builder and the status aware decoder
// of its response.
type call[T any] struct {
	name   string
	build  func(cred transport.Credential) (*transport.Request, error)
	decode func(rsp *transport.Response) (T, error)
}

type core struct {
	r        *router.Router
	provider transport.CredentialProvider
	tr       transport.Transport
}

func newCore(opts ...Option) (*core, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	var ropts []router.Option
	if len(c.DavPrefix) != 0 {
		ropts = append(ropts, router.WithDavPrefix(c.DavPrefix))
	}
	if len(c.OperationPrefix) != 0 {
		ropts = append(ropts, router.WithOperationPrefix(c.OperationPrefix))
	}
	r, err := router.New(c.BaseURL, ropts...)
	if err != nil {
		return nil, err
	}
	tr := c.Transport
	if tr == nil {
		tr = transport.NewHTTP()
	}
	return &core{r: r, provider: c.Provider, tr: tr}, nil
}

func (c *core) prepare(opts []CallOption) (transport.Transport, transport.Credential, error) {
	cc := &callConfig{}
	for _, opt := range opts {
		opt(cc)
	}
	tr := c.tr
	if cc.transport != nil {
		tr = cc.transport
	}
	cred, err := router.ResolveCredential(cc.cred, c.provider)
	if err != nil {
		return nil, transport.Credential{}, err
	}
	return tr, cred, nil
}

func logFailure(ctx context.Context, name string, err error) {
	if fe, ok := errs.IsFault(err); ok {
		logutil.GetLogger(ctx).Error("call failed with fault", zap.String("op", name),
			zap.Int("status", fe.StatusCode), zap.Error(err))
		return
	}
	logutil.GetLogger(ctx).Error("call failed", zap.String("op", name), zap.Error(err))
}

func invoke[T any](ctx context.Context, c *core, cl *call[T], opts []CallOption) (T, error) {
	var zero T
	tr, cred, err := c.prepare(opts)
	if err != nil {
		return zero, err
	}
	req, err := cl.build(cred)
	if err != nil {
		return zero, err
	}
	rsp, err := tr.Do(ctx, req)
	if err != nil {
		logFailure(ctx, cl.name, err)
		return zero, fmt.Errorf("call %s failed, err:%w", cl.name, err)
	}
	if rsp == nil {
		err := errNilResponse(cl.name)
		logFailure(ctx, cl.name, err)
		return zero, err
	}
	v, err := cl.decode(rsp)
	if err != nil {
		logFailure(ctx, cl.name, err)
		return zero, err
	}
	return v, nil
}

func errNilResponse(name string) error {
	return fmt.Errorf("call %s failed, err:nil response", name)
}

func fault(rsp *transport.Response) error {
	return parse.ParseFault(rsp.StatusCode, rsp.Body)
}

// expect decodes the body with fn when the status is code.
func expect[T any](code int, fn func([]byte) (T, error)) func(*transport.Response) (T, error) {
	return func(rsp *transport.Response) (T, error) {
		if rsp.StatusCode != code {
			var zero T
			return zero, fault(rsp)
		}
		return fn(rsp.Body)
	}
}

func expectNoBody(code int) func(*transport.Response) (struct{}, error) {
	return func(rsp *transport.Response) (struct{}, error) {
		if rsp.StatusCode != code {
			return struct{}{}, fault(rsp)
		}
		return struct{}{}, nil
	}
}

func (c *core) dav(verb string, p string, body []byte) func(transport.Credential) (*transport.Request, error) {
	return func(cred transport.Credential) (*transport.Request, error) {
		return c.r.Dav(verb, p, body, cred)
	}
}

func (c *core) operation(args render.Args) func(transport.Credential) (*transport.Request, error) {
	return func(cred transport.Credential) (*transport.Request, error) {
		return c.r.Operation(args, cred)
	}
}

func (c *core) ls(p string) *call[[]*entity.Item] {
	return &call[[]*entity.Item]{
		name:   "ls",
		build:  c.dav("PROPFIND", p, nil),
		decode: expect(http.StatusMultiStatus, parse.ParseList),
	}
}

func (c *core) mkdir(p string) *call[struct{}] {
	return &call[struct{}]{
		name:   "mkdir",
		build:  c.dav("MKCOL", p, nil),
		decode: expectNoBody(http.StatusCreated),
	}
}

func (c *core) upload(p string, data []byte) *call[entity.UploadOutcome] {
	build := func(cred transport.Credential) (*transport.Request, error) {
		req, err := c.r.Dav(http.MethodPut, p, data, cred)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", utils.DetermineMimeType(path.Base(p), data))
		return req, nil
	}
	return &call[entity.UploadOutcome]{
		name:  "upload",
		build: build,
		decode: func(rsp *transport.Response) (entity.UploadOutcome, error) {
			switch rsp.StatusCode {
			case http.StatusCreated:
				return entity.UploadCreated, nil
			case http.StatusNoContent:
				return entity.UploadOverwritten, nil
			}
			return "", fault(rsp)
		},
	}
}

func (c *core) download(p string) *call[[]byte] {
	return &call[[]byte]{
		name:  "download",
		build: c.dav(http.MethodGet, p, nil),
		decode: expect(http.StatusOK, func(b []byte) ([]byte, error) {
			return b, nil
		}),
	}
}

func (c *core) transfer(verb string, from string, to string) *call[struct{}] {
	return &call[struct{}]{
		name: verb,
		build: func(cred transport.Credential) (*transport.Request, error) {
			return c.r.Transfer(verb, from, to, cred)
		},
		decode: expectNoBody(http.StatusCreated),
	}
}

func (c *core) remove(p string) *call[struct{}] {
	return &call[struct{}]{
		name:   "remove",
		build:  c.dav(http.MethodDelete, p, nil),
		decode: expectNoBody(http.StatusNoContent),
	}
}

func opCall[T any](c *core, args render.Args, decode func(*transport.Response) (T, error)) *call[T] {
	return &call[T]{
		name:   args.Operation().Name(),
		build:  c.operation(args),
		decode: decode,
	}
}

func (c *core) share(p string, users []string, groups []string, downloadable bool) *call[string] {
	args := &render.PublishArgs{Href: c.r.Href(p), Users: users, Groups: groups, Downloadable: downloadable}
	return opCall(c, args, expect(http.StatusOK, parse.ParseShareLink))
}

func (c *core) getACL(p string) *call[*entity.ACL] {
	return opCall(c, &render.GetACLArgs{Href: c.r.Href(p)}, expect(http.StatusOK, parse.ParseACL))
}

func (c *core) updateACL(p string, users []render.ACLEntry, groups []render.ACLEntry) *call[struct{}] {
	args := &render.UpdateACLArgs{Href: c.r.Href(p), Users: users, Groups: groups}
	return opCall(c, args, expectNoBody(http.StatusOK))
}

func (c *core) latestCursor(folder string) *call[int64] {
	return opCall(c, &render.LatestCursorArgs{Folder: folder}, expect(http.StatusOK, parse.ParseLatestCursor))
}

func (c *core) history(folder string, cursor int64) *call[*entity.History] {
	return opCall(c, &render.DeltaArgs{Folder: folder, Cursor: cursor}, expect(http.StatusOK, parse.ParseHistory))
}

func (c *core) copyShared(p string, link string, password string) *call[string] {
	args := &render.SubmitCopyArgs{Href: c.r.Href(p), URL: link, Password: password}
	return opCall(c, args, expect(http.StatusCreated, parse.ParseCopyUUID))
}

// pollCopy reports true once the copy finished.
func (c *core) pollCopy(copyUUID string) *call[bool] {
	return opCall(c, &render.PollCopyArgs{CopyUUID: copyUUID}, func(rsp *transport.Response) (bool, error) {
		switch rsp.StatusCode {
		case http.StatusOK:
			return true, nil
		case http.StatusCreated:
			return false, nil
		}
		return false, fault(rsp)
	})
}

func (c *core) search(keywords []string, p string) *call[[]*entity.Item] {
	args := &render.SearchArgs{Keywords: keywords, Href: c.r.Href(p)}
	return opCall(c, args, expect(http.StatusMultiStatus, parse.ParseSearch))
}

func (c *core) contentURL(p string, platform string, linkType string) *call[string] {
	args := &render.ContentURLArgs{Href: c.r.Href(p), Platform: platform, LinkType: linkType}
	return opCall(c, args, expect(http.StatusOK, parse.ParseContentURL))
}

func (c *core) pubContentURL(args *render.PubContentURLArgs) *call[string] {
	return opCall(c, args, expect(http.StatusOK, parse.ParseContentURL))
}

func (c *core) userInfo() *call[*entity.UserInfo] {
	return opCall(c, &render.UserInfoArgs{}, expect(http.StatusOK, parse.ParseUserInfo))
}

func (c *core) updateTeamInfo(name string) *call[struct{}] {
	return opCall(c, &render.TeamInfoArgs{Name: name}, expectNoBody(http.StatusNoContent))
}

func (c *core) teamMembers() *call[[]*entity.TeamMember] {
	return opCall(c, &render.TeamMembersArgs{}, expect(http.StatusOK, parse.ParseTeamMembers))
}

func (c *core) createTeamMembers(users []render.NewMember) *call[struct{}] {
	return opCall(c, &render.CreateMembersArgs{Users: users}, expectNoBody(http.StatusNoContent))
}

func (c *core) updateStorageQuota(user string, quota int64) *call[struct{}] {
	args := &render.StorageQuotaArgs{UserName: user, StorageQuota: quota}
	return opCall(c, args, expectNoBody(http.StatusNoContent))
}

func (c *core) teamMemberInfo(user string) *call[*entity.TeamMemberInfo] {
	return opCall(c, &render.MemberInfoArgs{UserName: user}, expect(http.StatusOK, parse.ParseTeamMemberInfo))
}

func (c *core) removeTeamMember(user string, folderReceipt string, cleanPerms bool) *call[struct{}] {
	args := &render.RemoveMemberArgs{UserName: user, FolderReceipt: folderReceipt, CleanPerms: cleanPerms}
	return opCall(c, args, expectNoBody(http.StatusNoContent))
}

func (c *core) groupMembers(groupID int64) *call[*entity.GroupMembers] {
	return opCall(c, &render.GroupMembersArgs{GroupID: groupID}, expect(http.StatusOK, parse.ParseGroupMembers))
}

func (c *core) createGroup(parentID int64, name string, admins []string, users []string) *call[int64] {
	args := &render.CreateGroupArgs{ParentID: parentID, Name: name, Admins: admins, Users: users}
	return opCall(c, args, expect(http.StatusOK, parse.ParseCreatedGroup))
}

func (c *core) addGroupMembers(groupID int64, users []string) *call[struct{}] {
	args := &render.AddGroupMembersArgs{GroupID: groupID, Users: users}
	return opCall(c, args, expectNoBody(http.StatusNoContent))
}

func (c *core) removeGroupMembers(groupID int64, users []string, subgroups []int64) *call[struct{}] {
	args := &render.RemoveGroupMembersArgs{GroupID: groupID, Users: users, SubGroups: subgroups}
	return opCall(c, args, expectNoBody(http.StatusNoContent))
}

func (c *core) updateMemberStatus(users []render.MemberStatus) *call[struct{}] {
	return opCall(c, &render.MemberStatusArgs{Users: users}, expectNoBody(http.StatusNoContent))
}

func (c *core) auditLogs(q render.AuditLogArgs) *call[*entity.AuditLogPage] {
	return opCall(c, &q, expect(http.StatusOK, parse.ParseAuditLogs))
}
