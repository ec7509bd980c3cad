package client

import (
	"context"

	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/render"
)

// AsyncClient mirrors Client but returns a Future for every call. Calls are
// independent, no ordering is kept between them.
type AsyncClient struct {
	c *core
}

func NewAsync(opts ...Option) (*AsyncClient, error) {
	c, err := newCore(opts...)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{c: c}, nil
}

func (a *AsyncClient) Ls(ctx context.Context, p string, opts ...CallOption) *Future[[]*entity.Item] {
	return submit(ctx, a.c, a.c.ls(p), opts)
}

func (a *AsyncClient) Mkdir(ctx context.Context, p string, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.mkdir(p), opts)
}

func (a *AsyncClient) Upload(ctx context.Context, p string, data []byte, opts ...CallOption) *Future[entity.UploadOutcome] {
	return submit(ctx, a.c, a.c.upload(p, data), opts)
}

func (a *AsyncClient) Download(ctx context.Context, p string, opts ...CallOption) *Future[[]byte] {
	return submit(ctx, a.c, a.c.download(p), opts)
}

func (a *AsyncClient) Move(ctx context.Context, from string, to string, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.transfer("MOVE", from, to), opts)
}

func (a *AsyncClient) Copy(ctx context.Context, from string, to string, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.transfer("COPY", from, to), opts)
}

func (a *AsyncClient) Remove(ctx context.Context, p string, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.remove(p), opts)
}

func (a *AsyncClient) Share(ctx context.Context, p string, users []string, groups []string, downloadable bool, opts ...CallOption) *Future[string] {
	return submit(ctx, a.c, a.c.share(p, users, groups, downloadable), opts)
}

func (a *AsyncClient) GetACL(ctx context.Context, p string, opts ...CallOption) *Future[*entity.ACL] {
	return submit(ctx, a.c, a.c.getACL(p), opts)
}

func (a *AsyncClient) UpdateACL(ctx context.Context, p string, users []render.ACLEntry, groups []render.ACLEntry, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.updateACL(p, users, groups), opts)
}

func (a *AsyncClient) GetLatestCursor(ctx context.Context, folder string, opts ...CallOption) *Future[int64] {
	return submit(ctx, a.c, a.c.latestCursor(folder), opts)
}

func (a *AsyncClient) GetHistory(ctx context.Context, folder string, cursor int64, opts ...CallOption) *Future[*entity.History] {
	return submit(ctx, a.c, a.c.history(folder, cursor), opts)
}

func (a *AsyncClient) CopySharedObject(ctx context.Context, p string, link string, password string, opts ...CallOption) *Future[string] {
	return submit(ctx, a.c, a.c.copyShared(p, link, password), opts)
}

func (a *AsyncClient) PollCopySharedObject(ctx context.Context, copyUUID string, opts ...CallOption) *Future[bool] {
	return submit(ctx, a.c, a.c.pollCopy(copyUUID), opts)
}

func (a *AsyncClient) Search(ctx context.Context, keywords []string, p string, opts ...CallOption) *Future[[]*entity.Item] {
	return submit(ctx, a.c, a.c.search(keywords, p), opts)
}

func (a *AsyncClient) GetContentURL(ctx context.Context, p string, platform string, linkType string, opts ...CallOption) *Future[string] {
	return submit(ctx, a.c, a.c.contentURL(p, platform, linkType), opts)
}

func (a *AsyncClient) GetPubContentURL(ctx context.Context, args *render.PubContentURLArgs, opts ...CallOption) *Future[string] {
	return submit(ctx, a.c, a.c.pubContentURL(args), opts)
}

func (a *AsyncClient) GetUserInfo(ctx context.Context, opts ...CallOption) *Future[*entity.UserInfo] {
	return submit(ctx, a.c, a.c.userInfo(), opts)
}

func (a *AsyncClient) UpdateTeamInfo(ctx context.Context, name string, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.updateTeamInfo(name), opts)
}

func (a *AsyncClient) GetTeamMembers(ctx context.Context, opts ...CallOption) *Future[[]*entity.TeamMember] {
	return submit(ctx, a.c, a.c.teamMembers(), opts)
}

func (a *AsyncClient) CreateTeamMembers(ctx context.Context, users []render.NewMember, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.createTeamMembers(users), opts)
}

func (a *AsyncClient) UpdateTeamMemberStorageQuota(ctx context.Context, user string, quota int64, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.updateStorageQuota(user, quota), opts)
}

func (a *AsyncClient) GetTeamMemberInfo(ctx context.Context, user string, opts ...CallOption) *Future[*entity.TeamMemberInfo] {
	return submit(ctx, a.c, a.c.teamMemberInfo(user), opts)
}

func (a *AsyncClient) RemoveTeamMember(ctx context.Context, user string, folderReceipt string, cleanPerms bool, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.removeTeamMember(user, folderReceipt, cleanPerms), opts)
}

func (a *AsyncClient) GetGroupMembers(ctx context.Context, groupID int64, opts ...CallOption) *Future[*entity.GroupMembers] {
	return submit(ctx, a.c, a.c.groupMembers(groupID), opts)
}

func (a *AsyncClient) CreateGroup(ctx context.Context, parentID int64, name string, admins []string, users []string, opts ...CallOption) *Future[int64] {
	return submit(ctx, a.c, a.c.createGroup(parentID, name, admins, users), opts)
}

func (a *AsyncClient) AddMemberToGroup(ctx context.Context, groupID int64, users []string, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.addGroupMembers(groupID, users), opts)
}

func (a *AsyncClient) RemoveMemberFromGroup(ctx context.Context, groupID int64, users []string, subgroups []int64, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.removeGroupMembers(groupID, users, subgroups), opts)
}

func (a *AsyncClient) UpdateTeamMemberStatus(ctx context.Context, users []render.MemberStatus, opts ...CallOption) *Future[struct{}] {
	return submit(ctx, a.c, a.c.updateMemberStatus(users), opts)
}

func (a *AsyncClient) QueryAuditLogs(ctx context.Context, q render.AuditLogArgs, opts ...CallOption) *Future[*entity.AuditLogPage] {
	return submit(ctx, a.c, a.c.auditLogs(q), opts)
}
