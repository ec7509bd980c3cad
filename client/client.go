package client

import (
	"context"
	"errors"

	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/errs"
	"github.com/xxxsen/nsdav/render"
)

// Client runs every call on the calling goroutine.
type Client struct {
	c *core
}

func New(opts ...Option) (*Client, error) {
	c, err := newCore(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{c: c}, nil
}

// Async returns a non blocking client sharing this client's configuration.
func (cli *Client) Async() *AsyncClient {
	return &AsyncClient{c: cli.c}
}

// Href returns the server side form of path, as used by share links and acls.
func (cli *Client) Href(p string) string {
	return cli.c.r.Href(p)
}

func run(ctx context.Context, c *core, cl *call[struct{}], opts []CallOption) error {
	_, err := invoke(ctx, c, cl, opts)
	return err
}

// Ls lists path and its direct children.
func (cli *Client) Ls(ctx context.Context, p string, opts ...CallOption) ([]*entity.Item, error) {
	return invoke(ctx, cli.c, cli.c.ls(p), opts)
}

func (cli *Client) Mkdir(ctx context.Context, p string, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.mkdir(p), opts)
}

// Upload stores data at path, the outcome tells a new file from an overwrite.
func (cli *Client) Upload(ctx context.Context, p string, data []byte, opts ...CallOption) (entity.UploadOutcome, error) {
	return invoke(ctx, cli.c, cli.c.upload(p, data), opts)
}

func (cli *Client) Download(ctx context.Context, p string, opts ...CallOption) ([]byte, error) {
	return invoke(ctx, cli.c, cli.c.download(p), opts)
}

func (cli *Client) Move(ctx context.Context, from string, to string, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.transfer("MOVE", from, to), opts)
}

func (cli *Client) Copy(ctx context.Context, from string, to string, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.transfer("COPY", from, to), opts)
}

func (cli *Client) Remove(ctx context.Context, p string, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.remove(p), opts)
}

// Share publishes path and returns the share link. Empty users and groups share with
// everyone.
func (cli *Client) Share(ctx context.Context, p string, users []string, groups []string, downloadable bool, opts ...CallOption) (string, error) {
	return invoke(ctx, cli.c, cli.c.share(p, users, groups, downloadable), opts)
}

func (cli *Client) GetACL(ctx context.Context, p string, opts ...CallOption) (*entity.ACL, error) {
	return invoke(ctx, cli.c, cli.c.getACL(p), opts)
}

func (cli *Client) UpdateACL(ctx context.Context, p string, users []render.ACLEntry, groups []render.ACLEntry, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.updateACL(p, users, groups), opts)
}

func (cli *Client) GetLatestCursor(ctx context.Context, folder string, opts ...CallOption) (int64, error) {
	return invoke(ctx, cli.c, cli.c.latestCursor(folder), opts)
}

// GetHistory fetches one page of the delta feed of folder, cursor 0 starts from the
// beginning.
func (cli *Client) GetHistory(ctx context.Context, folder string, cursor int64, opts ...CallOption) (*entity.History, error) {
	return invoke(ctx, cli.c, cli.c.history(folder, cursor), opts)
}

// WalkHistory feeds fn every page from cursor on, following has_more. It stops with
// errs.ErrHistoryReset when the server reports the feed as discontinuous, the caller
// should then drop what it saw and walk again from cursor 0.
func (cli *Client) WalkHistory(ctx context.Context, folder string, cursor int64, fn func(h *entity.History) error, opts ...CallOption) (int64, error) {
	for {
		h, err := cli.GetHistory(ctx, folder, cursor, opts...)
		if err != nil {
			return cursor, err
		}
		if h.Discontinuous() {
			return cursor, errs.ErrHistoryReset
		}
		if err := fn(h); err != nil {
			return cursor, err
		}
		if h.Cursor != nil {
			cursor = *h.Cursor
		}
		next, ok := h.Next()
		if !ok {
			return cursor, nil
		}
		cursor = next
	}
}

// CopySharedObject copies a published object into path and returns the copy uuid to
// poll with.
func (cli *Client) CopySharedObject(ctx context.Context, p string, link string, password string, opts ...CallOption) (string, error) {
	return invoke(ctx, cli.c, cli.c.copyShared(p, link, password), opts)
}

// PollCopySharedObject reports whether the copy finished.
func (cli *Client) PollCopySharedObject(ctx context.Context, copyUUID string, opts ...CallOption) (bool, error) {
	return invoke(ctx, cli.c, cli.c.pollCopy(copyUUID), opts)
}

func (cli *Client) Search(ctx context.Context, keywords []string, p string, opts ...CallOption) ([]*entity.Item, error) {
	return invoke(ctx, cli.c, cli.c.search(keywords, p), opts)
}

func (cli *Client) GetContentURL(ctx context.Context, p string, platform string, linkType string, opts ...CallOption) (string, error) {
	return invoke(ctx, cli.c, cli.c.contentURL(p, platform, linkType), opts)
}

func (cli *Client) GetPubContentURL(ctx context.Context, args *render.PubContentURLArgs, opts ...CallOption) (string, error) {
	return invoke(ctx, cli.c, cli.c.pubContentURL(args), opts)
}

func (cli *Client) GetUserInfo(ctx context.Context, opts ...CallOption) (*entity.UserInfo, error) {
	return invoke(ctx, cli.c, cli.c.userInfo(), opts)
}

func (cli *Client) UpdateTeamInfo(ctx context.Context, name string, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.updateTeamInfo(name), opts)
}

func (cli *Client) GetTeamMembers(ctx context.Context, opts ...CallOption) ([]*entity.TeamMember, error) {
	return invoke(ctx, cli.c, cli.c.teamMembers(), opts)
}

// CreateTeamMembers creates between 1 and 10 accounts at once.
func (cli *Client) CreateTeamMembers(ctx context.Context, users []render.NewMember, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.createTeamMembers(users), opts)
}

func (cli *Client) UpdateTeamMemberStorageQuota(ctx context.Context, user string, quota int64, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.updateStorageQuota(user, quota), opts)
}

func (cli *Client) GetTeamMemberInfo(ctx context.Context, user string, opts ...CallOption) (*entity.TeamMemberInfo, error) {
	return invoke(ctx, cli.c, cli.c.teamMemberInfo(user), opts)
}

func (cli *Client) RemoveTeamMember(ctx context.Context, user string, folderReceipt string, cleanPerms bool, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.removeTeamMember(user, folderReceipt, cleanPerms), opts)
}

func (cli *Client) GetGroupMembers(ctx context.Context, groupID int64, opts ...CallOption) (*entity.GroupMembers, error) {
	return invoke(ctx, cli.c, cli.c.groupMembers(groupID), opts)
}

// CreateGroup returns the id of the new group.
func (cli *Client) CreateGroup(ctx context.Context, parentID int64, name string, admins []string, users []string, opts ...CallOption) (int64, error) {
	return invoke(ctx, cli.c, cli.c.createGroup(parentID, name, admins, users), opts)
}

func (cli *Client) AddMemberToGroup(ctx context.Context, groupID int64, users []string, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.addGroupMembers(groupID, users), opts)
}

func (cli *Client) RemoveMemberFromGroup(ctx context.Context, groupID int64, users []string, subgroups []int64, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.removeGroupMembers(groupID, users, subgroups), opts)
}

func (cli *Client) UpdateTeamMemberStatus(ctx context.Context, users []render.MemberStatus, opts ...CallOption) error {
	return run(ctx, cli.c, cli.c.updateMemberStatus(users), opts)
}

func (cli *Client) QueryAuditLogs(ctx context.Context, q render.AuditLogArgs, opts ...CallOption) (*entity.AuditLogPage, error) {
	return invoke(ctx, cli.c, cli.c.auditLogs(q), opts)
}

// IsNotFound reports a 404 fault.
func IsNotFound(err error) bool {
	var fe *errs.FaultError
	return errors.As(err, &fe) && fe.StatusCode == 404
}
