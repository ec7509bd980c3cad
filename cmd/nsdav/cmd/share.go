package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/retry"
	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/render"
	"go.uber.org/zap"
)

var errCopyInProcess = errors.New("copy still in process")

func NewShareCmd(c *Context) *cobra.Command {
	var users, groups []string
	var noDownload bool
	subc := &cobra.Command{
		Use:   "share <path>",
		Short: "Publish a remote path and print the share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := c.Client.Share(cmd.Context(), args[0], users, groups, !noDownload)
			if err != nil {
				return fmt.Errorf("share failed, err:%w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	subc.Flags().StringSliceVar(&users, "user", nil, "restrict the link to these users")
	subc.Flags().StringSliceVar(&groups, "group", nil, "restrict the link to these group ids")
	subc.Flags().BoolVar(&noDownload, "no-download", false, "disable download of the shared object")
	return subc
}

func NewACLCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "acl <path>",
		Short: "Show the sandbox acl of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acl, err := c.Client.GetACL(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get acl failed, err:%w", err)
			}
			w := cmd.OutOrStdout()
			acl.Users.Range(func(k string, v entity.Perm) bool {
				fmt.Fprintf(w, "user  %s %s (%s)\n", k, v, v.Describe())
				return true
			})
			acl.Groups.Range(func(k string, v entity.Perm) bool {
				fmt.Fprintf(w, "group %s %s (%s)\n", k, v, v.Describe())
				return true
			})
			return nil
		},
	}
}

// parseACLEntries reads principal=perm pairs.
func parseACLEntries(kind string, items []string) ([]render.ACLEntry, error) {
	rs := make([]render.ACLEntry, 0, len(items))
	for _, item := range items {
		name, perm, ok := strings.Cut(item, "=")
		if !ok || len(name) == 0 {
			return nil, fmt.Errorf("invalid %s acl:%q, want name=perm", kind, item)
		}
		rs = append(rs, render.ACLEntry{Principal: name, Perm: entity.Perm(perm)})
	}
	return rs, nil
}

func NewACLSetCmd(c *Context) *cobra.Command {
	var users, groups []string
	subc := &cobra.Command{
		Use:   "acl-set <path>",
		Short: "Replace the sandbox acl of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			us, err := parseACLEntries("user", users)
			if err != nil {
				return err
			}
			gs, err := parseACLEntries("group", groups)
			if err != nil {
				return err
			}
			if err := c.Client.UpdateACL(cmd.Context(), args[0], us, gs); err != nil {
				return fmt.Errorf("update acl failed, err:%w", err)
			}
			return nil
		},
	}
	subc.Flags().StringSliceVar(&users, "user", nil, "user acl as name=perm")
	subc.Flags().StringSliceVar(&groups, "group", nil, "group acl as id=perm")
	return subc
}

func NewLinkCmd(c *Context) *cobra.Command {
	var platform, linkType, relPath, password string
	var pub bool
	subc := &cobra.Command{
		Use:   "link <path|share-link>",
		Short: "Resolve a direct content url",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u string
			var err error
			if pub {
				u, err = c.Client.GetPubContentURL(cmd.Context(), &render.PubContentURLArgs{
					Link:         args[0],
					Platform:     platform,
					LinkType:     linkType,
					RelativePath: relPath,
					Password:     password,
				})
			} else {
				u, err = c.Client.GetContentURL(cmd.Context(), args[0], platform, linkType)
			}
			if err != nil {
				return fmt.Errorf("get content url failed, err:%w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
	subc.Flags().StringVar(&platform, "platform", "desktop", "client platform")
	subc.Flags().StringVar(&linkType, "type", "download", "link type")
	subc.Flags().BoolVar(&pub, "pub", false, "argument is a share link")
	subc.Flags().StringVar(&relPath, "relative-path", "", "path inside a shared folder")
	subc.Flags().StringVar(&password, "password", "", "share link password")
	return subc
}

func NewCopySharedCmd(c *Context) *cobra.Command {
	var password string
	var times uint32
	var interval time.Duration
	subc := &cobra.Command{
		Use:   "copy-shared <share-link> <path>",
		Short: "Copy a published object into your own space",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return onRunCopyShared(cmd.Context(), c, args[0], args[1], password, times, interval)
		},
	}
	subc.Flags().StringVar(&password, "password", "", "share link password")
	subc.Flags().Uint32Var(&times, "poll-times", 30, "max poll count")
	subc.Flags().DurationVar(&interval, "poll-interval", 2*time.Second, "wait between polls")
	return subc
}

func onRunCopyShared(ctx context.Context, c *Context, link string, p string, password string, times uint32, interval time.Duration) error {
	id, err := c.Client.CopySharedObject(ctx, p, link, password)
	if err != nil {
		return fmt.Errorf("submit copy failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Info("copy submitted", zap.String("copy_uuid", id))
	err = retry.RetryDo(ctx, times, interval, func(ctx context.Context) error {
		done, err := c.Client.PollCopySharedObject(ctx, id)
		if err != nil {
			return err
		}
		if !done {
			return errCopyInProcess
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("wait copy failed, copy_uuid:%s, err:%w", id, err)
	}
	logutil.GetLogger(ctx).Info("copy finished", zap.String("path", p))
	return nil
}

func init() {
	register(NewShareCmd)
	register(NewACLCmd)
	register(NewACLSetCmd)
	register(NewLinkCmd)
	register(NewCopySharedCmd)
}
