package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/render"
)

func str(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func size(v *int64) string {
	if v == nil {
		return "-"
	}
	return humanize.IBytes(uint64(*v))
}

func NewWhoamiCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := c.Client.GetUserInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("get user info failed, err:%w", err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "user:    %s\n", str(info.UserName))
			fmt.Fprintf(w, "state:   %s\n", str(info.State))
			fmt.Fprintf(w, "storage: %s / %s\n", size(info.UsedStorage), size(info.StorageQuota))
			if info.TeamID != nil {
				fmt.Fprintf(w, "team:    %d (admin:%t)\n", *info.TeamID, info.IsAdmin != nil && *info.IsAdmin)
			}
			if info.ExpireTime != nil {
				fmt.Fprintf(w, "expire:  %s\n", info.ExpireTime.Local().Format(time.DateTime))
			}
			for _, col := range info.Collections {
				fmt.Fprintf(w, "  %s %s\n", size(col.UsedStorage), str(col.Href))
			}
			return nil
		},
	}
}

func NewMembersCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List team members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := c.Client.GetTeamMembers(cmd.Context())
			if err != nil {
				return fmt.Errorf("get team members failed, err:%w", err)
			}
			for _, m := range members {
				role := "user"
				if m.Admin {
					role = "admin"
				}
				disabled := m.Disabled != nil && *m.Disabled
				fmt.Fprintf(cmd.OutOrStdout(), "%-5s %-30s %10s disabled:%t\n", role, str(m.UserName), size(m.StorageQuota), disabled)
			}
			return nil
		},
	}
}

func NewAuditCmd(c *Context) *cobra.Command {
	var since time.Duration
	var user, op, file string
	subc := &cobra.Command{
		Use:   "audit",
		Short: "Query team audit logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			page, err := c.Client.QueryAuditLogs(cmd.Context(), render.AuditLogArgs{
				Start:    now.Add(-since),
				End:      now,
				UserName: user,
				OpType:   entity.OperationType(op),
				FileName: file,
			})
			if err != nil {
				return fmt.Errorf("query audit logs failed, err:%w", err)
			}
			w := cmd.OutOrStdout()
			for _, a := range page.Activities {
				fmt.Fprintf(w, "%-16s %-30s %s %s\n", str(a.Operation), str(a.Operator), str(a.IP), str(a.Terminal))
			}
			if page.HasMore != nil && *page.HasMore {
				fmt.Fprintln(w, "more logs available, narrow the time range")
			}
			return nil
		},
	}
	subc.Flags().DurationVar(&since, "since", 24*time.Hour, "look back window")
	subc.Flags().StringVar(&user, "user", "", "operator filter")
	subc.Flags().StringVar(&op, "op", "", "operation type filter, e.g. UPLOAD")
	subc.Flags().StringVar(&file, "file", "", "file name filter")
	return subc
}

func init() {
	register(NewWhoamiCmd)
	register(NewMembersCmd)
	register(NewAuditCmd)
}
