package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/errs"
	"go.uber.org/zap"
)

func NewCursorCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "cursor <folder>",
		Short: "Print the latest delta cursor of a sandbox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor, err := c.Client.GetLatestCursor(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get latest cursor failed, err:%w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cursor)
			return nil
		},
	}
}

func formatEntry(e *entity.HistoryEntry) string {
	op := "update"
	if e.IsDeleted != nil && *e.IsDeleted {
		op = "delete"
	}
	p := ""
	if e.Path != nil {
		p = *e.Path
	}
	var rev int64
	if e.Revision != nil {
		rev = *e.Revision
	}
	return fmt.Sprintf("%-6s r%-4d %s", op, rev, p)
}

func NewHistoryCmd(c *Context) *cobra.Command {
	var cursor int64
	subc := &cobra.Command{
		Use:   "history <folder>",
		Short: "Print the change history of a sandbox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			last, err := c.Client.WalkHistory(cmd.Context(), args[0], cursor, func(h *entity.History) error {
				for _, e := range h.Entries {
					fmt.Fprintln(w, formatEntry(e))
				}
				return nil
			})
			if errors.Is(err, errs.ErrHistoryReset) {
				logutil.GetLogger(cmd.Context()).Warn("history reset by server, run again from cursor 0")
			}
			if err != nil {
				return fmt.Errorf("walk history failed, err:%w", err)
			}
			logutil.GetLogger(cmd.Context()).Info("history finished", zap.Int64("cursor", last))
			return nil
		},
	}
	subc.Flags().Int64Var(&cursor, "cursor", 0, "start cursor, 0 for the beginning")
	return subc
}

func NewSearchCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "search <path> <keyword>...",
		Short: "Search names under a remote path",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := c.Client.Search(cmd.Context(), args[1:], args[0])
			if err != nil {
				return fmt.Errorf("search failed, err:%w", err)
			}
			for _, it := range items {
				fmt.Fprintln(cmd.OutOrStdout(), formatItem(it))
			}
			return nil
		},
	}
}

func init() {
	register(NewCursorCmd)
	register(NewHistoryCmd)
	register(NewSearchCmd)
}
