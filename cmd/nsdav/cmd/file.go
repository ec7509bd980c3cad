package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/nsdav/client"
	"github.com/xxxsen/nsdav/entity"
	"github.com/xxxsen/nsdav/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func formatItem(it *entity.Item) string {
	kind := "-"
	size := humanize.IBytes(uint64(it.Size()))
	if it.IsDir {
		kind = "d"
		size = "-"
	}
	mtime := "-"
	if it.LastModified != nil {
		mtime = it.LastModified.Local().Format(time.DateTime)
	}
	return fmt.Sprintf("%s %10s %s %s", kind, size, mtime, it.Href)
}

func NewLsCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List a remote directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := "/"
			if len(args) > 0 {
				p = args[0]
			}
			items, err := c.Client.Ls(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("list dir failed, err:%w", err)
			}
			for _, it := range items {
				fmt.Fprintln(cmd.OutOrStdout(), formatItem(it))
			}
			return nil
		},
	}
}

func NewMkdirCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <path>...",
		Short: "Create remote directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				if err := c.Client.Mkdir(cmd.Context(), p); err != nil {
					return fmt.Errorf("mkdir failed, path:%s, err:%w", p, err)
				}
			}
			return nil
		},
	}
}

func NewPutCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "put <remote-dir> <local-file>...",
		Short: "Upload local files into a remote directory",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return onRunPut(cmd.Context(), c, args[0], args[1:])
		},
	}
}

func onRunPut(ctx context.Context, c *Context, dir string, files []string) error {
	start := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.Config.Thread)
	for _, f := range files {
		f := f
		eg.Go(func() error {
			data, err := os.ReadFile(f)
			if err != nil {
				return fmt.Errorf("read local file failed, file:%s, err:%w", f, err)
			}
			dst := path.Join(dir, filepath.Base(f))
			out, err := c.Client.Upload(ctx, dst, data)
			if err != nil {
				return fmt.Errorf("upload file failed, file:%s, err:%w", f, err)
			}
			logutil.GetLogger(ctx).Info("upload file succ", zap.String("file", f), zap.String("remote", dst),
				zap.String("size", humanize.IBytes(uint64(len(data)))), zap.String("result", string(out)))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("upload finish", zap.Int("count", len(files)), zap.Duration("cost", time.Since(start)))
	return nil
}

func NewGetCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "get <remote-file> [local-file]",
		Short: "Download a remote file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst := path.Base(args[0])
			if len(args) > 1 {
				dst = args[1]
			}
			data, err := c.Client.Download(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("download file failed, err:%w", err)
			}
			n, err := utils.SafeSaveIOToFile(dst, bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("save file failed, err:%w", err)
			}
			logutil.GetLogger(cmd.Context()).Info("download file succ", zap.String("file", dst), zap.String("size", humanize.IBytes(uint64(n))))
			return nil
		},
	}
}

func NewMvCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Move a remote file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Client.Move(cmd.Context(), args[0], args[1])
		},
	}
}

func NewCpCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "cp <from> <to>",
		Short: "Copy a remote file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Client.Copy(cmd.Context(), args[0], args[1])
		},
	}
}

func NewRmCmd(c *Context) *cobra.Command {
	var force bool
	subc := &cobra.Command{
		Use:   "rm <path>...",
		Short: "Remove remote files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				err := c.Client.Remove(cmd.Context(), p)
				if err == nil || (force && client.IsNotFound(err)) {
					continue
				}
				return fmt.Errorf("remove failed, path:%s, err:%w", p, err)
			}
			return nil
		},
	}
	subc.Flags().BoolVarP(&force, "force", "f", false, "ignore missing paths")
	return subc
}

func init() {
	register(NewLsCmd)
	register(NewMkdirCmd)
	register(NewPutCmd)
	register(NewGetCmd)
	register(NewMvCmd)
	register(NewCpCmd)
	register(NewRmCmd)
}
