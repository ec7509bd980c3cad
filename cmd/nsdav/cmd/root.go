package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/nsdav/client"
	"github.com/xxxsen/nsdav/cmd/nsdav/config"
	"github.com/xxxsen/nsdav/transport"
)

const (
	defaultConfigFileEnv = "NSDAV_CONFIG"
)

var cmds []CreateFunc

type Context struct {
	Client *client.Client
	Config *config.Config
}

type CreateFunc func(ctx *Context) *cobra.Command

func register(cr CreateFunc) {
	cmds = append(cmds, cr)
}

func defaultConfigFiles() []string {
	var rs []string
	if home, err := os.UserHomeDir(); err == nil {
		rs = append(rs, filepath.Join(home, ".nsdav", "config.yaml"), filepath.Join(home, ".nsdav", "config.json"))
	}
	return append(rs, "/etc/nsdav/config.yaml")
}

// pickConfigFile returns the first existing candidate, an empty result means the config
// comes from the environment alone.
func pickConfigFile(cfgs []string) string {
	for _, cfg := range cfgs {
		if len(cfg) == 0 {
			continue
		}
		if _, err := os.Stat(cfg); err == nil {
			return cfg
		}
	}
	return ""
}

func initContext(ctx *Context, explicit string, cfgs []string) error {
	f := explicit
	if len(f) == 0 {
		f = pickConfigFile(cfgs)
	}
	c, err := config.Parse(f)
	if err != nil {
		return fmt.Errorf("load config failed, file:%s, err:%w", f, err)
	}
	ctx.Config = c
	logger.Init("", c.LogLevel, 0, 0, 0, true)
	tr := transport.NewHTTP(
		transport.WithTimeout(time.Duration(c.Timeout)*time.Second),
		transport.WithTracing(c.Trace),
	)
	cli, err := client.New(
		client.WithBaseURL(c.BaseURL),
		client.WithDavPrefix(c.DavPrefix),
		client.WithOperationPrefix(c.OperationPrefix),
		client.WithAuth(c.Username, c.Password),
		client.WithTransport(tr),
	)
	if err != nil {
		return err
	}
	ctx.Client = cli
	return nil
}

func NewRoot() *cobra.Command {
	var configFile string
	ctx := &Context{}
	var rootCmd = &cobra.Command{
		Use:           "nsdav",
		Short:         "Nutstore webdav CLI tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, cr := range cmds {
		rootCmd.AddCommand(cr(ctx))
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		envConfigFile, _ := os.LookupEnv(defaultConfigFileEnv)
		return initContext(ctx, configFile, append([]string{envConfigFile}, defaultConfigFiles()...))
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	return rootCmd
}
