package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wechat-articles/internal/config"
	"wechat-articles/internal/mcp"
	"wechat-articles/internal/util"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "以MCP stdio模式运行插件",
	Long: `在标准输入输出上运行MCP服务器，供宿主运行时接管。
stdout 保留给 MCP 协议，日志会写入 stderr 或日志文件。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe 启动MCP服务器并阻塞到宿主断开
func runServe(ctx context.Context) error {
	// 宿主安装插件前会先做一次凭证校验
	if err := pluginProvider.ValidateCredentials(ctx, nil); err != nil {
		return err
	}

	server, err := mcp.NewServer(pluginProvider, config.GetPluginName(), appVersion)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		return err
	}

	util.Info("MCP服务器已退出")
	return nil
}
