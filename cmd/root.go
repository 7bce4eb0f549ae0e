package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wechat-articles/internal/config"
	"wechat-articles/internal/pkg/errors"
	"wechat-articles/internal/provider"
	"wechat-articles/internal/tools"
	"wechat-articles/internal/tools/plugins"
	"wechat-articles/internal/util"
)

// appVersion 插件版本，与宿主握手时上报
const appVersion = "0.0.1"

var (
	// configPath 是配置文件的路径
	configPath string
	// verbose 标志用于启用详细输出
	verbose bool
	// toolManager 是全局的工具管理器
	toolManager tools.ToolManager
	// pluginProvider 是全局的插件提供者
	pluginProvider *provider.Provider
)

// rootCmd 代表没有调用子命令时的基础命令
var rootCmd = &cobra.Command{
	Use:   "wechat-articles",
	Short: "微信公众号文章数据插件",
	Long: `wechat-articles 是一个面向 LLM 工具平台的插件，
提供公众号文章链接列表、单篇文章评论和阅读/点赞数据的获取能力。`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// 默认行为：显示状态信息
		showStatus()
	},
}

// Execute 将所有子命令添加到根命令并适当设置标志。
// 这是由 main.main() 调用的。它只需要对 rootCmd 调用一次。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "命令执行失败: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// 全局标志
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径 (默认: $WECHAT_ARTICLES_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出")
}

// initializeApp 初始化应用
func initializeApp(cmd *cobra.Command) error {
	// 1. 处理配置文件路径
	if configPath == "" {
		configPath = os.Getenv("WECHAT_ARTICLES_CONFIG")
	}

	// 2. 加载配置文件
	if err := config.LoadConfig(configPath); err != nil {
		return errors.WrapError(errors.ErrCodeConfigInvalid, "配置加载失败", err)
	}

	// 3. 根据verbose标志调整日志级别
	logLevel := config.Config.Logging.Level
	if verbose {
		logLevel = "debug"
	}

	// 4. 初始化日志系统
	logFormat := config.Config.Logging.Format
	if logFormat == "" {
		logFormat = "text"
	}
	logOutput := config.Config.Logging.Output
	if logOutput == "" {
		logOutput = "stderr"
	}
	// serve 模式下 stdout 是 MCP 协议通道，日志强制走 stderr
	if cmd.Name() == "serve" && logOutput == "stdout" {
		logOutput = "stderr"
	}
	logFile := config.Config.Logging.File

	if err := util.InitLogger(logLevel, logFormat, logOutput, logFile); err != nil {
		return errors.WrapError(errors.ErrCodeConfigInvalid, "日志系统初始化失败", err)
	}

	util.Info("应用配置加载完成")
	util.Debugw("配置详情", map[string]any{
		"plugin_name": config.GetPluginName(),
		"base_url":    config.Config.WeChat.BaseURL,
		"log_level":   logLevel,
		"config_path": configPath,
	})

	// 5. 初始化工具管理器和提供者
	if err := initializeProvider(); err != nil {
		return errors.WrapError(errors.ErrCodeInitializationFailed, "插件提供者初始化失败", err)
	}

	return nil
}

// initializeProvider 初始化工具管理器和插件提供者
func initializeProvider() error {
	toolManager = tools.NewToolManager()

	if err := plugins.RegisterBuiltinTools(toolManager); err != nil {
		return err
	}

	pluginProvider = provider.NewProvider(toolManager)

	util.Debugw("工具状态", map[string]any{
		"registered_tools": len(toolManager.GetTools()),
	})
	return nil
}

// showStatus 显示应用状态
func showStatus() {
	util.Info("插件初始化成功")
	fmt.Println("wechat-articles 插件初始化完成")
	fmt.Println("配置文件加载成功")

	definitions := pluginProvider.ToolDefinitions()
	fmt.Printf("已注册工具: %d 个\n", len(definitions))
	for _, def := range definitions {
		fmt.Printf("  • %s - %s\n", def.Name, def.Description)
	}

	fmt.Printf("日志级别: %s\n", config.Config.Logging.Level)
	fmt.Println("\n使用 'wechat-articles --help' 查看可用命令")
}
