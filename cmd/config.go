package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wechat-articles/internal/config"
	"wechat-articles/internal/util"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "管理插件配置",
	Long:  `查看和初始化插件配置文件。`,
}

// configShowCmd 显示当前配置
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "显示当前配置",
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd 初始化配置文件
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "生成默认配置文件",
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// showConfig 打印当前生效的配置
func showConfig() {
	cfg := config.GetConfig()
	if cfg == nil {
		fmt.Println("❌ 配置未加载")
		return
	}

	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	fmt.Println("当前配置:")
	fmt.Println("================")
	fmt.Printf("配置文件: %s\n", path)
	fmt.Printf("插件名称: %s\n", cfg.Plugin.Name)
	fmt.Printf("公众平台地址: %s\n", cfg.WeChat.BaseURL)
	fmt.Printf("请求超时: %d秒\n", cfg.WeChat.Timeout)
	fmt.Printf("日志级别: %s\n", cfg.Logging.Level)

	if verbose {
		fmt.Printf("日志格式: %s\n", cfg.Logging.Format)
		fmt.Printf("日志输出: %s\n", cfg.Logging.Output)
		if cfg.Logging.File != "" {
			fmt.Printf("日志文件: %s\n", cfg.Logging.File)
		}
		fmt.Printf("User-Agent: %s\n", cfg.WeChat.UserAgent)
	}
}

// initConfig 报告配置文件位置；不存在的配置在启动时已自动生成
func initConfig() {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if util.FileExists(path) {
		fmt.Printf("✅ 配置文件已存在: %s\n", path)
	} else {
		// PersistentPreRunE 里的 LoadConfig 会创建缺失的配置，走到这里说明创建失败
		fmt.Printf("❌ 配置文件生成失败: %s\n", path)
		fmt.Println("请检查目录权限后重试")
		return
	}
	fmt.Println("\n💡 可通过环境变量覆盖配置:")
	fmt.Println("  WECHAT_ARTICLES_LOG_LEVEL  日志级别")
	fmt.Println("  WECHAT_ARTICLES_BASE_URL   公众平台接口地址")
	fmt.Println("  WECHAT_ARTICLES_TIMEOUT    请求超时（秒）")
	fmt.Println("  WECHAT_ARTICLES_USER_AGENT 请求User-Agent")
}
