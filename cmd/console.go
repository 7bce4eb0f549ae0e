package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wechat-articles/internal/console"
)

// consoleCmd represents the console command
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "启动交互式调试台",
	Long:  `打开一个终端界面，反复调用插件工具并查看输出，适合调试凭证和参数。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return console.Run(pluginProvider)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
