package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wechat-articles/internal/config"
	"wechat-articles/internal/mcp"
)

var (
	probeCommand string
	probeTimeout time.Duration
	probeCall    string
	probeArgs    string
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "通过MCP协议探测插件进程",
	Long: `以MCP客户端身份启动插件进程并完成一次握手，模拟宿主平台安装插件时的检查。
默认探测当前可执行文件自身的 serve 模式，也可以用 --command 指定其他插件二进制。`,
	Run: func(cmd *cobra.Command, args []string) {
		probePlugin(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().StringVar(&probeCommand, "command", "", "被探测的插件二进制路径（默认: 当前可执行文件）")
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 30*time.Second, "握手超时时间")
	probeCmd.Flags().StringVar(&probeCall, "call", "", "握手成功后调用的工具名称")
	probeCmd.Flags().StringVar(&probeArgs, "args", "", "JSON格式的工具调用参数，与 --call 配合使用")
}

// probePlugin 对插件进程做一次握手探测
func probePlugin(ctx context.Context) {
	command := probeCommand
	if command == "" {
		executable, err := os.Executable()
		if err != nil {
			fmt.Printf("❌ 无法定位当前可执行文件: %v\n", err)
			return
		}
		command = executable
	}

	fmt.Printf("探测插件: %s serve\n", command)
	fmt.Println("================")

	client, err := mcp.Connect(ctx, config.GetPluginName(), appVersion, command, []string{"serve"}, probeTimeout)
	if err != nil {
		fmt.Printf("❌ 握手失败: %v\n", err)
		fmt.Println("\n💡 建议:")
		fmt.Println("  1. 确认插件二进制存在且有执行权限")
		fmt.Println("  2. 手动运行 '<插件> serve' 检查启动日志")
		fmt.Println("  3. 确认插件日志没有写到 stdout 干扰协议通道")
		return
	}
	defer client.Close()

	fmt.Println("✅ 握手成功")

	toolList, err := client.ListTools(ctx)
	if err != nil {
		fmt.Printf("❌ 获取工具列表失败: %v\n", err)
		return
	}

	fmt.Printf("\n可用工具 (%d个):\n", len(toolList))
	for _, tool := range toolList {
		fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
	}

	if probeCall == "" {
		return
	}

	arguments := make(map[string]any)
	if probeArgs != "" {
		if err := json.Unmarshal([]byte(probeArgs), &arguments); err != nil {
			fmt.Printf("\n❌ 参数解析失败: %v\n", err)
			return
		}
	}

	fmt.Printf("\n调用工具: %s\n", probeCall)
	fmt.Println("----")
	result, err := client.CallTool(ctx, probeCall, arguments)
	if err != nil {
		fmt.Printf("❌ 工具调用失败: %v\n", err)
		return
	}
	fmt.Println(result)
	fmt.Println("\n✅ 探测完成")
}
