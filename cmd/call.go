package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"wechat-articles/internal/tools"
	"wechat-articles/internal/util"
)

var (
	callArgsJSON string
	callParams   []string
)

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call [tool_name]",
	Short: "本地调用插件工具",
	Long: `不经过MCP传输，直接调用一次插件工具，用于开发调试。
参数可以用 --args 传一个JSON对象，也可以用 --param key=value 逐个指定。`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		callTool(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringVarP(&callArgsJSON, "args", "a", "", "JSON格式的调用参数")
	callCmd.Flags().StringArrayVarP(&callParams, "param", "p", nil, "key=value形式的参数，可重复；纯数字的值按数字传入")
}

// callTool 调用工具并打印结果
func callTool(ctx context.Context, toolName string) {
	arguments, err := parseCallArguments(callArgsJSON, callParams)
	if err != nil {
		fmt.Printf("❌ 参数解析失败: %v\n", err)
		fmt.Println("参数必须是有效的JSON对象，例如: '{\"action\":\"get_article_urls\"}'")
		return
	}

	fmt.Printf("调用工具: %s\n", toolName)
	fmt.Println("================")
	fmt.Println("正在执行...")

	messages, err := pluginProvider.InvokeTool(ctx, toolName, arguments)
	if err != nil {
		fmt.Printf("❌ 工具调用失败: %v\n", err)
		if util.IsErrorCode(err, util.ErrCodeToolNotFound) {
			fmt.Println("\n💡 建议:")
			fmt.Println("  1. 使用 'wechat-articles tools' 查看可用工具")
			fmt.Println("  2. 检查工具名称拼写是否正确")
		}
		return
	}

	fmt.Println("\n✅ 调用成功!")
	fmt.Println("结果:")
	fmt.Println("----")
	printMessages(messages)
	fmt.Printf("\n消息数量: %d\n", len(messages))
}

// parseCallArguments 合并JSON参数与key=value参数
func parseCallArguments(argsJSON string, params []string) (map[string]any, error) {
	arguments := make(map[string]any)

	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &arguments); err != nil {
			return nil, err
		}
	}

	for _, pair := range params {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("无效的参数格式: %s", pair)
		}
		// 与JSON解码保持一致，数字落成float64
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			arguments[key] = n
		} else {
			arguments[key] = value
		}
	}

	return arguments, nil
}

// printMessages 逐条打印工具输出消息
func printMessages(messages []tools.Message) {
	for _, msg := range messages {
		switch msg.Type {
		case tools.MessageTypeJSON:
			if formatted, err := json.MarshalIndent(msg.Data, "", "  "); err == nil {
				fmt.Println(string(formatted))
			} else {
				fmt.Printf("%v\n", msg.Data)
			}
		default:
			fmt.Println(msg.Text)
		}
	}
}
