package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"wechat-articles/internal/tools"
)

var toolsMarkdown bool

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "列出插件提供的工具",
	Long:  `显示插件注册的所有工具及其参数说明，宿主平台通过MCP协议看到的就是这份定义。`,
	Run: func(cmd *cobra.Command, args []string) {
		listTools()
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.Flags().BoolVarP(&toolsMarkdown, "markdown", "m", false, "以Markdown渲染输出")
}

// listTools 打印工具定义
func listTools() {
	definitions := pluginProvider.ToolDefinitions()
	if len(definitions) == 0 {
		fmt.Println("⚠️  当前没有注册任何工具")
		return
	}

	if toolsMarkdown {
		if rendered, err := glamour.Render(toolsAsMarkdown(definitions), "dark"); err == nil {
			fmt.Print(rendered)
			return
		}
		// 渲染失败时退回纯文本
	}

	fmt.Printf("已注册工具 (%d个):\n", len(definitions))
	fmt.Println("================")
	for _, def := range definitions {
		fmt.Printf("\n🔧 %s\n", def.Name)
		fmt.Printf("   %s\n", def.Description)
		names, properties := sortedParameters(def)
		if len(names) == 0 {
			continue
		}
		fmt.Println("   参数:")
		for _, name := range names {
			fmt.Printf("     - %s (%s): %s\n", name, propertyField(properties, name, "type"), propertyField(properties, name, "description"))
		}
	}
}

// toolsAsMarkdown 将工具定义拼成Markdown文档
func toolsAsMarkdown(definitions []tools.ToolDefinition) string {
	var sb strings.Builder
	sb.WriteString("# 插件工具\n\n")
	for _, def := range definitions {
		sb.WriteString(fmt.Sprintf("## %s\n\n%s\n\n", def.Name, def.Description))
		names, properties := sortedParameters(def)
		if len(names) == 0 {
			continue
		}
		sb.WriteString("| 参数 | 类型 | 说明 |\n")
		sb.WriteString("|------|------|------|\n")
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				name, propertyField(properties, name, "type"), propertyField(properties, name, "description")))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// sortedParameters 取出参数定义并按名称排序，保证输出稳定
func sortedParameters(def tools.ToolDefinition) ([]string, map[string]any) {
	properties, ok := def.Parameters["properties"].(map[string]any)
	if !ok {
		return nil, nil
	}
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, properties
}

// propertyField 读取单个参数定义中的字段
func propertyField(properties map[string]any, name, field string) string {
	prop, ok := properties[name].(map[string]any)
	if !ok {
		return ""
	}
	value, _ := prop[field].(string)
	return value
}
