package cmd

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/spf13/cobra"

	"wechat-articles/internal/config"
	"wechat-articles/internal/util"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "诊断插件运行环境",
	Long:  `检查宿主机资源、插件配置和公众平台连通性，帮助定位安装或调用失败的原因。`,
	Run: func(cmd *cobra.Command, args []string) {
		runDoctor(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor 依次执行各项环境检查
func runDoctor(ctx context.Context) {
	fmt.Println("环境诊断")
	fmt.Println("================")

	checkSystem(ctx)
	checkConfig()
	checkConnectivity()

	fmt.Println("\n诊断完成")
}

// checkSystem 检查宿主机资源
func checkSystem(ctx context.Context) {
	fmt.Println("\n[系统]")

	if info, err := host.InfoWithContext(ctx); err == nil {
		fmt.Printf("✅ 主机: %s (%s %s, 内核 %s)\n", info.Hostname, info.Platform, info.PlatformVersion, info.KernelVersion)
	} else {
		fmt.Printf("⚠️  无法获取主机信息: %v\n", err)
	}

	if percentages, err := cpu.PercentWithContext(ctx, time.Second, false); err == nil && len(percentages) > 0 {
		cpuInfo, _ := cpu.InfoWithContext(ctx)
		if len(cpuInfo) > 0 {
			fmt.Printf("✅ CPU: %s, 使用率 %.2f%%\n", cpuInfo[0].ModelName, percentages[0])
		} else {
			fmt.Printf("✅ CPU使用率: %.2f%%\n", percentages[0])
		}
	} else {
		fmt.Printf("⚠️  无法获取CPU使用率: %v\n", err)
	}

	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		fmt.Printf("✅ 内存: %.2f GB / %.2f GB (%.2f%%)\n",
			float64(vmem.Used)/1024/1024/1024, float64(vmem.Total)/1024/1024/1024, vmem.UsedPercent)
	} else {
		fmt.Printf("⚠️  无法获取内存信息: %v\n", err)
	}

	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		mark := "✅"
		if usage.UsedPercent > 90 {
			mark = "⚠️ "
		}
		fmt.Printf("%s 磁盘(/): %.2f GB / %.2f GB (%.2f%%)\n",
			mark, float64(usage.Used)/1024/1024/1024, float64(usage.Total)/1024/1024/1024, usage.UsedPercent)
	} else {
		fmt.Printf("⚠️  无法获取磁盘信息: %v\n", err)
	}
}

// checkConfig 检查配置文件与关键配置项
func checkConfig() {
	fmt.Println("\n[配置]")

	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if util.FileExists(path) {
		fmt.Printf("✅ 配置文件: %s\n", path)
	} else {
		fmt.Printf("⚠️  配置文件不存在: %s（使用内置默认值）\n", path)
	}

	cfg := config.GetConfig()
	if cfg == nil {
		fmt.Println("❌ 配置未加载")
		return
	}
	fmt.Printf("✅ 插件名称: %s\n", cfg.Plugin.Name)
	fmt.Printf("✅ 公众平台地址: %s\n", cfg.WeChat.BaseURL)
	fmt.Printf("✅ 请求超时: %d秒\n", cfg.WeChat.Timeout)
}

// checkConnectivity 检查到公众平台的TCP连通性
func checkConnectivity() {
	fmt.Println("\n[网络]")

	baseURL := config.GetWeChatConfig().BaseURL
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		fmt.Printf("❌ 公众平台地址无法解析: %s\n", baseURL)
		return
	}

	port := parsed.Port()
	if port == "" {
		if parsed.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}
	address := net.JoinHostPort(parsed.Hostname(), port)

	conn, err := net.DialTimeout("tcp", address, 5*time.Second)
	if err != nil {
		fmt.Printf("❌ 无法连接 %s: %v\n", address, err)
		fmt.Println("\n💡 建议:")
		fmt.Println("  1. 检查网络连接和防火墙设置")
		fmt.Println("  2. 确认 WECHAT_ARTICLES_BASE_URL 配置是否正确")
		return
	}
	conn.Close()
	fmt.Printf("✅ %s 可达\n", address)
}
