package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"wechat-articles/internal/util"
)

// 全局配置实例
var Config *AppConfig

// 应用配置结构
type AppConfig struct {
	Logging LoggingConfig `toml:"logging"`
	WeChat  WeChatConfig  `toml:"wechat"`
	Plugin  PluginConfig  `toml:"plugin"`
}

// 日志配置
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, text
	Output string `toml:"output"` // stderr, stdout, file
	File   string `toml:"file"`   // 日志文件路径
}

// 微信接口配置
type WeChatConfig struct {
	BaseURL   string `toml:"base_url"`   // 公众平台接口地址
	Timeout   int    `toml:"timeout"`    // 请求超时（秒）
	UserAgent string `toml:"user_agent"` // 请求使用的 User-Agent
}

// 插件配置
type PluginConfig struct {
	Name string `toml:"name"` // 对宿主暴露的插件名称
}

// 默认值，配置缺省或未加载时使用
const (
	DefaultWeChatBaseURL = "https://mp.weixin.qq.com"
	DefaultTimeout       = 10
	DefaultUserAgent     = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 MicroMessenger/8.0.40 NetType/WIFI Language/zh_CN"
	DefaultPluginName    = "wechat-articles"
)

// 加载配置文件
func LoadConfig(configPath string) error {
	// 如果没有指定配置文件路径，使用默认路径
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	// 检查配置文件是否存在
	if !util.FileExists(configPath) {
		// 创建默认配置文件
		if err := createDefaultConfig(configPath); err != nil {
			return util.WrapError(util.ErrCodeConfigLoadFailed, "创建默认配置文件失败", err)
		}
		util.Infow("已创建默认配置文件", map[string]any{"path": configPath})
	}

	// 解析TOML配置文件
	var config AppConfig
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return util.WrapError(util.ErrCodeConfigParseFailed, "解析配置文件失败", err)
	}

	applyDefaults(&config)

	// 使用环境变量覆盖配置
	overrideWithEnv(&config)

	// 验证配置
	if err := validateConfig(&config); err != nil {
		return err
	}

	// 设置全局配置
	Config = &config
	return nil
}

// 获取默认配置文件路径
func getDefaultConfigPath() string {
	// 优先使用当前目录下的config.toml
	if util.FileExists("config.toml") {
		return "config.toml"
	}

	// 使用用户主目录下的配置文件
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}

	return filepath.Join(homeDir, ".wechat-articles", "config.toml")
}

// DefaultConfigPath 返回默认配置文件路径（供 config 子命令展示）
func DefaultConfigPath() string {
	return getDefaultConfigPath()
}

// 创建默认配置文件
func createDefaultConfig(configPath string) error {
	if err := util.EnsureDir(filepath.Dir(configPath)); err != nil {
		return err
	}

	defaultConfig := `# wechat-articles 插件配置文件

[logging]
level = "info"
format = "text"
# stdout 专属于 MCP stdio 传输，日志只走 stderr 或文件
output = "stderr"
file = ""

[wechat]
base_url = "https://mp.weixin.qq.com"
timeout = 10
user_agent = ""

[plugin]
name = "wechat-articles"
`

	return os.WriteFile(configPath, []byte(defaultConfig), 0644)
}

// 填充缺省值
func applyDefaults(config *AppConfig) {
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "text"
	}
	if config.Logging.Output == "" {
		config.Logging.Output = "stderr"
	}
	if config.WeChat.BaseURL == "" {
		config.WeChat.BaseURL = DefaultWeChatBaseURL
	}
	if config.WeChat.Timeout <= 0 {
		config.WeChat.Timeout = DefaultTimeout
	}
	if config.WeChat.UserAgent == "" {
		config.WeChat.UserAgent = DefaultUserAgent
	}
	if config.Plugin.Name == "" {
		config.Plugin.Name = DefaultPluginName
	}
}

// 使用环境变量覆盖配置
func overrideWithEnv(config *AppConfig) {
	if level := os.Getenv("WECHAT_ARTICLES_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if baseURL := os.Getenv("WECHAT_ARTICLES_BASE_URL"); baseURL != "" {
		config.WeChat.BaseURL = baseURL
	}
	if timeout := os.Getenv("WECHAT_ARTICLES_TIMEOUT"); timeout != "" {
		if seconds, err := strconv.Atoi(timeout); err == nil && seconds > 0 {
			config.WeChat.Timeout = seconds
		}
	}
	if ua := os.Getenv("WECHAT_ARTICLES_USER_AGENT"); ua != "" {
		config.WeChat.UserAgent = ua
	}
}

// 验证配置
func validateConfig(config *AppConfig) error {
	// 验证日志级别
	validLevels := []string{"debug", "info", "warn", "error"}
	levelValid := false
	for _, level := range validLevels {
		if config.Logging.Level == level {
			levelValid = true
			break
		}
	}
	if !levelValid {
		return util.NewErrorWithDetails(util.ErrCodeConfigInvalid, "无效的日志级别", config.Logging.Level)
	}

	// 验证日志格式
	if config.Logging.Format != "text" && config.Logging.Format != "json" {
		return util.NewErrorWithDetails(util.ErrCodeConfigInvalid, "无效的日志格式", config.Logging.Format)
	}

	// 验证微信接口地址
	if !strings.HasPrefix(config.WeChat.BaseURL, "http") {
		return util.NewErrorWithDetails(util.ErrCodeConfigInvalid, "微信接口地址必须是 http(s) URL", config.WeChat.BaseURL)
	}

	if config.Plugin.Name == "" {
		return util.NewError(util.ErrCodeConfigInvalid, "插件名称不能为空")
	}

	return nil
}

// 获取当前配置
func GetConfig() *AppConfig {
	return Config
}

// GetWeChatConfig 返回微信接口配置，配置未加载时返回缺省值
func GetWeChatConfig() WeChatConfig {
	if Config != nil {
		return Config.WeChat
	}
	return WeChatConfig{
		BaseURL:   DefaultWeChatBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// GetPluginName 返回插件名称，配置未加载时返回缺省值
func GetPluginName() string {
	if Config != nil && Config.Plugin.Name != "" {
		return Config.Plugin.Name
	}
	return DefaultPluginName
}
