// Package plugins 包含所有插件工具的实现
//
// 每个插件工具都应该：
// 1. 实现 tools.Tool 接口
// 2. 提供一个 New*Tool() 工厂函数
// 3. 在 RegisterBuiltinTools 中注册自己
package plugins

import (
	"wechat-articles/internal/tools"
	"wechat-articles/internal/util"
)

// RegisterBuiltinTools 把所有内置插件工具注册到管理器
func RegisterBuiltinTools(manager tools.ToolManager) error {
	util.Debug("正在注册插件工具...")

	if err := manager.RegisterTool(NewWeChatArticlesTool()); err != nil {
		return err
	}

	util.Debug("插件工具注册完成")
	return nil
}
