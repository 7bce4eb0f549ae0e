package tools

import (
	"fmt"

	"wechat-articles/internal/util"
	"wechat-articles/pkg/registry"
)

// ToolRegistry 工具注册表，基于泛型注册表实现
type ToolRegistry struct {
	base registry.Registry[Tool]
}

// NewToolRegistry 创建新的工具注册表
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		base: registry.NewRegistry[Tool](),
	}
}

// RegisterTool 注册工具
func (r *ToolRegistry) RegisterTool(tool Tool) error {
	if tool == nil {
		return util.NewError(util.ErrCodeInvalidParam, "工具不能为空")
	}

	name := tool.Name()
	if name == "" {
		return util.NewError(util.ErrCodeInvalidParam, "工具名称不能为空")
	}

	// 检查是否已存在同名工具
	if r.base.Contains(name) {
		return util.NewErrorWithDetails(util.ErrCodeInvalidParam, "工具已存在",
			fmt.Sprintf("工具名称: %s", name))
	}

	if err := r.base.Register(tool); err != nil {
		return err
	}

	util.Infow("工具注册成功", map[string]any{
		"tool_name":   name,
		"description": tool.Description(),
	})

	return nil
}

// GetTool 根据名称获取工具
func (r *ToolRegistry) GetTool(name string) (Tool, error) {
	if name == "" {
		return nil, util.NewError(util.ErrCodeInvalidParam, "工具名称不能为空")
	}

	tool, exists := r.base.Get(name)
	if !exists {
		return nil, util.NewToolNotFoundError(name)
	}

	return tool, nil
}

// GetAllTools 获取所有工具
func (r *ToolRegistry) GetAllTools() []Tool {
	return r.base.List()
}

// GetToolDefinitions 获取所有工具定义
func (r *ToolRegistry) GetToolDefinitions() []ToolDefinition {
	tools := r.base.List()

	definitions := make([]ToolDefinition, 0, len(tools))
	for _, tool := range tools {
		definitions = append(definitions, ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}

	return definitions
}

// UnregisterTool 注销工具
func (r *ToolRegistry) UnregisterTool(name string) error {
	if name == "" {
		return util.NewError(util.ErrCodeInvalidParam, "工具名称不能为空")
	}

	if !r.base.Remove(name) {
		return util.NewToolNotFoundError(name)
	}

	util.Infow("工具注销成功", map[string]any{
		"tool_name": name,
	})

	return nil
}

// HasTool 检查工具是否已注册
func (r *ToolRegistry) HasTool(name string) bool {
	return r.base.Contains(name)
}

// Count 返回已注册的工具数量
func (r *ToolRegistry) Count() int {
	return r.base.Count()
}
