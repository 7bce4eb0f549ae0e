package tools

import (
	"context"
	"time"

	"wechat-articles/internal/util"
)

// ToolManager 工具管理器接口
type ToolManager interface {
	// RegisterTool 注册工具
	RegisterTool(tool Tool) error

	// GetTools 获取所有工具
	GetTools() []Tool

	// GetTool 根据名称获取工具
	GetTool(name string) (Tool, error)

	// HasTool 检查工具是否已注册
	HasTool(name string) bool

	// ExecuteToolCall 执行工具调用
	ExecuteToolCall(ctx context.Context, call ToolCall) ([]Message, error)

	// GetToolDefinitions 获取工具定义列表
	GetToolDefinitions() []ToolDefinition
}

// DefaultToolManager 默认工具管理器实现
type DefaultToolManager struct {
	registry *ToolRegistry // 工具注册表
}

// NewToolManager 创建新的工具管理器
func NewToolManager() ToolManager {
	return &DefaultToolManager{
		registry: NewToolRegistry(),
	}
}

// RegisterTool 注册工具
func (m *DefaultToolManager) RegisterTool(tool Tool) error {
	return m.registry.RegisterTool(tool)
}

// GetTools 获取所有工具
func (m *DefaultToolManager) GetTools() []Tool {
	return m.registry.GetAllTools()
}

// GetTool 根据名称获取工具
func (m *DefaultToolManager) GetTool(name string) (Tool, error) {
	return m.registry.GetTool(name)
}

// HasTool 检查工具是否已注册
func (m *DefaultToolManager) HasTool(name string) bool {
	return m.registry.HasTool(name)
}

// GetToolDefinitions 获取工具定义列表
func (m *DefaultToolManager) GetToolDefinitions() []ToolDefinition {
	return m.registry.GetToolDefinitions()
}

// ExecuteToolCall 执行工具调用
func (m *DefaultToolManager) ExecuteToolCall(ctx context.Context, call ToolCall) ([]Message, error) {
	startTime := time.Now()

	// 记录工具调用开始
	util.Infow("开始执行工具调用", map[string]any{
		"tool_name": call.Name,
		"call_id":   call.ID,
	})

	// 获取工具
	tool, err := m.registry.GetTool(call.Name)
	if err != nil {
		util.LogErrorWithFields(err, "工具获取失败", map[string]any{
			"tool_name": call.Name,
			"call_id":   call.ID,
		})
		return nil, err
	}

	// 执行工具
	messages, err := tool.Execute(ctx, call.Arguments)
	executionTime := time.Since(startTime)

	if err != nil {
		// 记录执行失败
		util.LogErrorWithFields(err, "工具执行失败", map[string]any{
			"tool_name":      call.Name,
			"call_id":        call.ID,
			"execution_time": executionTime,
		})

		// 包装错误
		return nil, util.NewToolExecutionError(call.Name, err)
	}

	// 记录执行成功
	util.Infow("工具执行成功", map[string]any{
		"tool_name":      call.Name,
		"call_id":        call.ID,
		"execution_time": executionTime,
		"message_count":  len(messages),
	})

	return messages, nil
}
