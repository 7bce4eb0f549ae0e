package tools

import (
	"context"
	"testing"
	"time"

	"wechat-articles/internal/util"
)

func TestNewToolManager(t *testing.T) {
	manager := NewToolManager()

	if manager == nil {
		t.Error("管理器不应该为空")
	}
}

func TestDefaultToolManager_RegisterTool(t *testing.T) {
	manager := NewToolManager()
	tool := createMockTool("test_tool", "测试工具")

	err := manager.RegisterTool(tool)
	if err != nil {
		t.Errorf("注册工具时发生错误: %v", err)
	}

	if !manager.HasTool("test_tool") {
		t.Error("注册后应该能找到工具")
	}
}

func TestDefaultToolManager_GetTools(t *testing.T) {
	manager := NewToolManager()

	tool1 := createMockTool("tool1", "工具1")
	tool2 := createMockTool("tool2", "工具2")

	manager.RegisterTool(tool1)
	manager.RegisterTool(tool2)

	tools := manager.GetTools()
	if len(tools) != 2 {
		t.Errorf("期望工具数量为2，实际为: %d", len(tools))
	}
}

func TestDefaultToolManager_GetTool(t *testing.T) {
	manager := NewToolManager()
	tool := createMockTool("test_tool", "测试工具")

	manager.RegisterTool(tool)

	retrieved, err := manager.GetTool("test_tool")
	if err != nil {
		t.Errorf("获取工具时发生错误: %v", err)
	}

	if retrieved.Name() != "test_tool" {
		t.Errorf("期望工具名称为 'test_tool'，实际为: %s", retrieved.Name())
	}

	_, err = manager.GetTool("nonexistent")
	if !util.IsErrorCode(err, util.ErrCodeToolNotFound) {
		t.Errorf("期望错误代码为 %s，实际为: %s", util.ErrCodeToolNotFound, util.GetErrorCode(err))
	}
}

func TestDefaultToolManager_GetToolDefinitions(t *testing.T) {
	manager := NewToolManager()
	tool := createMockTool("test_tool", "测试工具")

	manager.RegisterTool(tool)

	definitions := manager.GetToolDefinitions()
	if len(definitions) != 1 {
		t.Errorf("期望定义数量为1，实际为: %d", len(definitions))
	}

	if definitions[0].Name != "test_tool" {
		t.Errorf("期望定义名称为 'test_tool'，实际为: %s", definitions[0].Name)
	}
}

func TestDefaultToolManager_ExecuteToolCall(t *testing.T) {
	manager := NewToolManager()

	tool := createMockTool("test_tool", "测试工具")
	tool.executeFunc = func(ctx context.Context, args map[string]any) ([]Message, error) {
		return []Message{NewTextMessage("执行成功")}, nil
	}

	manager.RegisterTool(tool)

	call := ToolCall{
		ID:        "call_1",
		Name:      "test_tool",
		Arguments: map[string]any{"key": "value"},
	}

	messages, err := manager.ExecuteToolCall(context.Background(), call)
	if err != nil {
		t.Errorf("执行工具调用时发生错误: %v", err)
	}

	if len(messages) != 1 {
		t.Errorf("期望消息数量为1，实际为: %d", len(messages))
	}

	if messages[0].Text != "执行成功" {
		t.Errorf("期望消息内容为 '执行成功'，实际为: %s", messages[0].Text)
	}
}

func TestDefaultToolManager_ExecuteToolCall_NotFound(t *testing.T) {
	manager := NewToolManager()

	call := ToolCall{
		ID:   "call_1",
		Name: "nonexistent_tool",
	}

	_, err := manager.ExecuteToolCall(context.Background(), call)
	if err == nil {
		t.Error("调用不存在的工具应该返回错误")
	}

	if !util.IsErrorCode(err, util.ErrCodeToolNotFound) {
		t.Errorf("期望错误代码为 %s，实际为: %s", util.ErrCodeToolNotFound, util.GetErrorCode(err))
	}
}

func TestDefaultToolManager_ExecuteToolCall_ExecutionError(t *testing.T) {
	manager := NewToolManager()

	tool := createMockTool("failing_tool", "失败的工具")
	tool.executeFunc = func(ctx context.Context, args map[string]any) ([]Message, error) {
		return nil, util.NewError(util.ErrCodeNetworkFailed, "网络连接失败")
	}

	manager.RegisterTool(tool)

	call := ToolCall{
		ID:   "call_1",
		Name: "failing_tool",
	}

	_, err := manager.ExecuteToolCall(context.Background(), call)
	if err == nil {
		t.Error("工具执行失败应该返回错误")
	}

	if !util.IsErrorCode(err, util.ErrCodeToolExecutionFailed) {
		t.Errorf("期望错误代码为 %s，实际为: %s", util.ErrCodeToolExecutionFailed, util.GetErrorCode(err))
	}
}

func TestDefaultToolManager_ExecuteToolCall_ContextCancellation(t *testing.T) {
	manager := NewToolManager()

	tool := createMockTool("slow_tool", "慢工具")
	tool.executeFunc = func(ctx context.Context, args map[string]any) ([]Message, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return []Message{NewTextMessage("不应该执行到这里")}, nil
		}
	}

	manager.RegisterTool(tool)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	call := ToolCall{
		ID:   "call_1",
		Name: "slow_tool",
	}

	_, err := manager.ExecuteToolCall(ctx, call)
	if err == nil {
		t.Error("取消的上下文应该导致执行失败")
	}
}
