package tools

import (
	"context"
	"testing"
)

// MockTool 模拟工具实现，用于测试
type MockTool struct {
	name        string
	description string
	parameters  map[string]interface{}
	executeFunc func(ctx context.Context, args map[string]interface{}) ([]Message, error)
}

func (m *MockTool) ID() string {
	return m.name
}

func (m *MockTool) Name() string {
	return m.name
}

func (m *MockTool) Type() string {
	return "mock"
}

func (m *MockTool) Description() string {
	return m.description
}

func (m *MockTool) Parameters() map[string]interface{} {
	return m.parameters
}

func (m *MockTool) Execute(ctx context.Context, args map[string]interface{}) ([]Message, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, args)
	}
	return []Message{NewTextMessage("mock result")}, nil
}

// 创建测试用的模拟工具
func createMockTool(name, description string) *MockTool {
	return &MockTool{
		name:        name,
		description: description,
		parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"input": map[string]interface{}{
					"type":        "string",
					"description": "输入参数",
				},
			},
			"required": []string{"input"},
		},
	}
}

func TestMockToolImplementsTool(t *testing.T) {
	// 编译期检查之外再做一次运行时断言，防止接口变更被忽略
	var tool Tool = createMockTool("test_tool", "测试工具")

	if tool.ID() != "test_tool" {
		t.Errorf("期望工具ID为 'test_tool'，实际为 '%s'", tool.ID())
	}

	if tool.Name() != "test_tool" {
		t.Errorf("期望工具名称为 'test_tool'，实际为 '%s'", tool.Name())
	}

	if tool.Type() != "mock" {
		t.Errorf("期望工具类型为 'mock'，实际为 '%s'", tool.Type())
	}

	if tool.Description() != "测试工具" {
		t.Errorf("期望工具描述为 '测试工具'，实际为 '%s'", tool.Description())
	}

	params := tool.Parameters()
	if params == nil {
		t.Fatal("参数不应该为空")
	}

	if params["type"] != "object" {
		t.Errorf("期望参数类型为 'object'，实际为 '%v'", params["type"])
	}
}

func TestMessageConstructors(t *testing.T) {
	text := NewTextMessage("hello")
	if text.Type != MessageTypeText {
		t.Errorf("期望消息类型为 %s，实际为: %s", MessageTypeText, text.Type)
	}
	if text.Text != "hello" {
		t.Errorf("期望消息内容为 'hello'，实际为: %s", text.Text)
	}

	payload := map[string]any{"total_count": 1}
	jsonMsg := NewJSONMessage(payload)
	if jsonMsg.Type != MessageTypeJSON {
		t.Errorf("期望消息类型为 %s，实际为: %s", MessageTypeJSON, jsonMsg.Type)
	}
	if jsonMsg.Data == nil {
		t.Error("期望JSON消息携带负载")
	}
}
