package provider

import (
	"context"
	"testing"

	"wechat-articles/internal/tools"
	"wechat-articles/internal/util"
)

// stubTool 测试用的最小工具实现
type stubTool struct {
	name     string
	messages []tools.Message
	err      error

	gotArgs map[string]any
}

func (s *stubTool) ID() string          { return s.name }
func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Type() string        { return "stub" }
func (s *stubTool) Description() string { return "测试工具" }
func (s *stubTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (s *stubTool) Execute(ctx context.Context, args map[string]any) ([]tools.Message, error) {
	s.gotArgs = args
	if s.err != nil {
		return nil, s.err
	}
	return s.messages, nil
}

func TestProviderValidateCredentials(t *testing.T) {
	p := NewProvider(tools.NewToolManager())

	testCases := []struct {
		name        string
		credentials map[string]any
	}{
		{"空凭证", nil},
		{"空映射", map[string]any{}},
		{"任意凭证", map[string]any{"api_key": "whatever"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := p.ValidateCredentials(context.Background(), tc.credentials); err != nil {
				t.Errorf("凭证校验应该无条件通过，实际错误: %v", err)
			}
		})
	}
}

func TestProviderImplementsCredentialValidator(t *testing.T) {
	var _ CredentialValidator = NewProvider(tools.NewToolManager())
}

func TestProviderToolDefinitions(t *testing.T) {
	manager := tools.NewToolManager()
	stub := &stubTool{name: "stub_tool"}

	if err := manager.RegisterTool(stub); err != nil {
		t.Fatalf("注册工具时发生错误: %v", err)
	}

	p := NewProvider(manager)

	definitions := p.ToolDefinitions()
	if len(definitions) != 1 {
		t.Fatalf("期望定义数量为1，实际为: %d", len(definitions))
	}

	if definitions[0].Name != "stub_tool" {
		t.Errorf("期望定义名称为 'stub_tool'，实际为: %s", definitions[0].Name)
	}
}

func TestProviderInvokeTool(t *testing.T) {
	manager := tools.NewToolManager()
	stub := &stubTool{
		name:     "stub_tool",
		messages: []tools.Message{tools.NewTextMessage("完成")},
	}

	if err := manager.RegisterTool(stub); err != nil {
		t.Fatalf("注册工具时发生错误: %v", err)
	}

	p := NewProvider(manager)

	messages, err := p.InvokeTool(context.Background(), "stub_tool", map[string]any{"key": "value"})
	if err != nil {
		t.Fatalf("调用工具时发生错误: %v", err)
	}

	if len(messages) != 1 || messages[0].Text != "完成" {
		t.Errorf("期望透传工具消息，实际为: %+v", messages)
	}

	if stub.gotArgs["key"] != "value" {
		t.Errorf("期望参数透传给工具，实际为: %+v", stub.gotArgs)
	}
}

func TestProviderInvokeTool_NotFound(t *testing.T) {
	p := NewProvider(tools.NewToolManager())

	_, err := p.InvokeTool(context.Background(), "nonexistent", nil)
	if err == nil {
		t.Fatal("调用不存在的工具应该返回错误")
	}

	if !util.IsErrorCode(err, util.ErrCodeToolNotFound) {
		t.Errorf("期望错误代码为 %s，实际为: %s", util.ErrCodeToolNotFound, util.GetErrorCode(err))
	}
}
