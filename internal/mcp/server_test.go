package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"wechat-articles/internal/provider"
	"wechat-articles/internal/tools"
)

// stubTool 测试用的最小工具实现
type stubTool struct {
	name     string
	messages []tools.Message
	err      error
}

func (s *stubTool) ID() string          { return s.name }
func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Type() string        { return "stub" }
func (s *stubTool) Description() string { return "测试工具" }
func (s *stubTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action": map[string]any{
				"type":        "string",
				"description": "要执行的操作",
			},
			"count": map[string]any{
				"type":        "number",
				"description": "数量",
			},
		},
	}
}

func (s *stubTool) Execute(ctx context.Context, args map[string]any) ([]tools.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.messages, nil
}

func newTestServer(t *testing.T, stub *stubTool) *Server {
	t.Helper()

	manager := tools.NewToolManager()
	if stub != nil {
		if err := manager.RegisterTool(stub); err != nil {
			t.Fatalf("注册工具时发生错误: %v", err)
		}
	}

	server, err := NewServer(provider.NewProvider(manager), "test-plugin", "0.0.1")
	if err != nil {
		t.Fatalf("创建MCP服务器时发生错误: %v", err)
	}
	return server
}

func TestNewServer(t *testing.T) {
	server := newTestServer(t, &stubTool{name: "stub_tool"})

	if server == nil {
		t.Error("MCP服务器不应该为空")
	}
}

func TestBuildInputSchema(t *testing.T) {
	stub := &stubTool{name: "stub_tool"}

	schema, err := buildInputSchema(stub.Parameters())
	if err != nil {
		t.Fatalf("构建schema时发生错误: %v", err)
	}

	if schema.Type != "object" {
		t.Errorf("期望schema类型为 'object'，实际为: %s", schema.Type)
	}

	if schema.Properties["action"] == nil {
		t.Error("schema应该包含action属性")
	}

	if schema.Properties["count"] == nil {
		t.Fatal("schema应该包含count属性")
	}

	if schema.Properties["count"].Type != "number" {
		t.Errorf("期望count类型为 'number'，实际为: %s", schema.Properties["count"].Type)
	}

	if len(schema.Required) != 0 {
		t.Errorf("schema不应该声明required字段，实际为: %v", schema.Required)
	}
}

func TestBuildInputSchema_Nil(t *testing.T) {
	schema, err := buildInputSchema(nil)
	if err != nil {
		t.Fatalf("构建schema时发生错误: %v", err)
	}

	if schema.Type != "object" {
		t.Errorf("期望schema类型为 'object'，实际为: %s", schema.Type)
	}
}

func TestMessagesToResult_Text(t *testing.T) {
	messages := []tools.Message{
		tools.NewTextMessage("Missing required parameter: action"),
	}

	result, err := messagesToResult(messages)
	if err != nil {
		t.Fatalf("转换消息时发生错误: %v", err)
	}

	if result.IsError {
		t.Error("文本消息不应该标记为错误")
	}

	if len(result.Content) != 1 {
		t.Fatalf("期望内容数量为1，实际为: %d", len(result.Content))
	}

	textContent, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("期望内容类型为TextContent，实际为: %T", result.Content[0])
	}

	if textContent.Text != "Missing required parameter: action" {
		t.Errorf("期望文本为校验消息，实际为: %s", textContent.Text)
	}

	if result.StructuredContent != nil {
		t.Error("文本消息不应该产生结构化内容")
	}
}

func TestMessagesToResult_JSON(t *testing.T) {
	messages := []tools.Message{
		tools.NewJSONMessage(map[string]any{"total_count": 1}),
	}

	result, err := messagesToResult(messages)
	if err != nil {
		t.Fatalf("转换消息时发生错误: %v", err)
	}

	if len(result.Content) != 1 {
		t.Fatalf("期望内容数量为1，实际为: %d", len(result.Content))
	}

	textContent, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("期望内容类型为TextContent，实际为: %T", result.Content[0])
	}

	if textContent.Text != `{"total_count":1}` {
		t.Errorf("期望JSON文本为 '{\"total_count\":1}'，实际为: %s", textContent.Text)
	}

	if result.StructuredContent == nil {
		t.Error("JSON消息应该产生结构化内容")
	}
}

func TestMessagesToResult_MultipleTextMessages(t *testing.T) {
	messages := []tools.Message{
		tools.NewTextMessage("第一条"),
		tools.NewTextMessage("第二条"),
		tools.NewTextMessage("第三条"),
	}

	result, err := messagesToResult(messages)
	if err != nil {
		t.Fatalf("转换消息时发生错误: %v", err)
	}

	if len(result.Content) != 3 {
		t.Fatalf("期望内容数量为3，实际为: %d", len(result.Content))
	}

	want := []string{"第一条", "第二条", "第三条"}
	for i, content := range result.Content {
		textContent, ok := content.(*mcp.TextContent)
		if !ok {
			t.Fatalf("第%d条内容期望为TextContent，实际为: %T", i, content)
		}
		if textContent.Text != want[i] {
			t.Errorf("第%d条内容期望为 '%s'，实际为: %s", i, want[i], textContent.Text)
		}
	}
}

func TestHandleToolCall_Success(t *testing.T) {
	stub := &stubTool{
		name:     "stub_tool",
		messages: []tools.Message{tools.NewTextMessage("完成")},
	}
	server := newTestServer(t, stub)

	result, err := server.handleToolCall(context.Background(), "stub_tool", map[string]any{})
	if err != nil {
		t.Fatalf("调用工具时发生错误: %v", err)
	}

	if result.IsError {
		t.Error("成功调用不应该标记为错误")
	}

	if len(result.Content) != 1 {
		t.Fatalf("期望内容数量为1，实际为: %d", len(result.Content))
	}
}

func TestHandleToolCall_UnknownTool(t *testing.T) {
	server := newTestServer(t, nil)

	result, err := server.handleToolCall(context.Background(), "nonexistent", nil)
	if err != nil {
		t.Fatalf("框架层错误应该转为IsError结果而不是返回错误: %v", err)
	}

	if !result.IsError {
		t.Error("调用不存在的工具应该标记为错误")
	}

	if len(result.Content) == 0 {
		t.Fatal("错误结果应该包含说明文本")
	}

	if _, ok := result.Content[0].(*mcp.TextContent); !ok {
		t.Errorf("期望内容类型为TextContent，实际为: %T", result.Content[0])
	}
}
