package tools

import (
	"context"

	"wechat-articles/pkg/registry"
)

// Tool 工具接口定义，注册表项能力由 registry.RegistryItem 约定
type Tool interface {
	registry.RegistryItem

	// Description 获取工具描述
	Description() string

	// Parameters 获取工具参数schema
	Parameters() map[string]any

	// Execute 执行工具，按产生顺序返回输出消息
	Execute(ctx context.Context, args map[string]any) ([]Message, error)
}

// ToolDefinition 工具定义结构
type ToolDefinition struct {
	Name        string         `json:"name"`        // 工具名称
	Description string         `json:"description"` // 工具描述
	Parameters  map[string]any `json:"parameters"`  // 参数schema
}

// ToolCall 工具调用结构
type ToolCall struct {
	ID        string         `json:"id"`        // 调用ID
	Name      string         `json:"name"`      // 工具名称
	Arguments map[string]any `json:"arguments"` // 调用参数
}

// MessageType 输出消息类型
type MessageType string

const (
	// MessageTypeText 人类可读的文本消息
	MessageTypeText MessageType = "text"
	// MessageTypeJSON 结构化JSON消息
	MessageTypeJSON MessageType = "json"
)

// Message 工具产生的单条输出消息。
// 宿主协议按消息流交付结果，顺序即产生顺序，序列结束即调用结束。
type Message struct {
	Type MessageType `json:"type"`
	Text string      `json:"text,omitempty"` // 文本消息内容
	Data any         `json:"data,omitempty"` // JSON消息负载
}

// NewTextMessage 创建文本消息
func NewTextMessage(text string) Message {
	return Message{Type: MessageTypeText, Text: text}
}

// NewJSONMessage 创建JSON消息
func NewJSONMessage(data any) Message {
	return Message{Type: MessageTypeJSON, Data: data}
}
