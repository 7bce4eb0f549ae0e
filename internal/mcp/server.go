// Package mcp 通过 MCP 协议对接宿主运行时
//
// 服务端把插件提供者的工具暴露在 stdio 传输上，
// 客户端用于安装前对插件进程做握手探测。
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"wechat-articles/internal/provider"
	"wechat-articles/internal/tools"
	"wechat-articles/internal/util"
)

// Server 把插件提供者的工具暴露为MCP stdio服务
type Server struct {
	provider *provider.Provider
	server   *mcp.Server
}

// NewServer 创建MCP服务器并注册提供者的全部工具
func NewServer(p *provider.Provider, name, version string) (*Server, error) {
	s := &Server{
		provider: p,
		server:   mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
	}

	if err := s.registerTools(); err != nil {
		return nil, err
	}

	return s, nil
}

// registerTools 把提供者的工具定义逐个注册到MCP服务器
func (s *Server) registerTools() error {
	definitions := s.provider.ToolDefinitions()

	for _, def := range definitions {
		schema, err := buildInputSchema(def.Parameters)
		if err != nil {
			return util.WrapError(util.ErrCodeInitializationFailed,
				fmt.Sprintf("构建工具参数schema失败: %s", def.Name), err)
		}

		name := def.Name
		tool := &mcp.Tool{
			Name:        name,
			Description: def.Description,
			InputSchema: schema,
		}

		mcp.AddTool(s.server, tool,
			func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[map[string]any]) (*mcp.CallToolResultFor[any], error) {
				return s.handleToolCall(ctx, name, params.Arguments)
			})

		util.Debugw("MCP工具注册成功", map[string]any{
			"tool_name": name,
		})
	}

	util.Infow("MCP工具注册完成", map[string]any{
		"tool_count": len(definitions),
	})

	return nil
}

// handleToolCall 执行一次工具调用并转换为MCP结果
func (s *Server) handleToolCall(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResultFor[any], error) {
	messages, err := s.provider.InvokeTool(ctx, name, args)
	if err != nil {
		// 框架层错误不终止会话，转成IsError结果返回给宿主
		util.LogErrorWithFields(err, "MCP工具调用失败", map[string]any{
			"tool_name": name,
		})
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: util.GetUserFriendlyMessage(err)}},
		}, nil
	}

	return messagesToResult(messages)
}

// Run 在stdio传输上运行MCP服务器，直到宿主断开或上下文取消
func (s *Server) Run(ctx context.Context) error {
	util.Info("MCP服务器开始在stdio上提供服务")

	if err := s.server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		return util.WrapError(util.ErrCodeMCPConnectionFailed, "MCP服务器运行失败", err)
	}

	return nil
}

// buildInputSchema 把工具的参数定义转换为JSON schema对象
func buildInputSchema(params map[string]any) (*jsonschema.Schema, error) {
	if params == nil {
		params = map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// messagesToResult 把工具消息流转换为MCP调用结果
//
// 文本消息原样转为文本内容；JSON消息转为紧凑JSON文本，
// 第一条JSON消息同时作为结构化内容返回。
func messagesToResult(messages []tools.Message) (*mcp.CallToolResultFor[any], error) {
	result := &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{},
	}

	for _, msg := range messages {
		switch msg.Type {
		case tools.MessageTypeJSON:
			data, err := json.Marshal(msg.Data)
			if err != nil {
				return nil, util.WrapError(util.ErrCodeInternalErr, "序列化JSON消息失败", err)
			}
			result.Content = append(result.Content, &mcp.TextContent{Text: string(data)})
			if result.StructuredContent == nil {
				result.StructuredContent = msg.Data
			}
		default:
			result.Content = append(result.Content, &mcp.TextContent{Text: msg.Text})
		}
	}

	return result, nil
}
