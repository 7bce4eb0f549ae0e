package mcp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"wechat-articles/internal/pkg/errors"
	"wechat-articles/internal/util"
)

// Client 探测插件MCP服务端用的轻量客户端
//
// 以子进程方式拉起插件并通过stdio握手，用于安装前自检和调试。
type Client struct {
	session *mcp.ClientSession
}

// Connect 启动命令并建立MCP会话
func Connect(ctx context.Context, name, version, command string, args []string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	util.Debugw("连接MCP服务端", map[string]any{
		"command": command,
		"args":    args,
		"timeout": timeout,
	})

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Env = os.Environ()

	client := mcp.NewClient(&mcp.Implementation{Name: name, Version: version}, nil)
	transport := mcp.NewCommandTransport(cmd)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	session, err := client.Connect(connectCtx, transport)
	if err != nil {
		return nil, errors.WrapErrorWithDetails(errors.ErrCodeMCPConnectionFailed,
			"MCP客户端连接失败", err,
			fmt.Sprintf("命令: %s", command))
	}

	return &Client{session: session}, nil
}

// ListTools 列出服务端暴露的全部工具
func (c *Client) ListTools(ctx context.Context) ([]*mcp.Tool, error) {
	result, err := c.session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return nil, errors.WrapError(errors.ErrCodeMCPToolListFailed, "获取MCP工具列表失败", err)
	}
	return result.Tools, nil
}

// CallTool 调用服务端工具并拼接文本内容
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", errors.WrapErrorWithDetails(errors.ErrCodeMCPToolCallFailed,
			"MCP工具调用失败", err,
			fmt.Sprintf("工具名称: %s", name))
	}

	if result.IsError {
		errMsg := "工具执行返回错误"
		if len(result.Content) > 0 {
			if textContent, ok := result.Content[0].(*mcp.TextContent); ok {
				errMsg = textContent.Text
			}
		}
		return "", errors.NewErrorWithDetails(errors.ErrCodeMCPToolCallFailed,
			"调用MCP工具失败", fmt.Sprintf("工具名称: %s, 错误: %s", name, errMsg))
	}

	var resultStr string
	for _, content := range result.Content {
		if textContent, ok := content.(*mcp.TextContent); ok {
			resultStr += textContent.Text
		}
	}

	return resultStr, nil
}

// Close 关闭MCP会话
func (c *Client) Close() error {
	return c.session.Close()
}
