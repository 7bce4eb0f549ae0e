// Package provider 实现宿主运行时要求的插件提供者契约
package provider

import (
	"context"

	"wechat-articles/internal/tools"
	"wechat-articles/internal/util"
)

// CredentialValidator 宿主要求每个插件提供者实现的凭证校验接口
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, credentials map[string]any) error
}

// Provider 微信公众号插件提供者
//
// 工具列举和调用直接委托给工具管理器，本身只负责声明
// "不需要平台级凭证"。
type Provider struct {
	manager tools.ToolManager
}

// NewProvider 创建插件提供者
func NewProvider(manager tools.ToolManager) *Provider {
	return &Provider{manager: manager}
}

// ValidateCredentials 校验平台级凭证
//
// 微信公众号的登录态通过工具参数逐次传入，平台级凭证始终为空，
// 这里无条件通过，仅为满足宿主契约。
func (p *Provider) ValidateCredentials(ctx context.Context, credentials map[string]any) error {
	util.Debugw("凭证校验通过", map[string]any{
		"credential_count": len(credentials),
	})
	return nil
}

// ToolDefinitions 返回提供者暴露的全部工具定义
func (p *Provider) ToolDefinitions() []tools.ToolDefinition {
	return p.manager.GetToolDefinitions()
}

// InvokeTool 调用指定工具并返回消息流
func (p *Provider) InvokeTool(ctx context.Context, name string, params map[string]any) ([]tools.Message, error) {
	call := tools.ToolCall{
		ID:        "call_" + util.RandomString(8),
		Name:      name,
		Arguments: params,
	}
	return p.manager.ExecuteToolCall(ctx, call)
}
