package util

import (
	"fmt"

	"wechat-articles/internal/pkg/errors"
)

// 错误代码常量 - 指向通用错误处理系统中的错误代码，方便调用方只导入 util
const (
	ErrCodeSystemError          = errors.ErrCodeSystemError          // 系统错误
	ErrCodeInternalErr          = errors.ErrCodeInternalErr          // 内部错误
	ErrCodeInitializationFailed = errors.ErrCodeInitializationFailed // 初始化失败
	ErrCodeInvalidParam         = errors.ErrCodeInvalidParam         // 无效参数
	ErrCodeConfigNotFound       = errors.ErrCodeConfigNotFound       // 配置文件未找到
	ErrCodeConfigInvalid        = errors.ErrCodeConfigInvalid        // 配置文件无效
	ErrCodeConfigLoadFailed     = errors.ErrCodeConfigLoadFailed     // 配置加载失败
	ErrCodeConfigParseFailed    = errors.ErrCodeConfigParseFailed    // 配置解析失败
	ErrCodeNetworkFailed        = errors.ErrCodeNetworkFailed        // 网络请求失败
	ErrCodeTimeout              = errors.ErrCodeTimeout              // 请求超时
	ErrCodeToolNotFound         = errors.ErrCodeToolNotFound         // 工具未找到
	ErrCodeToolExecutionFailed  = errors.ErrCodeToolExecutionFailed  // 工具执行失败
	ErrCodeMCPConnectionFailed  = errors.ErrCodeMCPConnectionFailed  // MCP连接失败
	ErrCodeMCPToolListFailed    = errors.ErrCodeMCPToolListFailed    // MCP工具列表获取失败
	ErrCodeMCPToolCallFailed    = errors.ErrCodeMCPToolCallFailed    // MCP工具调用失败
)

// AppError 应用错误结构 - 使用通用错误处理系统中的AppError
type AppError = errors.AppError

// NewError 创建新的应用错误
func NewError(code, message string) *AppError {
	return errors.NewError(code, message)
}

// NewErrorWithDetails 创建带详情的应用错误
func NewErrorWithDetails(code, message, details string) *AppError {
	return errors.NewErrorWithDetails(code, message, details)
}

// WrapError 包装现有错误
func WrapError(code, message string, cause error) *AppError {
	return errors.WrapError(code, message, cause)
}

// IsErrorCode 检查错误是否为指定类型
func IsErrorCode(err error, code string) bool {
	return errors.IsErrorCode(err, code)
}

// GetErrorCode 获取错误代码
func GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// GetUserFriendlyMessage 获取用户友好的错误消息
func GetUserFriendlyMessage(err error) string {
	return errors.GetUserFriendlyMessage(err)
}

// CauseText 返回最贴近原因的错误文本，用于拼接用户可见的错误消息
func CauseText(err error) string {
	return errors.CauseText(err)
}

// NewToolNotFoundError 创建工具未找到错误
func NewToolNotFoundError(toolName string) *AppError {
	return errors.NewErrorWithDetails(errors.ErrCodeToolNotFound, "工具未找到",
		fmt.Sprintf("工具名称: %s", toolName))
}

// NewToolExecutionError 创建工具执行错误
func NewToolExecutionError(toolName string, cause error) *AppError {
	return errors.WrapErrorWithDetails(errors.ErrCodeToolExecutionFailed,
		fmt.Sprintf("工具 %s 执行失败", toolName), cause,
		fmt.Sprintf("工具名称: %s", toolName))
}
