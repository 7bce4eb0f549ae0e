package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// 错误代码常量
const (
	// 系统级错误
	ErrCodeSystemError          = "SYSTEM_ERROR"          // 系统错误
	ErrCodeInternalErr          = "INTERNAL_ERROR"        // 内部错误
	ErrCodeInitializationFailed = "INITIALIZATION_FAILED" // 初始化失败
	ErrCodeInvalidParam         = "INVALID_PARAM"         // 无效参数

	// 配置错误
	ErrCodeConfigNotFound    = "CONFIG_NOT_FOUND"    // 配置文件未找到
	ErrCodeConfigInvalid     = "CONFIG_INVALID"      // 配置文件无效
	ErrCodeConfigLoadFailed  = "CONFIG_LOAD_FAILED"  // 配置加载失败
	ErrCodeConfigParseFailed = "CONFIG_PARSE_FAILED" // 配置解析失败

	// 网络错误
	ErrCodeNetworkFailed = "NETWORK_FAILED" // 网络请求失败
	ErrCodeTimeout       = "TIMEOUT"        // 请求超时

	// 工具错误
	ErrCodeToolNotFound        = "TOOL_NOT_FOUND"        // 工具未找到
	ErrCodeToolExecutionFailed = "TOOL_EXECUTION_FAILED" // 工具执行失败

	// MCP错误
	ErrCodeMCPConnectionFailed = "MCP_CONNECTION_FAILED" // MCP连接失败
	ErrCodeMCPToolListFailed   = "MCP_TOOL_LIST_FAILED"  // MCP工具列表获取失败
	ErrCodeMCPToolCallFailed   = "MCP_TOOL_CALL_FAILED"  // MCP工具调用失败
)

// AppError 应用错误结构
type AppError struct {
	Code    string `json:"code"`              // 错误代码
	Message string `json:"message"`           // 错误消息
	Details string `json:"details,omitempty"` // 错误详情
	Cause   error  `json:"-"`                 // 原始错误
	Stack   string `json:"stack,omitempty"`   // 错误堆栈
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回原始错误
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is 实现错误比较接口
func (e *AppError) Is(target error) bool {
	if other, ok := target.(*AppError); ok {
		return e.Code == other.Code
	}
	return false
}

// WithDetails 添加错误详情
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithStack 添加堆栈信息
func (e *AppError) WithStack() *AppError {
	e.Stack = getStackTrace(3) // 跳过3层调用栈
	return e
}

// NewError 创建新的错误
func NewError(code, message string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	return err.WithStack()
}

// NewErrorWithDetails 创建带详情的错误
func NewErrorWithDetails(code, message, details string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
	return err.WithStack()
}

// WrapError 包装现有错误
func WrapError(code, message string, cause error) *AppError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}

	err := &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
	return err.WithStack()
}

// WrapErrorWithDetails 包装现有错误并添加详情
func WrapErrorWithDetails(code, message string, cause error, details string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
	return err.WithStack()
}

// getStackTrace 获取调用堆栈
func getStackTrace(skip int) string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var stack strings.Builder
	for {
		frame, more := frames.Next()
		if !more {
			break
		}
		// 跳过runtime相关的调用栈
		if strings.Contains(frame.File, "runtime/") {
			continue
		}
		stack.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
	}
	return stack.String()
}

// IsErrorCode 检查错误是否为指定类型
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetErrorCode 获取错误代码
func GetErrorCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrCodeInternalErr
}

// GetErrorDetails 获取错误详情
func GetErrorDetails(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Details
	}
	return ""
}

// CauseText 返回最贴近原因的错误文本，用于拼接用户可见的错误消息
func CauseText(err error) string {
	appErr, ok := err.(*AppError)
	if !ok {
		return err.Error()
	}
	if appErr.Cause != nil {
		return appErr.Cause.Error()
	}
	if appErr.Details != "" {
		return fmt.Sprintf("%s: %s", appErr.Message, appErr.Details)
	}
	return appErr.Message
}
