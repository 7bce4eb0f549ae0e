package errors

// DefaultErrorHandler 默认错误处理器实现
type DefaultErrorHandler struct{}

// GetUserFriendlyMessage 获取用户友好的错误消息
func (h *DefaultErrorHandler) GetUserFriendlyMessage(err error) string {
	if err == nil {
		return ""
	}

	appErr, ok := err.(*AppError)
	if !ok {
		return "发生未知错误"
	}

	switch appErr.Code {
	// 系统错误
	case ErrCodeSystemError, ErrCodeInternalErr:
		return "系统错误，请联系技术支持"
	case ErrCodeInitializationFailed:
		return "应用程序初始化失败，请检查配置"
	case ErrCodeInvalidParam:
		return "参数无效，请检查输入"

	// 配置错误
	case ErrCodeConfigNotFound:
		return "配置文件未找到，请检查配置文件路径"
	case ErrCodeConfigInvalid, ErrCodeConfigLoadFailed, ErrCodeConfigParseFailed:
		return "配置文件错误，请检查配置文件"

	// 网络错误
	case ErrCodeNetworkFailed:
		return "网络请求失败，请检查网络连接"
	case ErrCodeTimeout:
		return "请求超时，请稍后重试"

	// 工具错误
	case ErrCodeToolNotFound:
		return "请求的工具不存在，请检查工具名称"
	case ErrCodeToolExecutionFailed:
		return "工具执行失败，请检查参数和输入"

	// MCP错误
	case ErrCodeMCPConnectionFailed:
		return "MCP服务器连接失败，请检查配置"
	case ErrCodeMCPToolListFailed, ErrCodeMCPToolCallFailed:
		return "MCP工具调用失败，请检查工具参数和服务器状态"

	default:
		return appErr.Message
	}
}

// 默认错误处理器实例
var DefaultHandler = &DefaultErrorHandler{}

// GetUserFriendlyMessage 获取用户友好的错误消息
func GetUserFriendlyMessage(err error) string {
	return DefaultHandler.GetUserFriendlyMessage(err)
}
