// Package wechat 实现对微信公众平台数据接口的最小封装。
//
// 两类会话对应两套登录态：AccountSession 使用公众平台后台的 cookie+token，
// ArticleInfo 使用抓包得到的 appmsg_token+cookie。所有请求都是请求级的，
// 不做重试、不做缓存。
package wechat

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wechat-articles/internal/config"
	"wechat-articles/internal/pkg/errors"
)

// newHTTPClient 按配置构造请求客户端
func newHTTPClient(cfg config.WeChatConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return &http.Client{Timeout: time.Duration(timeout) * time.Second}
}

// endpoint 拼接接口地址
func endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

// doRequest 执行请求并读取完整响应体
func doRequest(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.WrapError(errors.ErrCodeNetworkFailed, "请求微信接口失败", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapError(errors.ErrCodeNetworkFailed, "读取微信接口响应失败", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewErrorWithDetails(errors.ErrCodeNetworkFailed, "微信接口返回异常状态码",
			fmt.Sprintf("status=%d", resp.StatusCode))
	}

	return body, nil
}

// bodyExcerpt 截取响应体片段用于错误详情
func bodyExcerpt(body []byte) string {
	const limit = 200
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
