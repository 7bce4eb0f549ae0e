package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"wechat-articles/internal/config"
	"wechat-articles/internal/pkg/errors"
)

// AccountSession 公众平台会话，持有后台登录态
type AccountSession struct {
	cookie string
	token  string
	cfg    config.WeChatConfig
	client *http.Client
}

// NewAccountSession 用公众平台的 cookie 和 token 创建会话
func NewAccountSession(cookie, token string) *AccountSession {
	cfg := config.GetWeChatConfig()
	return &AccountSession{
		cookie: cookie,
		token:  token,
		cfg:    cfg,
		client: newHTTPClient(cfg),
	}
}

// ListArticles 分页列出公众号发布的图文记录。
// begin 和 count 按微信接口的要求以字符串传递，调用方负责取值。
func (s *AccountSession) ListArticles(ctx context.Context, nickname, biz, begin, count string) ([]ArticleRecord, error) {
	query := url.Values{}
	query.Set("action", "list_ex")
	query.Set("begin", begin)
	query.Set("count", count)
	query.Set("fakeid", biz)
	query.Set("query", nickname)
	query.Set("token", s.token)
	query.Set("lang", "zh_CN")
	query.Set("f", "json")
	query.Set("ajax", "1")
	query.Set("type", "9")

	urlStr := endpoint(s.cfg.BaseURL, "/cgi-bin/appmsg") + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, errors.WrapError(errors.ErrCodeNetworkFailed, "创建素材列表请求失败", err)
	}
	req.Header.Set("Cookie", s.cookie)
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	body, err := doRequest(s.client, req)
	if err != nil {
		return nil, err
	}

	var res appMsgListResp
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.WrapError(errors.ErrCodeInvalidParam, "素材列表响应解析失败", err)
	}

	// ret 非零通常意味着 cookie 或 token 已失效
	if res.BaseResp.Ret != 0 {
		return nil, errors.NewErrorWithDetails(errors.ErrCodeInvalidParam, "微信接口拒绝素材列表请求",
			fmt.Sprintf("ret=%d, err_msg=%s", res.BaseResp.Ret, res.BaseResp.ErrMsg))
	}

	return res.AppMsgList, nil
}
