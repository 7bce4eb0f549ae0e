package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"wechat-articles/internal/config"
	"wechat-articles/internal/pkg/errors"
)

// 文章页脚本中的留言区标识，形如 comment_id = "1234567890"
var commentIDPattern = regexp.MustCompile(`comment_id\s*=\s*"(\d+)"`)

// ArticleInfo 文章详情会话，持有抓包得到的登录态
type ArticleInfo struct {
	appmsgToken string
	cookie      string
	cfg         config.WeChatConfig
	client      *http.Client
}

// NewArticleInfo 用抓包得到的 appmsg_token 和 cookie 创建会话
func NewArticleInfo(appmsgToken, wechatCookie string) *ArticleInfo {
	cfg := config.GetWeChatConfig()
	return &ArticleInfo{
		appmsgToken: appmsgToken,
		cookie:      wechatCookie,
		cfg:         cfg,
		client:      newHTTPClient(cfg),
	}
}

// Comments 拉取文章的精选留言。文章未开放留言区时返回空列表。
func (a *ArticleInfo) Comments(ctx context.Context, articleURL string) ([]any, error) {
	page, err := a.fetchArticlePage(ctx, articleURL)
	if err != nil {
		return nil, err
	}

	matches := commentIDPattern.FindSubmatch(page)
	if matches == nil {
		return []any{}, nil
	}
	commentID := string(matches[1])

	query := url.Values{}
	query.Set("action", "getcomment")
	query.Set("comment_id", commentID)
	query.Set("offset", "0")
	query.Set("limit", "100")
	query.Set("appmsg_token", a.appmsgToken)
	query.Set("f", "json")

	urlStr := endpoint(a.cfg.BaseURL, "/mp/appmsgcomment") + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, errors.WrapError(errors.ErrCodeNetworkFailed, "创建留言请求失败", err)
	}
	req.Header.Set("Cookie", a.cookie)
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	body, err := doRequest(a.client, req)
	if err != nil {
		return nil, err
	}

	var res commentResp
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.WrapError(errors.ErrCodeInvalidParam, "留言响应解析失败", err)
	}

	if res.BaseResp.Ret != 0 {
		return nil, errors.NewErrorWithDetails(errors.ErrCodeInvalidParam, "微信接口拒绝留言请求",
			fmt.Sprintf("ret=%d, err_msg=%s", res.BaseResp.Ret, res.BaseResp.ErrMsg))
	}

	if res.ElectedComment == nil {
		return []any{}, nil
	}
	return res.ElectedComment, nil
}

// ReadLikeNums 获取文章的阅读数、点赞数和在看数
func (a *ArticleInfo) ReadLikeNums(ctx context.Context, articleURL string) (int, int, int, error) {
	params, err := parseArticleParams(articleURL)
	if err != nil {
		return 0, 0, 0, err
	}

	form := url.Values{}
	form.Set("__biz", params.biz)
	form.Set("mid", params.mid)
	form.Set("sn", params.sn)
	form.Set("idx", params.idx)
	form.Set("is_only_read", "1")

	urlStr := endpoint(a.cfg.BaseURL, "/mp/getappmsgext") + "?appmsg_token=" + url.QueryEscape(a.appmsgToken) + "&x5=0"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, 0, 0, errors.WrapError(errors.ErrCodeNetworkFailed, "创建阅读数据请求失败", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", a.cookie)
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	body, err := doRequest(a.client, req)
	if err != nil {
		return 0, 0, 0, err
	}

	var res appMsgExtResp
	if err := json.Unmarshal(body, &res); err != nil {
		return 0, 0, 0, errors.WrapError(errors.ErrCodeInvalidParam, "阅读数据响应解析失败", err)
	}

	// 登录态失效或接口变更时响应里没有 appmsgstat
	if res.AppMsgStat == nil {
		return 0, 0, 0, errors.NewErrorWithDetails(errors.ErrCodeInternalErr, "响应中缺少阅读数据",
			bodyExcerpt(body))
	}

	return res.AppMsgStat.ReadNum, res.AppMsgStat.LikeNum, res.AppMsgStat.OldLikeNum, nil
}

// fetchArticlePage 拉取文章页面原文
func (a *ArticleInfo) fetchArticlePage(ctx context.Context, articleURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return nil, errors.WrapError(errors.ErrCodeNetworkFailed, "创建文章页请求失败", err)
	}
	req.Header.Set("Cookie", a.cookie)
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	return doRequest(a.client, req)
}

// articleParams 文章链接中定位单篇文章的参数
type articleParams struct {
	biz string
	mid string
	idx string
	sn  string
}

// parseArticleParams 从文章链接中提取 __biz/mid/idx/sn
func parseArticleParams(articleURL string) (*articleParams, error) {
	u, err := url.Parse(articleURL)
	if err != nil {
		return nil, errors.WrapError(errors.ErrCodeInvalidParam, "文章链接无法解析", err)
	}

	q := u.Query()
	params := &articleParams{
		biz: q.Get("__biz"),
		mid: q.Get("mid"),
		idx: q.Get("idx"),
		sn:  q.Get("sn"),
	}

	if params.biz == "" || params.mid == "" || params.idx == "" || params.sn == "" {
		return nil, errors.NewErrorWithDetails(errors.ErrCodeInvalidParam, "文章链接缺少必要参数",
			"链接需要携带 __biz、mid、idx、sn")
	}

	return params, nil
}
