package plugins

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"wechat-articles/internal/tools"
	"wechat-articles/internal/util"
	"wechat-articles/internal/wechat"
)

// 支持的操作
const (
	actionGetArticleURLs    = "get_article_urls"
	actionGetArticleDetails = "get_article_details"
)

// count 参数默认值与取值范围
const (
	defaultCount = 5
	minCount     = 1
	maxCount     = 5
)

// paramSpec 参数名及其描述，描述同时用于参数 schema 和缺参提示
type paramSpec struct {
	name        string
	description string
}

// 两个操作共用的必填参数
var commonParams = []paramSpec{
	{"cookie", "Cookie obtained from the WeChat official account platform"},
	{"token", "Token obtained from the WeChat official account platform"},
	{"nickname", "Nickname of the WeChat official account"},
	{"biz", "Biz identifier of the WeChat official account"},
}

// get_article_details 额外的必填参数
var detailsParams = []paramSpec{
	{"appmsg_token", "Appmsg_token obtained by capturing packets when opening WeChat official account articles"},
	{"wechat_cookie", "Cookie obtained by capturing packets when opening WeChat official account articles"},
	{"article_url", "URL of the WeChat official account article"},
}

// articleLister 公众号文章列表查询能力
type articleLister interface {
	ListArticles(ctx context.Context, nickname, biz, begin, count string) ([]wechat.ArticleRecord, error)
}

// articleInfoFetcher 单篇文章的评论与互动数据查询能力
type articleInfoFetcher interface {
	Comments(ctx context.Context, articleURL string) ([]any, error)
	ReadLikeNums(ctx context.Context, articleURL string) (int, int, int, error)
}

// WeChatArticlesTool 微信公众号文章工具实现
//
// 支持两个操作：get_article_urls 列出公众号最近发布的文章链接，
// get_article_details 获取单篇文章的评论和阅读/点赞数据。
// 所有参数校验失败都以文本消息返回给调用方，不抛出错误。
type WeChatArticlesTool struct {
	newSession     func(cookie, token string) articleLister
	newArticleInfo func(appmsgToken, wechatCookie string) articleInfoFetcher
}

func (t *WeChatArticlesTool) ID() string   { return "wechat_articles" }
func (t *WeChatArticlesTool) Name() string { return "wechat_articles" }
func (t *WeChatArticlesTool) Type() string { return "plugin" }
func (t *WeChatArticlesTool) Description() string {
	return "获取微信公众号文章链接，以及单篇文章的评论和阅读/点赞数据"
}

func (t *WeChatArticlesTool) Parameters() map[string]any {
	properties := map[string]any{
		"action": map[string]any{
			"type":        "string",
			"description": "Action to perform, one of get_article_urls or get_article_details",
		},
		"begin": map[string]any{
			"type":        "number",
			"description": "Offset to start listing articles from, defaults to 0",
		},
		"count": map[string]any{
			"type":        "number",
			"description": "Number of articles to list, an integer between 1 and 5, defaults to 5",
		},
	}
	for _, p := range commonParams {
		properties[p.name] = map[string]any{
			"type":        "string",
			"description": p.description,
		}
	}
	for _, p := range detailsParams {
		properties[p.name] = map[string]any{
			"type":        "string",
			"description": p.description,
		}
	}

	// 必填关系依赖于 action，schema 层面不声明 required，由 Execute 统一校验
	return map[string]any{
		"type":       "object",
		"properties": properties,
	}
}

func (t *WeChatArticlesTool) Execute(ctx context.Context, args map[string]any) ([]tools.Message, error) {
	action := paramText(args, "action")
	if action == "" {
		return []tools.Message{tools.NewTextMessage("Missing required parameter: action")}, nil
	}

	if action != actionGetArticleURLs && action != actionGetArticleDetails {
		return []tools.Message{tools.NewTextMessage(fmt.Sprintf(
			"Invalid action: %s. Supported actions are %s and %s",
			action, actionGetArticleURLs, actionGetArticleDetails))}, nil
	}

	util.Infow("执行公众号文章工具", map[string]any{"action": action})

	// 通用参数和 count 的校验错误合并上报，任何一条都阻止后续网络调用
	if msgs := validateCommonParams(args); len(msgs) > 0 {
		return msgs, nil
	}

	switch action {
	case actionGetArticleURLs:
		return t.getArticleURLs(ctx, args)
	default:
		return t.getArticleDetails(ctx, args)
	}
}

// getArticleURLs 列出公众号最近发布的文章
func (t *WeChatArticlesTool) getArticleURLs(ctx context.Context, args map[string]any) ([]tools.Message, error) {
	count, _ := countParam(args)
	session := t.newSession(paramText(args, "cookie"), paramText(args, "token"))

	records, err := session.ListArticles(ctx,
		paramText(args, "nickname"), paramText(args, "biz"),
		beginParam(args), strconv.Itoa(count))
	if err != nil {
		util.LogErrorWithFields(err, "获取文章列表失败", map[string]any{"action": actionGetArticleURLs})
		return []tools.Message{failureMessage(err)}, nil
	}

	articles := make([]ArticleSummary, 0, len(records))
	for _, rec := range records {
		articles = append(articles, ArticleSummary{
			Title:      rec.Title,
			Link:       rec.Link,
			UpdateTime: rec.UpdateTime,
			Cover:      rec.Cover,
		})
	}

	result := ArticleURLsResult{
		Articles:   articles,
		TotalCount: len(articles),
	}
	return []tools.Message{tools.NewJSONMessage(result)}, nil
}

// getArticleDetails 获取单篇文章的评论和阅读/点赞数据
func (t *WeChatArticlesTool) getArticleDetails(ctx context.Context, args map[string]any) ([]tools.Message, error) {
	if msgs := validateDetailsParams(args); len(msgs) > 0 {
		return msgs, nil
	}

	articleURL := paramText(args, "article_url")
	info := t.newArticleInfo(paramText(args, "appmsg_token"), paramText(args, "wechat_cookie"))

	comments, err := info.Comments(ctx, articleURL)
	if err != nil {
		util.LogErrorWithFields(err, "获取文章评论失败", map[string]any{"action": actionGetArticleDetails})
		return []tools.Message{failureMessage(err)}, nil
	}

	readNum, likeNum, oldLikeNum, err := info.ReadLikeNums(ctx, articleURL)
	if err != nil {
		util.LogErrorWithFields(err, "获取文章互动数据失败", map[string]any{"action": actionGetArticleDetails})
		return []tools.Message{failureMessage(err)}, nil
	}

	result := ArticleDetailsResult{
		Comments:   comments,
		ReadNum:    readNum,
		LikeNum:    likeNum,
		OldLikeNum: oldLikeNum,
	}
	return []tools.Message{tools.NewJSONMessage(result)}, nil
}

// validateCommonParams 校验两个操作共用的参数，每个问题一条消息
func validateCommonParams(args map[string]any) []tools.Message {
	var msgs []tools.Message
	for _, p := range commonParams {
		if paramText(args, p.name) == "" {
			msgs = append(msgs, tools.NewTextMessage(fmt.Sprintf(
				"Missing required parameter: %s. %s", p.name, p.description)))
		}
	}
	if _, ok := countParam(args); !ok {
		msgs = append(msgs, tools.NewTextMessage(
			fmt.Sprintf("Parameter 'count' must be an integer between %d and %d", minCount, maxCount)))
	}
	return msgs
}

// validateDetailsParams 校验 get_article_details 的附加参数
func validateDetailsParams(args map[string]any) []tools.Message {
	var msgs []tools.Message
	for _, p := range detailsParams {
		if paramText(args, p.name) == "" {
			msgs = append(msgs, tools.NewTextMessage(fmt.Sprintf(
				"Missing required parameter for %s: %s. %s", actionGetArticleDetails, p.name, p.description)))
		}
	}
	if articleURL := paramText(args, "article_url"); articleURL != "" && !strings.HasPrefix(articleURL, "http") {
		msgs = append(msgs, tools.NewTextMessage("Parameter 'article_url' must be a valid URL"))
	}
	return msgs
}

// failureMessage 把抓取层错误转换为面向调用方的文本消息
func failureMessage(err error) tools.Message {
	switch {
	case util.IsErrorCode(err, util.ErrCodeNetworkFailed):
		return tools.NewTextMessage("Network error occurred: " + util.CauseText(err))
	case util.IsErrorCode(err, util.ErrCodeInvalidParam):
		return tools.NewTextMessage("Invalid parameter value: " + util.CauseText(err))
	default:
		return tools.NewTextMessage("An error occurred while invoking the tool: " + util.CauseText(err))
	}
}

// paramText 取出参数的文本形式，nil 和空串都视为缺失
//
// 宿主通过 JSON 传参时数字会落成 float64，这里统一转成字符串，
// 避免把数字形式的 token 误判为缺参。
func paramText(args map[string]any, name string) string {
	v, ok := args[name]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == math.Trunc(s) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// countParam 解析 count 参数，缺省为 5，传入值必须是 [1,5] 内的整数
func countParam(args map[string]any) (int, bool) {
	v, ok := args["count"]
	if !ok {
		return defaultCount, true
	}
	n, ok := toInt(v)
	if !ok || n < minCount || n > maxCount {
		return 0, false
	}
	return n, true
}

// beginParam 解析 begin 参数并转成字符串，缺省为 "0"，不做范围校验
func beginParam(args map[string]any) string {
	v, ok := args["begin"]
	if !ok || v == nil {
		return "0"
	}
	if n, ok := toInt(v); ok {
		return strconv.Itoa(n)
	}
	return fmt.Sprintf("%v", v)
}

// toInt 把整数值归一为 int，JSON 解码出的整数是 float64
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

// ArticleSummary 单篇文章的摘要信息
type ArticleSummary struct {
	Title      string `json:"title"`
	Link       string `json:"link"`
	UpdateTime int64  `json:"update_time"`
	Cover      string `json:"cover"`
}

// ArticleURLsResult get_article_urls 的返回结构
type ArticleURLsResult struct {
	Articles   []ArticleSummary `json:"articles"`
	TotalCount int              `json:"total_count"`
}

// ArticleDetailsResult get_article_details 的返回结构
type ArticleDetailsResult struct {
	Comments   []any `json:"comments"`
	ReadNum    int   `json:"read_num"`
	LikeNum    int   `json:"like_num"`
	OldLikeNum int   `json:"old_like_num"`
}

// NewWeChatArticlesTool 创建微信公众号文章工具实例
func NewWeChatArticlesTool() *WeChatArticlesTool {
	return &WeChatArticlesTool{
		newSession: func(cookie, token string) articleLister {
			return wechat.NewAccountSession(cookie, token)
		},
		newArticleInfo: func(appmsgToken, wechatCookie string) articleInfoFetcher {
			return wechat.NewArticleInfo(appmsgToken, wechatCookie)
		},
	}
}
