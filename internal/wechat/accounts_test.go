package wechat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"wechat-articles/internal/config"
	"wechat-articles/internal/util"
)

// setTestConfig 将全局配置指向测试服务器
func setTestConfig(t *testing.T, baseURL string) {
	t.Helper()
	original := config.Config
	t.Cleanup(func() {
		config.Config = original
	})
	config.Config = &config.AppConfig{
		WeChat: config.WeChatConfig{
			BaseURL:   baseURL,
			Timeout:   5,
			UserAgent: "test-agent",
		},
	}
}

func TestListArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cgi-bin/appmsg" {
			t.Errorf("期望请求路径为 /cgi-bin/appmsg，实际为: %s", r.URL.Path)
		}

		query := r.URL.Query()
		if query.Get("action") != "list_ex" {
			t.Errorf("期望 action=list_ex，实际为: %s", query.Get("action"))
		}
		if query.Get("fakeid") != "MzA5MTIyNQ==" {
			t.Errorf("期望 fakeid 为 biz 标识，实际为: %s", query.Get("fakeid"))
		}
		if query.Get("token") != "token-123" {
			t.Errorf("期望 token=token-123，实际为: %s", query.Get("token"))
		}
		if query.Get("begin") != "0" || query.Get("count") != "5" {
			t.Errorf("期望 begin=0 count=5，实际为: begin=%s count=%s", query.Get("begin"), query.Get("count"))
		}
		if query.Get("query") != "测试公众号" {
			t.Errorf("期望 query 为公众号昵称，实际为: %s", query.Get("query"))
		}
		if r.Header.Get("Cookie") != "cookie-abc" {
			t.Errorf("期望携带会话 Cookie，实际为: %s", r.Header.Get("Cookie"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"base_resp": {"ret": 0, "err_msg": "ok"},
			"app_msg_cnt": 2,
			"app_msg_list": [
				{"title": "第一篇", "link": "http://mp.example.com/s?a=1", "update_time": 1700000000, "cover": "http://img/1"},
				{"title": "第二篇", "link": "http://mp.example.com/s?a=2", "update_time": 1700000100, "cover": "http://img/2"}
			]
		}`))
	}))
	defer server.Close()

	setTestConfig(t, server.URL)

	session := NewAccountSession("cookie-abc", "token-123")
	records, err := session.ListArticles(context.Background(), "测试公众号", "MzA5MTIyNQ==", "0", "5")
	if err != nil {
		t.Fatalf("列出文章失败: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("期望返回2条记录，实际为: %d", len(records))
	}

	if records[0].Title != "第一篇" || records[1].Title != "第二篇" {
		t.Errorf("期望记录保持接口顺序，实际为: %s, %s", records[0].Title, records[1].Title)
	}

	if records[0].UpdateTime != 1700000000 {
		t.Errorf("期望 update_time 为 1700000000，实际为: %d", records[0].UpdateTime)
	}
}

func TestListArticlesRetError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base_resp": {"ret": 200013, "err_msg": "freq control"}}`))
	}))
	defer server.Close()

	setTestConfig(t, server.URL)

	session := NewAccountSession("cookie-abc", "token-123")
	_, err := session.ListArticles(context.Background(), "测试公众号", "biz", "0", "5")
	if err == nil {
		t.Fatal("期望 ret 非零时返回错误")
	}

	if !util.IsErrorCode(err, util.ErrCodeInvalidParam) {
		t.Errorf("期望错误代码为 %s，实际为: %s", util.ErrCodeInvalidParam, util.GetErrorCode(err))
	}
}

func TestListArticlesBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	setTestConfig(t, server.URL)

	session := NewAccountSession("cookie-abc", "token-123")
	_, err := session.ListArticles(context.Background(), "测试公众号", "biz", "0", "5")
	if err == nil {
		t.Fatal("期望响应无法解析时返回错误")
	}

	if !util.IsErrorCode(err, util.ErrCodeInvalidParam) {
		t.Errorf("期望错误代码为 %s，实际为: %s", util.ErrCodeInvalidParam, util.GetErrorCode(err))
	}
}

func TestListArticlesNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // 提前关闭，模拟不可达

	setTestConfig(t, serverURL)

	session := NewAccountSession("cookie-abc", "token-123")
	_, err := session.ListArticles(context.Background(), "测试公众号", "biz", "0", "5")
	if err == nil {
		t.Fatal("期望服务不可达时返回错误")
	}

	if !util.IsErrorCode(err, util.ErrCodeNetworkFailed) {
		t.Errorf("期望错误代码为 %s，实际为: %s", util.ErrCodeNetworkFailed, util.GetErrorCode(err))
	}
}

func TestListArticlesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	setTestConfig(t, server.URL)

	session := NewAccountSession("cookie-abc", "token-123")
	_, err := session.ListArticles(context.Background(), "测试公众号", "biz", "0", "5")
	if err == nil {
		t.Fatal("期望异常状态码时返回错误")
	}

	if !util.IsErrorCode(err, util.ErrCodeNetworkFailed) {
		t.Errorf("期望错误代码为 %s，实际为: %s", util.ErrCodeNetworkFailed, util.GetErrorCode(err))
	}
}
