package wechat

// ArticleRecord 素材列表接口返回的单条图文记录
type ArticleRecord struct {
	Title      string `json:"title"`
	Link       string `json:"link"`
	UpdateTime int64  `json:"update_time"`
	Cover      string `json:"cover"`
}

// baseResp 微信接口通用返回头
type baseResp struct {
	Ret    int    `json:"ret"`
	ErrMsg string `json:"err_msg"`
}

// appMsgListResp 素材列表接口响应
type appMsgListResp struct {
	BaseResp   baseResp        `json:"base_resp"`
	AppMsgCnt  int             `json:"app_msg_cnt"`
	AppMsgList []ArticleRecord `json:"app_msg_list"`
}

// commentResp 精选留言接口响应
type commentResp struct {
	BaseResp       baseResp `json:"base_resp"`
	ElectedComment []any    `json:"elected_comment"`
}

// appMsgStat 阅读与点赞统计
type appMsgStat struct {
	ReadNum    int `json:"read_num"`
	LikeNum    int `json:"like_num"`
	OldLikeNum int `json:"old_like_num"`
}

// appMsgExtResp 图文扩展数据接口响应
type appMsgExtResp struct {
	AppMsgStat *appMsgStat `json:"appmsgstat"`
}
