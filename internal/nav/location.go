// Package nav 维护客户端当前的导航位置
// Location 是浏览器地址栏的对应物：chat 查询参数是"某文档的聊天已打开"
// 的唯一对外可见标记，由生命周期控制器通过替换式更新保持同步。
package nav

import "net/url"

// IndexPath 首页路由
const IndexPath = "/index/"

// Location 当前导航位置
type Location struct {
	u *url.URL
}

// Parse 解析初始位置（如 "/index/?chat=abc"）
func Parse(raw string) (*Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &Location{u: u}, nil
}

// NewIndex 创建指向首页的位置（不带查询参数）
func NewIndex() *Location {
	return &Location{u: &url.URL{Path: IndexPath}}
}

// Query 返回查询参数的值，不存在时为空串
func (l *Location) Query(key string) string {
	return l.u.Query().Get(key)
}

// HasQuery 查询参数是否存在
func (l *Location) HasQuery(key string) bool {
	return l.u.Query().Has(key)
}

// ReplaceQuery 设置查询参数
// 替换式更新（history.replaceState 语义）：只改当前位置，不触发重载。
func (l *Location) ReplaceQuery(key, value string) {
	q := l.u.Query()
	q.Set(key, value)
	l.u.RawQuery = q.Encode()
}

// DeleteQuery 删除查询参数，幂等
func (l *Location) DeleteQuery(key string) {
	q := l.u.Query()
	q.Del(key)
	l.u.RawQuery = q.Encode()
}

// String 返回完整位置字符串
func (l *Location) String() string {
	return l.u.String()
}
