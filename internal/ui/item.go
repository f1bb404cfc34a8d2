package ui

import (
	"fmt"

	"github.com/fatih/color"
)

var activeStyle = color.New(color.FgHiBlue, color.Bold)

// Item 文档列表中的一行
// 与一条 DocumentEntry 一一对应，由列表模型独占持有，
// 条目移除时行随之销毁。
type Item struct {
	id     string
	label  string
	active bool
}

// NewItem 以结构化方式构造列表行（替代字符串模板拼接）
func NewItem(id, label string) *Item {
	return &Item{id: id, label: label}
}

// ID 返回行对应的文档 ID
func (it *Item) ID() string {
	return it.id
}

// Label 返回显示名
func (it *Item) Label() string {
	return it.label
}

// SetActive 设置/清除选中态（active 样式）
func (it *Item) SetActive(active bool) {
	it.active = active
}

// Active 是否处于选中态
func (it *Item) Active() bool {
	return it.active
}

// Render 渲染为一行文本，index 为展示序号（从 0 计）
func (it *Item) Render(index int) string {
	line := fmt.Sprintf("%2d. %s  🗑 (d %d)", index+1, it.label, index+1)
	if it.active {
		return activeStyle.Sprintf("▶%s", line)
	}
	return " " + line
}
