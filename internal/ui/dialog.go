package ui

import (
	"fmt"
	"io"
)

// Alert 显示一条告警（showCustomAlert 的对应物）
// kind: success / error / warning，其余按提示处理。
// 确认对话（showCustomConfirm 的对应物）由交互入口提供，
// 因为它要和持久输入读取共享同一个标准输入。
func Alert(out io.Writer, kind, title, message string) {
	var icon string
	switch kind {
	case "success":
		icon = "✅"
	case "error":
		icon = "❌"
	case "warning":
		icon = "⚠️"
	default:
		icon = "ℹ️"
	}
	fmt.Fprintf(out, "%s %s: %s\n", icon, title, message)
}
