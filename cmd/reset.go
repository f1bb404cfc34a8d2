// Package cmd 实现 CLI 命令
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"doc-chat-cli/internal/config"
	"doc-chat-cli/internal/state"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "清除保存的会话状态",
	Long: `清除本地保存的活跃会话记录。

下次启动将回到上传视图，不再自动恢复聊天。`,
	Run: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) {
	store := state.NewStore(config.Dir())

	if store.Restore() == nil {
		fmt.Println("当前没有保存的会话状态")
		return
	}

	store.Clear()
	fmt.Println("✓ 已清除保存的会话状态")
}
