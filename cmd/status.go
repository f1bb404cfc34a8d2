// Package cmd 实现 CLI 命令
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"doc-chat-cli/internal/config"
	"doc-chat-cli/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "显示当前状态",
	Long: `显示当前配置与保存的会话状态。

包括：
- 服务器地址
- 保存的活跃文档/会话（如果有）
- 日志文件位置`,
	Run: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	fmt.Println("╔════════════════════════════════════════════════╗")
	fmt.Println("║             Doc Chat 状态信息                   ║")
	fmt.Println("╠════════════════════════════════════════════════╣")

	// 服务器地址
	fmt.Printf("║  服务器: %s\n", config.GetServerURL())

	// 保存的会话状态
	store := state.NewStore(config.Dir())
	if saved := store.Restore(); saved != nil {
		fmt.Println("║  会话状态: ✓ 有保存的会话")
		fmt.Printf("║  活跃文档: %s (%s)\n", saved.DocumentName, saved.DocumentID)
		fmt.Printf("║  会话 ID: %s\n", saved.SessionID)
	} else {
		fmt.Println("║  会话状态: ✗ 无保存的会话")
	}

	fmt.Printf("║  日志文件: %s\n", config.LogPath())
	fmt.Println("╚════════════════════════════════════════════════╝")
}
