package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "chromashot"

// OpenStorage 打开跨平台存储
//
// 失败时返回 nil 并记录日志，调用方应进入降级模式（仅内存数据），
// 存储不可用不会阻止游戏运行。
func OpenStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[Storage] Warning: gdata unavailable: %v (running without persistence)", err)
		return nil
	}
	return manager
}
