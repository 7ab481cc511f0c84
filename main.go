package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/spikedodge/pkg/app"
	"github.com/decker502/spikedodge/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "启用调试日志")
	configPath = flag.String("config", "", "游戏配置文件路径（.yaml 或 .toml），默认使用内置配置")
	seed       = flag.Int64("seed", 0, "随机种子，0 表示按当前时间播种")
	mute       = flag.Bool("mute", false, "关闭声音")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
		Mute:       *mute,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	width, height := gameApp.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Spike Dodge")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 每个显示帧调用一次 Update，模拟步长交给 FixedStepLoop
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
