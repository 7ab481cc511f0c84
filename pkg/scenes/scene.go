// Package scenes 提供基于 Ebitengine 的场景
//
// 场景负责把设备输入归约给模拟核心，并把快照绘制到屏幕上；
// 模拟本身不依赖任何图形库。
package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Scene represents a game scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// SceneFactory 场景工厂函数类型
// 用于重开一局时创建新场景，避免场景与管理器之间的循环依赖
type SceneFactory func() Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	logger       *zap.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Restart to set one.
func NewSceneManager(logger *zap.Logger) *SceneManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneManager{
		logger: logger.Named("SceneManager"),
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Restart 通过工厂函数创建新场景并切换过去
//
// 返回:
//   - bool: 工厂未设置或返回 nil 时为 false，当前场景保持不变
func (sm *SceneManager) Restart() bool {
	if sm.sceneFactory == nil {
		sm.logger.Warn("scene factory not set, restart ignored")
		return false
	}

	scene := sm.sceneFactory()
	if scene == nil {
		sm.logger.Error("scene factory returned nil")
		return false
	}
	sm.SwitchTo(scene)
	sm.logger.Info("scene restarted")
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
