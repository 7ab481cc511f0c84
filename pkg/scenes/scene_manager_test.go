package scenes

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager(nil)
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdateAndDraw verifies delegation to the active scene.
func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager(nil)
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 1.0 / 60.0
	sm.Update(deltaTime)
	sm.Draw(nil)

	if !mockScene.updateCalled || mockScene.deltaTime != deltaTime {
		t.Errorf("Scene's Update was not called correctly: %+v", mockScene)
	}
	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerNoScene verifies that an empty manager is a no-op.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager(nil)
	sm.Update(0.016) // Should not panic
	sm.Draw(nil)     // Should not panic
}

// TestSceneManagerRestart 测试通过工厂函数重开
func TestSceneManagerRestart(t *testing.T) {
	tests := []struct {
		name      string
		factory   SceneFactory
		wantOK    bool
		wantFresh bool
	}{
		{"未设置工厂", nil, false, false},
		{"工厂返回 nil", func() Scene { return nil }, false, false},
		{"正常重开", func() Scene { return &MockScene{} }, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSceneManager(nil)
			original := &MockScene{}
			sm.SwitchTo(original)
			sm.SetSceneFactory(tt.factory)

			if got := sm.Restart(); got != tt.wantOK {
				t.Fatalf("Restart() = %v, want %v", got, tt.wantOK)
			}
			fresh := sm.GetCurrentScene() != Scene(original)
			if fresh != tt.wantFresh {
				t.Errorf("scene replaced = %v, want %v", fresh, tt.wantFresh)
			}
		})
	}
}
