// Package tray provides the system tray menu for toggling the overlay and
// gesture recognition at runtime.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggleHUD      func(enabled bool)
	onToggleGestures func(enabled bool)
	onToggleDebug    func(enabled bool)
	onResetTracking  func()
	onDashboard      func()
	onQuit           func()

	hudEnabled      bool
	gesturesEnabled bool
	debugEnabled    bool
	mu              sync.RWMutex

	// Menu items stored for later updates
	menuHUD         *systray.MenuItem
	menuGestures    *systray.MenuItem
	menuDebug       *systray.MenuItem
	menuLastGesture *systray.MenuItem
}

// New creates a new Tray with the overlay and gesture recognition enabled.
func New() *Tray {
	return &Tray{
		hudEnabled:      true,
		gesturesEnabled: true,
	}
}

// OnToggleHUD sets the callback for the HUD toggle menu item.
func (t *Tray) OnToggleHUD(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggleHUD = fn
}

// OnToggleGestures sets the callback for the gesture recognition toggle.
func (t *Tray) OnToggleGestures(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggleGestures = fn
}

// OnToggleDebug sets the callback for the skeleton overlay toggle.
func (t *Tray) OnToggleDebug(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggleDebug = fn
}

// OnResetTracking sets the callback for the tracking reset menu item.
func (t *Tray) OnResetTracking(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResetTracking = fn
}

// OnDashboard sets the callback for the dashboard menu item.
func (t *Tray) OnDashboard(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// OnQuit sets the callback for the quit menu item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady sets up the menu structure once the tray is available.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Hand Overlay")

	t.menuHUD = systray.AddMenuItem("● HUD", "Toggle the overlay")
	t.menuGestures = systray.AddMenuItem("● Gestures", "Toggle gesture recognition")
	t.menuDebug = systray.AddMenuItem("○ Skeleton", "Toggle the landmark skeleton")
	systray.AddSeparator()

	t.menuLastGesture = systray.AddMenuItem("Last: none", "Last recognized gesture")
	t.menuLastGesture.Disable()
	systray.AddSeparator()

	menuReset := systray.AddMenuItem("Reset Tracking", "Clear smoothing and debounce state")
	menuDashboard := systray.AddMenuItem("Open Dashboard...", "Open the dashboard in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuHUD.ClickedCh:
				t.toggleHUD()
			case <-t.menuGestures.ClickedCh:
				t.toggleGestures()
			case <-t.menuDebug.ClickedCh:
				t.toggleDebug()
			case <-menuReset.ClickedCh:
				t.handleResetTracking()
			case <-menuDashboard.ClickedCh:
				t.handleDashboard()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) toggleHUD() {
	t.mu.Lock()
	t.hudEnabled = !t.hudEnabled
	enabled := t.hudEnabled
	setMark(t.menuHUD, "HUD", enabled)
	callback := t.onToggleHUD
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) toggleGestures() {
	t.mu.Lock()
	t.gesturesEnabled = !t.gesturesEnabled
	enabled := t.gesturesEnabled
	setMark(t.menuGestures, "Gestures", enabled)
	callback := t.onToggleGestures
	t.mu.Unlock()

	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) toggleDebug() {
	t.mu.Lock()
	t.debugEnabled = !t.debugEnabled
	enabled := t.debugEnabled
	setMark(t.menuDebug, "Skeleton", enabled)
	callback := t.onToggleDebug
	t.mu.Unlock()

	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleResetTracking() {
	t.mu.RLock()
	callback := t.onResetTracking
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleDashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastGesture updates the last gesture display in the menu.
func (t *Tray) SetLastGesture(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastGesture != nil {
		if name == "" {
			t.menuLastGesture.SetTitle("Last: none")
		} else {
			t.menuLastGesture.SetTitle("Last: " + name)
		}
	}
}

func setMark(item *systray.MenuItem, name string, on bool) {
	if item == nil {
		return
	}
	if on {
		item.SetTitle("● " + name)
	} else {
		item.SetTitle("○ " + name)
	}
}
