package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/siteinv"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRecycleAfter is the number of pages one browser renders before it is
// replaced. Chrome's resident memory grows with every page and never returns
// to its starting level.
const DefaultRecycleAfter = 75

// BrowserManager owns the headless Chrome process behind a Fetcher and hands
// out pages on it. After RecycleAfter pages the browser is replaced, but only
// once every page still rendering on it has been released.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu           sync.Mutex
	idle         *sync.Cond
	current      *instance
	generation   int
	active       int // pages open on current
	rendered     int // pages released since current was launched
	recycleAfter int
	closed       bool

	launch func() (*instance, error)
}

// instance is one launched browser and the process that hosts it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func (i *instance) close() error {
	var err error
	if i.browser != nil {
		err = i.browser.Close()
	}
	if i.launcher != nil {
		i.launcher.Kill()
	}
	return err
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithRecycleAfter sets how many pages a browser renders before it is replaced.
func WithRecycleAfter(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.recycleAfter = n
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	return newBrowserManager(launchChrome, opts...)
}

func newBrowserManager(launch func() (*instance, error), opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		recycleAfter: DefaultRecycleAfter,
		launch:       launch,
	}
	bm.idle = sync.NewCond(&bm.mu)
	for _, opt := range opts {
		opt(bm)
	}
	if bm.recycleAfter < 1 {
		bm.recycleAfter = 1
	}

	inst, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = inst
	bm.generation = 1
	return bm, nil
}

// OpenPage opens a blank page. The returned release function closes the page
// and must be called once the page is no longer used.
func (bm *BrowserManager) OpenPage() (*rod.Page, func(), error) {
	inst, err := bm.acquire()
	if err != nil {
		return nil, nil, err
	}

	page, err := inst.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		bm.release()
		return nil, nil, fmt.Errorf("opening page: %w", err)
	}

	var once sync.Once
	return page, func() {
		once.Do(func() {
			_ = page.Close()
			bm.release()
		})
	}, nil
}

// acquire reserves a page slot on the current browser, replacing the browser
// first when it is due and idle.
func (bm *BrowserManager) acquire() (*instance, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	for !bm.closed && bm.rendered >= bm.recycleAfter && bm.active > 0 {
		bm.idle.Wait()
	}
	if bm.closed {
		return nil, siteinv.Errorf(siteinv.EINVALID, "browser is closed")
	}
	if bm.rendered >= bm.recycleAfter {
		bm.recycle()
	}

	bm.active++
	return bm.current, nil
}

func (bm *BrowserManager) release() {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	bm.active--
	bm.rendered++
	if bm.active == 0 {
		bm.idle.Broadcast()
	}
}

// recycle replaces the current browser. If the new launch fails the old
// browser stays in service. Must be called with mu held and no pages active.
func (bm *BrowserManager) recycle() {
	inst, err := bm.launch()
	if err != nil {
		return
	}
	_ = bm.current.close()
	bm.current = inst
	bm.generation++
	bm.rendered = 0
}

// Close shuts the browser down. Pages still open fail; later OpenPage calls
// return an error. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	bm.idle.Broadcast()
	return bm.current.close()
}

// LauncherPID returns the process ID of the current browser launcher, or 0.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed || bm.current.launcher == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

// launchChrome starts headless Chrome with flags that keep background pages
// from being throttled.
func launchChrome() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}
