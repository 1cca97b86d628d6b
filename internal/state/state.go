// Package state persists what the storefront restores on the next start:
// the navigation state and the catalog response cache tables.
package state

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "storefront"
	dbFileName   = "storefront.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager owns the state database. Navigation saves are debounced; Close
// writes whatever is still waiting.
type Manager struct {
	db *sql.DB

	mu    sync.Mutex
	timer *time.Timer
	next  *NavigationState
}

// Open opens the database under the XDG data directory.
func Open() (*Manager, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath opens or creates the database at path.
func OpenPath(path string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection: the save timer and the UI goroutine share it.
	db.SetMaxOpenConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Manager{db: db}, nil
}

func (m *Manager) DB() *sql.DB { return m.db }

func (m *Manager) GetNavigation() (*NavigationState, error) {
	return getNavigation(m.db)
}

// SaveNavigation stores state after a short quiet period. Only the last
// state of a burst reaches the database.
func (m *Manager) SaveNavigation(state NavigationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next = &state
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(saveDebounce, func() { m.flush("save") })
}

func (m *Manager) Close() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()
	m.flush("flush")
	return m.db.Close()
}

func (m *Manager) flush(what string) {
	m.mu.Lock()
	next := m.next
	m.next = nil
	m.mu.Unlock()
	if next == nil {
		return
	}
	if err := saveNavigation(m.db, *next); err != nil {
		log.Printf("state: %s navigation: %v", what, err)
	}
}
