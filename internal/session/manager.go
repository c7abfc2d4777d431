package session

import (
	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"
)

const (
	userKey         = "user_id"
	flashSuccessKey = "flash_success"
	flashErrorKey   = "flash_error"
	redirectKey     = "redirect_url"
)

// Manager wraps the session store with the small vocabulary the
// handlers need: current-user identity, one-shot flash messages, and
// the post-login redirect path.
type Manager struct {
	store *fsession.Store
}

func NewManager(store *fsession.Store) *Manager {
	return &Manager{store: store}
}

// UserID returns the hex user ID of the session, or "" when anonymous.
func (m *Manager) UserID(c *fiber.Ctx) string {
	sess, err := m.store.Get(c)
	if err != nil {
		return ""
	}
	id, _ := sess.Get(userKey).(string)
	return id
}

func (m *Manager) SetUserID(c *fiber.Ctx, id string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(userKey, id)
	return sess.Save()
}

// Destroy ends the session.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

func (m *Manager) FlashSuccess(c *fiber.Ctx, msg string) error {
	return m.flash(c, flashSuccessKey, msg)
}

func (m *Manager) FlashError(c *fiber.Ctx, msg string) error {
	return m.flash(c, flashErrorKey, msg)
}

func (m *Manager) flash(c *fiber.Ctx, key, msg string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(key, msg)
	return sess.Save()
}

// PopFlashes drains the pending flash messages. Flashes live for one
// request after the redirect that set them.
func (m *Manager) PopFlashes(c *fiber.Ctx) map[string]string {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil
	}

	flashes := make(map[string]string)
	if msg, ok := sess.Get(flashSuccessKey).(string); ok && msg != "" {
		flashes["success"] = msg
	}
	if msg, ok := sess.Get(flashErrorKey).(string); ok && msg != "" {
		flashes["error"] = msg
	}
	if len(flashes) == 0 {
		return nil
	}

	sess.Delete(flashSuccessKey)
	sess.Delete(flashErrorKey)
	if err := sess.Save(); err != nil {
		return nil
	}
	return flashes
}

// SaveRedirect remembers the path an anonymous user asked for so login
// can send them back.
func (m *Manager) SaveRedirect(c *fiber.Ctx, path string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(redirectKey, path)
	return sess.Save()
}

// PopRedirect returns the saved path, or "" when none was stored.
func (m *Manager) PopRedirect(c *fiber.Ctx) string {
	sess, err := m.store.Get(c)
	if err != nil {
		return ""
	}
	path, _ := sess.Get(redirectKey).(string)
	if path == "" {
		return ""
	}
	sess.Delete(redirectKey)
	if err := sess.Save(); err != nil {
		return path
	}
	return path
}
