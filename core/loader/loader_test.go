package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager(t *testing.T) {
	app := fiber.New()

	t.Run("SkipsDisabled", func(t *testing.T) {
		on := &stubFeature{name: "picking", enabled: true}
		off := &stubFeature{name: "sites"}

		mgr := NewManager()
		mgr.Register(on)
		mgr.Register(off)

		assert.NoError(t, mgr.LoadAll(app))
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
		assert.Equal(t, []string{"picking"}, mgr.Enabled())
	})

	t.Run("StopsOnError", func(t *testing.T) {
		bad := &stubFeature{name: "integrity", enabled: true, err: errors.New("boom")}
		after := &stubFeature{name: "picking", enabled: true}

		mgr := NewManager()
		mgr.Register(bad)
		mgr.Register(after)

		err := mgr.LoadAll(app)
		assert.ErrorContains(t, err, "failed to load feature integrity: boom")
		assert.False(t, after.loaded)
	})
}
