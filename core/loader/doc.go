// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager registers features with Register() and mounts the enabled ones
// with LoadAll(). The picking, sites and integrity features are loaded this way.
package loader
