// Package config loads the service configuration.
//
// Values come from environment variables, optionally seeded from a .env file,
// and fall back to the `default` struct tag of each field. Nested keys map to
// upper-case variables joined by underscores:
//
//	SERVER_PORT=8080
//	DATABASE_DRIVER=sqlite
//	RECONCILE_SITE_SOURCE=database
//	RECONCILE_CODE_SPACE=scoped
//
// The loaded configuration is checked against the `validate` tags before it
// is returned.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.SiteSource)
package config
