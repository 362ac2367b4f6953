package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		return errors.New("paths.export_dir must be set")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendBolt, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("store.backend: unsupported value %q (use sqlite, bolt, file, or memory)", c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return errors.New("store.key must be set")
	}
	if c.Store.QuotaBytes < 0 {
		return errors.New("store.quota_bytes must be >= 0")
	}
	return nil
}

func (c *Config) validateExport() error {
	switch c.Export.DefaultFormat {
	case FormatAuto, FormatDocument, FormatArchive:
	default:
		return fmt.Errorf("export.default_format: unsupported value %q (use auto, document, or archive)", c.Export.DefaultFormat)
	}
	switch c.Export.FeaturedNaming {
	case NamingIndex, NamingID:
	default:
		return fmt.Errorf("export.featured_naming: unsupported value %q (use index or id)", c.Export.FeaturedNaming)
	}
	if strings.ContainsAny(c.Export.Product, `/\`) {
		return errors.New("export.product must not contain path separators")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
