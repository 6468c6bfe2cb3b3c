// Package config holds the export options that shape generated
// scripts. Options normally come from built-in defaults; power users
// can override them with a small HCL file, the same configuration
// surface the rest of the product uses.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Options control the shape of the generated script. The zero value is
// not useful; start from Default.
type Options struct {
	// Browser is the Playwright browser the script launches:
	// "chromium", "firefox" or "webkit".
	Browser string
	// Headless selects headless browser launch.
	Headless bool
	// Indent is one level of indentation in the generated Python.
	Indent string
	// DefaultTimeoutMS is applied to the page after creation; zero
	// leaves Playwright's own default in place.
	DefaultTimeoutMS int
}

// Default returns the options used when no overrides file is given.
func Default() Options {
	return Options{
		Browser:          "chromium",
		Headless:         true,
		Indent:           "    ",
		DefaultTimeoutMS: 30000,
	}
}

// fileOptions is the HCL schema of the overrides file. Pointer fields
// distinguish "absent" from zero values so partial files work.
type fileOptions struct {
	Browser          *string `hcl:"browser,optional"`
	Headless         *bool   `hcl:"headless,optional"`
	Indent           *string `hcl:"indent,optional"`
	DefaultTimeoutMS *int    `hcl:"default_timeout_ms,optional"`
}

// Load reads an HCL overrides file and merges it over the defaults.
func Load(path string) (Options, error) {
	opts := Default()

	var file fileOptions
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return opts, fmt.Errorf("failed to load export options: %w", err)
	}
	if file.Browser != nil {
		opts.Browser = *file.Browser
	}
	if file.Headless != nil {
		opts.Headless = *file.Headless
	}
	if file.Indent != nil {
		opts.Indent = *file.Indent
	}
	if file.DefaultTimeoutMS != nil {
		opts.DefaultTimeoutMS = *file.DefaultTimeoutMS
	}
	if err := opts.validate(); err != nil {
		return Default(), err
	}
	return opts, nil
}

func (o Options) validate() error {
	switch o.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("invalid browser %q: must be 'chromium', 'firefox' or 'webkit'", o.Browser)
	}
	if o.DefaultTimeoutMS < 0 {
		return fmt.Errorf("default_timeout_ms must not be negative, got %d", o.DefaultTimeoutMS)
	}
	return nil
}
