/*
Package backend describes where aliases come from: the kind of configuration
file, its name and its directory.
*/
package backend

import (
	"path/filepath"
	"strings"
	"time"
)

// Kind is the configuration format used to source aliases.
type Kind string

const (
	// KindConfig is the INI-style sacr.config file.
	KindConfig Kind = "config"
	// KindPackage is an npm-style package.json manifest.
	KindPackage Kind = "package"
)

// SupportedKinds lists every Kind in a stable order.
func SupportedKinds() []Kind {
	return []Kind{KindConfig, KindPackage}
}

// ParseKind matches s against the supported kinds, ignoring case and surrounding space.
func ParseKind(s string) (Kind, bool) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range SupportedKinds() {
		if k == normalized {
			return k, true
		}
	}
	return "", false
}

func (k Kind) String() string { return string(k) }

/*
Defaults is the static record of fallback values. It is built once in main
and handed to whoever needs it.
*/
type Defaults struct {
	Kind           Kind
	ConfigFile     string
	PackageFile    string
	SettingsFile   string
	CommandTimeout time.Duration // Zero means unbounded
}

// StandardDefaults returns the defaults sacr ships with.
func StandardDefaults() Defaults {
	return Defaults{
		Kind:         KindConfig,
		ConfigFile:   "sacr.config",
		PackageFile:  "package.json",
		SettingsFile: ".sacrrc",
	}
}

// FileFor returns the default file name for kind.
func (d Defaults) FileFor(kind Kind) string {
	if kind == KindPackage {
		return d.PackageFile
	}
	return d.ConfigFile
}

// Descriptor identifies the active backend and the file it reads.
type Descriptor struct {
	Kind Kind
	File string
	Path string
}

// Resolve returns the full path of the descriptor's file.
func (d Descriptor) Resolve() string {
	return filepath.Join(d.Path, d.File)
}
