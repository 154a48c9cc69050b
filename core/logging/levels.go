package logging

import (
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of environment variables that configure log levels.
// NDNLP_LOG_<pkg> sets the level of one package; NDNLP_LOG sets the default.
const EnvPrefix = "NDNLP_LOG"

// PkgLevel represents log level of a package.
type PkgLevel struct {
	pkg string
	lvl byte
	al  zap.AtomicLevel
}

// Package returns package name.
func (pl *PkgLevel) Package() string {
	return pl.pkg
}

// Level returns log level as a letter.
func (pl *PkgLevel) Level() byte {
	return pl.lvl
}

// SetLevel assigns log level.
// The first letter of input selects the level: V D I W E F N.
// Unrecognized or empty input selects I.
func (pl *PkgLevel) SetLevel(input string) {
	pl.lvl = 'I'
	if len(input) > 0 {
		pl.lvl = input[0]
	}

	lvl, ok := letterLevels[pl.lvl]
	if !ok {
		pl.lvl, lvl = 'I', zapcore.InfoLevel
	}
	pl.al.SetLevel(lvl)
}

var letterLevels = map[byte]zapcore.Level{
	'V': zapcore.DebugLevel,
	'D': zapcore.DebugLevel,
	'I': zapcore.InfoLevel,
	'W': zapcore.WarnLevel,
	'E': zapcore.ErrorLevel,
	'F': zapcore.DPanicLevel,
	'N': zapcore.DPanicLevel,
}

var (
	pkgLevelsLock sync.Mutex
	pkgLevels     = map[string]*PkgLevel{}
)

// ListLevels returns all package levels, sorted by package name.
func ListLevels() (list []*PkgLevel) {
	pkgLevelsLock.Lock()
	defer pkgLevelsLock.Unlock()
	for _, pl := range pkgLevels {
		list = append(list, pl)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].pkg < list[j].pkg })
	return list
}

// FindLevel returns package log level object, or nil if the package has no logger.
func FindLevel(pkg string) *PkgLevel {
	pkgLevelsLock.Lock()
	defer pkgLevelsLock.Unlock()
	return pkgLevels[pkg]
}

// GetLevel finds or creates package log level object.
func GetLevel(pkg string) (pl *PkgLevel) {
	pkgLevelsLock.Lock()
	defer pkgLevelsLock.Unlock()
	if pl = pkgLevels[pkg]; pl == nil {
		pl = &PkgLevel{
			pkg: pkg,
			al:  zap.NewAtomicLevel(),
		}
		pl.SetLevel(envLevel(pkg))
		pkgLevels[pkg] = pl
	}
	return pl
}

func envLevel(pkg string) string {
	v, ok := os.LookupEnv(EnvPrefix + "_" + pkg)
	if !ok {
		v = os.Getenv(EnvPrefix)
	}
	return v
}
