/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package logger provides the structured logging idiom shared by every
// component of the pool/dispatcher: a leveled Logger wrapping logrus, and
// lazily-built Entry values chained as Entry(level, msg).ErrorAdd(...).Check(level).
package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	libent "github.com/nabbar/kvnode/logger/entry"
	libfld "github.com/nabbar/kvnode/logger/fields"
	liblvl "github.com/nabbar/kvnode/logger/level"
)

// FuncLog is a lazy accessor for a Logger, used for dependency injection
// so a collaborator can be constructed before the final logger exists.
type FuncLog func() Logger

// Logger is the structured logging surface used across every package of
// this module. It doubles as an io.Writer so it can sink a standard
// library *log.Logger when one is needed by a borrowed component.
type Logger interface {
	io.Writer

	SetLevel(lvl liblvl.Level)
	GetLevel() liblvl.Level

	SetFields(f libfld.Fields)
	GetFields() libfld.Fields

	Clone() Logger

	Debug(message string, args ...interface{})
	Info(message string, args ...interface{})
	Warning(message string, args ...interface{})
	Error(message string, args ...interface{})
	Fatal(message string, args ...interface{})

	// CheckError logs at lvlKO when err is non-nil, or at lvlOK otherwise
	// (unless lvlOK is NilLevel, in which case the success case is silent).
	// It returns true when err was non-nil.
	CheckError(lvlKO, lvlOK liblvl.Level, message string, err error) bool

	// Entry returns a new Entry bound to this logger, ready to be enriched
	// with fields/data/errors and closed with Log() or Check(lvl).
	Entry(lvl liblvl.Level, message string, args ...interface{}) *libent.Entry
}

func New() Logger {
	l := &lgr{
		m:   sync.RWMutex{},
		lvl: liblvl.InfoLevel,
		fld: libfld.New(),
		log: logrus.New(),
	}
	l.log.SetFormatter(defaultFormatter())
	l.log.SetLevel(l.lvl.Logrus())
	return l
}

// GetDefault returns the package-wide default Logger, building it lazily
// on first use. RegisterDefault overrides it.
func GetDefault() Logger {
	defMutex.Lock()
	defer defMutex.Unlock()

	if defLogger == nil {
		defLogger = New()
	}

	return defLogger
}

func RegisterDefault(l Logger) {
	defMutex.Lock()
	defer defMutex.Unlock()
	defLogger = l
}

var (
	defMutex  sync.Mutex
	defLogger Logger
)
