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

package logger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	libent "github.com/nabbar/kvnode/logger/entry"
	libfld "github.com/nabbar/kvnode/logger/fields"
	liblvl "github.com/nabbar/kvnode/logger/level"
)

func sprintf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

type lgr struct {
	m   sync.RWMutex
	lvl liblvl.Level
	fld libfld.Fields
	log *logrus.Logger
}

func defaultFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		ForceColors:            false,
		DisableTimestamp:       false,
		FullTimestamp:          true,
		TimestampFormat:        time.RFC3339,
		DisableLevelTruncation: true,
		PadLevelText:           true,
		QuoteEmptyFields:       true,
	}
}

func (l *lgr) Write(p []byte) (int, error) {
	l.m.RLock()
	defer l.m.RUnlock()

	l.log.WithFields(l.fld.Logrus()).Log(l.lvl.Logrus(), strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func (l *lgr) SetLevel(lvl liblvl.Level) {
	l.m.Lock()
	defer l.m.Unlock()

	l.lvl = lvl
	l.log.SetLevel(lvl.Logrus())
}

func (l *lgr) GetLevel() liblvl.Level {
	l.m.RLock()
	defer l.m.RUnlock()

	return l.lvl
}

func (l *lgr) SetFields(f libfld.Fields) {
	l.m.Lock()
	defer l.m.Unlock()

	l.fld = f
}

func (l *lgr) GetFields() libfld.Fields {
	l.m.RLock()
	defer l.m.RUnlock()

	return l.fld
}

func (l *lgr) Clone() Logger {
	l.m.RLock()
	defer l.m.RUnlock()

	n := &lgr{
		lvl: l.lvl,
		fld: l.fld,
		log: logrus.New(),
	}
	n.log.SetFormatter(defaultFormatter())
	n.log.SetLevel(n.lvl.Logrus())

	return n
}

func (l *lgr) entry(lvl liblvl.Level, message string, args ...interface{}) *libent.Entry {
	if len(args) > 0 {
		message = sprintf(message, args...)
	}

	e := libent.New(l.getLogrus, lvl, message)
	e.FieldMerge(l.GetFields())
	return e
}

func (l *lgr) getLogrus() *logrus.Logger {
	l.m.RLock()
	defer l.m.RUnlock()
	return l.log
}

func (l *lgr) Entry(lvl liblvl.Level, message string, args ...interface{}) *libent.Entry {
	return l.entry(lvl, message, args...)
}

func (l *lgr) Debug(message string, args ...interface{}) {
	l.entry(liblvl.DebugLevel, message, args...).Log()
}

func (l *lgr) Info(message string, args ...interface{}) {
	l.entry(liblvl.InfoLevel, message, args...).Log()
}

func (l *lgr) Warning(message string, args ...interface{}) {
	l.entry(liblvl.WarnLevel, message, args...).Log()
}

func (l *lgr) Error(message string, args ...interface{}) {
	l.entry(liblvl.ErrorLevel, message, args...).Log()
}

func (l *lgr) Fatal(message string, args ...interface{}) {
	l.entry(liblvl.FatalLevel, message, args...).Log()
}

func (l *lgr) CheckError(lvlKO, lvlOK liblvl.Level, message string, err error) bool {
	e := l.entry(lvlKO, message).ErrorAdd(true, err)
	return e.Check(lvlOK)
}
