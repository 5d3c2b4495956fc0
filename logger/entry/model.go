/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
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

package entry

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	libfld "github.com/nabbar/kvnode/logger/fields"
	liblvl "github.com/nabbar/kvnode/logger/level"
)

const (
	FieldTime    = "time"
	FieldLevel   = "level"
	FieldStack   = "stack"
	FieldCaller  = "caller"
	FieldFile    = "file"
	FieldLine    = "line"
	FieldMessage = "message"
	FieldError   = "error"
	FieldData    = "data"
)

// Entry is a single structured log event, lazily rendered through logrus
// once Log (or Check) is called.
type Entry struct {
	log func() *logrus.Logger

	Time    time.Time      `json:"time"`
	Level   liblvl.Level   `json:"level"`
	Stack   uint64         `json:"stack"`
	Caller  string         `json:"caller"`
	File    string         `json:"file"`
	Line    uint32         `json:"line"`
	Message string         `json:"message"`
	Error   []error        `json:"error"`
	Data    interface{}    `json:"data"`
	Fields  libfld.Fields  `json:"fields"`
}

func New(log func() *logrus.Logger, lvl liblvl.Level, message string) *Entry {
	return &Entry{
		log:     log,
		Time:    time.Now(),
		Level:   lvl,
		Message: message,
		Error:   make([]error, 0),
	}
}

func (e *Entry) FieldAdd(key string, val interface{}) *Entry {
	e.Fields = e.Fields.Add(key, val)
	return e
}

func (e *Entry) FieldMerge(fields libfld.Fields) *Entry {
	e.Fields = e.Fields.Merge(fields)
	return e
}

func (e *Entry) DataSet(data interface{}) *Entry {
	e.Data = data
	return e
}

func (e *Entry) ErrorAdd(cleanNil bool, err ...error) *Entry {
	for _, er := range err {
		if cleanNil && er == nil {
			continue
		}
		e.Error = append(e.Error, er)
	}
	return e
}

// Check sets the entry's level to lvlNoErr when no non-nil error was
// recorded, logs the entry and reports whether an error was found.
func (e *Entry) Check(lvlNoErr liblvl.Level) bool {
	var found = false

	for _, er := range e.Error {
		if er == nil {
			continue
		}
		found = true
		break
	}

	if !found {
		e.Level = lvlNoErr
	}

	e.Log()
	return found
}

func (e *Entry) Log() {
	if e.log == nil {
		return
	}

	log := e.log()
	if log == nil {
		return
	}

	tag := libfld.New().Add(FieldLevel, e.Level.String())

	if !e.Time.IsZero() {
		tag = tag.Add(FieldTime, e.Time.Format(time.RFC3339Nano))
	}

	if e.Stack > 0 {
		tag = tag.Add(FieldStack, e.Stack)
	}

	if e.Caller != "" {
		tag = tag.Add(FieldCaller, e.Caller)
	} else if e.File != "" {
		tag = tag.Add(FieldFile, e.File)
	}

	if e.Line > 0 {
		tag = tag.Add(FieldLine, e.Line)
	}

	if e.Message != "" {
		tag = tag.Add(FieldMessage, e.Message)
	}

	if len(e.Error) > 0 {
		msg := make([]string, 0, len(e.Error))
		for _, er := range e.Error {
			if er == nil {
				continue
			}
			msg = append(msg, er.Error())
		}
		if len(msg) > 0 {
			tag = tag.Add(FieldError, strings.Join(msg, ", "))
		}
	}

	if e.Data != nil {
		tag = tag.Add(FieldData, e.Data)
	}

	if len(e.Fields) > 0 {
		tag = tag.Merge(e.Fields)
	}

	if e.Level == liblvl.NilLevel {
		return
	}

	log.WithFields(tag.Logrus()).Log(e.Level.Logrus())

	if e.Level <= liblvl.FatalLevel {
		os.Exit(1)
	}
}
