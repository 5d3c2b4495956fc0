/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

import (
	"errors"
	"runtime"
	"strings"
)

type ers struct {
	c uint16
	e string
	p []Error
	t runtime.Frame
}

// New builds an Error with the given code and message. Every non-nil
// entry in parent is wrapped (if needed) and kept as a cause.
func New(code uint16, message string, parent ...error) Error {
	return &ers{
		c: code,
		e: message,
		p: makeParents(parent),
		t: getFrame(),
	}
}

// makeParents wraps every non-nil error into an Error, reusing it
// as-is when it already is one.
func makeParents(parent []error) []Error {
	p := make([]Error, 0, len(parent))

	for _, e := range parent {
		if e == nil {
			continue
		}

		if er, ok := e.(Error); ok {
			p = append(p, er)
		} else {
			p = append(p, &ers{e: e.Error()})
		}
	}

	return p
}

func (e *ers) is(err *ers) bool {
	if e == nil || err == nil {
		return false
	}

	if ss, sd := e.GetTrace(), err.GetTrace(); ss != "" || sd != "" {
		return ss != "" && sd != "" && strings.EqualFold(ss, sd)
	}

	if ss, sd := e.StringError(), err.StringError(); ss != "" || sd != "" {
		return ss != "" && sd != "" && strings.EqualFold(ss, sd)
	}

	return e.c > 0 && err.c > 0 && e.c == err.c
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}

	if er, ok := err.(*ers); ok {
		return e.is(er)
	}

	return e.IsError(err)
}

// Add appends every non-nil error in parent to e's parent chain. An
// *ers that repeats e's own message has its own parents flattened in
// instead, to avoid a trivial cycle.
func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}

		if er, ok := v.(*ers); ok {
			if e.IsError(er) {
				for _, erp := range er.p {
					e.Add(erp)
				}
				continue
			}
			e.p = append(e.p, er)
			continue
		}

		if err, ok := v.(Error); ok {
			e.p = append(e.p, err)
			continue
		}

		e.p = append(e.p, &ers{e: v.Error()})
	}
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code.Uint16()
}

func (e *ers) IsError(err error) bool {
	return strings.EqualFold(e.e, err.Error())
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}

	for _, p := range e.p {
		if p.HasCode(code) {
			return true
		}
	}

	return false
}

func (e *ers) GetCode() CodeError {
	return CodeError(e.c)
}

func (e *ers) HasError(err error) bool {
	if e.IsError(err) {
		return true
	}

	for _, p := range e.p {
		if p.IsError(err) || p.HasError(err) {
			return true
		}
	}

	return false
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) GetParent(withMainError bool) []error {
	res := make([]error, 0, len(e.p)+1)

	if withMainError {
		res = append(res, &ers{c: e.c, e: e.e, t: e.t})
	}

	for _, er := range e.p {
		res = append(res, er.GetParent(true)...)
	}

	return res
}

func (e *ers) SetParent(parent ...error) {
	e.p = makeParents(parent)
}

func (e *ers) Code() uint16 {
	return e.c
}

func (e *ers) Error() string {
	return e.e
}

func (e *ers) StringError() string {
	return e.e
}

func (e *ers) GetError() error {
	//nolint goerr113
	return errors.New(e.e)
}

func (e *ers) Unwrap() []error {
	if len(e.p) < 1 {
		return nil
	}

	res := make([]error, 0, len(e.p))
	for _, v := range e.p {
		if v != nil {
			res = append(res, v)
		}
	}

	return res
}

func (e *ers) GetTrace() string {
	return formatTrace(e.t)
}
