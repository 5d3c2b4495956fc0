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

// Package errors gives every package in this module (permit, the node
// pool, its reactor and health monitor) a common error type: a numeric
// code per package range (see modules.go, codes.go), an optional chain
// of parent causes, and a captured call-site trace.
package errors

import (
	"errors"
)

// Error extends the standard error with a code and a parent-error
// chain, so a caller can classify a failure without string-matching
// its message and a logger can still walk the full cause chain.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code; it does
	// not look at parents.
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent has code.
	HasCode(code CodeError) bool
	// GetCode returns this error's own code.
	GetCode() CodeError

	// Is implements compatibility with the standard errors.Is.
	Is(e error) bool
	// IsError reports whether err's message matches this error's own
	// message.
	IsError(err error) bool
	// HasError reports whether err's message matches this error's own
	// message or any parent's.
	HasError(err error) bool
	// HasParent reports whether this error carries at least one parent.
	HasParent() bool
	// GetParent returns the parent chain, optionally including this
	// error itself as the first element.
	GetParent(withMainError bool) []error

	// Add appends every non-nil error in parent to this error's parent
	// chain, flattening any that are already an Error with this same
	// message to avoid a cycle.
	Add(parent ...error)
	// SetParent replaces the parent chain with parent.
	SetParent(parent ...error)

	// Code returns the numeric code as a plain uint16.
	Code() uint16
	// StringError returns this error's own message, without parents.
	StringError() string

	// GetError returns a plain standard-library error carrying this
	// error's own message.
	GetError() error
	// Unwrap exposes the parent chain to errors.Is/errors.As.
	Unwrap() []error

	// GetTrace returns the "file#line" the error was constructed at, or
	// "" if no frame could be captured.
	GetTrace() string
}

// Is reports whether e can be treated as an Error via errors.As.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns e as an Error if it is one, or nil otherwise.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}

	return nil
}

// Has reports whether e is an Error carrying code, on itself or a
// parent.
func Has(e error, code CodeError) bool {
	err := Get(e)
	return err != nil && err.HasCode(code)
}
