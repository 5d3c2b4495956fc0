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
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

const pathSeparator = "/"

// currPkg is this package's own directory name, used to skip frames
// inside errors.go/code.go themselves when walking the call stack for
// New's construction site.
var currPkg = func() string {
	_, file, _, _ := runtime.Caller(0)
	return path.Base(path.Dir(convPathFromLocal(file)))
}()

func convPathFromLocal(str string) string {
	return strings.ReplaceAll(str, string(filepath.Separator), pathSeparator)
}

// getFrame walks up the call stack past this package's own frames and
// returns the first caller frame outside it, i.e. the site New (or a
// CodeError) was called from.
func getFrame() runtime.Frame {
	pc := make([]uintptr, 20)
	n := runtime.Callers(2, pc)
	if n == 0 {
		return getNilFrame()
	}

	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.Function, currPkg) {
			if !more {
				break
			}
			continue
		}

		return runtime.Frame{Function: frame.Function, File: frame.File, Line: frame.Line}
	}

	return getNilFrame()
}

func getNilFrame() runtime.Frame {
	return runtime.Frame{}
}

// formatTrace renders a captured frame as "file#line", falling back to
// "function#line" when the file is unavailable, or "" if the frame is
// empty.
func formatTrace(t runtime.Frame) string {
	switch {
	case t.File != "":
		return fmt.Sprintf("%s#%d", filterPath(t.File), t.Line)
	case t.Function != "":
		return fmt.Sprintf("%s#%d", t.Function, t.Line)
	default:
		return ""
	}
}

// filterPath strips everything up to and including a "/pkg/mod/" or
// vendor segment, so a trace reads as a module-relative path instead
// of a local build-machine absolute path.
func filterPath(pathname string) string {
	const (
		filterMod    = pathSeparator + "pkg" + pathSeparator + "mod" + pathSeparator
		filterVendor = pathSeparator + "vendor" + pathSeparator
	)

	pathname = convPathFromLocal(pathname)

	if i := strings.LastIndex(pathname, filterMod); i != -1 {
		pathname = pathname[i+len(filterMod):]
	}
	if i := strings.LastIndex(pathname, filterVendor); i != -1 {
		pathname = pathname[i+len(filterVendor):]
	}

	return strings.Trim(path.Clean(pathname), pathSeparator)
}
