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

// Permit codes: admission control / counting semaphore.
const (
	PermitClosed CodeError = MinPkgPermit + iota
	PermitTimeout
	PermitInvalidSize
)

// Pool codes: idle connection pool and in-flight bookkeeping.
const (
	PoolConnectFailed CodeError = MinPkgPool + iota
	PoolNotFound
	PoolClosed
)

// Dispatcher codes: request/response correlation over a pooled connection.
const (
	DispatchWriteFailed CodeError = MinPkgDispatcher + iota
	DispatchTimeout
	DispatchCanceled
)

// Reactor codes: connection event handling.
const (
	ReactorProtocolError CodeError = MinPkgReactor + iota
	ReactorTransportException
	ReactorUnexpectedClose
)

// Reaper codes: idle connection reaping.
const (
	ReaperCloseFailed CodeError = MinPkgReaper + iota
)

// Health codes: passive detector and active probe.
const (
	HealthProbeFailed CodeError = MinPkgHealth + iota
	HealthWindowExceeded
)

// Node codes: lifecycle and configuration.
const (
	NodeIllegalState CodeError = MinPkgNode + iota
	NodeIllegalArgument
	NodeValidationFailed
	NodeAlreadyShutdown
)

var codeMessages = map[CodeError]string{
	PermitClosed:      "permit counter is closed",
	PermitTimeout:      "timed out waiting for a permit",
	PermitInvalidSize:  "invalid permit count requested",

	PoolConnectFailed: "failed to establish a new endpoint connection",
	PoolNotFound:      "no pool registered for the given endpoint",
	PoolClosed:        "pool is closed",

	DispatchWriteFailed: "failed to write the operation to the connection",
	DispatchTimeout:     "operation timed out waiting for a response",
	DispatchCanceled:    "operation canceled by its caller",

	ReactorProtocolError:      "peer sent a malformed or unexpected message",
	ReactorTransportException: "transport failure on an in-flight connection",
	ReactorUnexpectedClose:    "connection closed unexpectedly while in flight",

	ReaperCloseFailed: "failed to close an idle connection during reaping",

	HealthProbeFailed:    "active health probe failed",
	HealthWindowExceeded: "recent close rate exceeded the health threshold",

	NodeIllegalState:     "operation not permitted in the current lifecycle state",
	NodeIllegalArgument:  "invalid argument supplied to node configuration",
	NodeValidationFailed: "node configuration failed validation",
	NodeAlreadyShutdown:  "node has already been shut down",
}

func messageForPackage(code CodeError) string {
	if m, ok := codeMessages[code]; ok {
		return m
	}
	return NullMessage
}

func init() {
	RegisterIdFctMessage(MinPkgPermit, messageForPackage)
	RegisterIdFctMessage(MinPkgPool, messageForPackage)
	RegisterIdFctMessage(MinPkgDispatcher, messageForPackage)
	RegisterIdFctMessage(MinPkgReactor, messageForPackage)
	RegisterIdFctMessage(MinPkgReaper, messageForPackage)
	RegisterIdFctMessage(MinPkgHealth, messageForPackage)
	RegisterIdFctMessage(MinPkgNode, messageForPackage)
}
