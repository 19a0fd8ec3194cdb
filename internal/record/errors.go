// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package record

import "fmt"

// InvalidParameterError reports a caller-supplied filter value that fails a
// structural constraint. It is raised before any store access.
type InvalidParameterError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q (value %v): %s", e.Param, e.Value, e.Reason)
}

// NotFoundError reports that the configured store location does not exist.
// The message names the searched path and a remediation step.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("knowledge store not found at %s: expected a sqlite database at that location; "+
		"run the server once to initialize it, or pass db_path pointing at an existing store", e.Path)
}

// StorageError reports a store that exists but cannot be read. Cause
// distinguishes the corrupt-format and permission-denied subcases when
// determinable.
type StorageError struct {
	Path  string
	Cause string // "corrupt", "permission", or "" when undeterminable
	Err   error
}

func (e *StorageError) Error() string {
	switch e.Cause {
	case "corrupt":
		return fmt.Sprintf("knowledge store at %s is unreadable (corrupt format): %v", e.Path, e.Err)
	case "permission":
		return fmt.Sprintf("knowledge store at %s is unreadable (permission denied): %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("knowledge store at %s is unreadable: %v", e.Path, e.Err)
	}
}

func (e *StorageError) Unwrap() error { return e.Err }

// QueryError reports an internally inconsistent filter combination reaching
// the query engine. It signals a defect in the normalizer, not user error.
type QueryError struct {
	Detail string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("inconsistent query: %s", e.Detail)
}
