// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package hexastore

import "golang.org/x/xerrors"

// Sentinel errors surfaced by the persistence path. A missing lookup or a
// no-op removal is not an error condition and has no sentinel of its own:
// a missing lookup yields an empty, already-finished cursor, and removing
// an absent triple simply returns.
var (
	// ErrBadMagic is returned when a stream's header byte does not match
	// the expected magic byte for the level being read ('X', 'I', 'H',
	// 'V' or 'T').
	ErrBadMagic = xerrors.New("hexastore: bad magic byte")

	// ErrShortRead is returned when a stream ends before a declared
	// length's worth of data has been consumed.
	ErrShortRead = xerrors.New("hexastore: short read")

	// ErrAllocationFailed marks an allocation that could not be
	// satisfied. Go itself aborts the process on true OOM before user
	// code observes it; this sentinel exists so the interface has a
	// named failure mode to panic with, should a caller want to recover
	// from it rather than let the runtime abort.
	ErrAllocationFailed = xerrors.New("hexastore: allocation failed")
)
