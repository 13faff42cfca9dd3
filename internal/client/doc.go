// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the note client application runtime.
//
// It wires the local store, the record store client, the note book and the
// sync scheduler into one [App] used by the command-line commands, and
// runs the long-lived workers of the watch mode.
package client
