// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !release

package tile

// Assertions is false when building with -tags release.
const Assertions = true
