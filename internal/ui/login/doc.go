// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the sign-in and sign-up forms. One model
// serves both modes; ctrl+s switches between them and a successful
// submit emits AuthenticatedMsg.
package login
