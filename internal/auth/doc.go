// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the client-side authentication session: login and
// signup form validation, the logged-in user, and translation of API
// failures into one-sentence messages fit for a form.
package auth
