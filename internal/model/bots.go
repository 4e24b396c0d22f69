// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Bot is one of the fixed coaching assistant personas the backend serves.
// The set is static: the backend addresses bots by their short key and has
// no discovery endpoint.
type Bot struct {
	ID          string
	Label       string
	Description string
	Icon        string
}

// bots is the catalogue in dashboard display order.
var bots = []Bot{
	{
		ID:    "personal",
		Label: "Personal Problems Assistant",
		Description: "A professional coach who helps employees overcome workplace " +
			"challenges, strengthen well-being, and improve effectiveness.",
		Icon: "🧠",
	},
	{
		ID:    "product",
		Label: "Product and Product Lines Assistant",
		Description: "A dedicated coach for strategy, product lines, and detailed " +
			"product knowledge, delivering fact-based, step-by-step training.",
		Icon: "📱",
	},
	{
		ID:    "formalization",
		Label: "Problem Formalization Assistant",
		Description: "Collaborative managerial coaching and problem-solving assistant " +
			"with narrative synthesis and stepwise action definition.",
		Icon: "📝",
	},
	{
		ID:    "training",
		Label: "Generic Training Assistant",
		Description: "An interactive, role-based training module that guides users " +
			"through personalized lessons and quizzes.",
		Icon: "🎓",
	},
	{
		ID:    "email",
		Label: "Write Email Assistant",
		Description: "Step-by-step guidance for drafting professional, efficient " +
			"emails structured for clarity and fast decision-making.",
		Icon: "✉️",
	},
}

// Bots returns the bot catalogue in display order.
func Bots() []Bot {
	out := make([]Bot, len(bots))
	copy(out, bots)
	return out
}

// LookupBot returns the bot with the given id.
func LookupBot(id string) (Bot, bool) {
	for _, b := range bots {
		if b.ID == id {
			return b, true
		}
	}
	return Bot{}, false
}
