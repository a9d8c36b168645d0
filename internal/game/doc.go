// Package game implements the heads-up betting engine.
//
// The main type is Table, which holds two seats (a human and a bot), the pot,
// the current bet and the community cards for the hand in progress. A hand is
// driven by three operations:
//
//	t, _ := game.NewTable("abc", game.WithBlinds(5, 10), game.WithStartingChips(1000))
//	t.SetPolicy(bot.NewPolicy(rng))
//	t.StartHand(rng)
//	events, err := t.ApplyAction(t.HumanSeat(), game.Call, 0)
//	events, err = t.AdvanceStreet()
//
// # Deterministic Testing
//
// Every source of randomness is injected. StartHand takes the *rand.Rand used
// to shuffle the deck and the bot Policy carries its own, so a fixed seed
// reproduces a hand exactly:
//
//	rng := randutil.New(42)
//	t.StartHand(rng)
//
// # Failure Semantics
//
// Mutating operations work on a snapshot of the table and only commit it when
// they succeed. A call that returns an error leaves the table unchanged.
package game
