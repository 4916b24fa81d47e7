// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package runner implements the fill-out state machine.

A Runner starts at the first question. Next refuses to leave a required
question that has no answer and records a *renderer.RequiredError instead.
Leaving the last question completes the session and passes the answers to
the Submitter once:

	r, err := runner.New(form, client.Responses())
	r.Control().SetText("Ann")
	err = r.Next(ctx)

Previous never validates and is a no-op on the first question. A finished
Runner cannot be restarted; start a new one.
*/
package runner
