// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is the typed HTTP client for the triddle API.

Every call takes a context and sends the bearer token from the client's
TokenSource when there is one. Non-2xx replies come back as *APIError with the
server's message, or "Something went wrong" when the body has none. The client
never retries.

	c := apiclient.New("http://localhost:5000/api", store)
	forms, err := c.Forms().List(ctx)
*/
package apiclient
