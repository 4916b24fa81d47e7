// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session keeps the CLI's login.

A Session is built explicitly over an apiclient.Client, a TokenStore, a
Notifier and a Navigator; there is no package-level state. Login and Signup
persist the token and user only on success. Restore reloads a persisted token
and checks it with GET /auth/me.

Guard applies the routing rule: logged-out visitors may only see /, /login,
/signup and /form/... links; logged-in users are sent from /login and
/signup to /dashboard.
*/
package session
