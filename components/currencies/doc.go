// Package currencies provides the deposit-currency reference data offered by
// the account-opening form, search helpers, and a small net/http handler that
// returns JSON options for select inputs.
//
// The default handler responds to GET and HEAD requests and supports query
// and limit parameters to filter results. The backing data is derived from
// the currencies the validation schema accepts, so the endpoint cannot drift
// from what a submission is allowed to carry.
package currencies
