// Package reddit is a minimal client for Reddit's public listing JSON.
//
// A Client issues exactly one GET per FetchPage call with a fixed User-Agent,
// limit=100 and, when a cursor is known, after=<cursor>. It does not retry,
// back off or react to 429 responses; any non-2xx status surfaces as an
// *HTTPError.
package reddit
