// Package weather fetches current conditions and rain chance from the
// weather API over the streaming HTTP client and caches the result between
// polls.
package weather
