// Package assets downloads the files an authenticated page references:
// one request for the page, a regex pass for asset URLs, one request per
// asset, plus a dump of the page response headers.
package assets
