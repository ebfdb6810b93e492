// Package format renders card field values into HTML fragments and parses
// them back. Fragments are self-describing: data-ri-type, data-ri-lang,
// data-ri-theme, and a base64 data-ri-content copy of the original text make
// ParseField an inverse of the formatting functions.
package format
