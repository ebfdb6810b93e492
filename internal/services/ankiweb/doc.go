// Package ankiweb implements the remote flashcard sync client. Deck listing
// and search live on the base host, note editing on the editor host, and the
// credential exchange on the sync host. Payloads are binary protobuf encoded
// by the wire package.
package ankiweb
