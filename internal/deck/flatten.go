package deck

import "rememberit/internal/wire"

// Flatten walks the remote deck tree depth-first and produces one Deck per
// named node, with paths joined by "::". The unnamed root placeholder is not
// addressable and is skipped.
func Flatten(top *wire.DeckNode) Collection {
	if top == nil {
		return nil
	}
	var rows Collection
	flattenNode(*top, "", &rows)
	return rows
}

func flattenNode(node wire.DeckNode, prefix string, rows *Collection) {
	path := prefix
	if node.Name != "" {
		path = prefix + node.Name
		*rows = append(*rows, Deck{
			ID:                     node.DeckID,
			Name:                   node.Name,
			Path:                   path,
			Level:                  node.Level,
			NewCount:               node.NewCount,
			LearnCount:             node.LearnCount,
			ReviewCount:            node.ReviewCount,
			TotalInDeck:            node.TotalInDeck,
			TotalIncludingChildren: node.TotalIncludingChildren,
		})
	}

	childPrefix := ""
	if path != "" {
		childPrefix = path + PathSeparator
	}
	for _, child := range node.Children {
		flattenNode(child, childPrefix, rows)
	}
}
