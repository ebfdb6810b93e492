package wire

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// DeckNode is one node of the remote deck tree. The root node is unnamed and
// carries the top-level decks as children.
type DeckNode struct {
	DeckID                   int64
	Name                     string
	Level                    uint32
	Collapsed                bool
	ReviewCount              uint32
	LearnCount               uint32
	NewCount                 uint32
	IntradayLearning         uint32
	InterdayLearningUncapped uint32
	NewUncapped              uint32
	ReviewUncapped           uint32
	TotalInDeck              uint32
	TotalIncludingChildren   uint32
	Filtered                 bool
	Children                 []DeckNode
}

// DeckListInfo is the decoded deck-list-info response.
type DeckListInfo struct {
	TopNode             *DeckNode
	CurrentDeckID       int64
	CollectionSizeBytes uint64
	MediaSizeBytes      uint64
}

// SearchResult is one row of a card search response. Text holds the card
// front and back joined with " / " by the server.
type SearchResult struct {
	NoteID int64
	Text   string
}

// UpsertNote describes one add-or-update editor call. NoteID zero means add,
// nonzero means update in place.
type UpsertNote struct {
	Front   string
	Back    string
	Tags    string
	ModelID int64
	DeckID  int64
	NoteID  int64
}

// EncodeDeckListInfoRequest builds the deck-list-info payload. minutesWest is
// the client timezone offset west of UTC.
func EncodeDeckListInfoRequest(minutesWest int32) ([]byte, error) {
	msg := dynamicpb.NewMessage(deckListInfoReqDesc)
	setScalar(msg, "minutes_west_of_utc", protoreflect.ValueOfInt32(minutesWest))
	return marshal(msg)
}

// DecodeDeckListInfoResponse parses a deck-list-info payload into the deck
// tree and collection size counters.
func DecodeDeckListInfoResponse(payload []byte) (*DeckListInfo, error) {
	msg := dynamicpb.NewMessage(deckListInfoRespDesc)
	if err := proto.Unmarshal(payload, msg); err != nil {
		return nil, fmt.Errorf("decode deck list info: %w", err)
	}

	info := &DeckListInfo{
		CurrentDeckID:       getScalar(msg, "current_deck_id").Int(),
		CollectionSizeBytes: getScalar(msg, "collection_size_bytes").Uint(),
		MediaSizeBytes:      getScalar(msg, "media_size_bytes").Uint(),
	}
	if fd := fieldByName(msg, "top_node"); msg.Has(fd) {
		node := decodeDeckNode(msg.Get(fd).Message())
		info.TopNode = &node
	}
	return info, nil
}

// EncodeAddOrUpdateRequest builds the editor add-or-update payload.
func EncodeAddOrUpdateRequest(note UpsertNote) ([]byte, error) {
	msg := dynamicpb.NewMessage(addOrUpdateDesc)

	fields := msg.Mutable(fieldByName(msg, "fields")).List()
	fields.Append(protoreflect.ValueOfString(note.Front))
	fields.Append(protoreflect.ValueOfString(note.Back))

	if note.Tags != "" {
		setScalar(msg, "tags", protoreflect.ValueOfString(note.Tags))
	}
	if note.ModelID != 0 || note.DeckID != 0 {
		model := msg.Mutable(fieldByName(msg, "model")).Message()
		if note.ModelID != 0 {
			model.Set(model.Descriptor().Fields().ByName("id"), protoreflect.ValueOfInt64(note.ModelID))
		}
		if note.DeckID != 0 {
			model.Set(model.Descriptor().Fields().ByName("deck_id"), protoreflect.ValueOfInt64(note.DeckID))
		}
	}
	if note.NoteID != 0 {
		noteMsg := msg.Mutable(fieldByName(msg, "note")).Message()
		noteMsg.Set(noteMsg.Descriptor().Fields().ByName("id"), protoreflect.ValueOfInt64(note.NoteID))
	}
	return marshal(msg)
}

// EncodeSearchRequest builds the card search payload for the given query.
func EncodeSearchRequest(query string) ([]byte, error) {
	msg := dynamicpb.NewMessage(searchReqDesc)
	setScalar(msg, "query", protoreflect.ValueOfString(query))
	return marshal(msg)
}

// DecodeSearchResponse parses a card search payload into result rows.
func DecodeSearchResponse(payload []byte) ([]SearchResult, error) {
	msg := dynamicpb.NewMessage(searchRespDesc)
	if err := proto.Unmarshal(payload, msg); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	list := msg.Get(fieldByName(msg, "results")).List()
	results := make([]SearchResult, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		row := list.Get(i).Message()
		results = append(results, SearchResult{
			NoteID: row.Get(row.Descriptor().Fields().ByName("note_id")).Int(),
			Text:   row.Get(row.Descriptor().Fields().ByName("text")).String(),
		})
	}
	return results, nil
}

// EncodeRemoveDeckRequest builds the remove-deck payload.
func EncodeRemoveDeckRequest(deckID int64) ([]byte, error) {
	msg := dynamicpb.NewMessage(removeDeckDesc)
	setScalar(msg, "deck_id", protoreflect.ValueOfInt64(deckID))
	return marshal(msg)
}

// EncodeRenameDeckRequest builds the rename-deck payload.
func EncodeRenameDeckRequest(deckID int64, name string) ([]byte, error) {
	msg := dynamicpb.NewMessage(renameDeckDesc)
	setScalar(msg, "deck_id", protoreflect.ValueOfInt64(deckID))
	setScalar(msg, "name", protoreflect.ValueOfString(name))
	return marshal(msg)
}

// EncodeCreateDeckRequest builds the create-deck payload.
func EncodeCreateDeckRequest(name string) ([]byte, error) {
	msg := dynamicpb.NewMessage(createDeckDesc)
	setScalar(msg, "name", protoreflect.ValueOfString(name))
	return marshal(msg)
}

func decodeDeckNode(msg protoreflect.Message) DeckNode {
	fields := msg.Descriptor().Fields()
	get := func(name protoreflect.Name) protoreflect.Value {
		return msg.Get(fields.ByName(name))
	}

	node := DeckNode{
		DeckID:                   get("deck_id").Int(),
		Name:                     get("name").String(),
		Level:                    uint32(get("level").Uint()),
		Collapsed:                get("collapsed").Bool(),
		ReviewCount:              uint32(get("review_count").Uint()),
		LearnCount:               uint32(get("learn_count").Uint()),
		NewCount:                 uint32(get("new_count").Uint()),
		IntradayLearning:         uint32(get("intraday_learning").Uint()),
		InterdayLearningUncapped: uint32(get("interday_learning_uncapped").Uint()),
		NewUncapped:              uint32(get("new_uncapped").Uint()),
		ReviewUncapped:           uint32(get("review_uncapped").Uint()),
		TotalInDeck:              uint32(get("total_in_deck").Uint()),
		TotalIncludingChildren:   uint32(get("total_including_children").Uint()),
		Filtered:                 get("filtered").Bool(),
	}

	children := get("children").List()
	for i := 0; i < children.Len(); i++ {
		node.Children = append(node.Children, decodeDeckNode(children.Get(i).Message()))
	}
	return node
}

func fieldByName(msg *dynamicpb.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	return msg.Descriptor().Fields().ByName(name)
}

func setScalar(msg *dynamicpb.Message, name protoreflect.Name, v protoreflect.Value) {
	msg.Set(fieldByName(msg, name), v)
}

func getScalar(msg *dynamicpb.Message, name protoreflect.Name) protoreflect.Value {
	return msg.Get(fieldByName(msg, name))
}

func marshal(msg *dynamicpb.Message) ([]byte, error) {
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Descriptor().Name(), err)
	}
	return data, nil
}
